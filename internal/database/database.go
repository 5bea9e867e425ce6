package database

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"transportcoin-service/internal/models"
)

var DB *gorm.DB

func Connect() {
	var err error
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	log.Info("Database connection established")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.Wallet{},
		&models.Transaction{},
		&models.ArchivedTransaction{},
		&models.WithdrawalRequest{},
		&models.TcGoldPurchase{},
		&models.SupportThread{},
		&models.SupportMessage{},
		&models.PlatformConfig{},
		&models.TransportEvent{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}
	log.Info("Database migration completed")
}
