package main

import (
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"transportcoin-service/internal/database"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Info("No .env file found, using system environment variables")
		}
	}

	// Initialize Database
	database.Connect()

	// Run Migrations
	log.Info("Running database migrations...")
	database.Migrate()

	log.Info("Migrations completed successfully!")
}
