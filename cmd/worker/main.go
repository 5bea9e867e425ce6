package main

import (
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"transportcoin-service/internal/consumers"
	"transportcoin-service/internal/database"
	"transportcoin-service/internal/worker"
)

func main() {
	// Load env
	if err := godotenv.Load("../../.env"); err != nil {
		log.Info("No .env file found in ../../.env, trying .env")
		if err := godotenv.Load(".env"); err != nil {
			log.Info("No .env file found, using system env")
		}
	}

	// Connect DB
	database.Connect()
	db := database.DB

	// Processor
	processor := consumers.NewPayoutProcessor(db)

	// Redis
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}

	log.Info("Starting Asynq Worker...")
	worker.StartWorker(redisOpt, processor)
}
