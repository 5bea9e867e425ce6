package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"transportcoin-service/internal/database"
	"transportcoin-service/internal/handlers"
	"transportcoin-service/internal/middleware"
	"transportcoin-service/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Info("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Init Services
	configService := services.NewConfigService(db)
	walletService := services.NewWalletService(db)
	withdrawalService := services.NewWithdrawalService(db, configService, asynqClient)
	purchaseService := services.NewPurchaseService(db, configService)
	supportService := services.NewSupportService(db)
	transportService := services.NewTransportService(db)

	// Handlers
	walletHandler := handlers.NewWalletHandler(walletService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	supportHandler := handlers.NewSupportHandler(supportService)
	transportHandler := handlers.NewTransportHandler(transportService)
	configHandler := handlers.NewConfigHandler(configService)

	// Initialize Gin
	r := gin.Default()

	// Ping endpoint
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome To Transportcoin service",
		})
	})

	api := r.Group("/api", middleware.RequireAuth())
	{
		wallet := api.Group("/wallet")
		{
			wallet.POST("/deposit", walletHandler.Deposit)
			wallet.GET("/summary", walletHandler.Summary)
			wallet.POST("/withdraw-crypto", withdrawalHandler.RequestCrypto)
			wallet.GET("/withdrawals", withdrawalHandler.List)
			wallet.GET("/withdrawals/meta", withdrawalHandler.Meta)
		}

		trade := api.Group("/trade")
		{
			trade.POST("/buy", walletHandler.BuyTcGold)
			trade.POST("/sell", walletHandler.SellTcGold)
		}

		api.POST("/trading/tcgold/purchase", purchaseHandler.Request)

		support := api.Group("/support")
		{
			support.GET("/threads", supportHandler.ListThreads)
			support.POST("/threads", supportHandler.CreateThread)
			support.GET("/threads/:id", supportHandler.GetThread)
			support.POST("/threads/:id/messages", supportHandler.PostMessage)
			support.GET("/thread-for-transaction", supportHandler.ThreadForTransaction)
		}

		api.GET("/transport/events", transportHandler.ListEvents)
	}

	admin := r.Group("/api/admin", middleware.RequireAuth(), middleware.RequireAdmin())
	{
		admin.GET("/withdrawals", withdrawalHandler.AdminList)
		admin.POST("/withdrawals/:id/approve", withdrawalHandler.AdminApprove)
		admin.POST("/withdrawals/:id/reject", withdrawalHandler.AdminReject)

		admin.GET("/tcg-purchases", purchaseHandler.AdminList)
		admin.POST("/tcg-purchases/:id/confirm", purchaseHandler.AdminConfirm)
		admin.POST("/tcg-purchases/:id/reject", purchaseHandler.AdminReject)

		admin.GET("/config", configHandler.AdminGet)
		admin.PUT("/config", configHandler.AdminUpdate)

		admin.GET("/support/threads", supportHandler.AdminListThreads)
		admin.POST("/support/threads/:id/messages", supportHandler.AdminPostMessage)
		admin.POST("/support/threads/:id/close", supportHandler.AdminCloseThread)

		admin.GET("/transport/events", transportHandler.AdminListEvents)
		admin.POST("/transport/events", transportHandler.AdminCreateEvent)
	}

	// Start Cron Schedulers
	transactionArchiveService := services.NewTransactionArchiveService(db)
	transactionArchiveService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Infof("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
