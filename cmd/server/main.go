package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"teahouse_backend/internal/config"
	"teahouse_backend/internal/database"
	"teahouse_backend/internal/notifications"
	"teahouse_backend/internal/router"
	"teahouse_backend/internal/services"
	"teahouse_backend/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	utils.InitLogger()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		utils.LogError(err, "Failed to load .env file")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	utils.LogInfo("Database initialized", map[string]interface{}{"host": cfg.Database.Host, "name": cfg.Database.Name})

	var notifier services.ReceiptNotifier
	if cfg.AMQP.Enabled {
		publisher, err := notifications.Connect(cfg.AMQP)
		if err != nil {
			// Receipt delivery is best effort; the POS runs without it.
			utils.LogError(err, "Failed to connect to RabbitMQ, receipts disabled")
		} else {
			defer publisher.Close()
			notifier = publisher
			utils.LogInfo("Receipt publisher connected", map[string]interface{}{"host": cfg.AMQP.Host})
		}
	}

	engine := gin.Default()
	engine.Use(utils.RequestID())
	engine.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.Setup(engine, db, cfg, notifier)

	utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Server.Port})
	if err := engine.Run(":" + cfg.Server.Port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
