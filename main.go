package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zaylux/zaylux-store-api/config"
	"github.com/zaylux/zaylux-store-api/models"
	"github.com/zaylux/zaylux-store-api/services"
	"github.com/zaylux/zaylux-store-api/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	utils.InitLogger(cfg.GoEnv)
	defer utils.SyncLogger()
	logger := utils.Logger()

	db, err := config.ConnectDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}()

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.Info("Database migration completed")

	whatsapp := services.NewTwilioWhatsAppService(cfg)

	var s3 services.S3Interface
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.NewS3Service(cfg)
		if err != nil {
			logger.Fatal("Failed to initialize S3", zap.Error(err))
		}
		s3 = s3Service
	} else {
		logger.Warn("AWS_S3_BUCKET not set, image uploads disabled")
		s3 = services.NewMockS3Service()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, db, whatsapp, s3)

	logger.Info("Server starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
