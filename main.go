package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/aryaseta/resto-order-api/config"
	"github.com/aryaseta/resto-order-api/database"
	"github.com/aryaseta/resto-order-api/models"
	"github.com/aryaseta/resto-order-api/router"
	"github.com/aryaseta/resto-order-api/services"
	"github.com/aryaseta/resto-order-api/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to initialize database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.RestaurantSchedule{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate database: %v", err)
	}

	if err := database.ExecuteConstraints(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to install constraints: %v", err)
	}

	// Pastikan baris jadwal tunggal sudah ada sebelum server menerima request
	if _, err := services.NewScheduleService(db).Load(); err != nil {
		utils.ErrorLogger.Fatalf("Failed to initialize restaurant schedule: %v", err)
	}

	r := router.SetupRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	utils.InfoLogger.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatalf("Failed to start server: %v", err)
	}
}
