package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/EquipHub/EquipHub-Backend/src/db"
	"github.com/EquipHub/EquipHub-Backend/src/middleware"
	"github.com/EquipHub/EquipHub-Backend/src/models"
	"github.com/EquipHub/EquipHub-Backend/src/routes"
	"github.com/EquipHub/EquipHub-Backend/src/seed"
	"github.com/EquipHub/EquipHub-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func main() {

	// Database connection
	db, err := db.Connect()
	if err != nil {
		log.Fatalf("Error connecting to database: %v\n", err)
	}

	// Auto-migrate models
	if err := db.AutoMigrate(&models.UserModel{}, &models.EquipmentModel{}, &models.ReservationModel{}); err != nil {
		log.Fatalf("Error during auto-migration: %v\n", err)
	}

	// Bootstrap administrator account
	if err := seed.EnsureAdmin(db); err != nil {
		log.Fatalf("Error initializing admin user: %v\n", err)
	}

	// JWT secret setup
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatalln("JWT_SECRET must be set")
	}
	middleware.SetSecretKey(secret)

	// Port and host setup
	host := os.Getenv("SERVER_HOST")
	if host == "" {
		host = ":8080"
	}

	// Gin router setup
	router := gin.Default()
	router.Use(middleware.SetupCORS())
	router.Use(middleware.RequestID())

	// Services setup
	equipmentService := services.NewEquipmentService(db)
	autoReturnService := services.NewAutoReturnService(db, equipmentService)
	reservationService := services.NewReservationService(db, equipmentService)
	userService := services.NewUserService(db)

	// Background expiry sweep; requests still run a best-effort sweep inline
	interval := 5 * time.Minute
	if raw := os.Getenv("SWEEP_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Invalid SWEEP_INTERVAL %q: %v\n", raw, err)
		}
		interval = parsed
	}
	autoReturnService.Start(interval)

	// Routes setup
	routes.SetupUserRoutes(router, userService)
	routes.SetupStaffRoutes(router, userService)
	routes.SetupEquipRoutes(router, equipmentService, reservationService, autoReturnService)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Server run
	if err := router.Run(host); err != nil {
		log.Fatalf("Error starting server on %s: %v\n", host, err)
	}
}
