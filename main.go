package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-pms/config"
	"hotel-pms/controllers"
	"hotel-pms/routes"
	"hotel-pms/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("Database connection established and migrations applied")

	// Initialize services
	userService := services.NewUserService(db)
	roomService := services.NewRoomService(db)
	guestService := services.NewGuestService(db)
	availabilityService := services.NewAvailabilityService(db)
	reservationService := services.NewReservationService(db)
	dashboardService := services.NewDashboardService(db)
	settingsService := services.NewSettingsService(db)

	// Initialize controllers
	authController := controllers.NewAuthController(userService)
	reservationController := controllers.NewReservationController(reservationService, availabilityService)
	roomController := controllers.NewRoomController(roomService)
	guestController := controllers.NewGuestController(guestService)
	dashboardController := controllers.NewDashboardController(dashboardService)
	userController := controllers.NewUserController(userService)
	settingsController := controllers.NewSettingsController(settingsService)

	router := routes.SetupRouter(
		authController,
		reservationController,
		roomController,
		guestController,
		dashboardController,
		userController,
		settingsController,
		userService,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal, then shut down with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
