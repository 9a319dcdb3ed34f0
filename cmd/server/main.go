package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/peopleapp/people-api/internal/handlers"
	"github.com/peopleapp/people-api/internal/repositories"
	"github.com/peopleapp/people-api/internal/services"
	"github.com/peopleapp/people-api/pkg/config"
	"github.com/peopleapp/people-api/pkg/database"
	"github.com/peopleapp/people-api/pkg/logger"
)

func main() {
	logger.Init()

	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	gin.SetMode(config.AppConfig.Server.Mode)

	// Select the people backend
	var peopleService services.PeopleService
	switch config.AppConfig.Store.Backend {
	case "sqlite":
		if err := database.Init(config.AppConfig.Database.Path); err != nil {
			logger.Fatalf("Failed to initialize database: %v", err)
		}
		defer database.Close()

		personRepo := repositories.NewPersonRepository(database.DB)
		peopleService = services.NewPersonService(personRepo)
	default:
		peopleService = services.NewMemoryPeopleService(services.DefaultSeed())
	}
	exportService := services.NewExportService(peopleService)

	// Initialize router
	router := gin.Default()
	setupRoutes(router, peopleService, exportService)

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Infof("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
	logger.Info("Server stopped")
}

func setupRoutes(router *gin.Engine, peopleService services.PeopleService, exportService *services.ExportService) {
	// Initialize handlers
	personHandler := handlers.NewPersonHandler(peopleService, exportService)
	healthHandler := handlers.NewHealthHandler()

	router.GET("/health", healthHandler.Health)

	people := router.Group("/people")
	{
		people.GET("", personHandler.ListPeople)
		people.GET("/random", personHandler.GetRandomPerson)
		people.GET("/export", personHandler.ExportPeople)
		people.GET("/:id", personHandler.GetPerson)
		people.POST("", personHandler.CreatePerson)
		people.PUT("/:id", personHandler.UpdatePerson)
		people.PATCH("/:id", personHandler.UpdatePerson)
		people.DELETE("/:id", personHandler.DeletePerson)
	}
}
