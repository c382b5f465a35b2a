package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"ops-backend/internal/cache"
	"ops-backend/internal/config"
	"ops-backend/internal/database"
	"ops-backend/internal/db"
	"ops-backend/internal/handlers"
	"ops-backend/internal/health"
	h "ops-backend/internal/http"
	"ops-backend/internal/middleware"
	"ops-backend/internal/monitoring"
	"ops-backend/internal/repositories"
	"ops-backend/internal/services"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (serving from database only)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations on startup
	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)
	statsCollector := monitoring.NewCollector(pool)

	// Repositories
	boqRepo := repositories.NewBOQRepository(pool)
	costReportRepo := repositories.NewCostReportRepository(pool)
	projectRepo := repositories.NewProjectRepository(pool)

	// Services
	boqService := services.NewBOQService(boqRepo)
	costReportService := services.NewCostReportService(costReportRepo, projectRepo)

	// Handlers
	boqHandler := handlers.NewBOQHandler(boqService)
	costReportHandler := handlers.NewCostReportHandler(costReportService)
	monitoringHandler := handlers.NewMonitoringHandler(statsCollector)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(boqHandler, costReportHandler, monitoringHandler, healthHandler)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(
		middleware.MetricsMiddleware(
			corsMiddleware(router),
		),
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
