package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"flashing-designer/internal/common/config"
	"flashing-designer/internal/common/middleware"
	"flashing-designer/internal/designer/handlers"
	"flashing-designer/internal/designer/labels"
	"flashing-designer/internal/designer/repository"
	"flashing-designer/internal/designer/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Designer Service
// ============================================================

func main() {
	cfg := config.Load()

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Fatalf("init db: %v", err)
	}

	sessions := service.NewSessionManager(repo, cfg.GridSize, labels.DefaultOptions())

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Flashing Designer",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS(cfg.CORSOrigins))

	handlers.Register(app,
		handlers.NewHealthHandler(repo),
		handlers.NewOrderHandler(repo),
		handlers.NewSessionHandler(sessions),
	)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Flashing Designer on %s (env: %s, grid: %g)", addr, cfg.Environment, cfg.GridSize)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
