// main.go
//
// Property management administration service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of fastighet-admin.
// fastighet-admin is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// fastighet-admin is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with fastighet-admin.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/localnerve/fastighet-admin/internal/config"
	"github.com/localnerve/fastighet-admin/internal/database"
	"github.com/localnerve/fastighet-admin/internal/handlers"
	"github.com/localnerve/fastighet-admin/internal/services"
	"github.com/localnerve/fastighet-admin/internal/storage"
	"github.com/localnerve/fastighet-admin/internal/utils"

	_ "github.com/localnerve/fastighet-admin/docs/api" // Swagger docs
)

// @title Fastighet Admin API
// @version 1.0.0
// @description Property, building and unit administration with staff assignments
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/fastighet-admin
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name fa_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		utils.Logger.Fatalf("Failed to load configuration: %v", err)
	}
	utils.InitLogger("fastighet-admin", cfg.LogLevel)

	// Connect to database (app pool)
	appDB, err := database.Connect(cfg)
	if err != nil {
		utils.Logger.Fatalf("Failed to connect to app database: %v", err)
	}
	defer database.Close(appDB)

	// Connect to database (elevated pool, user creation only)
	adminDB, err := database.ConnectAdmin(cfg)
	if err != nil {
		utils.Logger.Fatalf("Failed to connect to admin database: %v", err)
	}
	defer database.Close(adminDB)

	// Run auto-migrations
	if err := database.AutoMigrate(appDB); err != nil {
		utils.Logger.Fatalf("Failed to run migrations: %v", err)
	}

	policy, err := services.DefaultPolicy()
	if err != nil {
		utils.Logger.Fatalf("Failed to load authorization policy: %v", err)
	}
	panels, err := services.DefaultPanels()
	if err != nil {
		utils.Logger.Fatalf("Failed to load panels: %v", err)
	}

	store, err := storage.NewLocalStore(cfg.StorageDir, cfg.StorageBaseURL)
	if err != nil {
		utils.Logger.Fatalf("Failed to prepare storage: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    storage.MaxImageSize + 1<<20,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
		AllowCredentials: !contains(cfg.CORSOrigins, "*"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Confirm",
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("fastighet_admin")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded images
	app.Static(cfg.StorageBaseURL, cfg.StorageDir, fiber.Static{MaxAge: 3600})

	// API routes under /api
	handlers.RegisterRoutes(app, handlers.Deps{
		Config:   cfg,
		DB:       appDB,
		AdminDB:  adminDB,
		Provider: services.NewAuthorizerProvider(cfg),
		Sessions: services.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL),
		Policy:   policy,
		Panels:   panels,
		Store:    store,
	})

	// 404 for the API, login redirect for everything else
	app.Use(handlers.NotFound)

	// Authorizer is initialized on the first request that needs it
	utils.Logger.Info("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		utils.Logger.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	utils.Logger.Infof("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		utils.Logger.Fatalf("Failed to start server: %v", err)
	}

	utils.Logger.Info("Server stopped")
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
