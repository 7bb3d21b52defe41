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

// Command adminshim serves only the create-user endpoint with the elevated
// database credentials. Run it on a private network next to the API server.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/localnerve/fastighet-admin/internal/config"
	"github.com/localnerve/fastighet-admin/internal/database"
	"github.com/localnerve/fastighet-admin/internal/handlers"
	"github.com/localnerve/fastighet-admin/internal/services"
	"github.com/localnerve/fastighet-admin/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Logger.Fatalf("Failed to load configuration: %v", err)
	}
	utils.InitLogger("fastighet-adminshim", cfg.LogLevel)

	adminDB, err := database.ConnectAdmin(cfg)
	if err != nil {
		utils.Logger.Fatalf("Failed to connect to admin database: %v", err)
	}
	defer database.Close(adminDB)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(recover.New())
	app.Use(logger.New())

	handlers.RegisterShim(app, adminDB, services.NewAuthorizerProvider(cfg))
	app.Use(handlers.NotFound)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		_ = app.Shutdown()
	}()

	utils.Logger.Infof("Admin shim listening on port %s", cfg.ShimPort)
	if err := app.Listen(":" + cfg.ShimPort); err != nil {
		utils.Logger.Fatalf("Failed to start admin shim: %v", err)
	}
}
