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
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/localnerve/fastighet-admin/internal/config"
	"github.com/localnerve/fastighet-admin/internal/database"
	"github.com/localnerve/fastighet-admin/internal/services"
	"github.com/localnerve/fastighet-admin/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database (app pool)
	appDB, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(appDB)

	// Storage is checked in place; a missing directory is reported, not created
	var store storage.Store
	if _, err := os.Stat(cfg.StorageDir); err == nil {
		store = &storage.LocalStore{Dir: cfg.StorageDir, BaseURL: cfg.StorageBaseURL}
	}

	result := services.HealthCheck(cfg, appDB, store)
	if store == nil {
		result.Status = "unhealthy"
		result.Storage = "missing"
		result.ErrorMessage = fmt.Sprintf("storage dir %s does not exist", cfg.StorageDir)
	}

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
