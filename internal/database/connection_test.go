// connection_test.go
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

package database

import (
	"testing"

	"github.com/localnerve/fastighet-admin/internal/config"
	"github.com/localnerve/fastighet-admin/internal/models"
	"gorm.io/gorm/logger"
)

func TestDialectorSelection(t *testing.T) {
	cases := map[string]string{
		"mysql":       "mysql",
		"mariadb":     "mysql",
		"postgres":    "postgres",
		"sqlite":      "sqlite",
		"sqlite-pure": "sqlite",
		"sqlserver":   "sqlserver",
	}
	for dbType, want := range cases {
		cfg := &config.Config{DBType: dbType, DBHost: "localhost", DBPort: "1", DBDatabase: "fastighet"}
		d, err := Dialector(cfg, "app", "pw")
		if err != nil {
			t.Fatalf("%s: unexpected error %v", dbType, err)
		}
		if d.Name() != want {
			t.Errorf("%s: expected dialect %s, got %s", dbType, want, d.Name())
		}
	}

	if _, err := Dialector(&config.Config{DBType: "oracle"}, "", ""); err == nil {
		t.Error("Expected error for unsupported type")
	}
}

func TestParseLogLevel(t *testing.T) {
	if parseLogLevel("silent") != logger.Silent {
		t.Error("silent")
	}
	if parseLogLevel("ERROR") != logger.Error {
		t.Error("error")
	}
	if parseLogLevel("debug") != logger.Info {
		t.Error("debug")
	}
	if parseLogLevel("") != logger.Warn {
		t.Error("default")
	}
}

func TestConnectPureSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		DBType:               "sqlite-pure",
		DBDatabase:           "file::memory:?cache=shared",
		DBAppConnectionLimit: 1,
		DBLogLevel:           "silent",
	}

	db, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer Close(db)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	for _, table := range []string{"users", "properties", "buildings", "units", "property_staff", "building_staff", "unit_staff"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("Expected table %s", table)
		}
	}

	name := "Storgården"
	prop := models.Property{Name: &name, Types: models.NewStringSet("bostad", "bostad", "mark")}
	if err := db.Create(&prop).Error; err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if prop.ID == "" {
		t.Fatal("Expected generated id")
	}

	var loaded models.Property
	if err := db.First(&loaded, "id = ?", prop.ID).Error; err != nil {
		t.Fatalf("First failed: %v", err)
	}
	if len(loaded.Types) != 2 || !loaded.Types.Contains("mark") {
		t.Errorf("Expected types [bostad mark], got %v", loaded.Types)
	}
}
