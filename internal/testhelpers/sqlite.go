// sqlite.go
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

// Package testhelpers provides databases and fixtures for tests and the
// testcontainers command.
package testhelpers

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/localnerve/fastighet-admin/internal/database"
	"github.com/localnerve/fastighet-admin/internal/models"
)

// NewSQLiteDB opens a migrated in-memory database. One connection keeps every
// query on the same memory database.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// Fixture is a small property → building → unit tree plus three users
type Fixture struct {
	Properties []models.Property
	Buildings  []models.Building
	Units      []models.Unit
	Users      []models.User
}

func strPtr(s string) *string {
	return &s
}

// Seed inserts the fixture:
//
//	Norra Gården: Hus A (1001, 1002), Hus B
//	Södra Parken: Hus C (2001)
//
// Users, sorted by last name: Anna Berg (admin), Maja Ek (superadmin), Erik Lund (user).
func Seed(t *testing.T, db *gorm.DB) *Fixture {
	t.Helper()

	fx := &Fixture{
		Properties: []models.Property{
			{Name: strPtr("Norra Gården"), Address: strPtr("Storgatan 1"), Types: models.NewStringSet("bostad")},
			{Name: strPtr("Södra Parken"), District: strPtr("Söder"), Types: models.NewStringSet("kommersiell", "mark")},
		},
		Users: []models.User{
			{ID: "00000000-0000-4000-8000-000000000001", FirstName: "Anna", LastName: "Berg", Email: "anna@example.com", Role: models.RoleAdmin},
			{ID: "00000000-0000-4000-8000-000000000002", FirstName: "Erik", LastName: "Lund", Email: "erik@example.com", Role: models.RoleUser},
			{ID: "00000000-0000-4000-8000-000000000003", FirstName: "Maja", LastName: "Ek", Email: "maja@example.com", Role: models.RoleSuperadmin},
		},
	}

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("Failed to seed: %v", err)
		}
	}

	must(db.Create(&fx.Users).Error)
	must(db.Create(&fx.Properties).Error)

	fx.Buildings = []models.Building{
		{Name: "Hus A", PropertyID: fx.Properties[0].ID, Type: "bostad"},
		{Name: "Hus B", PropertyID: fx.Properties[0].ID, Type: "garage"},
		{Name: "Hus C", PropertyID: fx.Properties[1].ID, Type: "kontor"},
	}
	must(db.Create(&fx.Buildings).Error)

	area := decimal.NewNullDecimal(decimal.RequireFromString("45.5"))
	fx.Units = []models.Unit{
		{Name: "1001", BuildingID: fx.Buildings[0].ID, Type: strPtr("lägenhet"), AreaSqm: area},
		{Name: "1002", BuildingID: fx.Buildings[0].ID, Type: strPtr("förråd")},
		{Name: "2001", BuildingID: fx.Buildings[2].ID, Type: strPtr("lokal")},
	}
	must(db.Create(&fx.Units).Error)

	return fx
}
