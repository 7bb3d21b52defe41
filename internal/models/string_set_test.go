// string_set_test.go
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

package models

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestNewStringSet(t *testing.T) {
	set := NewStringSet(" bostad ", "", "mark", "bostad")
	if len(set) != 2 || set[0] != "bostad" || set[1] != "mark" {
		t.Errorf("Expected [bostad mark], got %v", set)
	}
	if !set.Contains("mark") || set.Contains("industri") {
		t.Error("Contains mismatch")
	}
}

func TestStringSetValueScan(t *testing.T) {
	v, err := StringSet(nil).Value()
	if err != nil || v != nil {
		t.Errorf("Expected nil value for empty set, got %v (%v)", v, err)
	}

	v, err = NewStringSet("kommersiell", "industri").Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var scanned StringSet
	if err := scanned.Scan(v); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(scanned) != 2 || scanned[1] != "industri" {
		t.Errorf("Unexpected scan result %v", scanned)
	}

	if err := scanned.Scan(nil); err != nil || scanned != nil {
		t.Errorf("Expected nil set after NULL scan, got %v", scanned)
	}
}

func TestIsValidRole(t *testing.T) {
	for _, r := range Roles {
		if !IsValidRole(r) {
			t.Errorf("Expected %s valid", r)
		}
	}
	if IsValidRole("owner") {
		t.Error("Expected owner invalid")
	}
}

func TestPropertyTypesMigrateAndRoundTrip(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := db.AutoMigrate(&Property{}); err != nil {
		t.Fatalf("AutoMigrate(Property) failed: %v", err)
	}

	withTypes := Property{Types: NewStringSet("bostad", "mark")}
	empty := Property{}
	if err := db.Create(&withTypes).Error; err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := db.Create(&empty).Error; err != nil {
		t.Fatalf("Create with empty set failed: %v", err)
	}

	var got Property
	if err := db.First(&got, "id = ?", withTypes.ID).Error; err != nil {
		t.Fatalf("First failed: %v", err)
	}
	if len(got.Types) != 2 || got.Types[0] != "bostad" || got.Types[1] != "mark" {
		t.Errorf("Expected [bostad mark], got %v", got.Types)
	}

	got = Property{}
	if err := db.First(&got, "id = ?", empty.ID).Error; err != nil {
		t.Fatalf("First failed: %v", err)
	}
	if len(got.Types) != 0 {
		t.Errorf("Expected empty set, got %v", got.Types)
	}
}
