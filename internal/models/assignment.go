// assignment.go
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
	"time"
)

// PropertyStaff assigns a staff member to a property
type PropertyStaff struct {
	PropertyID string    `gorm:"type:char(36);primaryKey" json:"propertyId"`
	StaffID    string    `gorm:"type:char(36);primaryKey;index" json:"staffId"`
	AssignedAt time.Time `gorm:"not null" json:"assignedAt"`
	Staff      *User     `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

// BuildingStaff assigns a staff member to a building
type BuildingStaff struct {
	BuildingID string    `gorm:"type:char(36);primaryKey" json:"buildingId"`
	StaffID    string    `gorm:"type:char(36);primaryKey;index" json:"staffId"`
	AssignedAt time.Time `gorm:"not null" json:"assignedAt"`
	Staff      *User     `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

// UnitStaff assigns a staff member to a unit
type UnitStaff struct {
	UnitID     string    `gorm:"type:char(36);primaryKey" json:"unitId"`
	StaffID    string    `gorm:"type:char(36);primaryKey;index" json:"staffId"`
	AssignedAt time.Time `gorm:"not null" json:"assignedAt"`
	Staff      *User     `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

// TableName overrides the table name for PropertyStaff
func (PropertyStaff) TableName() string {
	return "property_staff"
}

// TableName overrides the table name for BuildingStaff
func (BuildingStaff) TableName() string {
	return "building_staff"
}

// TableName overrides the table name for UnitStaff
func (UnitStaff) TableName() string {
	return "unit_staff"
}

// All returns every model for auto-migration, parents first
func All() []interface{} {
	return []interface{}{
		&User{},
		&Property{},
		&Building{},
		&Unit{},
		&PropertyStaff{},
		&BuildingStaff{},
		&UnitStaff{},
	}
}
