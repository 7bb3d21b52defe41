// hierarchy.go
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

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Property is a fastighet, the top of the property → building → unit hierarchy
type Property struct {
	ID        string     `gorm:"type:char(36);primaryKey" json:"id"`
	Name      *string    `gorm:"size:255;index" json:"name"`
	Address   *string    `gorm:"size:255" json:"address"`
	District  *string    `gorm:"size:255" json:"district"`
	Types     StringSet  `json:"types"`
	YearBuilt *int       `json:"yearBuilt"`
	ImageURL  *string    `gorm:"size:1024" json:"imageUrl"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Buildings []Building `gorm:"foreignKey:PropertyID" json:"buildings,omitempty"`
}

// Building is a byggnad; it always belongs to one property
type Building struct {
	ID         string              `gorm:"type:char(36);primaryKey" json:"id"`
	Name       string              `gorm:"size:255;not null;index" json:"name"`
	PropertyID string              `gorm:"type:char(36);not null;index" json:"propertyId"`
	Property   *Property           `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Type       string              `gorm:"size:32;not null;default:bostad" json:"type"`
	Floors     *int                `json:"floors"`
	AreaSqm    decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"areaSqm"`
	YearBuilt  *int                `json:"yearBuilt"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
	Units      []Unit              `gorm:"foreignKey:BuildingID" json:"units,omitempty"`
}

// Unit is a byggnadsobjekt (apartment, storage room, office...) inside a building
type Unit struct {
	ID          string              `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string              `gorm:"size:255;not null;index" json:"name"`
	Type        *string             `gorm:"size:32" json:"type"`
	Floor       *string             `gorm:"size:64" json:"floor"`
	AreaSqm     decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"areaSqm"`
	Description *string             `gorm:"type:text" json:"description"`
	BuildingID  string              `gorm:"type:char(36);not null;index" json:"buildingId"`
	Building    *Building           `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// BeforeCreate assigns a uuid when the caller did not
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate assigns a uuid when the caller did not
func (b *Building) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate assigns a uuid when the caller did not
func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Property
func (Property) TableName() string {
	return "properties"
}

// TableName overrides the table name for Building
func (Building) TableName() string {
	return "buildings"
}

// TableName overrides the table name for Unit
func (Unit) TableName() string {
	return "units"
}
