// entities.go
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

package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/localnerve/fastighet-admin/internal/forms"
	"github.com/localnerve/fastighet-admin/internal/models"
)

// StaffLink is a staff member together with the time of assignment
type StaffLink struct {
	forms.Staff
	AssignedAt time.Time `json:"assignedAt"`
}

// BuildingWithStaff is a building row with its assigned staff
type BuildingWithStaff struct {
	models.Building
	Staff []StaffLink `json:"staff"`
}

// PropertyDetail is a property with its staff and buildings
type PropertyDetail struct {
	models.Property
	Staff     []StaffLink         `json:"staff"`
	Buildings []BuildingWithStaff `json:"buildings"`
}

// BuildingDetail is a building with its property, staff and units
type BuildingDetail struct {
	models.Building
	Staff []StaffLink `json:"staff"`
}

// UnitDetail is a unit with its building, the building's property, and staff
type UnitDetail struct {
	models.Unit
	Staff []StaffLink `json:"staff"`
}

// CreateProperty inserts a property
func CreateProperty(ctx context.Context, db *gorm.DB, p *models.Property) error {
	return db.WithContext(ctx).Create(p).Error
}

// CreateBuilding inserts a building after checking its property exists
func CreateBuilding(ctx context.Context, db *gorm.DB, b *models.Building) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Select("id").Where("id = ?", b.PropertyID).Take(&models.Property{}).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return forms.Invalid("propertyId", "The selected property does not exist.")
			}
			return err
		}
		return tx.Create(b).Error
	})
}

// CreateUnit inserts a unit after checking its building belongs to propertyID
func CreateUnit(ctx context.Context, db *gorm.DB, u *models.Unit, propertyID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var building models.Building
		if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Select("id", "property_id").Where("id = ?", u.BuildingID).Take(&building).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return forms.Invalid("buildingId", "The selected building does not exist.")
			}
			return err
		}
		if building.PropertyID != propertyID {
			return forms.Invalid("buildingId", "The building does not belong to the selected property.")
		}
		return tx.Create(u).Error
	})
}

// ListProperties returns every property by name
func ListProperties(ctx context.Context, db *gorm.DB) ([]models.Property, error) {
	var out []models.Property
	err := db.WithContext(ctx).Order("name").Find(&out).Error
	return out, err
}

// ListBuildings returns buildings by name with their property; propertyID filters when set
func ListBuildings(ctx context.Context, db *gorm.DB, propertyID string) ([]models.Building, error) {
	var out []models.Building
	q := db.WithContext(ctx).Preload("Property").Order("name")
	if propertyID != "" {
		q = q.Where("property_id = ?", propertyID)
	}
	err := q.Find(&out).Error
	return out, err
}

// ListUnits returns units by name with building and property; buildingID filters when set
func ListUnits(ctx context.Context, db *gorm.DB, buildingID string) ([]models.Unit, error) {
	var out []models.Unit
	q := db.WithContext(ctx).Preload("Building.Property").Order("name")
	if buildingID != "" {
		q = q.Where("building_id = ?", buildingID)
	}
	err := q.Find(&out).Error
	return out, err
}

// GetProperty loads a property with its staff and every building with its staff
func GetProperty(ctx context.Context, db *gorm.DB, id string) (*PropertyDetail, error) {
	var p models.Property
	err := db.WithContext(ctx).
		Preload("Buildings", func(tx *gorm.DB) *gorm.DB { return tx.Order("name") }).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, notFound(err, "property "+id)
	}

	detail := &PropertyDetail{Buildings: make([]BuildingWithStaff, 0, len(p.Buildings))}
	if detail.Staff, err = staffOf(ctx, db, &models.PropertyStaff{}, "property_id", id); err != nil {
		return nil, err
	}

	buildingIDs := make([]string, 0, len(p.Buildings))
	for _, b := range p.Buildings {
		buildingIDs = append(buildingIDs, b.ID)
	}
	var links []models.BuildingStaff
	if len(buildingIDs) > 0 {
		if err := db.WithContext(ctx).Preload("Staff").
			Where("building_id IN ?", buildingIDs).
			Order("assigned_at").
			Find(&links).Error; err != nil {
			return nil, err
		}
	}
	byBuilding := make(map[string][]StaffLink)
	for _, l := range links {
		if l.Staff != nil {
			byBuilding[l.BuildingID] = append(byBuilding[l.BuildingID], StaffLink{Staff: StaffOf(*l.Staff), AssignedAt: l.AssignedAt})
		}
	}
	for _, b := range p.Buildings {
		staff := byBuilding[b.ID]
		if staff == nil {
			staff = []StaffLink{}
		}
		detail.Buildings = append(detail.Buildings, BuildingWithStaff{Building: b, Staff: staff})
	}

	p.Buildings = nil
	detail.Property = p
	return detail, nil
}

// GetBuilding loads a building with its property, units and staff
func GetBuilding(ctx context.Context, db *gorm.DB, id string) (*BuildingDetail, error) {
	var b models.Building
	err := db.WithContext(ctx).
		Preload("Property").
		Preload("Units", func(tx *gorm.DB) *gorm.DB { return tx.Order("name") }).
		Where("id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, notFound(err, "building "+id)
	}

	staff, err := staffOf(ctx, db, &models.BuildingStaff{}, "building_id", id)
	if err != nil {
		return nil, err
	}
	return &BuildingDetail{Building: b, Staff: staff}, nil
}

// GetUnit loads a unit with its building, the building's property and staff
func GetUnit(ctx context.Context, db *gorm.DB, id string) (*UnitDetail, error) {
	var u models.Unit
	err := db.WithContext(ctx).
		Preload("Building.Property").
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, notFound(err, "unit "+id)
	}

	staff, err := staffOf(ctx, db, &models.UnitStaff{}, "unit_id", id)
	if err != nil {
		return nil, err
	}
	return &UnitDetail{Unit: u, Staff: staff}, nil
}

// DeleteUnit removes a unit and its assignments
func DeleteUnit(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("unit_id = ?", id).Delete(&models.UnitStaff{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Unit{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.Wrapf(ErrNotFound, "unit %s", id)
		}
		return nil
	})
}

// staffOf reads the staff linked to one subject through link's table
func staffOf(ctx context.Context, db *gorm.DB, link interface{}, column, id string) ([]StaffLink, error) {
	var rows []struct {
		models.User
		AssignedAt time.Time
	}
	err := db.WithContext(ctx).
		Model(link).
		Select("users.*, assigned_at").
		Joins("JOIN users ON users.id = staff_id").
		Where(column+" = ?", id).
		Order("assigned_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]StaffLink, 0, len(rows))
	for _, r := range rows {
		out = append(out, StaffLink{Staff: StaffOf(r.User), AssignedAt: r.AssignedAt})
	}
	return out, nil
}
