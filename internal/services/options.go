// options.go
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

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/hints"

	"github.com/localnerve/fastighet-admin/internal/forms"
	"github.com/localnerve/fastighet-admin/internal/models"
	"github.com/localnerve/fastighet-admin/internal/selection"
)

// OptionStore loads the assignment form catalog from the database
type OptionStore struct {
	DB *gorm.DB
}

// NewOptionStore creates an OptionStore
func NewOptionStore(db *gorm.DB) *OptionStore {
	return &OptionStore{DB: db}
}

// LoadAll runs the four list queries concurrently. Any failure discards the whole catalog.
func (s *OptionStore) LoadAll(ctx context.Context) (*forms.Catalog, error) {
	var (
		properties []models.Property
		buildings  []models.Building
		units      []models.Unit
		staff      []models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	query := func() *gorm.DB {
		return s.DB.WithContext(gctx).Clauses(hints.CommentBefore("select", "option-source"))
	}

	g.Go(func() error {
		return query().Select("id", "name", "address").Order("name").Find(&properties).Error
	})
	g.Go(func() error {
		return query().Select("id", "name", "property_id").Order("name").Find(&buildings).Error
	})
	g.Go(func() error {
		return query().Select("id", "name", "building_id").Order("name").Find(&units).Error
	})
	g.Go(func() error {
		return query().Select("id", "first_name", "last_name", "email").
			Order("last_name").Order("first_name").Find(&staff).Error
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	catalog := &forms.Catalog{
		Options: selection.Options{
			Properties: make([]selection.Option, 0, len(properties)),
			Buildings:  make([]selection.Option, 0, len(buildings)),
			Units:      make([]selection.Option, 0, len(units)),
		},
		Staff: make([]forms.Staff, 0, len(staff)),
	}
	for _, p := range properties {
		catalog.Options.Properties = append(catalog.Options.Properties, selection.Option{
			ID:    p.ID,
			Label: propertyLabel(p),
		})
	}
	for _, b := range buildings {
		catalog.Options.Buildings = append(catalog.Options.Buildings, selection.Option{
			ID:       b.ID,
			ParentID: b.PropertyID,
			Label:    b.Name,
		})
	}
	for _, u := range units {
		catalog.Options.Units = append(catalog.Options.Units, selection.Option{
			ID:       u.ID,
			ParentID: u.BuildingID,
			Label:    u.Name,
		})
	}
	for _, u := range staff {
		catalog.Staff = append(catalog.Staff, StaffOf(u))
	}

	return catalog, nil
}

// StaffOf projects a user row to its staff view
func StaffOf(u models.User) forms.Staff {
	return forms.Staff{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

func propertyLabel(p models.Property) string {
	switch {
	case p.Name != nil && *p.Name != "":
		return *p.Name
	case p.Address != nil && *p.Address != "":
		return *p.Address
	}
	return p.ID
}
