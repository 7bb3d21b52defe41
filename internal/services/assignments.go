// assignments.go
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
	"gorm.io/hints"

	"github.com/localnerve/fastighet-admin/internal/forms"
	"github.com/localnerve/fastighet-admin/internal/models"
	"github.com/localnerve/fastighet-admin/internal/selection"
	"github.com/localnerve/fastighet-admin/internal/types"
)

// linkTable describes the assignment table of one hierarchy level
type linkTable struct {
	column  string
	subject func() interface{}
	link    func() interface{}
	rows    func(subjectID string, staffIDs []string, at time.Time) interface{}
}

var linkTables = map[selection.Level]linkTable{
	selection.LevelProperty: {
		column:  "property_id",
		subject: func() interface{} { return &models.Property{} },
		link:    func() interface{} { return &models.PropertyStaff{} },
		rows: func(subjectID string, staffIDs []string, at time.Time) interface{} {
			rows := make([]models.PropertyStaff, 0, len(staffIDs))
			for _, id := range staffIDs {
				rows = append(rows, models.PropertyStaff{PropertyID: subjectID, StaffID: id, AssignedAt: at})
			}
			return &rows
		},
	},
	selection.LevelBuilding: {
		column:  "building_id",
		subject: func() interface{} { return &models.Building{} },
		link:    func() interface{} { return &models.BuildingStaff{} },
		rows: func(subjectID string, staffIDs []string, at time.Time) interface{} {
			rows := make([]models.BuildingStaff, 0, len(staffIDs))
			for _, id := range staffIDs {
				rows = append(rows, models.BuildingStaff{BuildingID: subjectID, StaffID: id, AssignedAt: at})
			}
			return &rows
		},
	},
	selection.LevelUnit: {
		column:  "unit_id",
		subject: func() interface{} { return &models.Unit{} },
		link:    func() interface{} { return &models.UnitStaff{} },
		rows: func(subjectID string, staffIDs []string, at time.Time) interface{} {
			rows := make([]models.UnitStaff, 0, len(staffIDs))
			for _, id := range staffIDs {
				rows = append(rows, models.UnitStaff{UnitID: subjectID, StaffID: id, AssignedAt: at})
			}
			return &rows
		},
	},
}

// AssignmentStore is the assignment gateway of one hierarchy level
type AssignmentStore struct {
	DB    *gorm.DB
	Level selection.Level
	table linkTable
	now   func() time.Time
}

// NewAssignmentStore creates the gateway for level
func NewAssignmentStore(db *gorm.DB, level selection.Level) (*AssignmentStore, error) {
	table, ok := linkTables[level]
	if !ok {
		return nil, errors.Wrapf(selection.ErrUnknownLevel, "%d", level)
	}
	return &AssignmentStore{DB: db, Level: level, table: table, now: time.Now}, nil
}

func (s *AssignmentStore) scope(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).Clauses(hints.CommentBefore("select", "assignments-"+s.Level.String()))
}

// List returns the links of subjectID, oldest first. An empty subject makes no query.
func (s *AssignmentStore) List(ctx context.Context, subjectID string) ([]forms.Assignment, error) {
	if subjectID == "" {
		return []forms.Assignment{}, nil
	}

	var rows []forms.Assignment
	err := s.scope(ctx, s.DB).
		Model(s.table.link()).
		Select("staff_id", "assigned_at").
		Where(s.table.column+" = ?", subjectID).
		Order("assigned_at").Order("staff_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []forms.Assignment{}
	}
	return rows, nil
}

// Add links staffIDs to subjectID. With overwrite the existing links are deleted
// first; both steps share one transaction so a failed insert keeps the old set.
// Without overwrite, pairs already present are left untouched.
func (s *AssignmentStore) Add(ctx context.Context, subjectID string, staffIDs []string, overwrite bool) error {
	if subjectID == "" {
		return forms.Invalid(s.Level.String(), "Select a "+s.Level.String()+".")
	}
	staffIDs = types.UniqueStrings(staffIDs)
	if len(staffIDs) == 0 {
		return forms.Invalid("staffIds", "Select at least one staff member.")
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", subjectID).
			Take(s.table.subject()).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrapf(ErrNotFound, "%s %s", s.Level, subjectID)
			}
			return err
		}

		var known int64
		if err := tx.Model(&models.User{}).Where("id IN ?", staffIDs).Count(&known).Error; err != nil {
			return err
		}
		if known != int64(len(staffIDs)) {
			return forms.Invalid("staffIds", "One or more staff members do not exist.")
		}

		if overwrite {
			if err := tx.Where(s.table.column+" = ?", subjectID).Delete(s.table.link()).Error; err != nil {
				return err
			}
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: s.table.column}, {Name: "staff_id"}},
			DoNothing: true,
		}).Create(s.table.rows(subjectID, staffIDs, s.now().UTC())).Error
	})
}

// Remove deletes one link. Removing a missing pair is not an error.
func (s *AssignmentStore) Remove(ctx context.Context, subjectID, staffID string) error {
	if subjectID == "" || staffID == "" {
		return forms.Invalid("staffId", "Select a "+s.Level.String()+" and a staff member.")
	}
	return s.DB.WithContext(ctx).
		Where(s.table.column+" = ? AND staff_id = ?", subjectID, staffID).
		Delete(s.table.link()).Error
}

var _ forms.Gateway = (*AssignmentStore)(nil)

// Gateways returns one AssignmentStore per hierarchy level
func Gateways(db *gorm.DB) map[selection.Level]forms.Gateway {
	out := make(map[selection.Level]forms.Gateway, len(selection.Levels))
	for _, l := range selection.Levels {
		store, _ := NewAssignmentStore(db, l)
		out[l] = store
	}
	return out
}
