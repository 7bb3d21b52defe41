// string_set.go
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
	"database/sql/driver"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringSet is an unordered set of strings stored as a JSON array.
type StringSet []string

// NewStringSet trims, drops empties and removes duplicates, keeping first-seen order
func NewStringSet(values ...string) StringSet {
	seen := make(map[string]struct{}, len(values))
	set := make(StringSet, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		set = append(set, v)
	}
	return set
}

// Contains reports membership
func (s StringSet) Contains(value string) bool {
	for _, v := range s {
		if v == value {
			return true
		}
	}
	return false
}

// Value stores the set through datatypes.JSONSlice. An empty set is stored as NULL.
func (s StringSet) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return datatypes.NewJSONSlice([]string(s)).Value()
}

// Scan reads a JSON array column
func (s *StringSet) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var slice datatypes.JSONSlice[string]
	if err := slice.Scan(value); err != nil {
		return err
	}
	*s = StringSet(slice)
	return nil
}

// GormDataType is the general data type used in schema parsing
func (StringSet) GormDataType() string {
	return "json"
}

// GormDBDataType picks a column type per driver; MSSQL has no json type.
func (StringSet) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql", "sqlite":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	}
	return "TEXT"
}
