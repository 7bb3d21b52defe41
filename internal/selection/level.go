// level.go
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

package selection

import (
	"strings"

	"github.com/pkg/errors"
)

// Level is one tier of the property → building → unit hierarchy
type Level int

const (
	LevelProperty Level = iota
	LevelBuilding
	LevelUnit
)

// Levels lists every level top-down
var Levels = []Level{LevelProperty, LevelBuilding, LevelUnit}

// ErrUnknownLevel is returned for a level name or value outside the hierarchy
var ErrUnknownLevel = errors.New("unknown hierarchy level")

var levelNames = map[string]Level{
	"property":       LevelProperty,
	"properties":     LevelProperty,
	"fastighet":      LevelProperty,
	"fastigheter":    LevelProperty,
	"building":       LevelBuilding,
	"buildings":      LevelBuilding,
	"byggnad":        LevelBuilding,
	"byggnader":      LevelBuilding,
	"unit":           LevelUnit,
	"units":          LevelUnit,
	"objekt":         LevelUnit,
	"byggnadsobjekt": LevelUnit,
}

// ParseLevel accepts the English names and the Swedish domain names
func ParseLevel(name string) (Level, error) {
	if l, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return l, nil
	}
	return 0, errors.Wrapf(ErrUnknownLevel, "%q", name)
}

// Valid reports whether l is inside the hierarchy
func (l Level) Valid() bool {
	return l >= LevelProperty && l <= LevelUnit
}

func (l Level) String() string {
	switch l {
	case LevelProperty:
		return "property"
	case LevelBuilding:
		return "building"
	case LevelUnit:
		return "unit"
	}
	return "unknown"
}

// MarshalText renders the level name in JSON and query strings
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, ErrUnknownLevel
	}
	return []byte(l.String()), nil
}

// UnmarshalText parses a level name
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
