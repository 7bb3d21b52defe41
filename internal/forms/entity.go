// entity.go
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

package forms

import (
	"strconv"
	"strings"

	"github.com/localnerve/fastighet-admin/internal/models"
	"github.com/localnerve/fastighet-admin/internal/types"
	"github.com/shopspring/decimal"
)

// Type vocabularies, stored as-is
var (
	PropertyTypes = []string{"bostad", "kommersiell", "industri", "mark", "annan"}
	BuildingTypes = []string{"bostad", "kontor", "lager", "garage", "annan"}
	UnitTypes     = []string{"lägenhet", "förråd", "soprum", "källare", "lokal", "kontor", "gård", "annan"}
)

const (
	DefaultBuildingType = "bostad"
	DefaultUnitType     = "lägenhet"
)

// PropertyInput is the raw property form. Every field is optional.
type PropertyInput struct {
	Name      string           `json:"name" form:"name"`
	Address   string           `json:"address" form:"address"`
	District  string           `json:"district" form:"district"`
	Types     []string         `json:"types" form:"types"`
	YearBuilt types.FlexString `json:"yearBuilt" form:"yearBuilt"`
}

// BuildingInput is the raw building form
type BuildingInput struct {
	PropertyID string           `json:"propertyId" form:"propertyId"`
	Name       string           `json:"name" form:"name"`
	Type       string           `json:"type" form:"type"`
	Floors     types.FlexString `json:"floors" form:"floors"`
	AreaSqm    types.FlexString `json:"areaSqm" form:"areaSqm"`
	YearBuilt  types.FlexString `json:"yearBuilt" form:"yearBuilt"`
}

// UnitInput is the raw unit form. PropertyID scopes the building choice.
type UnitInput struct {
	PropertyID  string           `json:"propertyId" form:"propertyId"`
	BuildingID  string           `json:"buildingId" form:"buildingId"`
	Name        string           `json:"name" form:"name"`
	Type        string           `json:"type" form:"type"`
	Floor       string           `json:"floor" form:"floor"`
	AreaSqm     types.FlexString `json:"areaSqm" form:"areaSqm"`
	Description string           `json:"description" form:"description"`
}

// ParseProperty validates the property form
func ParseProperty(in PropertyInput) (*models.Property, error) {
	set := models.NewStringSet(in.Types...)
	for _, t := range set {
		if !contains(PropertyTypes, t) {
			return nil, Invalid("types", "Invalid property type: "+t+".")
		}
	}

	year, err := ParseInt("yearBuilt", "Year built", in.YearBuilt.String())
	if err != nil {
		return nil, err
	}

	return &models.Property{
		Name:      optional(in.Name),
		Address:   optional(in.Address),
		District:  optional(in.District),
		Types:     set,
		YearBuilt: year,
	}, nil
}

// ParseBuilding validates the building form. Type defaults to bostad.
func ParseBuilding(in BuildingInput) (*models.Building, error) {
	if strings.TrimSpace(in.PropertyID) == "" {
		return nil, Invalid("propertyId", "Select a property.")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, Invalid("name", "Name is required.")
	}

	kind := strings.TrimSpace(in.Type)
	if kind == "" {
		kind = DefaultBuildingType
	}
	if !contains(BuildingTypes, kind) {
		return nil, Invalid("type", "Invalid building type.")
	}

	floors, err := ParseInt("floors", "Floors", in.Floors.String())
	if err != nil {
		return nil, err
	}
	area, err := ParseDecimal("areaSqm", "Area", in.AreaSqm.String())
	if err != nil {
		return nil, err
	}
	year, err := ParseInt("yearBuilt", "Year built", in.YearBuilt.String())
	if err != nil {
		return nil, err
	}

	return &models.Building{
		Name:       name,
		PropertyID: strings.TrimSpace(in.PropertyID),
		Type:       kind,
		Floors:     floors,
		AreaSqm:    area,
		YearBuilt:  year,
	}, nil
}

// ParseUnit validates the unit form. Type defaults to lägenhet.
func ParseUnit(in UnitInput) (*models.Unit, error) {
	if strings.TrimSpace(in.PropertyID) == "" {
		return nil, Invalid("propertyId", "Select a property.")
	}
	if strings.TrimSpace(in.BuildingID) == "" {
		return nil, Invalid("buildingId", "Select a building.")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, Invalid("name", "Name is required.")
	}

	kind := strings.TrimSpace(in.Type)
	if kind == "" {
		kind = DefaultUnitType
	}
	if !contains(UnitTypes, kind) {
		return nil, Invalid("type", "Invalid unit type.")
	}

	area, err := ParseDecimal("areaSqm", "Area", in.AreaSqm.String())
	if err != nil {
		return nil, err
	}

	return &models.Unit{
		Name:        name,
		Type:        &kind,
		Floor:       optional(in.Floor),
		AreaSqm:     area,
		Description: optional(in.Description),
		BuildingID:  strings.TrimSpace(in.BuildingID),
	}, nil
}

// ParseInt parses an optional integer field; blank yields nil
func ParseInt(field, label, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, Invalid(field, label+" must be an integer.")
	}
	return &n, nil
}

// ParseDecimal parses an optional decimal field written with a dot or a comma
func ParseDecimal(field, label, raw string) (decimal.NullDecimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
	if err != nil {
		return decimal.NullDecimal{}, Invalid(field, label+" must be a number (use a dot or a comma).")
	}
	return decimal.NewNullDecimal(d), nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
