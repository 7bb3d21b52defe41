// entities_test.go
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localnerve/fastighet-admin/internal/forms"
	"github.com/localnerve/fastighet-admin/internal/models"
	"github.com/localnerve/fastighet-admin/internal/selection"
	"github.com/localnerve/fastighet-admin/internal/testhelpers"
)

func TestGetPropertyDetail(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.NewSQLiteDB(t)
	fx := testhelpers.Seed(t, db)
	gw := Gateways(db)

	require.NoError(t, gw[selection.LevelProperty].Add(ctx, fx.Properties[0].ID, []string{fx.Users[0].ID}, false))
	require.NoError(t, gw[selection.LevelBuilding].Add(ctx, fx.Buildings[1].ID, []string{fx.Users[1].ID}, false))

	detail, err := GetProperty(ctx, db, fx.Properties[0].ID)
	require.NoError(t, err)

	assert.Equal(t, "Norra Gården", *detail.Name)
	require.Len(t, detail.Staff, 1)
	assert.Equal(t, "Berg", detail.Staff[0].LastName)

	require.Len(t, detail.Buildings, 2)
	assert.Empty(t, detail.Buildings[0].Staff)
	require.Len(t, detail.Buildings[1].Staff, 1)
	assert.Equal(t, "Lund", detail.Buildings[1].Staff[0].LastName)

	_, err = GetProperty(ctx, db, "missing")
	assert.True(t, IsNotFound(err))
}

func TestGetBuildingAndUnitDetail(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.NewSQLiteDB(t)
	fx := testhelpers.Seed(t, db)

	b, err := GetBuilding(ctx, db, fx.Buildings[0].ID)
	require.NoError(t, err)
	require.NotNil(t, b.Property)
	assert.Equal(t, fx.Properties[0].ID, b.Property.ID)
	assert.Len(t, b.Units, 2)
	assert.Empty(t, b.Staff)

	require.NoError(t, Gateways(db)[selection.LevelUnit].Add(ctx, fx.Units[0].ID, []string{fx.Users[2].ID}, false))
	u, err := GetUnit(ctx, db, fx.Units[0].ID)
	require.NoError(t, err)
	require.NotNil(t, u.Building)
	require.NotNil(t, u.Building.Property)
	assert.Equal(t, "Norra Gården", *u.Building.Property.Name)
	require.Len(t, u.Staff, 1)
	assert.Equal(t, "Ek", u.Staff[0].LastName)
	assert.Equal(t, "45.5", u.AreaSqm.Decimal.String())
}

func TestCreateEntitiesContainment(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.NewSQLiteDB(t)
	fx := testhelpers.Seed(t, db)

	b := &models.Building{Name: "Hus D", PropertyID: "missing", Type: "lager"}
	_, ok := forms.AsValidation(CreateBuilding(ctx, db, b))
	assert.True(t, ok)

	b.PropertyID = fx.Properties[1].ID
	require.NoError(t, CreateBuilding(ctx, db, b))
	assert.NotEmpty(t, b.ID)

	// Hus A belongs to Norra Gården, not Södra Parken
	u := &models.Unit{Name: "3001", BuildingID: fx.Buildings[0].ID}
	v, ok := forms.AsValidation(CreateUnit(ctx, db, u, fx.Properties[1].ID))
	require.True(t, ok)
	assert.Equal(t, "buildingId", v.Field)

	require.NoError(t, CreateUnit(ctx, db, u, fx.Properties[0].ID))

	units, err := ListUnits(ctx, db, fx.Buildings[0].ID)
	require.NoError(t, err)
	assert.Len(t, units, 3)

	buildings, err := ListBuildings(ctx, db, fx.Properties[1].ID)
	require.NoError(t, err)
	assert.Len(t, buildings, 2)
}

func TestDeleteUnitRemovesAssignments(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.NewSQLiteDB(t)
	fx := testhelpers.Seed(t, db)
	unit := fx.Units[1].ID

	require.NoError(t, Gateways(db)[selection.LevelUnit].Add(ctx, unit, []string{fx.Users[0].ID}, false))
	require.NoError(t, DeleteUnit(ctx, db, unit))

	var links int64
	require.NoError(t, db.Model(&models.UnitStaff{}).Where("unit_id = ?", unit).Count(&links).Error)
	assert.Zero(t, links)

	assert.True(t, IsNotFound(DeleteUnit(ctx, db, unit)))
}
