// options_test.go
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

	"github.com/localnerve/fastighet-admin/internal/models"
	"github.com/localnerve/fastighet-admin/internal/testhelpers"
)

func TestOptionStoreLoadAll(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	fx := testhelpers.Seed(t, db)

	catalog, err := NewOptionStore(db).LoadAll(context.Background())
	require.NoError(t, err)

	require.Len(t, catalog.Options.Properties, 2)
	assert.Equal(t, "Norra Gården", catalog.Options.Properties[0].Label)

	require.Len(t, catalog.Options.Buildings, 3)
	assert.Equal(t, "Hus A", catalog.Options.Buildings[0].Label)
	assert.Equal(t, fx.Properties[0].ID, catalog.Options.Buildings[0].ParentID)

	require.Len(t, catalog.Options.Units, 3)
	assert.Equal(t, fx.Buildings[0].ID, catalog.Options.Units[0].ParentID)

	require.Len(t, catalog.Staff, 3)
	assert.Equal(t, []string{"Berg", "Ek", "Lund"}, []string{
		catalog.Staff[0].LastName, catalog.Staff[1].LastName, catalog.Staff[2].LastName,
	})
}

func TestOptionStoreLabelFallback(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	addr := "Kyrkogatan 3"
	require.NoError(t, db.Create(&models.Property{Address: &addr}).Error)

	catalog, err := NewOptionStore(db).LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog.Options.Properties, 1)
	assert.Equal(t, addr, catalog.Options.Properties[0].Label)
}

func TestOptionStoreFailureReturnsNoCatalog(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	testhelpers.Seed(t, db)
	require.NoError(t, db.Migrator().DropTable(&models.Unit{}))

	catalog, err := NewOptionStore(db).LoadAll(context.Background())
	assert.Error(t, err)
	assert.Nil(t, catalog)
}
