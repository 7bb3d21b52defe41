// postgres_test.go
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
	"golang.org/x/sync/errgroup"

	"github.com/localnerve/fastighet-admin/internal/selection"
	"github.com/localnerve/fastighet-admin/internal/testhelpers"
)

// TestWithPostgreSQL runs the stores against a real PostgreSQL container
func TestWithPostgreSQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if !testhelpers.DockerAvailable() {
		t.Skip("Skipping integration test, docker is not available")
	}

	pg := testhelpers.StartPostgres(t)
	db := pg.DB
	fx := testhelpers.Seed(t, db)
	ctx := context.Background()

	t.Run("OptionSource", func(t *testing.T) {
		catalog, err := NewOptionStore(db).LoadAll(ctx)
		require.NoError(t, err)
		assert.Len(t, catalog.Options.Properties, 2)
		assert.Len(t, catalog.Options.Units, 3)
		assert.Equal(t, "Berg", catalog.Staff[0].LastName)
	})

	t.Run("PropertyTypesRoundTrip", func(t *testing.T) {
		detail, err := GetProperty(ctx, db, fx.Properties[1].ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"kommersiell", "mark"}, []string(detail.Types))
	})

	t.Run("ConcurrentMergeAndOverwrite", func(t *testing.T) {
		gw := Gateways(db)[selection.LevelBuilding]
		subject := fx.Buildings[0].ID

		var g errgroup.Group
		for _, u := range fx.Users {
			id := u.ID
			g.Go(func() error { return gw.Add(ctx, subject, []string{id}, false) })
		}
		require.NoError(t, g.Wait())

		list, err := gw.List(ctx, subject)
		require.NoError(t, err)
		assert.Len(t, list, 3)

		require.NoError(t, gw.Add(ctx, subject, []string{fx.Users[1].ID}, true))
		list, err = gw.List(ctx, subject)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, fx.Users[1].ID, list[0].StaffID)
	})

	t.Run("FailedOverwriteKeepsSet", func(t *testing.T) {
		gw := Gateways(db)[selection.LevelProperty]
		subject := fx.Properties[0].ID

		require.NoError(t, gw.Add(ctx, subject, []string{fx.Users[0].ID}, false))
		err := gw.Add(ctx, subject, []string{"00000000-0000-4000-8000-0000000000ff"}, true)
		require.Error(t, err)

		list, err := gw.List(ctx, subject)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, fx.Users[0].ID, list[0].StaffID)
	})

	t.Run("DeleteUserCascadesLinks", func(t *testing.T) {
		require.NoError(t, DeleteUser(ctx, db, fx.Users[1].ID))
		list, err := Gateways(db)[selection.LevelBuilding].List(ctx, fx.Buildings[0].ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
