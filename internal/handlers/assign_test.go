// assign_test.go
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

package handlers_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localnerve/fastighet-admin/internal/forms"
	"github.com/localnerve/fastighet-admin/internal/models"
	"github.com/localnerve/fastighet-admin/internal/selection"
	"github.com/localnerve/fastighet-admin/internal/testhelpers"
	"github.com/localnerve/fastighet-admin/internal/utils"
)

func TestAssignFormFlow(t *testing.T) {
	env := newTestEnv(t)
	p0 := env.fx.Properties[0].ID
	b0, b1 := env.fx.Buildings[0].ID, env.fx.Buildings[1].ID
	anna, erik, maja := env.fx.Users[0].ID, env.fx.Users[1].ID, env.fx.Users[2].ID

	resp := env.do(t, httptest.NewRequest("GET", "/api/assign/building?property="+p0, nil), env.admin())
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)

	var view forms.View
	testhelpers.ParseJSON(t, resp, &view)
	assert.Equal(t, selection.LevelBuilding, view.Level)
	assert.False(t, view.Loading)
	require.Len(t, view.Fields, 2)
	assert.True(t, view.Fields[0].Locked)
	assert.True(t, view.Fields[0].Disabled)
	assert.False(t, view.Fields[1].Disabled)
	assert.Len(t, view.Fields[1].Options, 2)
	assert.Equal(t, b0, view.Subject)
	assert.Len(t, view.Staff, 3)
	assert.Empty(t, view.Assignments)

	resp = env.do(t, testhelpers.JSONRequest(t, "POST", "/api/assign/building?property="+p0, map[string]interface{}{
		"building": b1, "staffIds": []string{erik, maja, erik},
	}), env.admin())
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	testhelpers.ParseJSON(t, resp, &view)
	assert.Equal(t, b1, view.Subject)
	assert.Equal(t, "Staff assigned to the building.", view.Message)
	assert.Empty(t, view.Pending)
	assert.Len(t, view.Assignments, 2)

	resp = env.do(t, testhelpers.JSONRequest(t, "POST", "/api/assign/building?property="+p0, map[string]interface{}{
		"building": b1, "staffIds": anna, "overwrite": true,
	}), env.admin())
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	testhelpers.ParseJSON(t, resp, &view)
	assert.Equal(t, "Staff replaced for the building.", view.Message)
	require.Len(t, view.Assignments, 1)
	assert.Equal(t, anna, view.Assignments[0].StaffID)
	assert.Equal(t, "Anna Berg", view.Assignments[0].Name)

	resp = env.do(t, httptest.NewRequest("DELETE", "/api/assign/building/"+anna+"?property="+p0+"&choose.building="+b1, nil), env.admin())
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
	testhelpers.ParseJSON(t, resp, &view)
	assert.Equal(t, "Staff removed from the building.", view.Message)
	assert.Empty(t, view.Assignments)

	var links int64
	require.NoError(t, env.db.Model(&models.BuildingStaff{}).Count(&links).Error)
	assert.Zero(t, links)
}

func TestAssignValidation(t *testing.T) {
	env := newTestEnv(t)
	p0, p1 := env.fx.Properties[0].ID, env.fx.Properties[1].ID
	b0 := env.fx.Buildings[0].ID

	cases := []struct {
		path  string
		body  map[string]interface{}
		field string
	}{
		{"/api/assign/building?property=" + p0, map[string]interface{}{}, "staffIds"},
		{"/api/assign/building?property=" + p0 + "&building=" + b0, map[string]interface{}{"property": p1, "staffIds": "x"}, "property"},
		{"/api/assign/building?property=" + p0, map[string]interface{}{"building": env.fx.Buildings[2].ID, "staffIds": "x"}, "building"},
		{"/api/assign/garage", map[string]interface{}{"staffIds": "x"}, "level"},
	}
	for _, tc := range cases {
		resp := env.do(t, testhelpers.JSONRequest(t, "POST", tc.path, tc.body), env.admin())
		testhelpers.AssertStatus(t, resp, fiber.StatusBadRequest)

		var body utils.ErrorResponseStruct
		testhelpers.ParseJSON(t, resp, &body)
		assert.Equal(t, tc.field, body.Field, tc.path)
	}

	resp := env.do(t, testhelpers.JSONRequest(t, "POST", "/api/assign/building?property="+p0, map[string]interface{}{
		"staffIds": "00000000-0000-4000-8000-0000000000ff",
	}), env.admin())
	testhelpers.AssertStatus(t, resp, fiber.StatusBadRequest)
}

func TestAssignRejectedPreset(t *testing.T) {
	env := newTestEnv(t)
	p1 := env.fx.Properties[1].ID
	b0, b2 := env.fx.Buildings[0].ID, env.fx.Buildings[2].ID
	path := "/api/assign/building?property=" + p1 + "&building=" + b0

	resp := env.do(t, httptest.NewRequest("GET", path, nil), env.admin())
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)

	var view forms.View
	testhelpers.ParseJSON(t, resp, &view)
	assert.Equal(t, b2, view.Subject)
	assert.False(t, view.Fields[1].Locked)

	resp = env.do(t, testhelpers.JSONRequest(t, "POST", path, map[string]interface{}{
		"staffIds": env.fx.Users[0].ID,
	}), env.admin())
	testhelpers.AssertStatus(t, resp, fiber.StatusBadRequest)

	var body utils.ErrorResponseStruct
	testhelpers.ParseJSON(t, resp, &body)
	assert.Equal(t, "building", body.Field)

	resp = env.do(t, testhelpers.JSONRequest(t, "POST", path, map[string]interface{}{
		"building": b2, "staffIds": env.fx.Users[0].ID,
	}), env.admin())
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)
}

func TestAssignUnitPresetLocksParents(t *testing.T) {
	env := newTestEnv(t)
	u2 := env.fx.Units[2].ID

	resp := env.do(t, httptest.NewRequest("GET", "/api/assign/objekt?unit="+u2, nil), env.admin())
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)

	var view forms.View
	testhelpers.ParseJSON(t, resp, &view)
	require.Len(t, view.Fields, 3)
	for _, f := range view.Fields {
		assert.True(t, f.Locked, f.Level.String())
	}
	assert.Equal(t, env.fx.Properties[1].ID, view.Fields[0].Selected)
	assert.Equal(t, env.fx.Buildings[2].ID, view.Fields[1].Selected)
	assert.Equal(t, u2, view.Subject)

	resp = env.do(t, httptest.NewRequest("GET", "/api/assign/unit?unit="+u2, nil), env.user())
	testhelpers.AssertStatus(t, resp, fiber.StatusForbidden)
}

func TestAssignmentGateway(t *testing.T) {
	env := newTestEnv(t)
	u0 := env.fx.Units[0].ID
	anna, erik := env.fx.Users[0].ID, env.fx.Users[1].ID

	resp := env.do(t, testhelpers.JSONRequest(t, "POST", "/api/assignments/unit/missing", map[string]interface{}{
		"staffIds": []string{anna},
	}), env.admin())
	testhelpers.AssertStatus(t, resp, fiber.StatusNotFound)

	var missing utils.ErrorResponseStruct
	testhelpers.ParseJSON(t, resp, &missing)
	assert.Equal(t, "The unit could not be found", missing.Message)

	resp = env.do(t, testhelpers.JSONRequest(t, "POST", "/api/assignments/unit/"+u0, map[string]interface{}{
		"staffIds": []string{anna, erik},
	}), env.admin())
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)

	var added mutationBody[[]forms.Assignment]
	testhelpers.ParseJSON(t, resp, &added)
	assert.Equal(t, "Staff assigned to the unit.", added.Message)
	assert.Len(t, added.Data, 2)

	resp = env.do(t, httptest.NewRequest("DELETE", "/api/assignments/unit/"+u0+"/"+erik, nil), env.admin())
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)

	resp = env.do(t, httptest.NewRequest("GET", "/api/assignments/unit/"+u0, nil), env.admin())
	testhelpers.AssertStatus(t, resp, fiber.StatusOK)

	var list []forms.Assignment
	testhelpers.ParseJSON(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, anna, list[0].StaffID)
}
