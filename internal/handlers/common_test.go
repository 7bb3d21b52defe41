// common_test.go
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

package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localnerve/fastighet-admin/internal/services"
	"github.com/localnerve/fastighet-admin/internal/testhelpers"
	"github.com/localnerve/fastighet-admin/internal/utils"
)

func TestNotFoundMessages(t *testing.T) {
	missing := errors.Wrap(services.ErrNotFound, "building 42")

	app := fiber.New()
	app.Get("/api/assign/:level", func(c *fiber.Ctx) error {
		return respondError(c, missing, subjectLabel(c), "assignForm")
	})
	app.Get("/other", func(c *fiber.Ctx) error {
		return respondError(c, missing, "", "other")
	})

	tests := []struct {
		target  string
		message string
	}{
		{"/api/assign/building", "The building could not be found"},
		{"/api/assign/objekt", "The unit could not be found"},
		{"/api/assign/garage", "The requested record could not be found"},
		{"/other", "The requested record could not be found"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.target, nil), -1)
			require.NoError(t, err)
			testhelpers.AssertStatus(t, resp, fiber.StatusNotFound)

			var body utils.ErrorResponseStruct
			testhelpers.ParseJSON(t, resp, &body)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}
