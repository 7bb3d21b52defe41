// common.go
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
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/localnerve/fastighet-admin/internal/forms"
	"github.com/localnerve/fastighet-admin/internal/selection"
	"github.com/localnerve/fastighet-admin/internal/services"
	"github.com/localnerve/fastighet-admin/internal/types"
	"github.com/localnerve/fastighet-admin/internal/utils"
)

// respondError maps a service error onto the error envelope. what names the
// missing row for 404s; errorType tags everything else.
func respondError(c *fiber.Ctx, err error, what, errorType string) error {
	if v, ok := forms.AsValidation(err); ok {
		return utils.ValidationErrorResponse(c, v.Field, v.Message)
	}
	if services.IsNotFound(err) {
		if what == "" {
			what = "The requested record"
		}
		return utils.NotFoundResponse(c, what+" could not be found")
	}
	if errors.Is(err, forms.ErrLoading) {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusServiceUnavailable, errorType)
	}

	utils.Logger.WithError(err).Errorf("%s failed", errorType)
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
}

// parseBody binds a JSON, urlencoded or multipart body into out
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return forms.Invalid("body", "Invalid request body.")
	}
	return nil
}

// subjectLabel names the :level subject for not found messages
func subjectLabel(c *fiber.Ctx) string {
	level, err := selection.ParseLevel(c.Params("level"))
	if err != nil {
		return ""
	}
	return "The " + level.String()
}

// levelParam reads the :level route parameter
func levelParam(c *fiber.Ctx) (selection.Level, error) {
	level, err := selection.ParseLevel(c.Params("level"))
	if err != nil {
		return 0, forms.Invalid("level", "Unknown level \""+c.Params("level")+"\".")
	}
	return level, nil
}

// presetsFromQuery reads the navigation presets ?property=&building=&unit=
func presetsFromQuery(c *fiber.Ctx) selection.Presets {
	return selection.Presets{
		Property: strings.TrimSpace(c.Query("property")),
		Building: strings.TrimSpace(c.Query("building")),
		Unit:     strings.TrimSpace(c.Query("unit")),
	}
}

// ErrorHandler renders errors returned from handlers and middleware
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var custom *types.CustomError
	var fe *fiber.Error
	switch {
	case errors.As(err, &custom):
		code, message, errorType = custom.Code, custom.Message, custom.Type
	case errors.As(err, &fe):
		code, message = fe.Code, fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		utils.Logger.WithError(err).Errorf("Request %s %s failed", c.Method(), c.OriginalURL())
	}

	return utils.ErrorResponse(c, message, code, errorType)
}

// NotFound answers unmatched routes: API paths get a 404, everything else is sent to the login page
func NotFound(c *fiber.Ctx) error {
	if c.Path() == "/api" || strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	}
	return c.Redirect("/login", fiber.StatusFound)
}
