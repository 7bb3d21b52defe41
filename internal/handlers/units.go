// units.go
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
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/localnerve/fastighet-admin/internal/forms"
	"github.com/localnerve/fastighet-admin/internal/services"
	"github.com/localnerve/fastighet-admin/internal/utils"
)

// UnitHandler serves the unit endpoints
type UnitHandler struct {
	DB *gorm.DB
}

// ListUnits handles GET /api/units
// @Summary List units
// @Tags Units
// @Produce json
// @Param buildingId query string false "Only units of this building"
// @Success 200 {array} models.Unit
// @Security CookieAuth
// @Router /units [get]
func (h *UnitHandler) ListUnits(c *fiber.Ctx) error {
	list, err := services.ListUnits(c.UserContext(), h.DB, c.Query("buildingId"))
	if err != nil {
		return respondError(c, err, "", "listUnits")
	}
	return utils.SuccessResponse(c, list, fiber.StatusOK)
}

// GetUnit handles GET /api/units/:id
// @Summary Unit detail
// @Tags Units
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} services.UnitDetail
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /units/{id} [get]
func (h *UnitHandler) GetUnit(c *fiber.Ctx) error {
	detail, err := services.GetUnit(c.UserContext(), h.DB, c.Params("id"))
	if err != nil {
		return respondError(c, err, "The unit", "getUnit")
	}
	return utils.SuccessResponse(c, detail, fiber.StatusOK)
}

// CreateUnit handles POST /api/units
// @Summary Create a unit
// @Tags Units
// @Accept json
// @Produce json
// @Param body body forms.UnitInput true "Unit"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /units [post]
func (h *UnitHandler) CreateUnit(c *fiber.Ctx) error {
	var in forms.UnitInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, "", "createUnit")
	}

	unit, err := forms.ParseUnit(in)
	if err != nil {
		return respondError(c, err, "", "createUnit")
	}
	if err := services.CreateUnit(c.UserContext(), h.DB, unit, in.PropertyID); err != nil {
		return respondError(c, err, "", "createUnit")
	}

	return utils.MutationSuccessResponse(c, fiber.StatusCreated, "Unit created", unit)
}

// DeleteUnit handles DELETE /api/units/:id
// @Summary Delete a unit
// @Description Deletes the unit and its staff assignments. Requires confirm=true.
// @Tags Units
// @Produce json
// @Param id path string true "Unit ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 428 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /units/{id} [delete]
func (h *UnitHandler) DeleteUnit(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := services.DeleteUnit(c.UserContext(), h.DB, id); err != nil {
		return respondError(c, err, "The unit", "deleteUnit")
	}

	utils.Logger.Infof("Deleted unit %s", id)
	return utils.MutationSuccessResponse(c, fiber.StatusOK, "Unit deleted", nil)
}
