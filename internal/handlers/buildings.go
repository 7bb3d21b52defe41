// buildings.go
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

// BuildingHandler serves the building endpoints
type BuildingHandler struct {
	DB *gorm.DB
}

// ListBuildings handles GET /api/buildings
// @Summary List buildings
// @Tags Buildings
// @Produce json
// @Param propertyId query string false "Only buildings of this property"
// @Success 200 {array} models.Building
// @Security CookieAuth
// @Router /buildings [get]
func (h *BuildingHandler) ListBuildings(c *fiber.Ctx) error {
	list, err := services.ListBuildings(c.UserContext(), h.DB, c.Query("propertyId"))
	if err != nil {
		return respondError(c, err, "", "listBuildings")
	}
	return utils.SuccessResponse(c, list, fiber.StatusOK)
}

// GetBuilding handles GET /api/buildings/:id
// @Summary Building detail
// @Tags Buildings
// @Produce json
// @Param id path string true "Building ID"
// @Success 200 {object} services.BuildingDetail
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /buildings/{id} [get]
func (h *BuildingHandler) GetBuilding(c *fiber.Ctx) error {
	detail, err := services.GetBuilding(c.UserContext(), h.DB, c.Params("id"))
	if err != nil {
		return respondError(c, err, "The building", "getBuilding")
	}
	return utils.SuccessResponse(c, detail, fiber.StatusOK)
}

// CreateBuilding handles POST /api/buildings
// @Summary Create a building
// @Tags Buildings
// @Accept json
// @Produce json
// @Param body body forms.BuildingInput true "Building"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /buildings [post]
func (h *BuildingHandler) CreateBuilding(c *fiber.Ctx) error {
	var in forms.BuildingInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, "", "createBuilding")
	}

	building, err := forms.ParseBuilding(in)
	if err != nil {
		return respondError(c, err, "", "createBuilding")
	}
	if err := services.CreateBuilding(c.UserContext(), h.DB, building); err != nil {
		return respondError(c, err, "", "createBuilding")
	}

	return utils.MutationSuccessResponse(c, fiber.StatusCreated, "Building created", building)
}
