// assignments.go
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

	"github.com/localnerve/fastighet-admin/internal/forms"
	"github.com/localnerve/fastighet-admin/internal/selection"
	"github.com/localnerve/fastighet-admin/internal/types"
	"github.com/localnerve/fastighet-admin/internal/utils"
)

// AssignmentHandler exposes the assignment gateways without the form around them
type AssignmentHandler struct {
	Gateways map[selection.Level]forms.Gateway
}

type addAssignmentsRequest struct {
	StaffIDs  types.FlexList[string] `json:"staffIds"`
	Overwrite bool                   `json:"overwrite"`
}

func (h *AssignmentHandler) gateway(c *fiber.Ctx) (selection.Level, forms.Gateway, error) {
	level, err := levelParam(c)
	if err != nil {
		return level, nil, err
	}
	gateway, ok := h.Gateways[level]
	if !ok {
		return level, nil, forms.Invalid("level", "Unknown level \""+level.String()+"\".")
	}
	return level, gateway, nil
}

// ListAssignments handles GET /api/assignments/:level/:subjectId
// @Summary List the staff links of a subject
// @Tags Assignments
// @Produce json
// @Param level path string true "property, building or unit"
// @Param subjectId path string true "Property, building or unit ID"
// @Success 200 {array} forms.Assignment
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /assignments/{level}/{subjectId} [get]
func (h *AssignmentHandler) ListAssignments(c *fiber.Ctx) error {
	_, gateway, err := h.gateway(c)
	if err != nil {
		return respondError(c, err, subjectLabel(c), "listAssignments")
	}

	list, err := gateway.List(c.UserContext(), c.Params("subjectId"))
	if err != nil {
		return respondError(c, err, subjectLabel(c), "listAssignments")
	}
	return c.Status(fiber.StatusOK).JSON(list)
}

// AddAssignments handles POST /api/assignments/:level/:subjectId
// @Summary Link staff to a subject
// @Tags Assignments
// @Accept json
// @Produce json
// @Param level path string true "property, building or unit"
// @Param subjectId path string true "Property, building or unit ID"
// @Param body body addAssignmentsRequest true "Staff and mode"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /assignments/{level}/{subjectId} [post]
func (h *AssignmentHandler) AddAssignments(c *fiber.Ctx) error {
	level, gateway, err := h.gateway(c)
	if err != nil {
		return respondError(c, err, subjectLabel(c), "addAssignments")
	}

	var req addAssignmentsRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, subjectLabel(c), "addAssignments")
	}

	subject := c.Params("subjectId")
	if err := gateway.Add(c.UserContext(), subject, req.StaffIDs.Slice(), req.Overwrite); err != nil {
		return respondError(c, err, "The "+level.String(), "addAssignments")
	}

	list, err := gateway.List(c.UserContext(), subject)
	if err != nil {
		return respondError(c, err, subjectLabel(c), "addAssignments")
	}

	message := "Staff assigned to the " + level.String() + "."
	if req.Overwrite {
		message = "Staff replaced for the " + level.String() + "."
	}
	return utils.MutationSuccessResponse(c, fiber.StatusOK, message, list)
}

// RemoveAssignment handles DELETE /api/assignments/:level/:subjectId/:staffId
// @Summary Unlink one staff member
// @Tags Assignments
// @Produce json
// @Param level path string true "property, building or unit"
// @Param subjectId path string true "Property, building or unit ID"
// @Param staffId path string true "Staff user ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /assignments/{level}/{subjectId}/{staffId} [delete]
func (h *AssignmentHandler) RemoveAssignment(c *fiber.Ctx) error {
	level, gateway, err := h.gateway(c)
	if err != nil {
		return respondError(c, err, subjectLabel(c), "removeAssignment")
	}

	if err := gateway.Remove(c.UserContext(), c.Params("subjectId"), c.Params("staffId")); err != nil {
		return respondError(c, err, subjectLabel(c), "removeAssignment")
	}
	return utils.MutationSuccessResponse(c, fiber.StatusOK, "Staff removed from the "+level.String()+".", nil)
}
