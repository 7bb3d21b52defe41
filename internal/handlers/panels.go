// panels.go
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

	"github.com/localnerve/fastighet-admin/internal/middleware"
	"github.com/localnerve/fastighet-admin/internal/services"
)

// PanelHandler lists the dashboard panels of the signed-in role
type PanelHandler struct {
	Policy *services.Policy
	Panels []services.Panel
}

// ListPanels handles GET /api/panels
// @Summary Dashboard panels
// @Description Panels the current role may open, in display order
// @Tags Panels
// @Produce json
// @Success 200 {array} services.Panel
// @Security CookieAuth
// @Router /panels [get]
func (h *PanelHandler) ListPanels(c *fiber.Ctx) error {
	session, _ := middleware.CurrentSession(c)
	panels, err := h.Policy.PanelsFor(session.Role, h.Panels)
	if err != nil {
		return respondError(c, err, "", "panels")
	}
	return c.Status(fiber.StatusOK).JSON(panels)
}
