// assign.go
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
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/localnerve/fastighet-admin/internal/forms"
	"github.com/localnerve/fastighet-admin/internal/selection"
	"github.com/localnerve/fastighet-admin/internal/types"
	"github.com/localnerve/fastighet-admin/internal/utils"
)

// AssignHandler drives the staff assignment form of each hierarchy level.
// Every request rebuilds the form from the navigation presets in the query and
// replays the user's choices on top of them.
type AssignHandler struct {
	Source   forms.OptionSource
	Gateways map[selection.Level]forms.Gateway
}

type assignRequest struct {
	Property  string                 `json:"property"`
	Building  string                 `json:"building"`
	Unit      string                 `json:"unit"`
	StaffIDs  types.FlexList[string] `json:"staffIds"`
	Overwrite bool                   `json:"overwrite"`
}

func (r assignRequest) choices() selection.Presets {
	return selection.Presets{
		Property: strings.TrimSpace(r.Property),
		Building: strings.TrimSpace(r.Building),
		Unit:     strings.TrimSpace(r.Unit),
	}
}

func choicesFromQuery(c *fiber.Ctx) selection.Presets {
	return selection.Presets{
		Property: strings.TrimSpace(c.Query("choose.property")),
		Building: strings.TrimSpace(c.Query("choose.building")),
		Unit:     strings.TrimSpace(c.Query("choose.unit")),
	}
}

// open loads the form for the :level route parameter and applies choices
func (h *AssignHandler) open(c *fiber.Ctx, choices selection.Presets) (*forms.Form, error) {
	level, err := levelParam(c)
	if err != nil {
		return nil, err
	}
	gateway, ok := h.Gateways[level]
	if !ok {
		return nil, forms.Invalid("level", "Unknown level \""+level.String()+"\".")
	}

	f := forms.New(level, presetsFromQuery(c), h.Source, gateway)
	if err := f.Load(c.UserContext()); err != nil {
		return f, err
	}
	if err := applyChoices(c.UserContext(), f, level, choices); err != nil {
		return f, err
	}
	return f, nil
}

// applyChoices replays user choices top-down; a choice equal to the current
// selection is a no-op.
func applyChoices(ctx context.Context, f *forms.Form, depth selection.Level, choices selection.Presets) error {
	for _, l := range selection.Levels {
		if l > depth {
			break
		}
		id := choices.Get(l)
		if id == "" || f.Selection().Selected(l) == id {
			continue
		}
		if err := f.Choose(ctx, l, id); err != nil {
			switch {
			case errors.Is(err, selection.ErrLocked):
				return forms.Invalid(l.String(), "The "+l.String()+" is fixed by the page and cannot be changed.")
			case errors.Is(err, selection.ErrUnknownOption):
				return forms.Invalid(l.String(), "The selected "+l.String()+" is not available here.")
			}
			return err
		}
	}
	return nil
}

// rejectedPreset refuses to write when a preset was dropped and the user made no
// replacement choice, so a mutation never lands on a fallback subject.
func rejectedPreset(f *forms.Form, choices selection.Presets) error {
	sel := f.Selection()
	for _, l := range selection.Levels {
		if l > sel.Depth {
			break
		}
		if sel.Slots[l].Rejected && choices.Get(l) == "" {
			return forms.Invalid(l.String(), "The preselected "+l.String()+" does not belong to the selected parent.")
		}
	}
	return nil
}

// GetForm handles GET /api/assign/:level
// @Summary Assignment form state
// @Description Options, selection and current staff of the subject. Presets lock a level; choose.* are user choices.
// @Tags Assignments
// @Produce json
// @Param level path string true "property, building or unit"
// @Param property query string false "Preset property"
// @Param building query string false "Preset building"
// @Param unit query string false "Preset unit"
// @Param choose.property query string false "Chosen property"
// @Param choose.building query string false "Chosen building"
// @Param choose.unit query string false "Chosen unit"
// @Success 200 {object} forms.View
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /assign/{level} [get]
func (h *AssignHandler) GetForm(c *fiber.Ctx) error {
	f, err := h.open(c, choicesFromQuery(c))
	if err != nil {
		return respondError(c, err, subjectLabel(c), "assignForm")
	}
	return c.Status(fiber.StatusOK).JSON(f.Snapshot())
}

// Assign handles POST /api/assign/:level
// @Summary Assign staff
// @Description Adds staffIds to the selected subject, or replaces its staff when overwrite is set
// @Tags Assignments
// @Accept json
// @Produce json
// @Param level path string true "property, building or unit"
// @Param body body assignRequest true "Selection and staff"
// @Success 200 {object} forms.View
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /assign/{level} [post]
func (h *AssignHandler) Assign(c *fiber.Ctx) error {
	var req assignRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, subjectLabel(c), "assign")
	}

	f, err := h.open(c, req.choices())
	if err != nil {
		return respondError(c, err, subjectLabel(c), "assign")
	}
	if err := rejectedPreset(f, req.choices()); err != nil {
		return respondError(c, err, subjectLabel(c), "assign")
	}

	f.SetPending(req.StaffIDs.Slice())
	if err := f.Add(c.UserContext(), req.Overwrite); err != nil {
		return respondError(c, err, "The "+f.Selection().Depth.String(), "assign")
	}

	view := f.Snapshot()
	utils.Logger.Infof("%s (%s %s)", view.Message, view.Level, view.Subject)
	return c.Status(fiber.StatusOK).JSON(view)
}

// Unassign handles DELETE /api/assign/:level/:staffId
// @Summary Remove one staff member
// @Tags Assignments
// @Produce json
// @Param level path string true "property, building or unit"
// @Param staffId path string true "Staff user ID"
// @Success 200 {object} forms.View
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /assign/{level}/{staffId} [delete]
func (h *AssignHandler) Unassign(c *fiber.Ctx) error {
	choices := choicesFromQuery(c)
	f, err := h.open(c, choices)
	if err != nil {
		return respondError(c, err, subjectLabel(c), "unassign")
	}
	if err := rejectedPreset(f, choices); err != nil {
		return respondError(c, err, subjectLabel(c), "unassign")
	}

	if err := f.Remove(c.UserContext(), c.Params("staffId")); err != nil {
		return respondError(c, err, subjectLabel(c), "unassign")
	}
	return c.Status(fiber.StatusOK).JSON(f.Snapshot())
}
