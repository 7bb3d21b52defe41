// selection.go
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

// Package selection holds the cascading property → building → unit selection.
// It is pure: callers load the option lists, then derive the selection from them.
package selection

import (
	"github.com/pkg/errors"
)

var (
	// ErrLocked is returned when a user tries to change a preset level
	ErrLocked = errors.New("selection is locked")
	// ErrUnknownOption is returned when the chosen id is not under the current parent
	ErrUnknownOption = errors.New("option is not available under the current selection")
)

// Option is one selectable entry. ParentID is empty for properties.
type Option struct {
	ID          string `json:"id"`
	ParentID    string `json:"parentId,omitempty"`
	Label       string `json:"label"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// Options carries the three reference lists
type Options struct {
	Properties []Option `json:"properties"`
	Buildings  []Option `json:"buildings"`
	Units      []Option `json:"units"`
}

// For returns the unfiltered list of a level
func (o Options) For(l Level) []Option {
	switch l {
	case LevelProperty:
		return o.Properties
	case LevelBuilding:
		return o.Buildings
	case LevelUnit:
		return o.Units
	}
	return nil
}

// Filtered returns the options of l under parentID. Properties have no parent.
func (o Options) Filtered(l Level, parentID string) []Option {
	if l == LevelProperty {
		return o.Properties
	}
	if parentID == "" {
		return nil
	}
	var out []Option
	for _, opt := range o.For(l) {
		if opt.ParentID == parentID {
			out = append(out, opt)
		}
	}
	return out
}

func (o Options) find(l Level, id string) (Option, bool) {
	return find(o.For(l), id)
}

func find(list []Option, id string) (Option, bool) {
	for _, opt := range list {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// Presets are ids supplied from navigation, one per level
type Presets struct {
	Property string `json:"property,omitempty" query:"property"`
	Building string `json:"building,omitempty" query:"building"`
	Unit     string `json:"unit,omitempty" query:"unit"`
}

// Get returns the preset for l
func (p Presets) Get(l Level) string {
	switch l {
	case LevelProperty:
		return p.Property
	case LevelBuilding:
		return p.Building
	case LevelUnit:
		return p.Unit
	}
	return ""
}

// Slot is the state of one level: unset (empty ID), selected or locked.
// Rejected marks a preset that did not belong to its parent.
type Slot struct {
	ID       string `json:"id"`
	Locked   bool   `json:"locked"`
	Rejected bool   `json:"rejected,omitempty"`
}

// Context is the selection for a form working at Depth; levels below Depth are unused.
type Context struct {
	Depth Level   `json:"depth"`
	Slots [3]Slot `json:"slots"`
}

// New locks every non-empty preset down to depth
func New(depth Level, presets Presets) Context {
	c := Context{Depth: depth}
	for _, l := range c.levels() {
		if id := presets.Get(l); id != "" {
			c.Slots[l] = Slot{ID: id, Locked: true}
		}
	}
	return c
}

func (c Context) levels() []Level {
	if !c.Depth.Valid() {
		return nil
	}
	return Levels[:c.Depth+1]
}

// Selected returns the id at l, empty when unset
func (c Context) Selected(l Level) string {
	if !l.Valid() || l > c.Depth {
		return ""
	}
	return c.Slots[l].ID
}

// Subject returns the id at Depth, the entity assignments are read and written for
func (c Context) Subject() string {
	return c.Selected(c.Depth)
}

func (c Context) parentID(l Level) string {
	if l == LevelProperty {
		return ""
	}
	return c.Slots[l-1].ID
}

// Resolve derives every level from the loaded options, top-down.
// Unlocked levels keep a still-valid selection or take the first option under
// their parent. A locked id missing under its parent is rejected and treated as
// unlocked. An empty parent of a locked, known child is taken from the child and
// locked too.
func (c Context) Resolve(options Options) Context {
	levels := c.levels()

	for i := len(levels) - 1; i > 0; i-- {
		l := levels[i]
		slot, parent := c.Slots[l], &c.Slots[l-1]
		if !slot.Locked || parent.ID != "" {
			continue
		}
		if opt, ok := options.find(l, slot.ID); ok && opt.ParentID != "" {
			*parent = Slot{ID: opt.ParentID, Locked: true}
		}
	}

	for _, l := range levels {
		list := options.Filtered(l, c.parentID(l))
		slot := &c.Slots[l]

		if _, ok := find(list, slot.ID); ok && slot.ID != "" {
			continue
		}
		if slot.Locked {
			*slot = Slot{Rejected: true}
		}
		slot.ID = first(list)
	}

	return c
}

// Choose applies a user choice at l and resets every unlocked descendant to the
// first option under its new parent.
func (c Context) Choose(l Level, id string, options Options) (Context, error) {
	if !l.Valid() || l > c.Depth {
		return c, errors.Wrapf(ErrUnknownLevel, "%s", l)
	}
	if c.Slots[l].Locked {
		return c, errors.Wrapf(ErrLocked, "%s", l)
	}
	if _, ok := find(options.Filtered(l, c.parentID(l)), id); !ok {
		return c, errors.Wrapf(ErrUnknownOption, "%s %q", l, id)
	}

	c.Slots[l] = Slot{ID: id}
	for child := l + 1; child <= c.Depth; child++ {
		if c.Slots[child].Locked {
			continue
		}
		c.Slots[child] = Slot{ID: first(options.Filtered(child, c.parentID(child)))}
	}
	return c, nil
}

func first(list []Option) string {
	if len(list) == 0 {
		return ""
	}
	return list[0].ID
}
