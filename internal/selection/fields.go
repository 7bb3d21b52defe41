// fields.go
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

package selection

// Field is the render model of one select
type Field struct {
	Level    Level    `json:"level"`
	Selected string   `json:"selected"`
	Locked   bool     `json:"locked"`
	Disabled bool     `json:"disabled"`
	Options  []Option `json:"options"`
}

// PlaceholderLabel is the neutral label shown for a selected id missing from its list
func PlaceholderLabel(l Level, loading bool) string {
	if loading {
		return "Loading selected " + l.String() + "..."
	}
	return "Selected " + l.String()
}

// Fields renders every level down to Depth. While loading, or when locked, a
// field is disabled. A selected id absent from the filtered list is shown as a
// single placeholder entry so the select never appears empty; the placeholder
// disappears once the list carries the real option.
func (c Context) Fields(options Options, loading bool) []Field {
	levels := c.levels()
	fields := make([]Field, 0, len(levels))

	for _, l := range levels {
		slot := c.Slots[l]
		list := options.Filtered(l, c.parentID(l))

		if slot.ID != "" {
			if _, ok := find(list, slot.ID); !ok {
				placeholder := Option{
					ID:          slot.ID,
					Label:       PlaceholderLabel(l, loading),
					Placeholder: true,
				}
				list = append([]Option{placeholder}, list...)
			}
		}
		if list == nil {
			list = []Option{}
		}

		fields = append(fields, Field{
			Level:    l,
			Selected: slot.ID,
			Locked:   slot.Locked,
			Disabled: loading || slot.Locked,
			Options:  list,
		})
	}

	return fields
}
