// catalog.go
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

package forms

import (
	"context"
	"time"

	"github.com/localnerve/fastighet-admin/internal/selection"
)

// Staff is the assignable projection of a user
type Staff struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
}

// Name returns "First Last"
func (s Staff) Name() string {
	return s.FirstName + " " + s.LastName
}

// Catalog is everything a form needs before it can render
type Catalog struct {
	Options selection.Options `json:"options"`
	Staff   []Staff           `json:"staff"`
}

// OptionSource loads the reference lists once per form. A failure yields no catalog.
type OptionSource interface {
	LoadAll(ctx context.Context) (*Catalog, error)
}

// Assignment is a persisted staff link of a subject
type Assignment struct {
	StaffID    string    `json:"staffId"`
	AssignedAt time.Time `json:"assignedAt"`
}

// Gateway reads and writes the assignment links of one hierarchy level.
// Add with overwrite replaces the subject's set; without it, existing pairs are kept
// and re-adding a pair is a no-op.
type Gateway interface {
	List(ctx context.Context, subjectID string) ([]Assignment, error)
	Add(ctx context.Context, subjectID string, staffIDs []string, overwrite bool) error
	Remove(ctx context.Context, subjectID, staffID string) error
}
