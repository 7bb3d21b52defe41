// form.go
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
	"sync"
	"time"

	"github.com/localnerve/fastighet-admin/internal/selection"
	"github.com/localnerve/fastighet-admin/internal/types"
)

// Form is the staff assignment form for one hierarchy level. It is safe for
// concurrent use; store calls run without the lock held.
type Form struct {
	mu      sync.Mutex
	level   selection.Level
	source  OptionSource
	gateway Gateway

	sel     selection.Context
	catalog *Catalog
	loading bool

	pending        []string
	assignments    []Assignment
	assignmentsFor string
	message        string
	err            string

	// seq identifies the latest assignment fetch
	seq uint64
}

// fetchTag identifies an assignment fetch by the subject it was issued for
type fetchTag struct {
	subject string
	seq     uint64
}

// AssignmentView is an assignment joined with its staff member
type AssignmentView struct {
	StaffID    string    `json:"staffId"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	AssignedAt time.Time `json:"assignedAt"`
}

// View is a consistent snapshot of the form
type View struct {
	Level       selection.Level   `json:"level"`
	Loading     bool              `json:"loading"`
	Fields      []selection.Field `json:"fields"`
	Subject     string            `json:"subject"`
	Staff       []Staff           `json:"staff"`
	Pending     []string          `json:"pending"`
	Assignments []AssignmentView  `json:"assignments"`
	Message     string            `json:"message,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// New creates a form at level; non-empty presets are locked
func New(level selection.Level, presets selection.Presets, source OptionSource, gateway Gateway) *Form {
	return &Form{
		level:   level,
		source:  source,
		gateway: gateway,
		sel:     selection.New(level, presets),
		loading: true,
	}
}

// Load fetches the catalog, resolves the selection and loads the subject's
// assignments. On failure the error is kept and the form stays in loading state.
func (f *Form) Load(ctx context.Context) error {
	f.mu.Lock()
	f.loading = true
	f.mu.Unlock()

	catalog, err := f.source.LoadAll(ctx)

	f.mu.Lock()
	if err != nil {
		f.err = err.Error()
		f.mu.Unlock()
		return err
	}
	f.catalog = catalog
	f.loading = false
	f.err = ""
	f.sel = f.sel.Resolve(catalog.Options)
	f.mu.Unlock()

	return f.Refresh(ctx)
}

// Choose applies a user selection. Changing the subject clears the pending
// selection, the displayed assignments and messages, then reloads.
func (f *Form) Choose(ctx context.Context, level selection.Level, id string) error {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return ErrLoading
	}

	previous := f.sel.Subject()
	next, err := f.sel.Choose(level, id, f.catalog.Options)
	if err != nil {
		f.mu.Unlock()
		return err
	}
	f.sel = next

	changed := next.Subject() != previous
	if changed {
		f.pending = nil
		f.assignments = nil
		f.assignmentsFor = ""
		f.message = ""
		f.err = ""
	}
	f.mu.Unlock()

	if !changed {
		return nil
	}
	return f.Refresh(ctx)
}

// SetPending replaces the pending staff multi-selection
func (f *Form) SetPending(staffIDs []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = types.UniqueStrings(staffIDs)
}

// Refresh reloads the assignments of the current subject. A result is dropped
// when the subject changed or a newer fetch was issued while it was in flight.
func (f *Form) Refresh(ctx context.Context) error {
	f.mu.Lock()
	f.seq++
	tag := fetchTag{subject: f.sel.Subject(), seq: f.seq}
	f.mu.Unlock()

	var (
		list []Assignment
		err  error
	)
	if tag.subject != "" {
		list, err = f.gateway.List(ctx, tag.subject)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.current(tag) {
		return nil
	}
	if err != nil {
		f.err = err.Error()
		return err
	}
	f.assignments = list
	f.assignmentsFor = tag.subject
	return nil
}

func (f *Form) current(tag fetchTag) bool {
	return tag.seq == f.seq && tag.subject == f.sel.Subject()
}

// Add sends the pending staff for the subject, replacing the existing set when
// overwrite is true. On failure the pending selection and the displayed set
// are left as they were.
func (f *Form) Add(ctx context.Context, overwrite bool) error {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return ErrLoading
	}
	subject := f.sel.Subject()
	pending := append([]string(nil), f.pending...)

	var invalid error
	switch {
	case subject == "":
		invalid = Invalid(f.level.String(), "Select a "+f.level.String()+".")
	case len(pending) == 0:
		invalid = Invalid("staffIds", "Select at least one staff member.")
	}
	if invalid != nil {
		f.message = ""
		f.err = invalid.Error()
		f.mu.Unlock()
		return invalid
	}
	f.mu.Unlock()

	err := f.gateway.Add(ctx, subject, pending, overwrite)

	f.mu.Lock()
	if err != nil {
		f.message = ""
		f.err = err.Error()
		f.mu.Unlock()
		return err
	}
	if f.sel.Subject() == subject {
		f.pending = nil
		f.err = ""
		if overwrite {
			f.message = "Staff replaced for the " + f.level.String() + "."
		} else {
			f.message = "Staff assigned to the " + f.level.String() + "."
		}
	}
	f.mu.Unlock()

	return f.Refresh(ctx)
}

// Remove deletes one staff link of the subject and drops it from the displayed
// set without a reload.
func (f *Form) Remove(ctx context.Context, staffID string) error {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return ErrLoading
	}
	subject := f.sel.Subject()
	if subject == "" || staffID == "" {
		invalid := Invalid("staffId", "Select a "+f.level.String()+" and a staff member.")
		f.err = invalid.Error()
		f.mu.Unlock()
		return invalid
	}
	f.mu.Unlock()

	err := f.gateway.Remove(ctx, subject, staffID)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.message = ""
		f.err = err.Error()
		return err
	}
	if f.assignmentsFor == subject {
		kept := f.assignments[:0:0]
		for _, a := range f.assignments {
			if a.StaffID != staffID {
				kept = append(kept, a)
			}
		}
		f.assignments = kept
		f.message = "Staff removed from the " + f.level.String() + "."
		f.err = ""
	}
	return nil
}

// Selection returns the current selection context
func (f *Form) Selection() selection.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sel
}

// Snapshot renders the form state
func (f *Form) Snapshot() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	var options selection.Options
	var staff []Staff
	if f.catalog != nil {
		options = f.catalog.Options
		staff = f.catalog.Staff
	}

	byID := make(map[string]Staff, len(staff))
	for _, s := range staff {
		byID[s.ID] = s
	}

	view := View{
		Level:       f.level,
		Loading:     f.loading,
		Fields:      f.sel.Fields(options, f.loading),
		Subject:     f.sel.Subject(),
		Staff:       append([]Staff{}, staff...),
		Pending:     append([]string{}, f.pending...),
		Assignments: []AssignmentView{},
		Message:     f.message,
		Error:       f.err,
	}

	if f.assignmentsFor == view.Subject {
		for _, a := range f.assignments {
			av := AssignmentView{StaffID: a.StaffID, AssignedAt: a.AssignedAt}
			if s, ok := byID[a.StaffID]; ok {
				av.Name = s.Name()
				av.Email = s.Email
			}
			view.Assignments = append(view.Assignments, av)
		}
	}

	return view
}
