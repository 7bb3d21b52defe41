// authz.go
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

package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
	"github.com/sirupsen/logrus"

	"github.com/localnerve/fastighet-admin/data"
	"github.com/localnerve/fastighet-admin/internal/utils"
)

// Policy answers role → (object, action) questions with casbin
type Policy struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
}

// NewPolicy builds a Policy from a casbin model and CSV policy text
func NewPolicy(modelText, policyText string) (*Policy, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("authz: invalid model: %w", err)
	}

	enf, err := casbin.NewEnforcer(m, stringadapter.NewAdapter(policyText))
	if err != nil {
		return nil, fmt.Errorf("authz: failed to initialize enforcer: %w", err)
	}
	if err := enf.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("authz: failed to load policies: %w", err)
	}

	return &Policy{enforcer: enf}, nil
}

// DefaultPolicy loads the embedded model and policy
func DefaultPolicy() (*Policy, error) {
	return NewPolicy(data.AuthzModel, data.AuthzPolicy)
}

// Allowed reports whether role may perform action on object
func (p *Policy) Allowed(role, object, action string) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ok, err := p.enforcer.Enforce(role, object, action)
	if err != nil {
		return false, fmt.Errorf("authz: enforce failed: %w", err)
	}
	if !ok {
		utils.Logger.WithFields(logrus.Fields{
			"role":   role,
			"object": object,
			"action": action,
		}).Debug("authz denied request")
	}
	return ok, nil
}

// Panel is one dashboard entry, shown when the role may perform Action on Object
type Panel struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Path   string `json:"path"`
	Object string `json:"-"`
	Action string `json:"-"`
}

type panelConfig struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Path   string `json:"path"`
	Object string `json:"object"`
	Action string `json:"action"`
}

// LoadPanels parses a panel list
func LoadPanels(raw []byte) ([]Panel, error) {
	var cfg []panelConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("panels: %w", err)
	}
	panels := make([]Panel, 0, len(cfg))
	for _, c := range cfg {
		panels = append(panels, Panel(c))
	}
	return panels, nil
}

// DefaultPanels loads the embedded panel list
func DefaultPanels() ([]Panel, error) {
	return LoadPanels(data.Panels)
}

// PanelsFor filters panels down to those role may open, keeping their order
func (p *Policy) PanelsFor(role string, panels []Panel) ([]Panel, error) {
	out := make([]Panel, 0, len(panels))
	for _, panel := range panels {
		ok, err := p.Allowed(role, panel.Object, panel.Action)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, panel)
		}
	}
	return out, nil
}
