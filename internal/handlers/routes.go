// routes.go
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

	"github.com/localnerve/fastighet-admin/internal/config"
	"github.com/localnerve/fastighet-admin/internal/middleware"
	"github.com/localnerve/fastighet-admin/internal/services"
	"github.com/localnerve/fastighet-admin/internal/storage"
)

// Deps are the collaborators the API routes are built from
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Provider services.AuthProvider
	Sessions *services.SessionManager
	Policy   *services.Policy
	Panels   []services.Panel
	Store    storage.Store
	// AdminDB is the elevated pool used for user creation; DB when nil
	AdminDB *gorm.DB
}

// RegisterRoutes mounts the API under /api and the legacy /create-user route
func RegisterRoutes(app *fiber.App, d Deps) {
	auth := &middleware.Auth{Sessions: d.Sessions, Provider: d.Provider, DB: d.DB, Policy: d.Policy}

	authHandler := &AuthHandler{DB: d.DB, Provider: d.Provider, Sessions: d.Sessions}
	if d.Config != nil {
		authHandler.SecureCookie = d.Config.SecureCookies
	}
	healthHandler := &HealthHandler{Config: d.Config, DB: d.DB, Store: d.Store}
	panelHandler := &PanelHandler{Policy: d.Policy, Panels: d.Panels}
	userHandler := &UserHandler{DB: d.DB, Provider: d.Provider}
	propertyHandler := &PropertyHandler{DB: d.DB, Store: d.Store}
	buildingHandler := &BuildingHandler{DB: d.DB}
	unitHandler := &UnitHandler{DB: d.DB}
	gateways := services.Gateways(d.DB)
	assignHandler := &AssignHandler{Source: services.NewOptionStore(d.DB), Gateways: gateways}
	assignmentHandler := &AssignmentHandler{Gateways: gateways}

	api := app.Group("/api")

	// Public routes
	if d.Config != nil {
		api.Get("/health", healthHandler.Health)
	}
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)
	api.Post("/auth/forgot-password", authHandler.ForgotPassword)
	api.Post("/auth/reset-password", authHandler.ResetPassword)
	RegisterShim(app, d.adminDB(), d.Provider, auth.Require("users", "write"))

	// Signed-in routes
	api.Get("/auth/me", auth.RequireSession(), authHandler.Me)
	api.Put("/auth/me", auth.Require("profile", "write"), authHandler.UpdateMe)
	api.Get("/panels", auth.Require("panels", "read"), panelHandler.ListPanels)

	api.Get("/users", auth.Require("users", "read"), userHandler.ListUsers)
	api.Get("/users/:id", auth.Require("users", "read"), userHandler.GetUser)
	api.Post("/users", auth.Require("users", "write"), userHandler.CreateUser)
	api.Put("/users/:id", auth.Require("users", "write"), userHandler.UpdateUser)
	api.Delete("/users/:id", auth.Require("users", "delete"), middleware.RequireConfirmation(), userHandler.DeleteUser)

	api.Get("/properties", auth.Require("properties", "read"), propertyHandler.ListProperties)
	api.Get("/properties/:id", auth.Require("properties", "read"), propertyHandler.GetProperty)
	api.Post("/properties", auth.Require("properties", "write"), propertyHandler.CreateProperty)

	api.Get("/buildings", auth.Require("buildings", "read"), buildingHandler.ListBuildings)
	api.Get("/buildings/:id", auth.Require("buildings", "read"), buildingHandler.GetBuilding)
	api.Post("/buildings", auth.Require("buildings", "write"), buildingHandler.CreateBuilding)

	api.Get("/units", auth.Require("units", "read"), unitHandler.ListUnits)
	api.Get("/units/:id", auth.Require("units", "read"), unitHandler.GetUnit)
	api.Post("/units", auth.Require("units", "write"), unitHandler.CreateUnit)
	api.Delete("/units/:id", auth.Require("units", "delete"), middleware.RequireConfirmation(), unitHandler.DeleteUnit)

	api.Get("/assign/:level", auth.Require("assignments", "read"), assignHandler.GetForm)
	api.Post("/assign/:level", auth.Require("assignments", "write"), assignHandler.Assign)
	api.Delete("/assign/:level/:staffId", auth.Require("assignments", "write"), assignHandler.Unassign)

	api.Get("/assignments/:level/:subjectId", auth.Require("assignments", "read"), assignmentHandler.ListAssignments)
	api.Post("/assignments/:level/:subjectId", auth.Require("assignments", "write"), assignmentHandler.AddAssignments)
	api.Delete("/assignments/:level/:subjectId/:staffId", auth.Require("assignments", "write"), assignmentHandler.RemoveAssignment)
}

// RegisterShim mounts the administrative create-user endpoint at both of its paths.
// guards run before the handler; cmd/adminshim mounts it bare on a private port.
func RegisterShim(app *fiber.App, db *gorm.DB, provider services.AuthProvider, guards ...fiber.Handler) {
	shim := &ShimHandler{DB: db, Provider: provider}
	chain := append(append([]fiber.Handler{}, guards...), shim.CreateUser)
	app.Post("/api/createuser", chain...)
	app.Post("/create-user", chain...)
}

func (d Deps) adminDB() *gorm.DB {
	if d.AdminDB != nil {
		return d.AdminDB
	}
	return d.DB
}
