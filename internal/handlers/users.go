// users.go
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
	"github.com/localnerve/fastighet-admin/internal/middleware"
	"github.com/localnerve/fastighet-admin/internal/services"
	"github.com/localnerve/fastighet-admin/internal/utils"
)

// UserHandler serves user administration
type UserHandler struct {
	DB       *gorm.DB
	Provider services.AuthProvider
}

// ListUsers handles GET /api/users
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Security CookieAuth
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	list, err := services.ListUsers(c.UserContext(), h.DB)
	if err != nil {
		return respondError(c, err, "", "listUsers")
	}
	return utils.SuccessResponse(c, list, fiber.StatusOK)
}

// GetUser handles GET /api/users/:id
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := services.GetUser(c.UserContext(), h.DB, c.Params("id"))
	if err != nil {
		return respondError(c, err, "The user", "getUser")
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// CreateUser handles POST /api/users
// @Summary Create a user
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.CreateUserInput true "New user"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var in services.CreateUserInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, "", "createUser")
	}

	user, err := services.CreateUser(c.UserContext(), h.DB, h.Provider, in)
	if err != nil {
		if services.IsProviderError(err) {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "authorizer")
		}
		return respondError(c, err, "", "createUser")
	}

	return utils.MutationSuccessResponse(c, fiber.StatusCreated, "User created", user)
}

// UpdateUser handles PUT /api/users/:id
// @Summary Update a user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body services.UpdateUserInput true "Changed fields"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var in services.UpdateUserInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, "", "updateUser")
	}

	user, err := services.UpdateUser(c.UserContext(), h.DB, c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "The user", "updateUser")
	}
	return utils.MutationSuccessResponse(c, fiber.StatusOK, "User updated", user)
}

// DeleteUser handles DELETE /api/users/:id
// @Summary Delete a user
// @Description Deletes the profile and every staff assignment of the user. Requires confirm=true.
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 428 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if session, ok := middleware.CurrentSession(c); ok && session.UserID == id {
		return respondError(c, forms.Invalid("id", "You cannot delete your own account."), "", "deleteUser")
	}

	if err := services.DeleteUser(c.UserContext(), h.DB, id); err != nil {
		return respondError(c, err, "The user", "deleteUser")
	}

	utils.Logger.Infof("Deleted user %s", id)
	return utils.MutationSuccessResponse(c, fiber.StatusOK, "User deleted", nil)
}
