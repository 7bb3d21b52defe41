// shim.go
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
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/localnerve/fastighet-admin/internal/forms"
	"github.com/localnerve/fastighet-admin/internal/services"
	"github.com/localnerve/fastighet-admin/internal/utils"
)

// ShimHandler is the administrative create-user endpoint. It runs with the
// elevated database pool and answers in its own small envelope.
type ShimHandler struct {
	DB       *gorm.DB
	Provider services.AuthProvider
}

// shimRequest accepts the English field names and their Swedish aliases
type shimRequest struct {
	Email     string `json:"email" form:"email"`
	Password  string `json:"password" form:"password"`
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName" form:"lastName"`
	Role      string `json:"role" form:"role"`
	Address   string `json:"address" form:"address"`
	Fornamn   string `json:"fornamn" form:"fornamn"`
	Efternamn string `json:"efternamn" form:"efternamn"`
	Roll      string `json:"roll" form:"roll"`
	Adress    string `json:"adress" form:"adress"`
}

func (r shimRequest) input() services.CreateUserInput {
	pick := func(a, b string) string {
		if strings.TrimSpace(a) != "" {
			return a
		}
		return b
	}
	return services.CreateUserInput{
		Email:     strings.TrimSpace(r.Email),
		Password:  r.Password,
		FirstName: pick(r.FirstName, r.Fornamn),
		LastName:  pick(r.LastName, r.Efternamn),
		Role:      strings.TrimSpace(pick(r.Role, r.Roll)),
		Address:   pick(r.Address, r.Adress),
	}
}

// ShimResponse is the create-user success body
type ShimResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// CreateUser handles POST /api/createuser and POST /create-user
// @Summary Create a user account
// @Description Registers the account with Authorizer (no confirmation email) and stores the profile
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body shimRequest true "New user"
// @Success 201 {object} ShimResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} map[string]string
// @Security CookieAuth
// @Router /createuser [post]
func (h *ShimHandler) CreateUser(c *fiber.Ctx) error {
	var req shimRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	in := req.input()
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password required"})
	}

	user, err := services.CreateUser(c.UserContext(), h.DB, h.Provider, in)
	if err != nil {
		if v, ok := forms.AsValidation(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": v.Message})
		}
		if services.IsProviderError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		utils.Logger.WithError(err).Error("create user failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	utils.Logger.Infof("Created user %s %s (%s)", user.ID, user.FullName(), user.Role)
	return c.Status(fiber.StatusCreated).JSON(ShimResponse{Success: true, UserID: user.ID, Message: "User created"})
}
