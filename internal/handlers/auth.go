// auth.go
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
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/localnerve/fastighet-admin/internal/middleware"
	"github.com/localnerve/fastighet-admin/internal/models"
	"github.com/localnerve/fastighet-admin/internal/services"
	"github.com/localnerve/fastighet-admin/internal/utils"
)

// AuthHandler signs users in and out through the auth provider
type AuthHandler struct {
	DB       *gorm.DB
	Provider services.AuthProvider
	Sessions *services.SessionManager
	// SecureCookie marks the session cookie Secure
	SecureCookie bool
}

type loginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token           string `json:"token" form:"token" validate:"required"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"required,eqfield=Password"`
}

// LoginResponse is returned after a successful sign-in
type LoginResponse struct {
	Token   string            `json:"token"`
	Session *services.Session `json:"session"`
	User    *models.User      `json:"user"`
}

// Login handles POST /api/auth/login
// @Summary Sign in
// @Description Checks the credentials with Authorizer and issues the fa_session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "", "login")
	}
	if err := services.Validate(req); err != nil {
		return respondError(c, err, "", "login")
	}

	account, err := h.Provider.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.ErrorResponse(c, "Invalid email or password", fiber.StatusUnauthorized, "authentication")
		}
		return respondError(c, err, "", "login")
	}

	user, err := services.GetUser(c.UserContext(), h.DB, account.ID)
	if services.IsNotFound(err) {
		user, err = services.GetUserByEmail(c.UserContext(), h.DB, req.Email)
	}
	if err != nil {
		if services.IsNotFound(err) {
			return utils.ErrorResponse(c, "No profile exists for this account", fiber.StatusForbidden, "authentication")
		}
		return respondError(c, err, "", "login")
	}

	token, session, err := h.Sessions.Issue(user)
	if err != nil {
		return respondError(c, err, "", "login")
	}

	c.Cookie(&fiber.Cookie{
		Name:     services.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(h.Sessions.TTL().Seconds()),
		HTTPOnly: true,
		Secure:   h.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	utils.Logger.Infof("User %s signed in", user.ID)
	return c.Status(fiber.StatusOK).JSON(LoginResponse{Token: token, Session: session, User: user})
}

// Logout handles POST /api/auth/logout
// @Summary Sign out
// @Description Clears the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     services.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return utils.MutationSuccessResponse(c, fiber.StatusOK, "Signed out", nil)
}

// ForgotPassword handles POST /api/auth/forgot-password
// @Summary Request a password reset
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body forgotPasswordRequest true "Email"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "", "forgotPassword")
	}
	if err := services.Validate(req); err != nil {
		return respondError(c, err, "", "forgotPassword")
	}

	if err := h.Provider.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return respondError(c, err, "", "forgotPassword")
	}
	return utils.MutationSuccessResponse(c, fiber.StatusOK, "A reset link has been sent if the address is registered", nil)
}

// ResetPassword handles POST /api/auth/reset-password
// @Summary Set a new password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body resetPasswordRequest true "Token and new password"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "", "resetPassword")
	}
	if err := services.Validate(req); err != nil {
		return respondError(c, err, "", "resetPassword")
	}

	if err := h.Provider.ResetPassword(c.UserContext(), req.Token, req.Password); err != nil {
		return respondError(c, err, "", "resetPassword")
	}
	return utils.MutationSuccessResponse(c, fiber.StatusOK, "Password updated", nil)
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	session, _ := middleware.CurrentSession(c)
	user, err := services.GetUser(c.UserContext(), h.DB, session.UserID)
	if err != nil {
		return respondError(c, err, "The user", "me")
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// UpdateMe handles PUT /api/auth/me. The role cannot be changed here.
// @Summary Update the current user's profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.UpdateUserInput true "Profile fields"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /auth/me [put]
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	session, _ := middleware.CurrentSession(c)

	var in services.UpdateUserInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, "", "updateMe")
	}
	in.Role = nil
	in.Email = nil

	user, err := services.UpdateUser(c.UserContext(), h.DB, session.UserID, in)
	if err != nil {
		return respondError(c, err, "The user", "updateMe")
	}
	return utils.MutationSuccessResponse(c, fiber.StatusOK, "Profile updated", user)
}
