package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/localnerve/fastighet-admin/internal/services"
	"github.com/localnerve/fastighet-admin/internal/types"
	"github.com/localnerve/fastighet-admin/internal/utils"
)

// authorizerCookie is the session cookie set by Authorizer itself
const authorizerCookie = "cookie_session"

const sessionKey = "session"

// Auth authenticates requests and checks them against the role policy
type Auth struct {
	Sessions *services.SessionManager
	Provider services.AuthProvider
	DB       *gorm.DB
	Policy   *services.Policy
}

// CurrentSession returns the session stored by RequireSession
func CurrentSession(c *fiber.Ctx) (*services.Session, bool) {
	s, ok := c.Locals(sessionKey).(*services.Session)
	return s, ok && s != nil
}

// RequireSession accepts a signed session from the fa_session cookie or an
// Authorization bearer token. An Authorizer cookie_session is accepted as a
// fallback and resolved to the stored profile.
func (a *Auth) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := a.authenticate(c); err != nil {
			return err
		}
		return c.Next()
	}
}

// Require authenticates the request and requires its role to allow action on object
func (a *Auth) Require(object, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := a.authenticate(c)
		if err != nil {
			return err
		}
		if err := a.authorize(session, object, action); err != nil {
			return err
		}
		return c.Next()
	}
}

func (a *Auth) authenticate(c *fiber.Ctx) (*services.Session, error) {
	if session, ok := CurrentSession(c); ok {
		return session, nil
	}

	token := c.Cookies(services.SessionCookie)
	if token == "" {
		if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		}
	}

	if token != "" {
		session, err := a.Sessions.Verify(token)
		if err != nil {
			return nil, unauthenticated(fmt.Sprintf("Invalid session: %v", err))
		}
		c.Locals(sessionKey, session)
		return session, nil
	}

	cookie := c.Cookies(authorizerCookie)
	if cookie == "" || a.Provider == nil {
		return nil, unauthenticated("Session cookie \"" + services.SessionCookie + "\" not found")
	}

	account, err := a.Provider.ValidateSession(c.UserContext(), cookie, nil)
	if err != nil {
		return nil, unauthenticated(fmt.Sprintf("Invalid session: %v", err))
	}
	user, err := services.GetUser(c.UserContext(), a.DB, account.ID)
	if err != nil {
		utils.Logger.Warnf("Authorizer session for unknown profile %s: %v", account.ID, err)
		return nil, unauthenticated("No profile for the signed-in account")
	}

	session := &services.Session{UserID: user.ID, Email: user.Email, Role: user.Role}
	c.Locals(sessionKey, session)
	return session, nil
}

func (a *Auth) authorize(session *services.Session, object, action string) error {
	allowed, err := a.Policy.Allowed(session.Role, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("Role %q may not %s %s", session.Role, action, object),
			Type:    "authorization",
		}
	}
	return nil
}

func unauthenticated(message string) error {
	return &types.CustomError{
		Code:    fiber.StatusUnauthorized,
		Message: message,
		Type:    "authentication",
	}
}
