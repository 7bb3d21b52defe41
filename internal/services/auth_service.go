// auth_service.go
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
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/authorizerdev/authorizer-go"
	"github.com/pkg/errors"

	"github.com/localnerve/fastighet-admin/internal/config"
	"github.com/localnerve/fastighet-admin/internal/utils"
)

// ErrInvalidCredentials is returned when the provider rejects a login
var ErrInvalidCredentials = errors.New("invalid login credentials")

// AuthUser is the identity the auth provider vouches for
type AuthUser struct {
	ID    string
	Email string
}

// AuthProvider is the hosted authentication service. Passwords never reach the database.
type AuthProvider interface {
	Login(ctx context.Context, email, password string) (*AuthUser, error)
	ValidateSession(ctx context.Context, cookie string, roles []string) (*AuthUser, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	CreateUser(ctx context.Context, email, password string, roles []string) (*AuthUser, error)
}

// AuthorizerProvider implements AuthProvider with an Authorizer instance.
// The client is created on first use so the service can start before Authorizer.
type AuthorizerProvider struct {
	cfg    *config.Config
	mu     sync.Mutex
	client *authorizer.AuthorizerClient
}

// NewAuthorizerProvider creates a provider for cfg.AuthzURL
func NewAuthorizerProvider(cfg *config.Config) *AuthorizerProvider {
	return &AuthorizerProvider{cfg: cfg}
}

// authClient creates the client once Authorizer answers; a failed attempt is retried on the next call
func (p *AuthorizerProvider) authClient() (*authorizer.AuthorizerClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	if err := utils.PingAuthorizer(p.cfg.AuthzURL); err != nil {
		return nil, fmt.Errorf("authorizer ping failed: %w", err)
	}

	utils.Logger.Infof("Initializing Authorizer: authorizerURL=%s, clientID=%s, redirectURL=%s",
		p.cfg.AuthzURL, p.cfg.AuthzClientID, p.cfg.AuthzRedirectURL)

	client, err := authorizer.NewAuthorizerClient(p.cfg.AuthzClientID, p.cfg.AuthzURL, p.cfg.AuthzRedirectURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create authorizer client: %w", err)
	}
	p.client = client
	return client, nil
}

// Login checks email and password with Authorizer
func (p *AuthorizerProvider) Login(ctx context.Context, email, password string) (*AuthUser, error) {
	client, err := p.authClient()
	if err != nil {
		return nil, err
	}

	res, err := client.Login(&authorizer.LoginInput{
		Email:    &email,
		Password: password,
	})
	if err != nil {
		if isCredentialError(err) {
			return nil, errors.Wrap(ErrInvalidCredentials, err.Error())
		}
		return nil, err
	}
	if res == nil || res.User == nil {
		return nil, ErrInvalidCredentials
	}

	return &AuthUser{ID: res.User.ID, Email: email}, nil
}

// ValidateSession validates an Authorizer session cookie for the given roles
func (p *AuthorizerProvider) ValidateSession(ctx context.Context, cookie string, roles []string) (*AuthUser, error) {
	client, err := p.authClient()
	if err != nil {
		return nil, err
	}

	rolesPtrs := make([]*string, len(roles))
	for i := range roles {
		rolesPtrs[i] = &roles[i]
	}

	res, err := client.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
		Roles:  rolesPtrs,
	})
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}
	if res == nil || !res.IsValid || res.User == nil {
		return nil, fmt.Errorf("session is not valid")
	}

	return &AuthUser{ID: res.User.ID}, nil
}

// ForgotPassword sends the password reset email
func (p *AuthorizerProvider) ForgotPassword(ctx context.Context, email string) error {
	client, err := p.authClient()
	if err != nil {
		return err
	}

	redirect := p.cfg.AuthzRedirectURL
	_, err = client.ForgotPassword(&authorizer.ForgotPasswordInput{
		Email:       &email,
		RedirectURI: &redirect,
	})
	return err
}

// ResetPassword sets a new password using the token from the reset email
func (p *AuthorizerProvider) ResetPassword(ctx context.Context, token, password string) error {
	client, err := p.authClient()
	if err != nil {
		return err
	}

	_, err = client.ResetPassword(&authorizer.ResetPasswordInput{
		Token:           &token,
		Password:        password,
		ConfirmPassword: password,
	})
	return err
}

// CreateUser registers an account with the given roles. The instance is expected to
// run with email verification disabled so the account is usable immediately.
func (p *AuthorizerProvider) CreateUser(ctx context.Context, email, password string, roles []string) (*AuthUser, error) {
	client, err := p.authClient()
	if err != nil {
		return nil, err
	}

	rolesPtrs := make([]*string, len(roles))
	for i := range roles {
		rolesPtrs[i] = &roles[i]
	}

	res, err := client.SignUp(&authorizer.SignUpInput{
		Email:           &email,
		Password:        password,
		ConfirmPassword: password,
		Roles:           rolesPtrs,
	})
	if err != nil {
		return nil, err
	}
	if res == nil || res.User == nil {
		return nil, fmt.Errorf("authorizer returned no user for %s", email)
	}

	return &AuthUser{ID: res.User.ID, Email: email}, nil
}

func isCredentialError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid") || strings.Contains(msg, "bad user credentials") ||
		strings.Contains(msg, "not found")
}
