// users_test.go
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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localnerve/fastighet-admin/internal/forms"
	"github.com/localnerve/fastighet-admin/internal/models"
	"github.com/localnerve/fastighet-admin/internal/selection"
	"github.com/localnerve/fastighet-admin/internal/testhelpers"
)

// fakeProvider records calls in place of Authorizer
type fakeProvider struct {
	created  []string
	roles    []string
	failWith error
}

func (p *fakeProvider) Login(ctx context.Context, email, password string) (*AuthUser, error) {
	return nil, ErrInvalidCredentials
}

func (p *fakeProvider) ValidateSession(ctx context.Context, cookie string, roles []string) (*AuthUser, error) {
	return nil, errors.New("session is not valid")
}

func (p *fakeProvider) ForgotPassword(ctx context.Context, email string) error {
	return nil
}

func (p *fakeProvider) ResetPassword(ctx context.Context, token, password string) error {
	return nil
}

func (p *fakeProvider) CreateUser(ctx context.Context, email, password string, roles []string) (*AuthUser, error) {
	if p.failWith != nil {
		return nil, p.failWith
	}
	p.created = append(p.created, email)
	p.roles = roles
	return &AuthUser{ID: "00000000-0000-4000-8000-0000000000aa", Email: email}, nil
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.NewSQLiteDB(t)
	provider := &fakeProvider{}

	user, err := CreateUser(ctx, db, provider, CreateUserInput{
		Email:     " Ny@Example.com ",
		Password:  "hemligt1",
		FirstName: "Ny",
		LastName:  "Person",
		Address:   "Ågatan 2",
	})
	require.NoError(t, err)
	assert.Equal(t, "ny@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, []string{models.RoleUser}, provider.roles)

	stored, err := GetUser(ctx, db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ågatan 2", *stored.Address)

	byEmail, err := GetUserByEmail(ctx, db, "NY@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestCreateUserValidationSkipsProvider(t *testing.T) {
	provider := &fakeProvider{}
	_, err := CreateUser(context.Background(), testhelpers.NewSQLiteDB(t), provider, CreateUserInput{
		Email: "a@example.com", Password: "hemligt1", Role: "owner",
	})
	v, ok := forms.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "role", v.Field)
	assert.Empty(t, provider.created)
}

func TestCreateUserProviderError(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	provider := &fakeProvider{failWith: errors.New("user with this email address already exists")}
	_, err := CreateUser(context.Background(), db, provider, CreateUserInput{Email: "a@example.com", Password: "hemligt1"})
	assert.EqualError(t, err, "user with this email address already exists")

	users, err := ListUsers(context.Background(), db)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.NewSQLiteDB(t)
	fx := testhelpers.Seed(t, db)

	role := models.RoleSuperadmin
	empty := ""
	updated, err := UpdateUser(ctx, db, fx.Users[1].ID, UpdateUserInput{Role: &role, Address: &empty})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperadmin, updated.Role)
	assert.Nil(t, updated.Address)
	assert.Equal(t, "Erik", updated.FirstName)

	bad := "not-an-email"
	_, err = UpdateUser(ctx, db, fx.Users[1].ID, UpdateUserInput{Email: &bad})
	v, ok := forms.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "email", v.Field)

	_, err = UpdateUser(ctx, db, "missing", UpdateUserInput{Role: &role})
	assert.True(t, IsNotFound(err))
}

func TestDeleteUserRemovesAssignments(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.NewSQLiteDB(t)
	fx := testhelpers.Seed(t, db)
	staff := fx.Users[0].ID
	gw := Gateways(db)

	require.NoError(t, gw[selection.LevelProperty].Add(ctx, fx.Properties[0].ID, []string{staff}, false))
	require.NoError(t, gw[selection.LevelUnit].Add(ctx, fx.Units[0].ID, []string{staff}, false))

	require.NoError(t, DeleteUser(ctx, db, staff))

	list, err := gw[selection.LevelUnit].List(ctx, fx.Units[0].ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = GetUser(ctx, db, staff)
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(DeleteUser(ctx, db, staff)))
}

func TestCreateUserProviderErrorIsTagged(t *testing.T) {
	provider := &fakeProvider{failWith: errors.New("signup disabled")}
	_, err := CreateUser(context.Background(), testhelpers.NewSQLiteDB(t), provider, CreateUserInput{Email: "a@example.com", Password: "hemligt1"})
	assert.True(t, IsProviderError(err))
	assert.False(t, IsProviderError(errors.New("other")))
}
