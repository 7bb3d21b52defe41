// session_test.go
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
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localnerve/fastighet-admin/internal/models"
)

func TestSessionIssueVerify(t *testing.T) {
	m := NewSessionManager("secret", time.Hour)
	user := &models.User{ID: "u-1", Email: "anna@example.com", Role: models.RoleAdmin}

	token, issued, err := m.Issue(user)
	require.NoError(t, err)
	assert.Equal(t, "u-1", issued.UserID)

	session, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", session.UserID)
	assert.Equal(t, models.RoleAdmin, session.Role)
	assert.Equal(t, "anna@example.com", session.Email)
}

func TestSessionRejectsTamperedAndExpired(t *testing.T) {
	m := NewSessionManager("secret", time.Hour)
	token, _, err := m.Issue(&models.User{ID: "u-1", Role: models.RoleUser})
	require.NoError(t, err)

	other := NewSessionManager("other", time.Hour)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = m.Verify("")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionRejectsOtherAlgorithms(t *testing.T) {
	m := NewSessionManager("secret", time.Hour)
	claims := jwt.RegisteredClaims{
		Issuer:    sessionIssuer,
		Subject:   "u-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
