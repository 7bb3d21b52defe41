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

package services

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/localnerve/fastighet-admin/internal/models"
)

// CreateUserInput is the administrative create-user request
type CreateUserInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role" validate:"omitempty,role"`
	Address   string `json:"address"`
}

// UpdateUserInput changes profile fields; nil fields are left untouched
type UpdateUserInput struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Address   *string `json:"address"`
	Role      *string `json:"role" validate:"omitempty,role"`
}

// ListUsers returns every user by last name
func ListUsers(ctx context.Context, db *gorm.DB) ([]models.User, error) {
	var out []models.User
	err := db.WithContext(ctx).Order("last_name").Order("first_name").Find(&out).Error
	return out, err
}

// GetUser loads one user
func GetUser(ctx context.Context, db *gorm.DB, id string) (*models.User, error) {
	var u models.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err, "user "+id)
	}
	return &u, nil
}

// GetUserByEmail loads the profile of a signed-in account
func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*models.User, error) {
	var u models.User
	if err := db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error; err != nil {
		return nil, notFound(err, "user "+email)
	}
	return &u, nil
}

// UpdateUser applies in to the user and returns the updated row
func UpdateUser(ctx context.Context, db *gorm.DB, id string, in UpdateUserInput) (*models.User, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Address != nil {
		if addr := strings.TrimSpace(*in.Address); addr != "" {
			updates["address"] = addr
		} else {
			updates["address"] = nil
		}
	}
	if in.Role != nil {
		updates["role"] = *in.Role
	}

	var user models.User
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return notFound(err, "user "+id)
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the profile and every assignment of the user
func DeleteUser(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, link := range []interface{}{&models.PropertyStaff{}, &models.BuildingStaff{}, &models.UnitStaff{}} {
			if err := tx.Where("staff_id = ?", id).Delete(link).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.Wrapf(ErrNotFound, "user %s", id)
		}
		return nil
	})
}

// CreateUser registers the account with the provider, then stores the profile
// under the provider's user id.
func CreateUser(ctx context.Context, db *gorm.DB, provider AuthProvider, in CreateUserInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if err := Validate(in); err != nil {
		return nil, err
	}

	account, err := provider.CreateUser(ctx, in.Email, in.Password, []string{in.Role})
	if err != nil {
		return nil, &ProviderError{Err: err}
	}

	user := &models.User{
		ID:        account.ID,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     in.Email,
		Role:      in.Role,
	}
	if addr := strings.TrimSpace(in.Address); addr != "" {
		user.Address = &addr
	}

	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, errors.Wrapf(err, "account %s created but profile insert failed", account.ID)
	}
	return user, nil
}
