// properties.go
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
	"bytes"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/localnerve/fastighet-admin/internal/forms"
	"github.com/localnerve/fastighet-admin/internal/services"
	"github.com/localnerve/fastighet-admin/internal/storage"
	"github.com/localnerve/fastighet-admin/internal/utils"
)

// PropertyHandler serves the property endpoints. Store receives uploaded images.
type PropertyHandler struct {
	DB    *gorm.DB
	Store storage.Store
}

// ListProperties handles GET /api/properties
// @Summary List properties
// @Tags Properties
// @Produce json
// @Success 200 {array} models.Property
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /properties [get]
func (h *PropertyHandler) ListProperties(c *fiber.Ctx) error {
	list, err := services.ListProperties(c.UserContext(), h.DB)
	if err != nil {
		return respondError(c, err, "", "listProperties")
	}
	return utils.SuccessResponse(c, list, fiber.StatusOK)
}

// GetProperty handles GET /api/properties/:id
// @Summary Property detail
// @Description Property with its staff and its buildings with their staff
// @Tags Properties
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} services.PropertyDetail
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /properties/{id} [get]
func (h *PropertyHandler) GetProperty(c *fiber.Ctx) error {
	detail, err := services.GetProperty(c.UserContext(), h.DB, c.Params("id"))
	if err != nil {
		return respondError(c, err, "The property", "getProperty")
	}
	return utils.SuccessResponse(c, detail, fiber.StatusOK)
}

// CreateProperty handles POST /api/properties. A multipart body may carry an
// image file, which is stored before the row is inserted.
// @Summary Create a property
// @Tags Properties
// @Accept multipart/form-data
// @Produce json
// @Param name formData string false "Name"
// @Param address formData string false "Address"
// @Param district formData string false "District"
// @Param types formData []string false "Property types"
// @Param yearBuilt formData string false "Year built"
// @Param image formData file false "Image"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /properties [post]
func (h *PropertyHandler) CreateProperty(c *fiber.Ctx) error {
	var in forms.PropertyInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, "", "createProperty")
	}

	property, err := forms.ParseProperty(in)
	if err != nil {
		return respondError(c, err, "", "createProperty")
	}

	if file, err := c.FormFile("image"); err == nil {
		url, err := h.saveImage(c, file)
		if err != nil {
			return respondError(c, err, "", "createProperty")
		}
		property.ImageURL = &url
	}

	// A stored image stays behind when the insert fails
	if err := services.CreateProperty(c.UserContext(), h.DB, property); err != nil {
		return respondError(c, err, "", "createProperty")
	}

	utils.Logger.Infof("Created property %s", property.ID)
	return utils.MutationSuccessResponse(c, fiber.StatusCreated, "Property created", property)
}

func (h *PropertyHandler) saveImage(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	if h.Store == nil {
		return "", errors.New("image storage is not configured")
	}
	if file.Size > storage.MaxImageSize {
		return "", forms.Invalid("image", "The image must be at most 10 MB.")
	}

	f, err := file.Open()
	if err != nil {
		return "", errors.Wrap(err, "failed to read upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, storage.MaxImageSize+1))
	if err != nil {
		return "", errors.Wrap(err, "failed to read upload")
	}
	if len(data) > storage.MaxImageSize {
		return "", forms.Invalid("image", "The image must be at most 10 MB.")
	}
	if _, err := storage.DetectImage(data); err != nil {
		return "", forms.Invalid("image", "The file must be an image.")
	}

	return h.Store.Put(c.UserContext(), storage.Key(file.Filename), bytes.NewReader(data))
}
