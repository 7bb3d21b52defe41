// storage.go
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

// Package storage keeps uploaded property images and hands out their public URLs.
package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MaxImageSize bounds uploaded images
const MaxImageSize = 10 << 20

var (
	// ErrNotImage is returned when an upload is not an image
	ErrNotImage = errors.New("file is not an image")
	// ErrInvalidKey is returned for keys that would escape the store
	ErrInvalidKey = errors.New("invalid storage key")
)

// Store saves objects under a key and resolves public URLs
type Store interface {
	Put(ctx context.Context, key string, r io.Reader) (string, error)
	PublicURL(key string) string
	Writable() error
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Key makes a collision resistant key from an uploaded file name
func Key(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "-"), "-.")
	if base == "" {
		base = "upload"
	}
	return uuid.NewString() + "_" + base
}

// DetectImage sniffs the content type and rejects anything but images
func DetectImage(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", errors.Wrap(ErrNotImage, mt.String())
	}
	return mt.String(), nil
}

// LocalStore keeps objects as files under Dir, served below BaseURL
type LocalStore struct {
	Dir     string
	BaseURL string
}

// NewLocalStore creates dir when missing
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create storage dir %s", dir)
	}
	return &LocalStore{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func validKey(key string) bool {
	return key != "" && key == filepath.Base(key) && key != "." && key != ".." && !strings.ContainsAny(key, `/\`)
}

// Put writes r under key and returns its public URL. Existing keys are replaced.
func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	if !validKey(key) {
		return "", errors.Wrap(ErrInvalidKey, key)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.Dir, ".upload-*")
	if err != nil {
		return "", errors.Wrap(err, "failed to create upload file")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", errors.Wrap(err, "failed to write upload")
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrap(err, "failed to write upload")
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write upload")
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.Dir, key)); err != nil {
		return "", errors.Wrap(err, "failed to store upload")
	}

	return s.PublicURL(key), nil
}

// PublicURL returns the URL a stored key is served at
func (s *LocalStore) PublicURL(key string) string {
	return s.BaseURL + "/" + path.Clean(key)
}

// Writable checks that objects can be created in Dir
func (s *LocalStore) Writable() error {
	f, err := os.CreateTemp(s.Dir, ".health-*")
	if err != nil {
		return errors.Wrap(err, "storage is not writable")
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
