package services

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localnerve/fastighet-admin/internal/config"
	"github.com/localnerve/fastighet-admin/internal/storage"
	"github.com/localnerve/fastighet-admin/internal/testhelpers"
)

func TestHealthCheck(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	db := testhelpers.NewSQLiteDB(t)
	store, err := storage.NewLocalStore(t.TempDir(), "/storage")
	require.NoError(t, err)

	cfg := &config.Config{DBType: "sqlite", DBDatabase: ":memory:", AuthzURL: "http://" + ln.Addr().String()}

	result := HealthCheck(cfg, db, store)
	assert.Equal(t, "healthy", result.Status)
	assert.Equal(t, "ok", result.Database)
	assert.Equal(t, "ok", result.Authorizer)
	assert.Equal(t, "ok", result.Storage)
	assert.Empty(t, result.ErrorMessage)

	// Authorizer gone
	addr := ln.Addr().String()
	ln.Close()
	cfg.AuthzURL = "http://" + addr

	result = HealthCheck(cfg, db, nil)
	assert.Equal(t, "unhealthy", result.Status)
	assert.Equal(t, "unreachable", result.Authorizer)
	assert.Empty(t, result.Storage)
	assert.Contains(t, result.ErrorMessage, "Authorizer ping failed")
}
