package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/localnerve/fastighet-admin/internal/config"
	"github.com/localnerve/fastighet-admin/internal/storage"
	"github.com/localnerve/fastighet-admin/internal/utils"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Authorizer   string            `json:"authorizer"`
	Storage      string            `json:"storage,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

func (r *HealthCheckResult) fail(format string, args ...interface{}) {
	r.Status = "unhealthy"
	msg := fmt.Sprintf(format, args...)
	if r.ErrorMessage == "" {
		r.ErrorMessage = msg
	} else {
		r.ErrorMessage += "; " + msg
	}
	utils.Logger.Warnf("Health check failed - %s", msg)
}

// HealthCheck checks the database, Authorizer and, when given, the image store
func HealthCheck(cfg *config.Config, db *gorm.DB, store storage.Store) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.fail("Database connection error: %v", err)
	} else if err := sqlDB.Ping(); err != nil {
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.fail("Database ping failed: %v", err)
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
	}

	if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
		result.Authorizer = "unreachable"
		result.Details["authorizer_error"] = err.Error()
		result.fail("Authorizer ping failed: %v", err)
	} else {
		result.Authorizer = "ok"
		result.Details["authorizer_url"] = cfg.AuthzURL
	}

	if store != nil {
		if err := store.Writable(); err != nil {
			result.Storage = "error"
			result.Details["storage_error"] = err.Error()
			result.fail("Storage check failed: %v", err)
		} else {
			result.Storage = "ok"
		}
	}

	if result.Status == "healthy" {
		utils.Logger.Debug("Health check passed - all systems operational")
	}

	return result
}
