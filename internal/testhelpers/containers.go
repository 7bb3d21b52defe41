// containers.go
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

package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/localnerve/fastighet-admin/internal/database"
)

const appImageName = "fastighet-admin-test:latest"

// TestContainers holds the containers of a full stack run
type TestContainers struct {
	Network             *testcontainers.DockerNetwork
	DBContainer         testcontainers.Container
	AuthorizerContainer testcontainers.Container
	AppContainer        testcontainers.Container
	ShimContainer       testcontainers.Container
	AppBuilderContainer testcontainers.Container
	// BaseURL and ShimURL are the host-mapped endpoints; ShimURL is empty when the shim is off
	BaseURL string
	ShimURL string
}

// Terminate stops every started container and removes the network
func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.ShimContainer != nil {
		if err := tc.ShimContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate admin shim: %v", err)
		}
	}
	if tc.AppContainer != nil {
		if err := tc.AppContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate app: %v", err)
		}
	}
	if tc.AppBuilderContainer != nil {
		if err := tc.AppBuilderContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate app builder: %v", err)
		}
	}
	if tc.AuthorizerContainer != nil {
		if err := tc.AuthorizerContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate Authorizer: %v", err)
		}
	}
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate database: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// PostgresDB is a standalone, migrated PostgreSQL container
type PostgresDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
}

// StartPostgres runs postgres:16-alpine and returns a migrated connection.
// The container is terminated with the test.
func StartPostgres(t *testing.T) *PostgresDB {
	t.Helper()
	ctx := context.Background()

	port, _ := nat.NewPort("tcp", "5432")
	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        envOr("POSTGRES_IMAGE", "postgres:16-alpine"),
			ExposedPorts: []string{string(port)},
			Env: map[string]string{
				"POSTGRES_USER":     "fastighet",
				"POSTGRES_PASSWORD": "fastighet",
				"POSTGRES_DB":       "fastighet",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := pg.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate postgres: %v", err)
		}
	})

	host, err := pg.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get postgres host: %v", err)
	}
	mapped, err := pg.MappedPort(ctx, port)
	if err != nil {
		t.Fatalf("Failed to get postgres port: %v", err)
	}

	dsn := fmt.Sprintf("host=%s user=fastighet password=fastighet dbname=fastighet port=%s sslmode=disable TimeZone=UTC",
		host, mapped.Port())
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate postgres: %v", err)
	}

	return &PostgresDB{Container: pg, DB: db}
}

// DockerAvailable reports whether a docker daemon answers
func DockerAvailable() bool {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false
	}
	defer cli.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err = cli.Ping(ctx)
	return err == nil
}

// CreateAllTestContainers starts the database, Authorizer and the service image on one
// network. Settings come from the environment (see cmd/testcontainers).
func CreateAllTestContainers(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	testContainers := &TestContainers{}

	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
	}
	testContainers.Network = nw
	networkName := nw.Name

	dbType := envOr("DB_TYPE", "mariadb")
	dbNetworkName := envOr("DB_HOST", "db")
	tcpDbPort, err := nat.NewPort("tcp", envOr("DB_PORT", defaultPort(dbType)))
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to create DB port")
	}
	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        envOr("DB_IMAGE", defaultImage(dbType)),
			ExposedPorts: []string{string(tcpDbPort)},
			Env:          getDBInitEnvMap(dbType),
			WaitingFor:   wait.ForListeningPort(tcpDbPort).WithStartupTimeout(60 * time.Second),
			Networks:     []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {dbNetworkName},
			},
		},
		Started: true,
	})
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start Database")
	}
	testContainers.DBContainer = dbContainer

	dbHost, _ := dbContainer.Host(ctx)
	dbPort, _ := dbContainer.MappedPort(ctx, tcpDbPort)
	if dbType == "mysql" || dbType == "mariadb" {
		if err := performMySQLDBInit(dbHost, dbPort); err != nil {
			testContainers.Terminate(t)
			exitWithError(t, err, "Failed to initialize databases")
		}
	}
	logMessage(t, "DB_URL=%s:%s", dbHost, dbPort.Port())

	authzNetworkName := "authorizer"
	authzPortNumber := envOr("AUTHZ_PORT", "8080")
	tcpAuthzPort, err := nat.NewPort("tcp", authzPortNumber)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to create Authorizer port")
	}
	authorizerContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        envOr("AUTHZ_IMAGE", "lakhansamani/authorizer:latest"),
			ExposedPorts: []string{string(tcpAuthzPort)},
			Env: map[string]string{
				"ENV":                        "production",
				"CLIENT_ID":                  envOr("AUTHZ_CLIENT_ID", "fastighet-admin"),
				"PORT":                       authzPortNumber,
				"DATABASE_TYPE":              authzDatabaseType(dbType),
				"DATABASE_NAME":              envOr("AUTHZ_DATABASE", "authorizer"),
				"DATABASE_URL":               authzDatabaseURL(dbType, dbNetworkName, tcpDbPort.Port()),
				"ADMIN_SECRET":               envOr("AUTHZ_ADMIN_SECRET", "admin-secret"),
				"ROLES":                      "superadmin,admin,user",
				"DEFAULT_ROLES":              "user",
				"DISABLE_EMAIL_VERIFICATION": "true",
			},
			WaitingFor: wait.ForLog("Authorizer running at PORT:").WithStartupTimeout(30 * time.Second),
			Networks:   []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {authzNetworkName},
			},
		},
		Started: true,
	})
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start Authorizer")
	}
	testContainers.AuthorizerContainer = authorizerContainer

	authzHost, _ := authorizerContainer.Host(ctx)
	authzPort, _ := authorizerContainer.MappedPort(ctx, tcpAuthzPort)
	logMessage(t, "AUTHZ_URL=http://%s:%s", authzHost, authzPort.Port())

	exists, err := imageExists(ctx, appImageName)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to check if image exists")
	}

	appPortNumber := envOr("PORT", "3000")
	tcpAppPort, err := nat.NewPort("tcp", appPortNumber)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to create app port")
	}

	appRequest := testcontainers.ContainerRequest{
		ExposedPorts: []string{string(tcpAppPort)},
		Env: map[string]string{
			"DB_TYPE":         dbType,
			"DB_HOST":         dbNetworkName,
			"DB_PORT":         tcpDbPort.Port(),
			"DB_DATABASE":     envOr("DB_DATABASE", "fastighet"),
			"DB_APP_USER":     envOr("DB_APP_USER", "fastighet"),
			"DB_APP_PASSWORD": envOr("DB_APP_PASSWORD", "fastighet"),
			"DB_USER":         os.Getenv("DB_USER"),
			"DB_PASSWORD":     os.Getenv("DB_PASSWORD"),
			"AUTHZ_URL":       fmt.Sprintf("http://%s:%s", authzNetworkName, authzPortNumber),
			"AUTHZ_CLIENT_ID": envOr("AUTHZ_CLIENT_ID", "fastighet-admin"),
			"SESSION_SECRET":  envOr("SESSION_SECRET", uuid.NewString()),
			"STORAGE_DIR":     "/tmp/storage",
			"PORT":            appPortNumber,
		},
		HostConfigModifier: func(hostConfig *container.HostConfig) {
			hostConfig.AutoRemove = false
		},
		WaitingFor: wait.ForHTTP("/metrics").WithPort(tcpAppPort).WithStartupTimeout(60 * time.Second),
		Networks:   []string{networkName},
	}

	if !exists {
		sessionID := uuid.New().String()
		buildArgs := map[string]*string{
			"RESOURCE_REAPER_SESSION_ID": &sessionID,
		}
		buildContext := envOr("TESTCONTAINERS_BUILD_CONTEXT", "../..")

		logMessage(t, "Image %s does not exist, building...", appImageName)
		builder, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				FromDockerfile: testcontainers.FromDockerfile{
					Context:    buildContext,
					Dockerfile: "Dockerfile",
					Repo:       "fastighet-admin-test-builder",
					Tag:        "latest",
					BuildArgs:  buildArgs,
					BuildOptionsModifier: func(opts *build.ImageBuildOptions) {
						opts.Target = "builder"
					},
					PrintBuildLog: true,
				},
			},
			Started: false,
		})
		if err != nil {
			testContainers.Terminate(t)
			exitWithError(t, err, "Failed to build fastighet-admin-test-builder")
		}
		testContainers.AppBuilderContainer = builder

		parts := strings.Split(appImageName, ":")
		appRequest.FromDockerfile = testcontainers.FromDockerfile{
			Context:    buildContext,
			Dockerfile: "Dockerfile",
			Repo:       parts[0],
			Tag:        parts[1],
			KeepImage:  true,
			BuildArgs:  buildArgs,
			BuildOptionsModifier: func(opts *build.ImageBuildOptions) {
				opts.Target = "runtime"
			},
			PrintBuildLog: true,
		}
	} else {
		logMessage(t, "Image %s exists, reusing...", appImageName)
		appRequest.Image = appImageName
	}

	appContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: appRequest,
		Started:          true,
	})
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start fastighet-admin")
	}
	testContainers.AppContainer = appContainer

	appHost, _ := appContainer.Host(ctx)
	appPort, _ := appContainer.MappedPort(ctx, tcpAppPort)
	testContainers.BaseURL = fmt.Sprintf("http://%s:%s", appHost, appPort.Port())
	logMessage(t, "BASE_URL=%s", testContainers.BaseURL)

	if envOr("TESTCONTAINERS_SHIM", "true") == "true" {
		tcpShimPort, err := nat.NewPort("tcp", envOr("SHIM_PORT", "4000"))
		if err != nil {
			testContainers.Terminate(t)
			exitWithError(t, err, "Failed to create shim port")
		}

		shimEnv := make(map[string]string, len(appRequest.Env)+1)
		for k, v := range appRequest.Env {
			shimEnv[k] = v
		}
		shimEnv["SHIM_PORT"] = tcpShimPort.Port()

		shimContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        appImageName,
				Entrypoint:   []string{"/usr/local/bin/adminshim"},
				ExposedPorts: []string{string(tcpShimPort)},
				Env:          shimEnv,
				WaitingFor:   wait.ForListeningPort(tcpShimPort).WithStartupTimeout(60 * time.Second),
				Networks:     []string{networkName},
			},
			Started: true,
		})
		if err != nil {
			testContainers.Terminate(t)
			exitWithError(t, err, "Failed to start the admin shim")
		}
		testContainers.ShimContainer = shimContainer

		shimHost, _ := shimContainer.Host(ctx)
		shimPort, _ := shimContainer.MappedPort(ctx, tcpShimPort)
		testContainers.ShimURL = fmt.Sprintf("http://%s:%s", shimHost, shimPort.Port())
		logMessage(t, "SHIM_URL=%s", testContainers.ShimURL)
	}

	logMessage(t, "fastighet-admin testcontainers started successfully")
	return testContainers, nil
}

func getDBInitEnvMap(dbType string) map[string]string {
	switch dbType {
	case "postgres":
		return map[string]string{
			"POSTGRES_PASSWORD": envOr("DB_APP_PASSWORD", "fastighet"),
			"POSTGRES_USER":     envOr("DB_APP_USER", "fastighet"),
			"POSTGRES_DB":       envOr("DB_DATABASE", "fastighet"),
		}
	}
	return map[string]string{
		"MYSQL_ROOT_PASSWORD": envOr("DB_ROOT_PASSWORD", "root"),
		"MYSQL_DATABASE":      envOr("DB_DATABASE", "fastighet"),
		"MYSQL_USER":          envOr("DB_APP_USER", "fastighet"),
		"MYSQL_PASSWORD":      envOr("DB_APP_PASSWORD", "fastighet"),
	}
}

// performMySQLDBInit creates the Authorizer database and the elevated user
func performMySQLDBInit(dbHost string, dbPort nat.Port) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/", envOr("DB_ROOT_PASSWORD", "root"), dbHost, dbPort.Port()))
	if err != nil {
		return fmt.Errorf("failed to connect for setup: %w", err)
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("database not ready after 30 seconds: %w", err)
	}

	statements := []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", envOr("AUTHZ_DATABASE", "authorizer")),
	}
	if user := os.Getenv("DB_USER"); user != "" {
		statements = append(statements,
			fmt.Sprintf("CREATE USER IF NOT EXISTS '%s'@'%%' IDENTIFIED BY '%s'", user, os.Getenv("DB_PASSWORD")),
			fmt.Sprintf("GRANT ALL PRIVILEGES ON %s.* TO '%s'@'%%'", envOr("DB_DATABASE", "fastighet"), user),
		)
	}
	statements = append(statements, "FLUSH PRIVILEGES")

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), stmt)
		}
	}
	return nil
}

func defaultImage(dbType string) string {
	if dbType == "postgres" {
		return "postgres:16-alpine"
	}
	return "mariadb:11"
}

func defaultPort(dbType string) string {
	if dbType == "postgres" {
		return "5432"
	}
	return "3306"
}

func authzDatabaseType(dbType string) string {
	if dbType == "mariadb" {
		return "mysql"
	}
	return dbType
}

func authzDatabaseURL(dbType, host, port string) string {
	if dbType == "postgres" {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			envOr("DB_APP_USER", "fastighet"), envOr("DB_APP_PASSWORD", "fastighet"), host, port, envOr("DB_DATABASE", "fastighet"))
	}
	return fmt.Sprintf("root:%s@tcp(%s:%s)/%s", envOr("DB_ROOT_PASSWORD", "root"), host, port, envOr("AUTHZ_DATABASE", "authorizer"))
}

func imageExists(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, img := range images {
		for _, tag := range img.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}

	return false, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
