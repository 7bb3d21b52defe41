package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/fastighet-admin/internal/testhelpers"
)

const usage = `
Run a local fastighet-admin stack in containers: a database, Authorizer, the API
server and, unless -no-shim is given, the create-user admin shim.

Usage:

testcontainers [-h] [-f ENV_FILE] [-db mariadb|mysql|postgres] [-port PORT] [-shim-port SHIM_PORT] [-no-shim]

Flags override the matching variables (DB_TYPE, PORT, SHIM_PORT) from ENV_FILE or
the environment. Other settings (DB_DATABASE, DB_APP_USER, AUTHZ_CLIENT_ID,
SESSION_SECRET, ...) are read as the server reads them.

examples
  testcontainers -db postgres
  testcontainers -f ./.env.local -shim-port 4100
`

func main() {
	var (
		showHelp    bool
		envFilename string
		dbType      string
		port        string
		shimPort    string
		noShim      bool
	)
	flag.BoolVar(&showHelp, "h", false, "show help")
	flag.StringVar(&envFilename, "f", "", "path to a .env file")
	flag.StringVar(&dbType, "db", "", "database container: mariadb, mysql or postgres (DB_TYPE)")
	flag.StringVar(&port, "port", "", "API server port inside the network (PORT)")
	flag.StringVar(&shimPort, "shim-port", "", "admin shim port inside the network (SHIM_PORT)")
	flag.BoolVar(&noShim, "no-shim", false, "do not start the admin shim")
	flag.Parse()

	if showHelp {
		fmt.Print(usage + "\n")
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	}

	switch dbType {
	case "", "mariadb", "mysql", "postgres":
	default:
		log.Fatalf("Unsupported -db %q, use mariadb, mysql or postgres\n", dbType)
	}
	overrides := map[string]string{"DB_TYPE": dbType, "PORT": port, "SHIM_PORT": shimPort}
	if noShim {
		overrides["TESTCONTAINERS_SHIM"] = "false"
	}
	for key, value := range overrides {
		if value != "" {
			os.Setenv(key, value)
		}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	started := make(chan *testhelpers.TestContainers, 1)
	go func() {
		stack, err := testhelpers.CreateAllTestContainers(nil)
		if err != nil {
			log.Fatalf("Failed to create test containers: %v\n", err)
		}
		started <- stack
	}()

	var stack *testhelpers.TestContainers
	select {
	case stack = <-started:
		log.Printf("API at %s/api (swagger at %s/swagger/)\n", stack.BaseURL, stack.BaseURL)
		if stack.ShimURL != "" {
			log.Printf("Admin shim at %s/api/createuser\n", stack.ShimURL)
		}
		log.Println("Press Ctrl+C to stop")
	case sig := <-sigs:
		log.Printf("Received %v before the stack was up\n", sig)
		return
	}

	sig := <-sigs
	log.Printf("Received signal: %v, terminating test containers...\n", sig)
	stack.Terminate(nil)
}
