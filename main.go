package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"socialnetwork/app/config"
	"socialnetwork/service"
)

// CliVersion is reported by the version command
const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches os.Args to a command
func RealMain() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = strings.ToLower(os.Args[1])
	}

	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("socialnetwork version %s\n", CliVersion)
	case "serve":
		if code := serve(); code != 0 {
			exit(code)
		}
	case "db":
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			exit(1)
			return
		}
		if code := service.HandleCommand(cfg, os.Args[2:]); code != 0 {
			exit(code)
		}
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: socialnetwork <command> [options]
Commands:
  serve                          Run the HTTP API (default when no command is given).
  db <init|clean|backup|restore> Maintain the badger store (STORE_DRIVER=badger).
  help                           Display this help message.
  version                        Show version information.

Environment:
  PORT, STORE_DRIVER, MONGO_URI, MONGO_DATABASE, MONGO_TRANSACTIONS,
  BADGER_PATH, CORS_ORIGIN, BODY_LIMIT (also read from .env)
`
	fmt.Println(helpText)
}

// serve runs the API until SIGINT or SIGTERM
func serve() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return service.RunAppServer(ctx, cfg)
}
