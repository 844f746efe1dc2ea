package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"socialnetwork/app/config"
	"socialnetwork/app/repositories"
)

var osExit = os.Exit

// HandleCommand handles db subcommands and returns an exit code.
func HandleCommand(cfg config.Config, args []string) int {
	if len(args) < 1 {
		printDbHelp()
		osExit(1)
		return 1
	}
	if cfg.StoreDriver != config.DriverBadger {
		fmt.Printf("Error: db commands need STORE_DRIVER=badger, configured driver is %s\n", cfg.StoreDriver)
		osExit(1)
		return 1
	}

	dbPath := cfg.BadgerPath
	cmd := args[0]
	switch cmd {
	case "clean":
		return clean(dbPath)
	case "init":
		return initDb(dbPath)
	case "backup":
		if backup(dbPath) == "" {
			return 1
		}
		return 0
	case "restore":
		if len(args) < 2 {
			fmt.Println("Error: backup file path required for restore")
			osExit(1)
			return 1
		}
		return restore(dbPath, args[1])
	case "help":
		printDbHelp()
		return 0
	default:
		fmt.Printf("Unknown db command: %s\n\n", cmd)
		printDbHelp()
		osExit(1)
		return 1
	}
}

// printDbHelp prints help for db subcommands.
func printDbHelp() {
	helpText := `Usage: socialnetwork db <command>

Commands (STORE_DRIVER=badger only):
  init                            Initialize a new empty database
  clean                           Delete the database
  backup                          Create a backup of the database
  restore [file]                  Restore database from backup
  help                            Display this help message
`
	fmt.Println(helpText)
}

// clean removes the database and returns an exit code. A missing
// database is already clean.
func clean(dbPath string) int {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("Database is already clean (does not exist)")
		return 0
	}

	fmt.Print("Are you sure you want to clean the database? This cannot be undone. [y/N] ")
	var response string
	fmt.Scanln(&response)
	if response != "y" && response != "Y" {
		fmt.Println("Operation cancelled")
		return 1
	}

	if err := os.RemoveAll(dbPath); err != nil {
		fmt.Printf("Failed to clean database: %v\n", err)
		return 1
	}
	fmt.Println("Database cleaned successfully")
	return 0
}

// initDb initializes a new empty database and returns an exit code.
func initDb(dbPath string) int {
	if _, err := os.Stat(dbPath); err == nil {
		fmt.Println("Database already exists. Use 'clean' first if you want to reinitialize.")
		return 1
	}

	store, err := repositories.OpenBadgerStore(dbPath)
	if err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		return 1
	}
	if err := store.Close(context.Background()); err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		return 1
	}

	fmt.Println("Database initialized successfully")
	return 0
}

// backup writes a backup next to the database and returns its path, or ""
// when nothing was written.
func backup(dbPath string) string {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No database exists to backup")
		return ""
	}

	backupDir := filepath.Join(filepath.Dir(dbPath), "backups")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		fmt.Printf("Failed to create backup directory: %v\n", err)
		return ""
	}

	store, err := repositories.OpenBadgerStore(dbPath)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return ""
	}
	defer store.Close(context.Background())

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		fmt.Printf("Failed to create backup file: %v\n", err)
		return ""
	}
	defer f.Close()

	if err := store.Backup(f); err != nil {
		fmt.Printf("Failed to backup database: %v\n", err)
		return ""
	}

	fmt.Printf("Database backed up successfully to %s\n", backupFile)
	return backupFile
}

// restore restores the database from a backup.
func restore(dbPath, backupFile string) int {
	if _, err := os.Stat(backupFile); os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}

	if _, err := os.Stat(dbPath); err == nil {
		fmt.Print("Existing database found. Do you want to replace it? [y/N] ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Operation cancelled")
			return 1
		}
		if err := os.RemoveAll(dbPath); err != nil {
			fmt.Printf("Failed to remove existing database: %v\n", err)
			return 1
		}
	}

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Printf("Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		fmt.Printf("Failed to stat backup file: %v\n", err)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Printf("Backup file is empty: %s\n", backupFile)
		return 1
	}

	store, err := repositories.OpenBadgerStore(dbPath)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close(context.Background())

	err = func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic occurred during restore: %v", r)
			}
		}()
		return store.Restore(f)
	}()
	if err != nil {
		fmt.Printf("Failed to restore database: %v\n", err)
		return 1
	}

	fmt.Println("Database restored successfully")
	return 0
}
