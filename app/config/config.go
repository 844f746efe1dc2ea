package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
)

// Store drivers
const (
	DriverMongo  = "mongo"
	DriverBadger = "badger"
)

// Config holds every runtime setting of the server
type Config struct {
	Addr              string
	StoreDriver       string
	MongoURI          string
	MongoDatabase     string
	MongoTransactions bool
	BadgerPath        string
	CORSOrigin        string
	BodyLimit         int64
}

// Load reads .env when present and then the environment
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to load .env: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables, applying defaults
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:          normalizeAddr(getEnv("PORT", "3000")),
		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "social-network"),
		BadgerPath:    getEnv("BADGER_PATH", "data/badger"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:5173"),
	}

	if cfg.StoreDriver != DriverMongo && cfg.StoreDriver != DriverBadger {
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", cfg.StoreDriver, DriverMongo, DriverBadger)
	}

	transactions, err := strconv.ParseBool(getEnv("MONGO_TRANSACTIONS", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid MONGO_TRANSACTIONS: %w", err)
	}
	cfg.MongoTransactions = transactions

	limit, err := humanize.ParseBytes(getEnv("BODY_LIMIT", "10MiB"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid BODY_LIMIT: %w", err)
	}
	if limit == 0 {
		return Config{}, errors.New("invalid BODY_LIMIT: must be positive")
	}
	cfg.BodyLimit = int64(limit)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// normalizeAddr turns a bare port into a listen address
func normalizeAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
