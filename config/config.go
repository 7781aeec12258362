package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Ledger backend selection
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	DiscordAppID string

	// The single user allowed to mint or confiscate funds
	OwnerID string

	// Ledger configuration
	LedgerBackend string // "file" or "postgres"
	LedgerFile    string // snapshot path for the file backend
	DatabaseURL   string // required for the postgres backend
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored for local development; missing required values are a
// startup error, not a panic.
func Load() (*Config, error) {
	// Best effort; the real environment wins over .env.
	_ = godotenv.Load()

	config := &Config{
		DiscordToken:  os.Getenv("DISCORD_TOKEN"),
		DiscordAppID:  os.Getenv("DISCORD_APP_ID"),
		OwnerID:       os.Getenv("OWNER_ID"),
		LedgerBackend: os.Getenv("LEDGER_BACKEND"),
		LedgerFile:    os.Getenv("LEDGER_FILE"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
	}

	if config.LedgerBackend == "" {
		config.LedgerBackend = BackendFile
	}
	if config.LedgerFile == "" {
		config.LedgerFile = "balances.json"
	}

	if config.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}
	if config.DiscordAppID == "" {
		return nil, fmt.Errorf("DISCORD_APP_ID is required")
	}
	if config.OwnerID == "" {
		return nil, fmt.Errorf("OWNER_ID is required")
	}

	switch config.LedgerBackend {
	case BackendFile:
	case BackendPostgres:
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when LEDGER_BACKEND=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown LEDGER_BACKEND %q (expected %q or %q)", config.LedgerBackend, BackendFile, BackendPostgres)
	}

	return config, nil
}
