// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// defaultSecret is the derivation salt baked in at build time. Overriding
// it via REFKEY_SECRET invalidates every previously issued key, so treat it
// as a deployment constant, not a tunable.
const defaultSecret = "HANDBALL_ARBITRE_2025_SECRET_SALT"

// History backend names accepted by REFKEY_HISTORY_BACKEND.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr      string
	DBPath          string
	HistoryBackend  string
	HistoryPath     string
	Secret          string
	TokenLength     int
	MailtoRecipient string
}

// Load reads configuration from environment variables and returns a
// validated Config. All variables are optional: REFKEY_LISTEN_ADDR
// (127.0.0.1:8080), REFKEY_DB_PATH (refkey.db), REFKEY_HISTORY_BACKEND
// (json or sqlite, default json), REFKEY_HISTORY_PATH (history.json, used
// by the json backend), REFKEY_SECRET (built-in default), REFKEY_TOKEN_LENGTH
// (10, must be 5..64), REFKEY_MAILTO_TO (moi@handball.com).
func Load() (*Config, error) {
	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("REFKEY_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "refkey.db"
	if v, ok := os.LookupEnv("REFKEY_DB_PATH"); ok {
		dbPath = v
	}

	backend := BackendJSON
	if v, ok := os.LookupEnv("REFKEY_HISTORY_BACKEND"); ok {
		if v != BackendJSON && v != BackendSQLite {
			return nil, fmt.Errorf("REFKEY_HISTORY_BACKEND must be %q or %q, got %q", BackendJSON, BackendSQLite, v)
		}
		backend = v
	}

	historyPath := "history.json"
	if v, ok := os.LookupEnv("REFKEY_HISTORY_PATH"); ok {
		historyPath = v
	}

	secret := defaultSecret
	if v, ok := os.LookupEnv("REFKEY_SECRET"); ok && v != "" {
		secret = v
	}

	tokenLength := 10
	if v, ok := os.LookupEnv("REFKEY_TOKEN_LENGTH"); ok {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("REFKEY_TOKEN_LENGTH has invalid value %q: %w", v, err)
		}
		if parsed < 5 || parsed > 64 {
			return nil, fmt.Errorf("REFKEY_TOKEN_LENGTH must be between 5 and 64, got %d", parsed)
		}
		tokenLength = parsed
	}

	mailtoRecipient := "moi@handball.com"
	if v, ok := os.LookupEnv("REFKEY_MAILTO_TO"); ok {
		mailtoRecipient = v
	}

	return &Config{
		ListenAddr:      listenAddr,
		DBPath:          dbPath,
		HistoryBackend:  backend,
		HistoryPath:     historyPath,
		Secret:          secret,
		TokenLength:     tokenLength,
		MailtoRecipient: mailtoRecipient,
	}, nil
}
