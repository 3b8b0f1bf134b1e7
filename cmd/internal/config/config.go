package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the explicit settings object handed to the wiring in main.
// Values come from the environment (.env in development, SSM Parameter
// Store in production).
type Config struct {
	Port string

	DBPath        string
	DataDir       string
	DataSource    string
	ForceRecreate bool

	// SearchLimit is the top-K candidate count per query. Tunable: 5
	// and 10 are both reasonable; 10 is the default.
	SearchLimit int

	OracleBaseURL string
	OracleAPIKey  string
	OracleModel   string
	OracleTimeout time.Duration
}

func Load() *Config {
	return &Config{
		Port:          envOr("PORT", "7070"),
		DBPath:        envOr("DB_PATH", "companies.db"),
		DataDir:       envOr("DATA_DIR", "data"),
		DataSource:    os.Getenv("DATA_SOURCE"),
		ForceRecreate: envBool("FORCE_RECREATE_DB"),
		SearchLimit:   envInt("MATCH_SEARCH_LIMIT", 10),
		OracleBaseURL: envOr("ORACLE_BASE_URL", "https://api.openai.com/v1"),
		OracleAPIKey:  os.Getenv("ORACLE_API_KEY"),
		OracleModel:   envOr("ORACLE_MODEL", "gpt-4o-mini"),
		OracleTimeout: time.Duration(envInt("ORACLE_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}
