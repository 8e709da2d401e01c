// Package config provides application configuration structures and helpers.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Config holds the configuration settings for the console.
type Config struct {
	ServerAddr      string // HR service address
	APIKey          string // Explicit API key, overrides the credentials file
	CredentialsFile string // Path to the cached credential file
	ClientTimeout   int    // HTTP client timeout (in seconds)
	OutputDir       string // Directory for rendered chart snapshots
	ViewerAddr      string // Listen address of the local dashboard viewer
	Logger          *zap.SugaredLogger
}

// Default returns a Config with built-in defaults.
func Default() *Config {
	return &Config{
		ServerAddr:      "http://localhost:8000",
		CredentialsFile: "./tmp/hr-credentials.json",
		ClientTimeout:   10,
		OutputDir:       "./tmp/charts",
		ViewerAddr:      "localhost:8090",
	}
}

// NewLogger builds the console logger. Output goes to stderr so that stdout
// stays clean for command results.
func NewLogger() *zap.SugaredLogger {
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stderr"}
	logger := zap.Must(logCfg.Build())
	return logger.Sugar()
}

// ApplyEnvironment overrides cfg with values from environment variables.
func ApplyEnvironment(cfg *Config) {
	if addr := os.Getenv("ADDRESS"); addr != "" {
		cfg.ServerAddr = addr
	}

	if key := os.Getenv("API_KEY"); key != "" {
		cfg.APIKey = key
	}

	if creds := os.Getenv("CREDENTIALS_FILE"); creds != "" {
		cfg.CredentialsFile = creds
	}

	clientTimeoutEnv := os.Getenv("CLIENT_TIMEOUT")
	if clientTimeoutEnv != "" {
		v, err := strconv.Atoi(clientTimeoutEnv)
		if err == nil {
			cfg.ClientTimeout = v
		} else {
			log.Printf("invalid CLIENT_TIMEOUT env var: %v", err)
		}
	}

	if dir := os.Getenv("OUTPUT_DIR"); dir != "" {
		cfg.OutputDir = dir
	}

	if addr := os.Getenv("VIEWER_ADDRESS"); addr != "" {
		cfg.ViewerAddr = addr
	}
}

// Normalize fixes up values after all sources are applied.
func Normalize(cfg *Config) {
	if !strings.HasPrefix(cfg.ServerAddr, "http://") && !strings.HasPrefix(cfg.ServerAddr, "https://") {
		cfg.ServerAddr = "http://" + cfg.ServerAddr
	}
	cfg.ServerAddr = strings.TrimRight(cfg.ServerAddr, "/")
}
