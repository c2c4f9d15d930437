package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from environment variables, loading a
// .env file first when one is present in the working directory.
func parseEnv(c *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("MARKETCLI_ENDPOINT"); v != "" {
		c.EndpointURL = v
	}
	if v := os.Getenv("MARKETCLI_SESSION_FILE"); v != "" {
		c.SessionFile = v
	}
	if v := os.Getenv("MARKETCLI_EMAIL_DOMAIN"); v != "" {
		c.RegisterEmailDomain = v
	}
}
