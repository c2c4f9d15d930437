package config

import (
	"os"
	"path/filepath"
)

// Config holds runtime settings for the marketplace CLI.
//
// Fields:
//   - EndpointURL: the GraphQL endpoint (single POST endpoint).
//   - SessionFile: path of the persisted session state, shared by all
//     instances that should observe each other's logins/logouts.
//   - RegisterEmailDomain: required email suffix for registration
//     (e.g. "colorado.edu"); empty disables the check.
type Config struct {
	EndpointURL         string
	SessionFile         string
	RegisterEmailDomain string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.EndpointURL = "http://localhost:8000/graphql/"
	c.SessionFile = defaultSessionFile()
	c.RegisterEmailDomain = ""
}

// defaultSessionFile places the session under the user config dir, falling
// back to the working directory when none is resolvable.
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(dir, "marketcli", "session.json")
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including an optional .env file), a JSON file (if
// one is given via -c/-config) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
