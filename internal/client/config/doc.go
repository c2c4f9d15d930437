// Package config loads runtime configuration for the marketplace CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, including an optional .env file in the working
//     directory (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   GraphQL endpoint URL
//	-s string   path of the session state file
//	-d string   required email domain for registration
//
// Environment variables
//
//	MARKETCLI_ENDPOINT       GraphQL endpoint URL
//	MARKETCLI_SESSION_FILE   path of the session state file
//	MARKETCLI_EMAIL_DOMAIN   required email domain for registration
//
// # JSON schema
//
//	{
//	  "endpoint_url": "http://localhost:8000/graphql/",
//	  "session_file": "/home/ralphie/.config/marketcli/session.json",
//	  "register_email_domain": "colorado.edu"
//	}
//
// Primary API
//
//   - type Config                     — holds EndpointURL, SessionFile and RegisterEmailDomain
//   - func LoadConfig() *Config       — builds Config by applying defaults, env, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
