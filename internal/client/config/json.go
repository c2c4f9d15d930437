package config

import (
	"encoding/json"
	"os"

	"github.com/buffsmarket/marketcli/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After
// parsing, non-empty values are copied into the runtime Config.
type JsonConfig struct {
	EndpointURL         string `json:"endpoint_url"`
	SessionFile         string `json:"session_file"`
	RegisterEmailDomain string `json:"register_email_domain"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path is resolved from command-line flags (-c or -config) via
// flagx.JsonConfigFlags(); when no path is given, nothing is loaded.
// Only fields present and non-empty in the file override the Config.
// Panics on read or unmarshal errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EndpointURL != "" {
		cfg.EndpointURL = jc.EndpointURL
	}
	if jc.SessionFile != "" {
		cfg.SessionFile = jc.SessionFile
	}
	if jc.RegisterEmailDomain != "" {
		cfg.RegisterEmailDomain = jc.RegisterEmailDomain
	}
}
