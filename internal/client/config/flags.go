package config

import (
	"flag"
	"os"

	"github.com/buffsmarket/marketcli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   GraphQL endpoint URL (default from Config)
//	-s string   path of the session state file (default from Config)
//	-d string   required email domain for registration (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointURL, "a", cfg.EndpointURL, "GraphQL endpoint URL")
	fs.StringVar(&cfg.SessionFile, "s", cfg.SessionFile, "path of the session state file")
	fs.StringVar(&cfg.RegisterEmailDomain, "d", cfg.RegisterEmailDomain, "required email domain for registration")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
