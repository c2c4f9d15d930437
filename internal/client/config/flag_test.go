package config

import (
	"flag"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	// Test cases
	tests := []struct {
		initial  Config
		expected *Config
		name     string
		args     []string
	}{
		{name: "Test1 all flags", args: []string{"cmd", "-a", "http://api.example:9000/graphql/", "-s", "/tmp/s.json", "-d", "colorado.edu"},
			expected: &Config{EndpointURL: "http://api.example:9000/graphql/", SessionFile: "/tmp/s.json", RegisterEmailDomain: "colorado.edu"}},
		{name: "Test2 endpoint only", args: []string{"cmd", "-a", "http://api.example:9000/graphql/"},
			expected: &Config{EndpointURL: "http://api.example:9000/graphql/"}},
		{name: "Test3 no flags keep defaults", args: []string{"cmd"},
			initial:  Config{EndpointURL: "http://defaults:1234/graphql/", SessionFile: "default.json"},
			expected: &Config{EndpointURL: "http://defaults:1234/graphql/", SessionFile: "default.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := tt.initial

			require.NotPanics(t, func() { parseFlags(&config) })
			assert.Empty(t, cmp.Diff(&config, tt.expected))
		})
	}
}
