package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-a", "http://localhost:9090", "-t", "10", "-d", "x.db", "-l", "debug", "-o", "out"},
			expected: &Config{ServerURL: "http://localhost:9090", RequestTimeout: 10 * time.Second, DatabasePath: "x.db", LogLevel: "debug", DocumentsDir: "out"}},
		{name: "config flag is ignored", args: []string{"cmd", "-c", "cfg.json", "-a=http://h"},
			expected: &Config{ServerURL: "http://h"}},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(tt.expected, config))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
