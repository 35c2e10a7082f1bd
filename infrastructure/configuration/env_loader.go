package configuration

import (
	"os"
	"strings"
)

// LoadEnvFromFile reads KEY=VALUE files (config.env, .env) into the process
// environment. Variables already set in the environment win over file values.
// Blank lines and # comments are skipped; missing files are not an error.
func LoadEnvFromFile(paths ...string) {
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(raw), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			key, value, found := strings.Cut(line, "=")
			if !found {
				continue
			}
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			// values may be quoted: KEY="VALUE" or KEY='VALUE'
			value = strings.Trim(strings.TrimSpace(value), `"'`)
			if _, exists := os.LookupEnv(key); !exists {
				_ = os.Setenv(key, value)
			}
		}
	}
}
