package toolrunner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// buildEnv inherits the current process environment and overlays
// key/value pairs from a .env file in dir, when present.
func buildEnv(dir string) []string {
	env := os.Environ()

	if dir == "" {
		return env
	}
	vars, err := godotenv.Read(filepath.Join(dir, ".env"))
	if err != nil {
		return env
	}
	for k, v := range vars {
		env = setEnv(env, k, v)
	}
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
