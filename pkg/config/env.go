package config

import "os"

// GetEnv returns the value of key, or fallback when it is unset or empty.
// The entry points use it for ENV_FILE before any configuration is loaded.
func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// IsEnvSet reports whether key holds a non-empty value.
func IsEnvSet(key string) bool {
	return GetEnv(key, "") != ""
}
