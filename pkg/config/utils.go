package config

import (
	"os"
	"path/filepath"
)

// FindEnvTest walks up from the working directory and returns the first
// file named filename, .env when empty. Package tests run from nested
// directories use it to reach the env file at the module root.
func FindEnvTest(filename string) (string, error) {
	if filename == "" {
		filename = ".env"
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		path := filepath.Join(dir, filename)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
