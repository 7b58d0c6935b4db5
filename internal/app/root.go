package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const configFileName = "wishlist_config.yaml"

// FindRoot walks upward from the working directory until it finds the run
// config, so the tool can be started from anywhere inside the project.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	dir := cwd
	for i := 0; i < 10; i++ {
		probe := filepath.Join(dir, configFileName)
		if _, err := os.Stat(probe); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("cannot find app root from %q (expected to find %s in this dir or any parent)", cwd, configFileName)
}
