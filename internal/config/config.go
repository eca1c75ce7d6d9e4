// Package config loads the settings file that points the CLI at the
// task root directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath returns the settings file location, ~/.todo-cli.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".todo-cli"), nil
}

// Settings is the key-value mapping read from the settings file.
type Settings struct {
	TaskDir string `yaml:"task_dir"`
}

// Load reads and validates the settings file at path. Any failure here
// is fatal to the caller: no task operation may run without a task_dir.
func Load(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("settings file %s: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Settings{}, fmt.Errorf("settings file %s: %w", path, err)
	}
	s.TaskDir = expandHome(strings.TrimSpace(s.TaskDir))
	if s.TaskDir == "" {
		return Settings{}, fmt.Errorf("settings file %s: task_dir is required", path)
	}
	return s, nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) || path == "~" {
		home, _ := os.UserHomeDir()
		if home != "" {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
