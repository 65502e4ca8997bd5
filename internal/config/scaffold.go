package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1

dataset:
  cache_dir: ".wtqbench/cache"
  max_table_bytes: 10000

output:
  dir: ".wtqbench/results"

agents:
  - id: default
    type: builtin
    provider: openrouter
    model: "gpt-4.1-mini"
    temperature: 0.0

default_agent: default

tasks:
  - id: test_split
    type: denotation_eval
    format:
      style: token_efficient
      delimiter: "|"
      max_rows: 50

rate_limit:
  requests_per_minute: 60

workers: 4
`

// Scaffold writes a starter config file. It refuses to overwrite an
// existing one.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
