package config

import (
	"wtqbench/internal/spec"
	"wtqbench/internal/table"
)

// Defaults applied by Normalize when the config leaves a field empty.
const (
	DefaultMaxTableBytes = 10000
	DefaultMaxRows       = 50
	DefaultWorkers       = 1
)

func Normalize(cfg *spec.Config) {
	if cfg.DefaultAgent == "" && len(cfg.Agents) == 1 {
		cfg.DefaultAgent = cfg.Agents[0].ID
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
	if cfg.Dataset.CacheDir == "" {
		cfg.Dataset.CacheDir = DefaultCacheDir
	}
	if cfg.Dataset.MaxTableBytes == 0 {
		cfg.Dataset.MaxTableBytes = DefaultMaxTableBytes
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	for i := range cfg.Tasks {
		task := &cfg.Tasks[i]
		if task.Agent == "" {
			task.Agent = cfg.DefaultAgent
		}
		if task.Format.Style == "" {
			task.Format.Style = "token_efficient"
		}
		if task.Format.Delimiter == "" {
			task.Format.Delimiter = table.DefaultDelimiter
		}
		if task.Format.MaxRows == 0 {
			task.Format.MaxRows = DefaultMaxRows
		}
		if task.Format.RowLimit == 0 {
			task.Format.RowLimit = table.DefaultRowLimit
		}
		if task.Format.ColumnLimit == 0 {
			task.Format.ColumnLimit = table.DefaultColumnLimit
		}
	}
}
