package spec

type Config struct {
	Version      int             `yaml:"version"`
	Dataset      DatasetConfig   `yaml:"dataset"`
	Output       OutputConfig    `yaml:"output"`
	Agents       []AgentConfig   `yaml:"agents"`
	DefaultAgent string          `yaml:"default_agent"`
	Tasks        []TaskConfig    `yaml:"tasks"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
	Workers      int             `yaml:"workers"`
}

type DatasetConfig struct {
	CacheDir      string `yaml:"cache_dir"`
	DataDir       string `yaml:"data_dir"`
	MaxTableBytes int    `yaml:"max_table_bytes"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type AgentConfig struct {
	ID          string  `yaml:"id"`
	Type        string  `yaml:"type"`
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

type TaskConfig struct {
	ID           string       `yaml:"id"`
	Type         string       `yaml:"type"`
	Agent        string       `yaml:"agent"`
	Instructions string       `yaml:"instructions"`
	Limit        int          `yaml:"limit"`
	Format       FormatConfig `yaml:"format"`
}

type FormatConfig struct {
	Style       string `yaml:"style"`
	Delimiter   string `yaml:"delimiter"`
	MaxRows     int    `yaml:"max_rows"`
	RowLimit    int    `yaml:"row_limit"`
	ColumnLimit int    `yaml:"column_limit"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
}
