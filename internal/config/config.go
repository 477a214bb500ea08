// Package config handles objtool configuration loading and management.
package config

// Config holds all objtool settings.
type Config struct {
	Loader  LoaderConfig  `yaml:"loader"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoaderConfig holds OBJ parsing settings.
type LoaderConfig struct {
	Triangulate bool   `yaml:"triangulate"`  // Split polygons into triangle fans
	MaterialDir string `yaml:"material_dir"` // Base directory for mtllib lookups, empty means alongside the OBJ
}

// OutputConfig holds report formatting settings.
type OutputConfig struct {
	MaxRows int  `yaml:"max_rows"` // Truncate tables after this many rows, 0 means unlimited
	Borders bool `yaml:"borders"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Loader: LoaderConfig{
			Triangulate: true,
			MaterialDir: "",
		},
		Output: OutputConfig{
			MaxRows: 0,
			Borders: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
