package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"photo-mapper/internal/database"
	"photo-mapper/internal/logging"
)

// Config holds all application settings.
type Config struct {
	// DatabasePath is the SQLite file holding the photo index.
	DatabasePath string `mapstructure:"database"`
	// TemplatePath is the HTML template consumed by map generation.
	TemplatePath string `mapstructure:"template"`
	// OutputPath is where the generated map document is written.
	OutputPath string `mapstructure:"output"`
	// BufferSize is the insert buffer threshold during scans.
	BufferSize int `mapstructure:"buffer_size"`
	// Workers is the default scan worker count (0 = auto).
	Workers int `mapstructure:"workers"`
	// Debug enables debug-level logging.
	Debug bool `mapstructure:"debug"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database", filepath.Join("data", "photo_exif.db"))
	v.SetDefault("template", filepath.Join("web", "map_template.html"))
	v.SetDefault("output", filepath.Join("output", "photo_map.html"))
	v.SetDefault("buffer_size", database.DefaultBufferSize)
	v.SetDefault("workers", 0)
	v.SetDefault("debug", false)
}

// LoadConfig reads settings from an optional config.yaml (current directory
// or ~/.config/photo-mapper) and PHOTO_MAPPER_* environment variables, on
// top of built-in defaults. A missing config file is not an error.
func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "photo-mapper"))
	}

	v.SetEnvPrefix("PHOTO_MAPPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		logging.Debug("Loaded configuration from %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if config.Debug {
		logging.SetLevel(logging.LevelDebug)
	}

	return &config, nil
}

// EnsureParentDir creates the directory containing path so that the
// database and map output can be written on first run.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
