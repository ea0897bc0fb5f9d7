package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	User      UserConfig `yaml:"user" mapstructure:"user"`
	Theme     string     `yaml:"theme" mapstructure:"theme"`
	Table     bool       `yaml:"table" mapstructure:"table"`
	Seeds     []string   `yaml:"seeds" mapstructure:"seeds"`
	ExportDir string     `yaml:"export_dir" mapstructure:"export_dir"`
	Log       LogConfig  `yaml:"log" mapstructure:"log"`
	Clip      ClipConfig `yaml:"clip" mapstructure:"clip"`
}

type UserConfig struct {
	ID   int    `yaml:"id" mapstructure:"id"`
	Name string `yaml:"name" mapstructure:"name"`
	Role string `yaml:"role" mapstructure:"role"`
}

type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}

type ClipConfig struct {
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent string        `yaml:"user_agent" mapstructure:"user_agent"`
}

var envVarRe = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

func expandEnv(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

func DefaultConfig() *Config {
	return &Config{
		User:      UserConfig{ID: 1, Name: "Alice", Role: "Researcher"},
		Theme:     "auto",
		Seeds:     []string{},
		ExportDir: ".",
		Log:       LogConfig{Level: "info"},
		Clip: ClipConfig{
			Timeout:   30 * time.Second,
			UserAgent: "Mozilla/5.0 (compatible; SagePKM/1.0)",
		},
	}
}

// Dir returns the per-user configuration directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sagepkm")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sagepkm")
}

// Path returns the default location of config.yaml.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads configuration from path, or from the usual search locations
// when path is empty. A missing config file in the search locations is not
// an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	setDefaults(v, cfg)

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix("SAGEPKM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.ExportDir = expandEnv(cfg.ExportDir)
	cfg.Log.File = expandEnv(cfg.Log.File)
	for i, s := range cfg.Seeds {
		cfg.Seeds[i] = expandEnv(s)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so environment overrides are seen by
// Unmarshal even when no config file sets them.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("user.id", cfg.User.ID)
	v.SetDefault("user.name", cfg.User.Name)
	v.SetDefault("user.role", cfg.User.Role)
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("table", cfg.Table)
	v.SetDefault("seeds", cfg.Seeds)
	v.SetDefault("export_dir", cfg.ExportDir)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("clip.timeout", cfg.Clip.Timeout)
	v.SetDefault("clip.user_agent", cfg.Clip.UserAgent)
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "fatal": true}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.User.ID < 1 {
		return fmt.Errorf("config: user.id must be positive, got %d", c.User.ID)
	}
	if strings.TrimSpace(c.User.Name) == "" {
		return fmt.Errorf("config: user.name is required")
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("config: log.level %q is invalid (must be debug, info, warn, error or fatal)", c.Log.Level)
	}
	if c.Clip.Timeout <= 0 {
		return fmt.Errorf("config: clip.timeout must be positive")
	}
	if c.Theme == "" {
		c.Theme = "auto"
	}
	if c.ExportDir == "" {
		c.ExportDir = "."
	}
	return nil
}
