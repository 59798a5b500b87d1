package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" toml:"database"`
	Startup  StartupConfig  `mapstructure:"startup" toml:"startup"`
	Surfaces SurfacesConfig `mapstructure:"surfaces" toml:"surfaces"`
	Log      LogConfig      `mapstructure:"log" toml:"log"`
	UI       UIConfig       `mapstructure:"ui" toml:"ui"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path"`
}

// StartupConfig controls how long each startup task takes before it reports.
type StartupConfig struct {
	BackendDelay  time.Duration `mapstructure:"backend_delay" toml:"backend_delay"`
	FrontendDelay time.Duration `mapstructure:"frontend_delay" toml:"frontend_delay"`
}

// SurfacesConfig names the surfaces swapped once startup completes.
type SurfacesConfig struct {
	Loading string `mapstructure:"loading" toml:"loading"`
	Main    string `mapstructure:"main" toml:"main"`
}

// LogConfig holds logger settings. An empty File logs to stderr.
type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
	File  string `mapstructure:"file" toml:"file"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Headless    bool `mapstructure:"headless" toml:"headless"`
	RecentLimit int  `mapstructure:"recent_limit" toml:"recent_limit"`
}

const envConfigPath = "SPLASHGATE_CONFIG"

// Default returns the configuration used when no file or env overrides are present.
func Default() Config {
	home := os.Getenv("HOME")
	return Config{
		Database: DatabaseConfig{Path: filepath.Join(home, ".local", "share", "splashgate", "splashgate.db")},
		Startup:  StartupConfig{BackendDelay: 3 * time.Second, FrontendDelay: 250 * time.Millisecond},
		Surfaces: SurfacesConfig{Loading: "loading", Main: "main"},
		Log:      LogConfig{Level: "info", File: filepath.Join(home, ".local", "state", "splashgate", "splashgate.log")},
		UI:       UIConfig{RecentLimit: 5},
	}
}

// Load reads configuration from file and env. Env var overrides use prefix SPLASHGATE_.
func Load() (Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("startup.backend_delay", d.Startup.BackendDelay)
	v.SetDefault("startup.frontend_delay", d.Startup.FrontendDelay)
	v.SetDefault("surfaces.loading", d.Surfaces.Loading)
	v.SetDefault("surfaces.main", d.Surfaces.Main)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("ui.headless", d.UI.Headless)
	v.SetDefault("ui.recent_limit", d.UI.RecentLimit)

	v.SetConfigType("toml")

	cfgPath := os.Getenv(envConfigPath)
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "splashgate"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SPLASHGATE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// a missing default file is fine; an explicit path must exist and parse
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgPath != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the startup gate cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Surfaces.Loading) == "" || strings.TrimSpace(c.Surfaces.Main) == "" {
		return fmt.Errorf("config: surfaces.loading and surfaces.main must be set")
	}
	if c.Surfaces.Loading == c.Surfaces.Main {
		return fmt.Errorf("config: loading and main surface share the name %q", c.Surfaces.Main)
	}
	if c.Startup.BackendDelay < 0 || c.Startup.FrontendDelay < 0 {
		return fmt.Errorf("config: startup delays must not be negative")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("config: database.path must be set")
	}
	return nil
}

// WriteTemplate writes cfg as TOML to path, refusing to replace an existing file
// unless overwrite is set.
func WriteTemplate(path string, cfg Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(templateOf(cfg)); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// templateOf renders durations as strings so the file reads back through viper.
func templateOf(cfg Config) map[string]any {
	return map[string]any{
		"database": map[string]any{"path": cfg.Database.Path},
		"startup": map[string]any{
			"backend_delay":  cfg.Startup.BackendDelay.String(),
			"frontend_delay": cfg.Startup.FrontendDelay.String(),
		},
		"surfaces": map[string]any{"loading": cfg.Surfaces.Loading, "main": cfg.Surfaces.Main},
		"log":      map[string]any{"level": cfg.Log.Level, "file": cfg.Log.File},
		"ui":       map[string]any{"headless": cfg.UI.Headless, "recent_limit": cfg.UI.RecentLimit},
	}
}
