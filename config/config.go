package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/Abhimanyu14/material-symbols/fetcher"
	"github.com/Abhimanyu14/material-symbols/symbol"
)

const (
	configName = ".symbolPicker"
	EnvPrefix  = "SYMBOLPICKER"
)

type Config struct {
	AssetHost    string `mapstructure:"asset_host"`
	CatalogURL   string `mapstructure:"catalog_url"`
	TargetFamily string `mapstructure:"target_family"`
	CacheDir     string `mapstructure:"cache_dir"`
	HTTPTimeout  int    `mapstructure:"http_timeout"`
	Workers      int    `mapstructure:"workers"`
	LogLevel     string `mapstructure:"log_level"`

	ProjectDir    string `mapstructure:"project_dir"`
	DefaultModule string `mapstructure:"default_module"`
	Editor        string `mapstructure:"editor"`
	Overwrite     bool   `mapstructure:"overwrite"`

	PreviewPx int `mapstructure:"preview_px"`

	DefaultStyle  string `mapstructure:"default_style"`
	DefaultWeight int    `mapstructure:"default_weight"`
	DefaultGrade  int    `mapstructure:"default_grade"`
	DefaultSize   int    `mapstructure:"default_size"`
	DefaultFilled bool   `mapstructure:"default_filled"`
}

func DefaultConfig() *Config {
	return &Config{
		AssetHost:     symbol.DefaultAssetHost,
		CatalogURL:    fetcher.DefaultCatalogURL,
		TargetFamily:  fetcher.DefaultFamily,
		CacheDir:      "~/.symbolPicker/cache",
		HTTPTimeout:   int(fetcher.DefaultTimeout / time.Second),
		Workers:       8,
		LogLevel:      "info",
		ProjectDir:    ".",
		PreviewPx:     32,
		DefaultStyle:  symbol.DefaultStyle.Wire(),
		DefaultWeight: symbol.DefaultWeight.Value(),
		DefaultGrade:  symbol.DefaultGrade.Value(),
		DefaultSize:   symbol.DefaultSize.Value(),
		DefaultFilled: symbol.DefaultFilled,
	}
}

// SetDefaults registers every key on v so environment variables are honoured
// by Unmarshal even without a config file.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("asset_host", d.AssetHost)
	v.SetDefault("catalog_url", d.CatalogURL)
	v.SetDefault("target_family", d.TargetFamily)
	v.SetDefault("cache_dir", d.CacheDir)
	v.SetDefault("http_timeout", d.HTTPTimeout)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("project_dir", d.ProjectDir)
	v.SetDefault("default_module", d.DefaultModule)
	v.SetDefault("editor", d.Editor)
	v.SetDefault("overwrite", d.Overwrite)
	v.SetDefault("preview_px", d.PreviewPx)
	v.SetDefault("default_style", d.DefaultStyle)
	v.SetDefault("default_weight", d.DefaultWeight)
	v.SetDefault("default_grade", d.DefaultGrade)
	v.SetDefault("default_size", d.DefaultSize)
	v.SetDefault("default_filled", d.DefaultFilled)
}

// LoadConfig reads the global viper instance set up by the root command.
func LoadConfig() (*Config, error) {
	return Load(viper.GetViper())
}

func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	config := DefaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return config, nil
}

func SaveConfig(config *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return Save(config, path)
}

func Save(config *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("asset_host", config.AssetHost)
	v.Set("catalog_url", config.CatalogURL)
	v.Set("target_family", config.TargetFamily)
	v.Set("cache_dir", config.CacheDir)
	v.Set("http_timeout", config.HTTPTimeout)
	v.Set("workers", config.Workers)
	v.Set("log_level", config.LogLevel)
	v.Set("project_dir", config.ProjectDir)
	v.Set("default_module", config.DefaultModule)
	v.Set("editor", config.Editor)
	v.Set("overwrite", config.Overwrite)
	v.Set("preview_px", config.PreviewPx)
	v.Set("default_style", config.DefaultStyle)
	v.Set("default_weight", config.DefaultWeight)
	v.Set("default_grade", config.DefaultGrade)
	v.Set("default_size", config.DefaultSize)
	v.Set("default_filled", config.DefaultFilled)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func GetConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, configName+".yaml"), nil
}

func CreateDefaultConfig() error {
	return SaveConfig(DefaultConfig())
}

// ConfigName is the file name viper searches for, without extension.
func ConfigName() string { return configName }

// Options converts the default_* keys into picker options.
func (c *Config) Options() (symbol.Options, error) {
	style, err := symbol.ParseStyle(c.DefaultStyle)
	if err != nil {
		return symbol.Options{}, err
	}
	weight, err := symbol.ParseWeight(strconv.Itoa(c.DefaultWeight))
	if err != nil {
		return symbol.Options{}, err
	}
	grade, err := symbol.ParseGrade(strconv.Itoa(c.DefaultGrade))
	if err != nil {
		return symbol.Options{}, err
	}
	size, err := symbol.ParseSize(strconv.Itoa(c.DefaultSize))
	if err != nil {
		return symbol.Options{}, err
	}
	return symbol.Options{
		Filled: c.DefaultFilled,
		Grade:  grade,
		Size:   size,
		Style:  style,
		Weight: weight,
	}, nil
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// ResolvedCacheDir expands a leading ~ in CacheDir.
func (c *Config) ResolvedCacheDir() (string, error) {
	if c.CacheDir == "" {
		return "", nil
	}
	dir, err := homedir.Expand(c.CacheDir)
	if err != nil {
		return "", fmt.Errorf("failed to expand cache dir: %w", err)
	}
	return dir, nil
}

func ValidateConfig(config *Config) error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	found := false
	for _, level := range validLogLevels {
		if config.LogLevel == level {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("invalid log level: %s", config.LogLevel)
	}

	if config.Workers < 1 {
		return fmt.Errorf("invalid workers: %d", config.Workers)
	}
	if config.HTTPTimeout < 1 {
		return fmt.Errorf("invalid http timeout: %d", config.HTTPTimeout)
	}
	if config.PreviewPx < 8 || config.PreviewPx > 256 {
		return fmt.Errorf("invalid preview size: %d (want 8..256)", config.PreviewPx)
	}

	if _, err := config.Options(); err != nil {
		return fmt.Errorf("invalid default options: %w", err)
	}

	return nil
}
