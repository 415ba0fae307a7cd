package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "smudge"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "SMUDGE"
)

// stageKeys is the set of stage names accepted under the stages section.
// Viper silently carries unrecognized keys through unmarshaling, so a
// misspelled stage name would otherwise be dropped without a trace.
var stageKeys = map[string]bool{
	"gaussian_noise": true,
	"speckle":        true,
	"salt_pepper":    true,
	"gaussian_blur":  true,
	"box_blur":       true,
	"max_filter":     true,
	"min_filter":     true,
	"resize":         true,
	"rotate":         true,
	"perspective":    true,
}

// Loader handles loading configuration from files, environment variables
// and bound flags.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	// Use the global viper instance to ensure flag bindings work
	return &Loader{v: viper.GetViper()}
}

// Load loads configuration from files, environment variables, and sets
// defaults. The result is validated.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")

	l.addConfigPaths()
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults and env vars apply.
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := l.validateStageKeys(); err != nil {
		return nil, err
	}

	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// LoadWithFile loads configuration from a specific file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}

	l.v.SetConfigFile(configFile)
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
	}

	if err := l.validateStageKeys(); err != nil {
		return nil, err
	}

	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// validateStageKeys rejects stage names not in the canonical set. Viper
// lowercases keys, so the comparison is case-insensitive.
func (l *Loader) validateStageKeys() error {
	for key := range l.v.GetStringMap("stages") {
		if !stageKeys[key] {
			return fmt.Errorf("unknown stage %q in configuration", key)
		}
	}

	return nil
}

// GetConfigFileUsed returns the path of the config file used.
func (l *Loader) GetConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// addConfigPaths adds the standard configuration search paths.
func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
	}

	l.v.AddConfigPath("/etc/smudge")

	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		l.v.AddConfigPath(filepath.Join(configDir, "smudge"))
	} else if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(filepath.Join(home, ".config", "smudge"))
	}
}

// setupEnvironmentVariables configures environment variable handling.
func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// setDefaults sets default values for all configuration options.
func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	// Global settings
	l.v.SetDefault("log_level", defaults.LogLevel)
	l.v.SetDefault("verbose", defaults.Verbose)

	// Dataset and output
	l.v.SetDefault("images_dir", defaults.ImagesDir)
	l.v.SetDefault("annotations", defaults.Annotations)
	l.v.SetDefault("output_dir", defaults.OutputDir)
	l.v.SetDefault("count", defaults.Count)
	l.v.SetDefault("seed", defaults.Seed)
	l.v.SetDefault("workers", defaults.Workers)

	// Stage defaults
	l.v.SetDefault("stages.gaussian_noise.enabled", defaults.Stages.GaussianNoise.Enabled)
	l.v.SetDefault("stages.gaussian_noise.mean.min", defaults.Stages.GaussianNoise.Mean.Min)
	l.v.SetDefault("stages.gaussian_noise.mean.max", defaults.Stages.GaussianNoise.Mean.Max)
	l.v.SetDefault("stages.gaussian_noise.stddev.min", defaults.Stages.GaussianNoise.Stddev.Min)
	l.v.SetDefault("stages.gaussian_noise.stddev.max", defaults.Stages.GaussianNoise.Stddev.Max)

	l.v.SetDefault("stages.speckle.enabled", defaults.Stages.Speckle.Enabled)
	l.v.SetDefault("stages.speckle.mean.min", defaults.Stages.Speckle.Mean.Min)
	l.v.SetDefault("stages.speckle.mean.max", defaults.Stages.Speckle.Mean.Max)
	l.v.SetDefault("stages.speckle.stddev.min", defaults.Stages.Speckle.Stddev.Min)
	l.v.SetDefault("stages.speckle.stddev.max", defaults.Stages.Speckle.Stddev.Max)

	l.v.SetDefault("stages.salt_pepper.enabled", defaults.Stages.SaltPepper.Enabled)
	l.v.SetDefault("stages.salt_pepper.amount.min", defaults.Stages.SaltPepper.Amount.Min)
	l.v.SetDefault("stages.salt_pepper.amount.max", defaults.Stages.SaltPepper.Amount.Max)
	l.v.SetDefault("stages.salt_pepper.salt_vs_pepper.min", defaults.Stages.SaltPepper.SaltVsPepper.Min)
	l.v.SetDefault("stages.salt_pepper.salt_vs_pepper.max", defaults.Stages.SaltPepper.SaltVsPepper.Max)

	l.v.SetDefault("stages.gaussian_blur.enabled", defaults.Stages.GaussianBlur.Enabled)
	l.v.SetDefault("stages.gaussian_blur.radius.min", defaults.Stages.GaussianBlur.Radius.Min)
	l.v.SetDefault("stages.gaussian_blur.radius.max", defaults.Stages.GaussianBlur.Radius.Max)

	l.v.SetDefault("stages.box_blur.enabled", defaults.Stages.BoxBlur.Enabled)
	l.v.SetDefault("stages.box_blur.radius.min", defaults.Stages.BoxBlur.Radius.Min)
	l.v.SetDefault("stages.box_blur.radius.max", defaults.Stages.BoxBlur.Radius.Max)

	l.v.SetDefault("stages.max_filter.enabled", defaults.Stages.MaxFilter.Enabled)
	l.v.SetDefault("stages.max_filter.radius.min", defaults.Stages.MaxFilter.Radius.Min)
	l.v.SetDefault("stages.max_filter.radius.max", defaults.Stages.MaxFilter.Radius.Max)

	l.v.SetDefault("stages.min_filter.enabled", defaults.Stages.MinFilter.Enabled)
	l.v.SetDefault("stages.min_filter.radius.min", defaults.Stages.MinFilter.Radius.Min)
	l.v.SetDefault("stages.min_filter.radius.max", defaults.Stages.MinFilter.Radius.Max)

	l.v.SetDefault("stages.resize.enabled", defaults.Stages.Resize.Enabled)
	l.v.SetDefault("stages.resize.factor.min", defaults.Stages.Resize.Factor.Min)
	l.v.SetDefault("stages.resize.factor.max", defaults.Stages.Resize.Factor.Max)

	l.v.SetDefault("stages.rotate.enabled", defaults.Stages.Rotate.Enabled)
	l.v.SetDefault("stages.rotate.max_degrees", defaults.Stages.Rotate.MaxDegrees)

	l.v.SetDefault("stages.perspective.enabled", defaults.Stages.Perspective.Enabled)
	l.v.SetDefault("stages.perspective.jitter.min", defaults.Stages.Perspective.Jitter.Min)
	l.v.SetDefault("stages.perspective.jitter.max", defaults.Stages.Perspective.Jitter.Max)

	// OCR defaults
	l.v.SetDefault("ocr.enabled", defaults.OCR.Enabled)
	l.v.SetDefault("ocr.tesseract_path", defaults.OCR.TesseractPath)
	l.v.SetDefault("ocr.timeout_sec", defaults.OCR.TimeoutSec)
}

// GetConfigSearchPaths returns the paths where configuration files are searched.
func GetConfigSearchPaths() []string {
	paths := []string{"."}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home)
		paths = append(paths, filepath.Join(home, ".config", "smudge"))
	}

	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		paths = append(paths, filepath.Join(configDir, "smudge"))
	}

	paths = append(paths, "/etc/smudge")

	return paths
}
