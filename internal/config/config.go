package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/tienedev/shipkit-cli/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys. Each is also readable from the environment as
// SHIPKIT_<KEY>, e.g. SHIPKIT_LOCAL_REGISTRY.
const (
	KeyLocalRegistry = "local_registry"
	KeyRegistryURL   = "registry_url"
	KeyTimeout       = "timeout"
	KeyDebug         = "debug"
)

// DefaultTimeout bounds every registry request.
const DefaultTimeout = 30 * time.Second

// Keys lists the settings accepted by `shipkit config set`.
var Keys = []string{KeyLocalRegistry, KeyRegistryURL, KeyTimeout, KeyDebug}

// Settings is the resolved configuration for a single invocation.
type Settings struct {
	LocalRegistry string
	RegistryURL   string
	Timeout       time.Duration
	Debug         bool
}

// Dir returns the path to the ShipKit settings directory (~/.shipkit/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the settings file (~/.shipkit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the settings directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the settings file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyRegistryURL, branding.RegistryURL())
	viper.SetDefault(KeyTimeout, DefaultTimeout.String())
	viper.SetDefault(KeyDebug, false)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Current returns the settings resolved from file, environment and defaults.
// The plain DEBUG variable is honored as well as SHIPKIT_DEBUG.
func Current() Settings {
	s := Settings{
		LocalRegistry: viper.GetString(KeyLocalRegistry),
		RegistryURL:   viper.GetString(KeyRegistryURL),
		Timeout:       viper.GetDuration(KeyTimeout),
		Debug:         viper.GetBool(KeyDebug) || os.Getenv("DEBUG") != "",
	}
	if s.RegistryURL == "" {
		s.RegistryURL = branding.RegistryURL()
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	return s
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// IsKnownKey reports whether key is a recognised setting.
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	if key == KeyTimeout {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid timeout %q: %w", value, err)
		}
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
