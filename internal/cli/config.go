package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mdvault/internal/config"

	"github.com/spf13/viper"
)

// Settings is the vaultctl configuration.
// Precedence: flags > MDVAULT_* env > ~/.mdvault/config.yaml > defaults.
type Settings struct {
	Backend     string        `mapstructure:"backend"`
	APIURL      string        `mapstructure:"api_url"`
	Token       string        `mapstructure:"token"`
	Timeout     time.Duration `mapstructure:"timeout"`
	RateLimit   float64       `mapstructure:"rate_limit"`
	SQLitePath  string        `mapstructure:"sqlite_path"`
	DatabaseURL string        `mapstructure:"database_url"`
	TablePrefix string        `mapstructure:"table_prefix"`
	JWTSecret   string        `mapstructure:"jwt_secret"`
	Debug       bool          `mapstructure:"debug"`
}

// LoadSettings reads settings through v. An empty cfgFile looks for
// ~/.mdvault/config.yaml; a missing file is not an error.
func LoadSettings(v *viper.Viper, cfgFile string) (*Settings, error) {
	v.SetEnvPrefix("MDVAULT")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("backend", config.StoreHTTP)
	v.SetDefault("api_url", "http://localhost:8000/api")
	v.SetDefault("timeout", 15*time.Second)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("sqlite_path", "data/vault.db")
	v.SetDefault("table_prefix", "dev_")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".mdvault"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &s, nil
}
