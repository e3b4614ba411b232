package formrelay

import (
	"fmt"
	"slices"

	"github.com/spf13/viper"
)

// RemoteConfig selects and configures the remote backend driver.
type RemoteConfig struct {
	Driver     string `mapstructure:"driver"`      // "postgrest" (REST insert) or "postgres" (direct pgx insert)
	URL        string `mapstructure:"url"`         // Base URL of the PostgREST endpoint
	APIKey     string `mapstructure:"api_key"`     // API key sent with every REST insert
	ConnString string `mapstructure:"conn_string"` // Postgres DSN for the pgx driver
}

// DashboardConfig holds the customer-service dashboard credentials and token secret.
type DashboardConfig struct {
	JWTSecret    string `mapstructure:"jwt_secret"`
	Email        string `mapstructure:"email"`
	PasswordHash string `mapstructure:"password_hash"` // bcrypt hash of the dashboard password
}

// Config is the relay configuration, persisted as config.yaml in the config directory.
type Config struct {
	viper       *viper.Viper
	ConfigDir   string          `mapstructure:"config_dir"`   // Current config dir
	DBFile      string          `mapstructure:"db_file"`      // SQLite database file path
	ListenAddr  string          `mapstructure:"listen_addr"`  // Address the API server binds to
	ListenPort  string          `mapstructure:"listen_port"`  // Port the API server binds to
	CORSOrigins []string        `mapstructure:"cors_origins"` // Origins allowed to call the public submit endpoint
	Remote      RemoteConfig    `mapstructure:"remote"`
	Dashboard   DashboardConfig `mapstructure:"dashboard"`
}

// AddCORSOrigin appends an allowed origin and persists the configuration file.
func (cfg *Config) AddCORSOrigin(origin string) error {
	if slices.Contains(cfg.CORSOrigins, origin) {
		return nil
	}
	cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
	cfg.viper.Set("cors_origins", cfg.CORSOrigins)
	if err := cfg.viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	if err := cfg.viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshalling config to struct : %w", err)
	}
	return nil
}

// DeleteCORSOrigin removes an allowed origin and persists the configuration file.
func (cfg *Config) DeleteCORSOrigin(origin string) error {
	cfg.CORSOrigins = slices.DeleteFunc(cfg.CORSOrigins, func(o string) bool {
		return o == origin
	})
	cfg.viper.Set("cors_origins", cfg.CORSOrigins)
	if err := cfg.viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	if err := cfg.viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshalling config to struct : %w", err)
	}
	return nil
}
