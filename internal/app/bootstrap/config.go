// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the service needs at startup.
//
// Values are loaded from an optional config file (cracken.yaml in the
// working directory or /etc/cracken), overridden by CRACKEN_* environment
// variables: CRACKEN_ADDR, CRACKEN_DB_PATH, CRACKEN_JWT_SECRET, and so on.
type Config struct {
	Env         string        `mapstructure:"env"`
	Addr        string        `mapstructure:"addr"`
	DBPath      string        `mapstructure:"db_path"`
	JWTSecret   string        `mapstructure:"jwt_secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	LogLevel    string        `mapstructure:"log_level"`
}

// LoadConfig reads configuration from file and environment. The JWT secret
// has no default; the service refuses to start without one.
func LoadConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("env", "dev")
	v.SetDefault("addr", ":8080")
	v.SetDefault("db_path", "cracken.db")
	// Registered with an empty default so the env override binds; presence
	// is enforced below.
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_expiry", "24h")
	v.SetDefault("log_level", "info")

	v.SetConfigName("cracken")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/cracken")

	v.SetEnvPrefix("CRACKEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt_secret is required (set CRACKEN_JWT_SECRET)")
	}
	return cfg, nil
}
