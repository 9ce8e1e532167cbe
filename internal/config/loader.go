package config

import (
	"fmt"

	"github.com/opencert/certhub/internal/db"
	"github.com/spf13/viper"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// NotifyConfig holds email notification settings. An empty API key selects
// the no-op sender.
type NotifyConfig struct {
	ResendAPIKey string
	FromAddress  string
}

// Config is the full application configuration.
type Config struct {
	Database db.Config
	Server   ServerConfig
	Notify   NotifyConfig
	// StrictStatus flags unrecognized pass/fail roster cells as row errors.
	StrictStatus bool
}

// Load reads config.yaml from the given path with environment overrides
// (CERTHUB_DATABASE_HOST and friends). Missing files fall back to defaults.
func Load(configPath string) (Config, error) {
	cfg := Config{
		Database: db.DefaultConfig(),
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Notify: NotifyConfig{
			FromAddress: "CertHub <noreply@certhub.local>",
		},
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("CERTHUB")

	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")
	v.BindEnv("server.addr")
	v.BindEnv("notify.resend_api_key")
	v.BindEnv("notify.from_address")
	v.BindEnv("roster.strict_status")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found? Use defaults + env.
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}
	if v.IsSet("server.addr") {
		cfg.Server.Addr = v.GetString("server.addr")
	}
	if v.IsSet("server.allowed_origins") {
		cfg.Server.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	}
	if v.IsSet("notify.resend_api_key") {
		cfg.Notify.ResendAPIKey = v.GetString("notify.resend_api_key")
	}
	if v.IsSet("notify.from_address") {
		cfg.Notify.FromAddress = v.GetString("notify.from_address")
	}
	if v.IsSet("roster.strict_status") {
		cfg.StrictStatus = v.GetBool("roster.strict_status")
	}

	return cfg, nil
}
