// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"taxsync/internal/logging"
)

// Config holds every setting the CLI and server need
type Config struct {
	DBHost          string `mapstructure:"db_host"`
	DBPort          string `mapstructure:"db_port"`
	DBUser          string `mapstructure:"db_user"`
	DBPassword      string `mapstructure:"db_password"`
	DBName          string `mapstructure:"db_name"`
	DBSSLMode       string `mapstructure:"db_sslmode"`
	DBTablePrefix   string `mapstructure:"db_table_prefix"`
	DefaultCountry  string `mapstructure:"shop_default_country"`
	DeclarationsDir string `mapstructure:"declarations_dir"`
	Port            string `mapstructure:"port"`
	JWTSecret       string `mapstructure:"jwt_secret"`
	GinMode         string `mapstructure:"gin_mode"`
	LogLevel        string `mapstructure:"log_level"`
	LogFormat       string `mapstructure:"log_format"`
	CORSOrigins     string `mapstructure:"cors_origins"`
}

var defaults = map[string]string{
	"db_host":              "localhost",
	"db_port":              "5432",
	"db_user":              "postgres",
	"db_password":          "postgres",
	"db_name":              "postgres",
	"db_sslmode":           "disable",
	"db_table_prefix":      "wp_",
	"shop_default_country": "",
	"declarations_dir":     "",
	"port":                 "8080",
	"jwt_secret":           "",
	"gin_mode":             "debug",
	"log_level":            "info",
	"log_format":           "json",
	"cors_origins":         "http://localhost:5173",
}

// Load reads envFile (a missing file is fine) and then the process environment.
// Environment variables win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that would only fail later
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", c.LogFormat)
	}
	if c.DefaultCountry != "" && len(c.Country()) != 2 {
		return fmt.Errorf("invalid shop default country: %q", c.DefaultCountry)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid gin mode: %s", c.GinMode)
	}
	if c.GinMode == "release" && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in release mode")
	}
	return nil
}

// DSN builds the postgres connection URL
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// Country returns the lower-case two letter code of the shop base location.
// "FR" and "US:CA" style values are accepted. Empty means the shop's own
// woocommerce_default_country option decides.
func (c *Config) Country() string {
	return NormalizeCountry(c.DefaultCountry)
}

// NormalizeCountry keeps the first two letters of a location, lower-cased
func NormalizeCountry(location string) string {
	code := strings.ToLower(strings.TrimSpace(location))
	if i := strings.IndexByte(code, ':'); i >= 0 {
		code = code[:i]
	}
	if len(code) > 2 {
		code = code[:2]
	}
	return code
}

// Origins splits the CORS origin list
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Secret returns the JWT signing key, with a development fallback
func (c *Config) Secret() []byte {
	if c.JWTSecret == "" {
		return []byte("default_super_secret_key") // development only, Validate blocks it in release mode
	}
	return []byte(c.JWTSecret)
}
