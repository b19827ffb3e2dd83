package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is loaded once at startup and treated as immutable afterwards.
type Config struct {
	HTTPAddress string
	DatabaseURL string

	JWTPrivateKeyPath  string
	RefreshTokenSecret string
	Issuer             string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	CookieDomain string
	CookieSecure bool

	AllowedOrigins   []string
	AllowCredentials bool

	BcryptCost int
}

var requiredKeys = []string{
	"DATABASE_URL",
	"JWT_PRIVATE_KEY_PATH",
	"REFRESH_TOKEN_SECRET",
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	for _, key := range []string{
		"HTTP_ADDRESS", "DATABASE_URL",
		"JWT_PRIVATE_KEY_PATH", "REFRESH_TOKEN_SECRET", "JWT_ISSUER",
		"ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL",
		"COOKIE_DOMAIN", "COOKIE_SECURE",
		"ALLOWED_ORIGINS", "ALLOW_CREDENTIALS",
		"BCRYPT_COST",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	v.SetDefault("HTTP_ADDRESS", ":8080")
	v.SetDefault("JWT_ISSUER", "auth-service")
	v.SetDefault("ACCESS_TOKEN_TTL", "1h")
	// One year, the refresh-session validity window.
	v.SetDefault("REFRESH_TOKEN_TTL", "8760h")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("ALLOW_CREDENTIALS", true)
	v.SetDefault("BCRYPT_COST", 10)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	for _, key := range requiredKeys {
		if v.GetString(key) == "" {
			return nil, fmt.Errorf("missing required config key %s", key)
		}
	}

	return &Config{
		HTTPAddress:        v.GetString("HTTP_ADDRESS"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		JWTPrivateKeyPath:  v.GetString("JWT_PRIVATE_KEY_PATH"),
		RefreshTokenSecret: v.GetString("REFRESH_TOKEN_SECRET"),
		Issuer:             v.GetString("JWT_ISSUER"),
		AccessTokenTTL:     v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:    v.GetDuration("REFRESH_TOKEN_TTL"),
		CookieDomain:       v.GetString("COOKIE_DOMAIN"),
		CookieSecure:       v.GetBool("COOKIE_SECURE"),
		AllowedOrigins:     v.GetStringSlice("ALLOWED_ORIGINS"),
		AllowCredentials:   v.GetBool("ALLOW_CREDENTIALS"),
		BcryptCost:         v.GetInt("BCRYPT_COST"),
	}, nil
}
