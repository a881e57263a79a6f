// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configPath     = pflag.String("config", ".", "Directory containing config.toml")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(*configPath)

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")

	v.BindEnv("site.title", "site_title")
	v.BindEnv("site.account_text", "site_account_text")

	v.BindEnv("session.secret", "session_secret")
	v.BindEnv("admin.password", "admin_password")

	v.BindEnv("database.dsn", "database_dsn")

	v.BindEnv("guestbook.blocked_words", "guestbook_blocked_words")
	v.BindEnv("guestbook.post_limit", "guestbook_post_limit")
	v.BindEnv("guestbook.post_window_seconds", "guestbook_post_window_seconds")

	v.BindEnv("ratelimit.rps", "ratelimit_rps")
	v.BindEnv("ratelimit.burst", "ratelimit_burst")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)

	v.SetDefault("site.title", "Event Project")
	v.SetDefault("site.account_text", "Bank 000-00-000000 (Holder)")

	v.SetDefault("session.secret", "dev-secret")
	v.SetDefault("admin.password", "changeme")

	v.SetDefault("database.dsn", "database.db")

	v.SetDefault("guestbook.blocked_words", []string{"spam", "scam", "casino"})
	v.SetDefault("guestbook.post_limit", 3)
	v.SetDefault("guestbook.post_window_seconds", 60)

	v.SetDefault("ratelimit.rps", 20)
	v.SetDefault("ratelimit.burst", 40)

	// The config file is optional, everything can come from
	// env variables or the defaults above
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("database.dsn") == "" {
		return errors.New("database.dsn can't be empty")
	}

	if v.GetInt("guestbook.post_limit") <= 0 {
		return errors.New("guestbook.post_limit must be bigger than 0")
	}

	if v.GetInt("guestbook.post_window_seconds") <= 0 {
		return errors.New("guestbook.post_window_seconds must be bigger than 0")
	}

	if v.GetInt("ratelimit.rps") <= 0 || v.GetInt("ratelimit.burst") <= 0 {
		return errors.New("ratelimit.rps and ratelimit.burst must be bigger than 0")
	}

	if v.GetString("session.secret") == "dev-secret" {
		zap.L().Warn("Using the default session secret. Set session.secret before exposing this to anyone")
	}

	if v.GetString("admin.password") == "changeme" {
		zap.L().Warn("Using the default admin password. Set admin.password before exposing this to anyone")
	}

	return nil
}
