package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"time"
)

type HTTPConfig struct {
	Address string `mapstructure:"address"`
	// RateLimitPerMinute is the request budget of one client IP; zero disables limiting.
	RateLimitPerMinute int           `mapstructure:"rate_limit_per_minute"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
}

func (config HTTPConfig) validate() error {
	var errs []error

	if config.Address == "" {
		errs = append(errs, fmt.Errorf("missing variable: address"))
	}
	if config.RateLimitPerMinute < 0 {
		errs = append(errs, fmt.Errorf("rate_limit_per_minute must not be negative"))
	}
	if config.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (config HTTPConfig) bindEnvironmentVariables() error {
	return errors.Join(
		viper.BindEnv("http.address", "HTTP_ADDRESS"),
		viper.BindEnv("http.rate_limit_per_minute", "HTTP_RATE_LIMIT_PER_MINUTE"),
	)
}
