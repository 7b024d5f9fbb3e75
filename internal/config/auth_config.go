package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"time"
)

const minJwtSecretLength = 16

type AuthConfig struct {
	JwtSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	BcryptCost   int           `mapstructure:"bcrypt_cost"`
	UserCacheTTL time.Duration `mapstructure:"user_cache_ttl"`
}

func (config AuthConfig) validate() error {
	var errs []error

	if len(config.JwtSecret) < minJwtSecretLength {
		errs = append(errs, fmt.Errorf("jwt_secret must be at least %d characters", minJwtSecretLength))
	}
	if config.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("token_ttl must be positive"))
	}
	if config.BcryptCost < bcrypt.MinCost || config.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if config.UserCacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("user_cache_ttl must be positive"))
	}

	return errors.Join(errs...)
}

func (config AuthConfig) bindEnvironmentVariables() error {
	return errors.Join(
		viper.BindEnv("auth.jwt_secret", "JWT_SECRET"),
		viper.BindEnv("auth.token_ttl", "TOKEN_TTL"),
	)
}
