package config

import (
	"fmt"
	"github.com/spf13/viper"
)

// TelegramConfig enables notification delivery through a Telegram bot when Token is set.
type TelegramConfig struct {
	Token     string `mapstructure:"token"`
	QueueSize int    `mapstructure:"queue_size"`
}

func (config TelegramConfig) Enabled() bool {
	return config.Token != ""
}

func (config TelegramConfig) validate() error {
	if config.Enabled() && config.QueueSize <= 0 {
		return fmt.Errorf("queue_size must be positive")
	}
	return nil
}

func (config TelegramConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("telegram.token", "TELEGRAM_TOKEN")
}
