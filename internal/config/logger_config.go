package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
)

type LogLevel string

const (
	LevelInfo    LogLevel = "INFO"
	LevelDebug   LogLevel = "DEBUG"
	LevelWarning LogLevel = "WARNING"
	LevelError   LogLevel = "ERROR"
	LevelFatal   LogLevel = "FATAL"
)

type LoggerConfig struct {
	LogLevel     LogLevel `mapstructure:"log_level"`
	AppName      string   `mapstructure:"app_name"`
	LokiURL      string   `mapstructure:"loki_url"`
	LokiUser     string   `mapstructure:"loki_user"`
	LokiPassword string   `mapstructure:"loki_password"`
	OutputFile   string   `mapstructure:"output_file"`
}

func (config LoggerConfig) validate() error {
	var errs []error

	switch config.LogLevel {
	case LevelInfo, LevelDebug, LevelWarning, LevelError, LevelFatal:
	case "":
		errs = append(errs, fmt.Errorf("missing variable: log_level"))
	default:
		errs = append(errs, fmt.Errorf("unknown log_level: %s", config.LogLevel))
	}
	if config.OutputFile == "" {
		errs = append(errs, fmt.Errorf("missing variable: output_file"))
	}
	if config.LokiURL != "" && config.AppName == "" {
		errs = append(errs, fmt.Errorf("missing variable: app_name is required to label loki streams"))
	}

	return errors.Join(errs...)
}

func (config LoggerConfig) bindEnvironmentVariables() error {
	return errors.Join(
		viper.BindEnv("logger.loki_url", "LOKI_URL"),
		viper.BindEnv("logger.loki_user", "LOKI_USER"),
		viper.BindEnv("logger.loki_password", "LOKI_PASSWORD"),
		viper.BindEnv("logger.app_name", "APP_NAME"),
		viper.BindEnv("logger.log_level", "LOG_LEVEL"),
		viper.BindEnv("logger.output_file", "LOG_OUTPUT_FILE"),
	)
}
