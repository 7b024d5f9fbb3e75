package config

import (
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
)

type Config struct {
	Logger      LoggerConfig      `mapstructure:"logger"`
	DB          DBConfig          `mapstructure:"db"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Marketplace MarketplaceConfig `mapstructure:"marketplace"`
	Telegram    TelegramConfig    `mapstructure:"telegram"`
}

type section interface {
	validate() error
	bindEnvironmentVariables() error
}

type namedSection struct {
	name    string
	section section
}

func (config Config) sections() []namedSection {
	return []namedSection{
		{"LoggerConfig", config.Logger},
		{"DBConfig", config.DB},
		{"HTTPConfig", config.HTTP},
		{"AuthConfig", config.Auth},
		{"MarketplaceConfig", config.Marketplace},
		{"TelegramConfig", config.Telegram},
	}
}

const defaultConfigFile = "./configs/config.yaml"

// Get loads the configuration or terminates the process.
func Get() *Config {
	config, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	return config
}

// Load reads the file named by CONFIG_PATH (./configs/config.yaml by default) and applies environment overrides.
func Load() (*Config, error) {
	file := defaultConfigFile
	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		file = value
	}
	return loadConfig(file)
}

func loadConfig(file string) (*Config, error) {
	viper.Reset()
	viper.SetConfigFile(file)
	setDefaults()

	if err := bindEnvironmentVariables(); err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", file, err)
	}

	config := Config{}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("logger.log_level", string(LevelInfo))
	viper.SetDefault("logger.output_file", "./logs/errors.log")
	viper.SetDefault("http.address", ":8080")
	viper.SetDefault("http.rate_limit_per_minute", 120)
	viper.SetDefault("http.shutdown_timeout", "10s")
	viper.SetDefault("auth.token_ttl", "24h")
	viper.SetDefault("auth.bcrypt_cost", 10)
	viper.SetDefault("auth.user_cache_ttl", "5m")
	viper.SetDefault("marketplace.reconcile_schedule", "*/30 * * * *")
	viper.SetDefault("telegram.queue_size", 100)
}

func bindEnvironmentVariables() error {
	var errs []error

	for _, s := range (Config{}).sections() {
		if err := s.section.bindEnvironmentVariables(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	for _, s := range config.sections() {
		if err := s.section.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}
