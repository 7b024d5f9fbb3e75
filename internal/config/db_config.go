package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
)

type DBConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
	// SeedDemoData loads the demo users, jobs and bids into an empty database on start.
	SeedDemoData bool `mapstructure:"seed_demo_data"`
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	return nil
}

func (config DBConfig) bindEnvironmentVariables() error {
	return errors.Join(
		viper.BindEnv("db.connection_string", "DB_CONNECTION_STRING"),
		viper.BindEnv("db.seed_demo_data", "DB_SEED_DEMO_DATA"),
	)
}
