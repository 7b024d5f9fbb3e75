package config

import (
	"fmt"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type MarketplaceConfig struct {
	// ReconcileSchedule is the cron spec of the bids counter reconciliation.
	ReconcileSchedule string `mapstructure:"reconcile_schedule"`
}

func (config MarketplaceConfig) validate() error {
	if _, err := cron.ParseStandard(config.ReconcileSchedule); err != nil {
		return fmt.Errorf("invalid reconcile_schedule %q: %w", config.ReconcileSchedule, err)
	}
	return nil
}

func (config MarketplaceConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("marketplace.reconcile_schedule", "RECONCILE_SCHEDULE")
}
