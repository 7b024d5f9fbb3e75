package main

import (
	"context"
	"github.com/joho/godotenv"
	"github.com/maxaizer/hirenearby/internal/config"
	"github.com/maxaizer/hirenearby/internal/logger"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "hirenearby",
	Short:         "Local services marketplace",
	Long:          "HireNearby API: job postings, bids, notifications and account verification.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Debug(".env file not found, using environment variables")
		}

		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}

		logger.Setup(context.Background(), cfg.Logger)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}
