package main

import (
	"github.com/maxaizer/hirenearby/internal/services"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Recount bids of every job once",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}

		reconciler, err := services.NewBidsCountReconciler(a.jobs, cfg.Marketplace.ReconcileSchedule)
		if err != nil {
			return err
		}
		drifted, err := reconciler.RunOnce(cmd.Context())
		if err != nil {
			return err
		}
		log.Infof("bids counters checked, corrected jobs: %d", drifted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
