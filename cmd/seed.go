package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"time"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data into the database",
	Long:  "Loads the demo accounts and jobs into an empty database and optionally posts random jobs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fakeJobs, _ := cmd.Flags().GetInt("fake-jobs")
		ownerEmail, _ := cmd.Flags().GetString("owner-email")
		fakeSeed, _ := cmd.Flags().GetInt64("seed")
		if fakeSeed == 0 {
			fakeSeed = time.Now().UnixNano()
		}

		a, err := openApp()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		seeder := a.seeder()
		if _, err := seeder.SeedDemoData(ctx); err != nil {
			return err
		}

		if fakeJobs > 0 {
			jobs, err := seeder.SeedFakeJobs(ctx, ownerEmail, fakeJobs, fakeSeed)
			if err != nil {
				return err
			}
			log.Infof("posted %d fake jobs for %s", len(jobs), ownerEmail)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().Int("fake-jobs", 0, "number of random jobs to post")
	seedCmd.Flags().String("owner-email", "john@example.com", "account that posts the random jobs")
	seedCmd.Flags().Int64("seed", 0, "random seed for fake jobs, current time when zero")
	rootCmd.AddCommand(seedCmd)
}
