package main

import (
	"context"
	"github.com/maxaizer/hirenearby/internal/httpapi"
	"github.com/maxaizer/hirenearby/internal/metrics"
	"github.com/maxaizer/hirenearby/internal/services"
	"github.com/maxaizer/hirenearby/internal/telegram"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"os/signal"
	"syscall"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the HTTP API, the bids counter reconciler and, when a token is configured, the Telegram notifier.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		metrics.Register()

		a, err := openApp()
		if err != nil {
			return err
		}

		if cfg.DB.SeedDemoData {
			if _, err := a.seeder().SeedDemoData(ctx); err != nil {
				return err
			}
		}

		notifications := services.NewNotificationsService(a.notifications)

		var (
			notifier *telegram.Notifier
			linker   *telegram.ChatLinker
		)
		if cfg.Telegram.Enabled() {
			api, err := telegram.NewBotAPI(cfg.Telegram.Token)
			if err != nil {
				return err
			}
			notifier = telegram.NewNotifier(api, a.users, cfg.Telegram.QueueSize)
			linker = telegram.NewChatLinker(api)
			notifications.AddSink(notifier)
			go notifier.Run()
			go linker.Run()
		} else {
			log.Info("telegram token is not set, telegram notifications are disabled")
		}

		dispatcher, err := services.NewNotificationDispatcher(a.bus, notifications)
		if err != nil {
			return err
		}

		reconciler, err := services.NewBidsCountReconciler(a.jobs, cfg.Marketplace.ReconcileSchedule)
		if err != nil {
			return err
		}
		reconciler.Start()

		server := httpapi.New(cfg.HTTP, a.services(notifications))
		serverErr := make(chan error, 1)
		go func() {
			serverErr <- server.Start()
		}()

		select {
		case <-ctx.Done():
			log.Info("Shutting down services...")
		case err = <-serverErr:
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Errorf("http server shutdown: %v", shutdownErr)
		}

		reconciler.Stop()
		if linker != nil {
			linker.Stop()
			notifier.Stop()
		}
		dispatcher.Stop()

		log.Info("Services stopped.")
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
