package main

import (
	"github.com/maxaizer/hirenearby/internal/logger"
	log "github.com/sirupsen/logrus"
	"os"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		log.Error(err)
	}

	logger.Cleanup()
	closeApp()

	if err != nil {
		os.Exit(1)
	}
}
