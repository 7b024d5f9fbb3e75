package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/hirenearby/internal/logger"
	log "github.com/sirupsen/logrus"
)

type apiInterface interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type updatesInterface interface {
	apiInterface
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// NewBotAPI authorizes the bot and routes the library's logging through logrus.
func NewBotAPI(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	if err = tgbotapi.SetLogger(log.StandardLogger()); err != nil {
		return nil, err
	}
	return api, nil
}

func sendWithLogError(api apiInterface, chattable tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg, err := api.Send(chattable)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).
			Errorf("error occurred while sending message: %v", err)
	}
	return msg, err
}
