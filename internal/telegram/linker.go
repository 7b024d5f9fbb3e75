package telegram

import (
	"fmt"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ChatLinker answers /start with the chat id a user pastes into their profile to receive notifications.
type ChatLinker struct {
	api updatesInterface
}

func NewChatLinker(api updatesInterface) *ChatLinker {
	return &ChatLinker{api: api}
}

func (l *ChatLinker) Run() {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	for update := range l.api.GetUpdatesChan(updateConfig) {
		l.handleUpdate(update)
	}
}

func (l *ChatLinker) Stop() {
	l.api.StopReceivingUpdates()
}

func (l *ChatLinker) handleUpdate(update tgbotapi.Update) {
	message := update.Message
	if message == nil || !message.Chat.IsPrivate() {
		return
	}

	var text string
	switch message.Command() {
	case "start", "chatid":
		text = fmt.Sprintf("Your chat id is %d. Add it to your HireNearby profile to get notifications here.",
			message.Chat.ID)
	default:
		text = "Send /start to get the chat id for your HireNearby profile."
	}

	_, _ = sendWithLogError(l.api, tgbotapi.NewMessage(message.Chat.ID, text))
}
