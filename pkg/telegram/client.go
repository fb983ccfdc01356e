package telegram

import (
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier defines the interface for dispatching alert notifications.
type Notifier interface {
	SendMessage(text string) error
}

// client is a Telegram-backed Notifier bound to a single alert chat.
type client struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewClient creates a Telegram notifier for the given bot token and chat.
func NewClient(botToken string, chatID int64) (Notifier, error) {
	if botToken == "" {
		return nil, errors.New("telegram: bot token is empty")
	}
	if chatID == 0 {
		return nil, errors.New("telegram: chat id is not set")
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &client{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// SendMessage delivers text to the configured chat. Alert messages carry
// article links, so link previews are disabled to keep them compact.
func (c *client) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	_, err := c.bot.Send(msg)
	return err
}
