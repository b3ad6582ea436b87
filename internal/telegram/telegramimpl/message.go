package telegramimpl

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// GetUpdatesChan wraps the bot's GetUpdatesChan method
func (tg *TelegramImpl) GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return tg.TgBot.GetUpdatesChan(u)
}

func (tg *TelegramImpl) StopReceivingUpdates() {
	tg.TgBot.StopReceivingUpdates()
}

// SendMessage sends a plain text message to a specific chat ID
func (tg *TelegramImpl) SendMessage(chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	sentMsg, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending message",
			"chatID", chatID,
			"error", err)
		return 0, fmt.Errorf("failed to send message: %w", err)
	}

	return sentMsg.MessageID, nil
}

// SendMessageWithKeyboard sends a message with an inline keyboard attached
func (tg *TelegramImpl) SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	sentMsg, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending message with keyboard",
			"chatID", chatID,
			"error", err)
		return 0, fmt.Errorf("failed to send message with keyboard: %w", err)
	}

	return sentMsg.MessageID, nil
}

// EditMessageText replaces the text of a previously sent message
func (tg *TelegramImpl) EditMessageText(chatID int64, messageID int, newText string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, newText)
	if _, err := tg.TgBot.Send(edit); err != nil {
		tg.Logger.Error("Error editing message",
			"chatID", chatID,
			"messageID", messageID,
			"error", err)
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

// AnswerCallback acknowledges a callback query, optionally with a toast
func (tg *TelegramImpl) AnswerCallback(callbackID string, text string) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := tg.TgBot.Request(callback); err != nil {
		tg.Logger.Error("Error answering callback",
			"callbackID", callbackID,
			"error", err)
		return fmt.Errorf("failed to answer callback: %w", err)
	}
	return nil
}

// SetCommands registers the bot command menu with Telegram
func (tg *TelegramImpl) SetCommands(commands []tgbotapi.BotCommand) error {
	cfg := tgbotapi.NewSetMyCommands(commands...)
	if _, err := tg.TgBot.Request(cfg); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}
	return nil
}
