package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/crest365-hub/Telegram-bot/pkg/logger"
)

// HandleChatMessage forwards a non-command message to the sender's active
// partner. Forwarding is a copy, never a Telegram forward, so the sender
// stays anonymous. Delivery failures are logged and swallowed.
func (h *HandlerManager) HandleChatMessage(message *tgbotapi.Message, bot BotInterface) {
	userID := message.From.ID

	partnerID, paired := h.Matchmaker.PartnerOf(userID)
	if !paired {
		bot.SendMessage(userID, "🤷 You are not in a chat. Use /match to find a partner.", nil)
		return
	}

	if err := h.forwardContent(message, partnerID, bot); err != nil {
		logger.Warn("Failed to deliver message to partner", "from", userID, "to", partnerID, "error", err)
	}
}

func (h *HandlerManager) forwardContent(message *tgbotapi.Message, targetChatID int64, bot BotInterface) error {
	api := bot.GetAPI().(*tgbotapi.BotAPI)

	if message.Text != "" {
		msg := tgbotapi.NewMessage(targetChatID, message.Text)
		_, err := api.Send(msg)
		return err
	}

	if len(message.Photo) > 0 {
		photo := message.Photo[len(message.Photo)-1]
		msg := tgbotapi.NewPhoto(targetChatID, tgbotapi.FileID(photo.FileID))
		msg.Caption = message.Caption
		_, err := api.Send(msg)
		return err
	}

	if message.Sticker != nil {
		msg := tgbotapi.NewSticker(targetChatID, tgbotapi.FileID(message.Sticker.FileID))
		_, err := api.Send(msg)
		return err
	}

	if message.Voice != nil {
		msg := tgbotapi.NewVoice(targetChatID, tgbotapi.FileID(message.Voice.FileID))
		msg.Caption = message.Caption
		_, err := api.Send(msg)
		return err
	}

	if message.Video != nil {
		msg := tgbotapi.NewVideo(targetChatID, tgbotapi.FileID(message.Video.FileID))
		msg.Caption = message.Caption
		_, err := api.Send(msg)
		return err
	}

	if message.Document != nil {
		msg := tgbotapi.NewDocument(targetChatID, tgbotapi.FileID(message.Document.FileID))
		msg.Caption = message.Caption
		_, err := api.Send(msg)
		return err
	}

	if message.Animation != nil {
		msg := tgbotapi.NewAnimation(targetChatID, tgbotapi.FileID(message.Animation.FileID))
		msg.Caption = message.Caption
		_, err := api.Send(msg)
		return err
	}

	return nil
}
