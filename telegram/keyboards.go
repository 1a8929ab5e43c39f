package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Main menu button labels
const (
	BtnMatch     = "🔍 Find a partner"
	BtnFastMatch = "⚡️ Fast match"
	BtnLeave     = "❌ Leave"
	BtnBalance   = "💰 Balance"
	BtnDaily     = "🎁 Daily bonus"
	BtnTicket    = "🎟 Lottery ticket"
	BtnTop       = "🏆 Top coins"
	BtnProfile   = "👤 Profile"
)

// MainMenuKeyboard is the persistent reply keyboard shown to every user
func MainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnMatch),
			tgbotapi.NewKeyboardButton(BtnFastMatch),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnDaily),
			tgbotapi.NewKeyboardButton(BtnBalance),
			tgbotapi.NewKeyboardButton(BtnTicket),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(BtnProfile),
			tgbotapi.NewKeyboardButton(BtnTop),
			tgbotapi.NewKeyboardButton(BtnLeave),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

// buttonCommand maps a menu button press to its command equivalent
func buttonCommand(text string) (string, bool) {
	switch text {
	case BtnMatch:
		return "match", true
	case BtnFastMatch:
		return "fastmatch", true
	case BtnLeave:
		return "leave", true
	case BtnBalance:
		return "balance", true
	case BtnDaily:
		return "daily", true
	case BtnTicket:
		return "ticket", true
	case BtnTop:
		return "top", true
	case BtnProfile:
		return "profile", true
	}
	return "", false
}
