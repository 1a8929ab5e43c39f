package handlers

import (
	"fmt"
	"strconv"

	"github.com/crest365-hub/Telegram-bot/internal/security"
	"github.com/crest365-hub/Telegram-bot/pkg/logger"
)

// HandleStart greets the user and makes sure their ledger row exists
func (h *HandlerManager) HandleStart(userID int64, handle string, bot BotInterface) {
	user, err := h.Economy.EnsureUser(userID, handle)
	if err != nil {
		logger.Error("Failed to ensure user on start", "user_id", userID, "error", err)
		bot.SendMessage(userID, "❌ Something went wrong, please try again.", nil)
		return
	}

	text := fmt.Sprintf(
		"👋 Welcome to Anonymous Chat, %s!\n\n"+
			"🔍 /match — find a chat partner\n"+
			"⚡️ /fastmatch — skip the line (%d coins)\n"+
			"🎁 /daily — claim your daily bonus\n"+
			"🎟 /ticket — buy a lottery ticket (%d coins)\n\n"+
			"Your public id is `%s` — share it so friends can /gift you coins.",
		user.Handle, h.Config.FastMatchCost, h.Config.TicketCost, user.PublicID,
	)
	bot.SendMessage(userID, text, nil)
}

// HandleSetProfile updates the gender tag and age used for matching.
// Usage: /profile <gender> <age>, either may be "-" to clear.
func (h *HandlerManager) HandleSetProfile(userID int64, args []string, bot BotInterface) {
	if len(args) < 2 {
		h.HandleViewProfile(userID, bot)
		return
	}

	var gender *string
	if args[0] != "-" {
		tag := security.SanitizeGenderTag(args[0])
		if tag == "" {
			bot.SendMessage(userID, "⚠️ That gender tag is not usable.", nil)
			return
		}
		gender = &tag
	}

	var age *int
	if args[1] != "-" {
		parsed, err := strconv.Atoi(args[1])
		if err != nil || !security.ValidateAge(parsed) {
			bot.SendMessage(userID, "⚠️ Age must be a number between 13 and 100.", nil)
			return
		}
		age = &parsed
	}

	if err := h.Users.UpdateProfile(userID, gender, age); err != nil {
		logger.Error("Failed to update profile", "user_id", userID, "error", err)
		bot.SendMessage(userID, "❌ Could not save your profile, please try again.", nil)
		return
	}

	bot.SendMessage(userID, "✅ Profile updated!", nil)
}

// HandleSetVIP toggles the VIP flag on a user, admin only.
// Usage: /vip <id> <on|off>
func (h *HandlerManager) HandleSetVIP(userID int64, isAdmin bool, args []string, bot BotInterface) {
	if !isAdmin {
		bot.SendMessage(userID, "⛔️ Only the admin can change VIP status.", nil)
		return
	}
	if len(args) < 2 {
		bot.SendMessage(userID, "Usage: /vip <user id> <on|off>", nil)
		return
	}

	targetID, err := h.resolveUserID(args[0])
	if err != nil {
		bot.SendMessage(userID, "⚠️ I don't know that user id.", nil)
		return
	}

	vip := args[1] == "on"
	if err := h.Users.SetVIP(targetID, vip); err != nil {
		logger.Error("Failed to set VIP", "user_id", targetID, "error", err)
		bot.SendMessage(userID, "❌ Could not update VIP status.", nil)
		return
	}

	bot.SendMessage(userID, "✅ VIP status updated.", nil)
	if vip {
		bot.SendMessage(targetID, "⭐️ You are a VIP now!", nil)
	}
}

// HandleViewProfile shows the user's stored profile
func (h *HandlerManager) HandleViewProfile(userID int64, bot BotInterface) {
	user, err := h.Users.GetByTelegramID(userID)
	if err != nil {
		logger.Error("Failed to load profile", "user_id", userID, "error", err)
		bot.SendMessage(userID, "❌ Could not load your profile.", nil)
		return
	}

	gender := "not set"
	if user.Gender != nil {
		gender = *user.Gender
	}
	age := "not set"
	if user.Age != nil {
		age = strconv.Itoa(*user.Age)
	}
	vip := ""
	if user.VIP {
		vip = "\n⭐️ VIP"
	}

	text := fmt.Sprintf(
		"👤 %s (id `%s`)\n🚻 Gender: %s\n🎂 Age: %s\n💰 Coins: %d\n🔥 Daily streak: %d%s\n\n"+
			"Change it with /profile <gender> <age> (use - to clear).",
		user.Handle, user.PublicID, gender, age, user.CoinBalance, user.DailyStreak, vip,
	)
	bot.SendMessage(userID, text, nil)
}
