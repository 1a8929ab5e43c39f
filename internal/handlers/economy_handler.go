package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/crest365-hub/Telegram-bot/pkg/logger"
)

// HandleBalance reports the user's coin balance
func (h *HandlerManager) HandleBalance(userID int64, bot BotInterface) {
	balance, err := h.Economy.Balance(userID)
	if err != nil {
		logger.Error("Failed to get balance", "user_id", userID, "error", err)
		bot.SendMessage(userID, "❌ Could not load your balance.", nil)
		return
	}
	bot.SendMessage(userID, fmt.Sprintf("💰 You have %d coins.", balance), nil)
}

// HandleDaily claims the daily bonus
func (h *HandlerManager) HandleDaily(userID int64, bot BotInterface) {
	reward, streak, err := h.Economy.ClaimDaily(userID)
	if err != nil {
		logger.Error("Daily claim failed", "user_id", userID, "error", err)
		bot.SendMessage(userID, "❌ Could not claim your bonus, please try again.", nil)
		return
	}

	if reward == 0 {
		bot.SendMessage(userID, fmt.Sprintf("🕐 Already claimed today! Your streak is %d — come back tomorrow.", streak), nil)
		return
	}

	bot.SendMessage(userID, fmt.Sprintf("🎁 +%d coins! Daily streak: %d. Claim again tomorrow to keep it going.", reward, streak), nil)
}

// HandleGift transfers coins to another user.
// Usage: /gift <public id or numeric id> <amount>
func (h *HandlerManager) HandleGift(userID int64, args []string, bot BotInterface) {
	if len(args) < 2 {
		bot.SendMessage(userID, "Usage: /gift <user id> <amount>", nil)
		return
	}

	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || amount <= 0 {
		bot.SendMessage(userID, "⚠️ Amount must be a positive number.", nil)
		return
	}

	targetID, err := h.resolveUserID(args[0])
	if err != nil {
		bot.SendMessage(userID, "⚠️ I don't know that user id.", nil)
		return
	}
	if targetID == userID {
		bot.SendMessage(userID, "⚠️ You cannot gift coins to yourself.", nil)
		return
	}

	sent, err := h.Economy.Gift(userID, targetID, amount)
	if err != nil {
		logger.Error("Gift failed", "from", userID, "to", targetID, "error", err)
		bot.SendMessage(userID, "❌ Gift failed, please try again.", nil)
		return
	}
	if !sent {
		bot.SendMessage(userID, "💸 Not enough coins for that gift.", nil)
		return
	}

	bot.SendMessage(userID, fmt.Sprintf("✅ Sent %d coins!", amount), nil)
	bot.SendMessage(targetID, fmt.Sprintf("🎁 Someone gifted you %d coins!", amount), nil)
}

// HandleTop shows the coin leaderboard
func (h *HandlerManager) HandleTop(userID int64, bot BotInterface) {
	users, err := h.Economy.TopCoins(10)
	if err != nil {
		logger.Error("Failed to get leaderboard", "error", err)
		bot.SendMessage(userID, "❌ Could not load the leaderboard.", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 Top coin holders:\n")
	medals := []string{"🥇", "🥈", "🥉"}
	for i, u := range users {
		rank := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		name := u.Handle
		if name == "" {
			name = "anonymous"
		}
		sb.WriteString(fmt.Sprintf("%s %s — %d coins\n", rank, name, u.CoinBalance))
	}

	bot.SendMessage(userID, sb.String(), nil)
}

// HandleHistory shows the user's recent coin transactions
func (h *HandlerManager) HandleHistory(userID int64, bot BotInterface) {
	transactions, err := h.Economy.History(userID, 10)
	if err != nil {
		logger.Error("Failed to get history", "user_id", userID, "error", err)
		bot.SendMessage(userID, "❌ Could not load your history.", nil)
		return
	}

	if len(transactions) == 0 {
		bot.SendMessage(userID, "📭 No coin activity yet.", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString("📒 Recent coin activity:\n")
	for _, tx := range transactions {
		sign := "+"
		if tx.Amount < 0 {
			sign = ""
		}
		sb.WriteString(fmt.Sprintf("%s%d — %s (%s)\n", sign, tx.Amount, tx.TransactionType, tx.CreatedAt.Format("Jan 2 15:04")))
	}

	bot.SendMessage(userID, sb.String(), nil)
}

// resolveUserID accepts either a numeric Telegram id or a public id
func (h *HandlerManager) resolveUserID(raw string) (int64, error) {
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id, nil
	}

	user, err := h.Users.GetByPublicID(raw)
	if err != nil {
		return 0, err
	}
	return user.TelegramID, nil
}
