package handlers

import (
	"fmt"

	"github.com/crest365-hub/Telegram-bot/pkg/logger"
)

// HandleBuyTicket buys one lottery ticket
func (h *HandlerManager) HandleBuyTicket(userID int64, bot BotInterface) {
	bought, err := h.Lottery.BuyTicket(userID)
	if err != nil {
		logger.Error("Ticket purchase failed", "user_id", userID, "error", err)
		bot.SendMessage(userID, "❌ Ticket purchase failed, please try again.", nil)
		return
	}
	if !bought {
		bot.SendMessage(userID, fmt.Sprintf("💸 A ticket costs %d coins and you don't have enough.", h.Config.TicketCost), nil)
		return
	}

	count, _ := h.Lottery.TicketCount(userID)
	pool, _ := h.Lottery.PoolSize()
	bot.SendMessage(userID, fmt.Sprintf("🎟 Ticket bought! You hold %d of %d tickets in the next draw. Payout: %d coins.", count, pool, h.Config.LotteryPayout), nil)
}

// HandleDraw runs a manual lottery draw, restricted to the admin
func (h *HandlerManager) HandleDraw(userID int64, isAdmin bool, bot BotInterface) {
	if !isAdmin {
		bot.SendMessage(userID, "⛔️ Only the admin can trigger a draw.", nil)
		return
	}

	winnerID, drawn, err := h.Lottery.DrawWinner()
	if err != nil {
		logger.Error("Manual lottery draw failed", "error", err)
		bot.SendMessage(userID, "❌ Draw failed, please try again.", nil)
		return
	}
	if !drawn {
		bot.SendMessage(userID, "🫙 The ticket pool is empty, nothing to draw.", nil)
		return
	}

	bot.SendMessage(winnerID, fmt.Sprintf("🎉 You won the lottery! %d coins have been added to your balance.", h.Config.LotteryPayout), nil)
	if winnerID != userID {
		bot.SendMessage(userID, fmt.Sprintf("✅ Draw complete, winner: %d.", winnerID), nil)
	}
}
