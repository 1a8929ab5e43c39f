package handlers

import (
	"fmt"
	"strconv"

	"github.com/crest365-hub/Telegram-bot/internal/matchmaking"
	"github.com/crest365-hub/Telegram-bot/internal/security"
	"github.com/crest365-hub/Telegram-bot/pkg/logger"
)

// HandleMatch runs a preference-based search.
// Usage: /match [gender] [age], both optional.
func (h *HandlerManager) HandleMatch(userID int64, args []string, bot BotInterface) {
	genderPref := matchmaking.PrefAny
	var agePref *int

	if len(args) > 0 {
		tag := security.SanitizeGenderTag(args[0])
		if tag != "" {
			genderPref = tag
		}
	}
	if len(args) > 1 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil || !security.ValidateAge(parsed) {
			bot.SendMessage(userID, "⚠️ Age preference must be a number between 13 and 100.", nil)
			return
		}
		agePref = &parsed
	}

	result, err := h.Matchmaker.RequestMatch(userID, genderPref, agePref)
	if err != nil {
		logger.Error("Match request failed", "user_id", userID, "error", err)
		bot.SendMessage(userID, "❌ Matching failed, please try again.", nil)
		return
	}

	h.notifyPreviousPartner(result, bot)

	if result.Matched {
		h.announcePairing(userID, result.PartnerID, bot)
		return
	}

	bot.SendMessage(userID, fmt.Sprintf("🔍 Searching for a partner... you are in the queue (%d waiting). Use /leave to stop.", h.Matchmaker.QueueLen()), nil)
}

// HandleFastMatch charges the fast-match fee and pairs with the queue head
func (h *HandlerManager) HandleFastMatch(userID int64, bot BotInterface) {
	result, charged, err := h.Matchmaker.FastMatch(userID)
	if err != nil {
		logger.Error("Fast match failed", "user_id", userID, "error", err)
		bot.SendMessage(userID, "❌ Fast match failed, please try again.", nil)
		return
	}
	if !charged {
		bot.SendMessage(userID, fmt.Sprintf("💸 Fast match costs %d coins and you don't have enough. Claim your /daily bonus!", h.Config.FastMatchCost), nil)
		return
	}

	h.notifyPreviousPartner(result, bot)

	if result.Matched {
		h.announcePairing(userID, result.PartnerID, bot)
		return
	}

	bot.SendMessage(userID, "⚡️ You're first in line now — the next user to search will be yours.", nil)
}

// HandleLeave ends the current chat or stops the search
func (h *HandlerManager) HandleLeave(userID int64, bot BotInterface) {
	wasWaiting := h.Matchmaker.Waiting(userID)

	partnerID, hadPartner, err := h.Matchmaker.Leave(userID)
	if err != nil {
		logger.Error("Leave failed", "user_id", userID, "error", err)
		bot.SendMessage(userID, "❌ Something went wrong, please try again.", nil)
		return
	}

	switch {
	case hadPartner:
		bot.SendMessage(userID, "👋 You left the chat.", nil)
		bot.SendMessage(partnerID, "💔 Your partner left the chat. Use /match to find a new one.", nil)
	case wasWaiting:
		bot.SendMessage(userID, "🛑 Search stopped.", nil)
	default:
		bot.SendMessage(userID, "🤷 You are not chatting or searching right now.", nil)
	}
}

func (h *HandlerManager) announcePairing(userID, partnerID int64, bot BotInterface) {
	text := "💬 Partner found! Say hi — everything you send is forwarded anonymously. Use /leave to end the chat."
	bot.SendMessage(userID, text, nil)
	bot.SendMessage(partnerID, text, nil)
}

func (h *HandlerManager) notifyPreviousPartner(result matchmaking.MatchResult, bot BotInterface) {
	if result.HadPrevious {
		bot.SendMessage(result.PreviousPartner, "💔 Your partner left the chat. Use /match to find a new one.", nil)
	}
}
