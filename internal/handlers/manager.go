package handlers

import (
	"github.com/crest365-hub/Telegram-bot/internal/config"
	"github.com/crest365-hub/Telegram-bot/internal/matchmaking"
	"github.com/crest365-hub/Telegram-bot/internal/repositories"
	"github.com/crest365-hub/Telegram-bot/internal/services"
)

// BotInterface is the slice of the transport layer the handlers need.
// Sends are best-effort: the transport logs and swallows delivery
// failures.
type BotInterface interface {
	SendMessage(chatID int64, text string, keyboard interface{})
	GetAPI() interface{}
}

type HandlerManager struct {
	Config     *config.Config
	Users      *repositories.UserRepository
	Economy    *services.EconomyService
	Lottery    *services.LotteryService
	Matchmaker *matchmaking.Matchmaker
}

func NewHandlerManager(
	cfg *config.Config,
	users *repositories.UserRepository,
	economy *services.EconomyService,
	lottery *services.LotteryService,
	matchmaker *matchmaking.Matchmaker,
) *HandlerManager {
	return &HandlerManager{
		Config:     cfg,
		Users:      users,
		Economy:    economy,
		Lottery:    lottery,
		Matchmaker: matchmaker,
	}
}
