package services

import (
	"math/rand/v2"
	"sync"

	"github.com/crest365-hub/Telegram-bot/internal/config"
	"github.com/crest365-hub/Telegram-bot/internal/models"
	"github.com/crest365-hub/Telegram-bot/internal/repositories"
	"github.com/crest365-hub/Telegram-bot/pkg/logger"
	"gorm.io/gorm"
)

// LotteryService runs the ticket pool. Odds are per ticket, not per user:
// buying more tickets raises the chance of winning proportionally. A draw
// picks one ticket, pays the fixed payout, and clears the whole pool.
type LotteryService struct {
	cfg     *config.Config
	tickets *repositories.TicketRepository
	coins   *repositories.CoinRepository
	economy *EconomyService

	// drawMu serializes draws so the scheduled and the manual path can
	// never double-draw.
	drawMu sync.Mutex

	pick func(n int) int
}

func NewLotteryService(cfg *config.Config, tickets *repositories.TicketRepository, coins *repositories.CoinRepository, economy *EconomyService) *LotteryService {
	return &LotteryService{
		cfg:     cfg,
		tickets: tickets,
		coins:   coins,
		economy: economy,
		pick:    rand.IntN,
	}
}

// BuyTicket charges the ticket cost and appends a ticket. Returns false
// with no state change on insufficient funds.
func (s *LotteryService) BuyTicket(userID int64) (bool, error) {
	charged, err := s.economy.Debit(userID, s.cfg.TicketCost, models.TxTypeLotteryTicket, "lottery ticket")
	if err != nil || !charged {
		return false, err
	}

	if err := s.tickets.CreateTicket(userID); err != nil {
		return false, err
	}
	return true, nil
}

// DrawWinner selects one ticket uniformly at random, credits the winner the
// fixed payout, and clears the entire pool, all in one transaction: if the
// payout cannot be written the pool stays intact for the next draw. An
// empty pool is a no-op. Returns the winner id and whether a draw happened.
func (s *LotteryService) DrawWinner() (int64, bool, error) {
	s.drawMu.Lock()
	defer s.drawMu.Unlock()

	winnerID, drawn, err := s.tickets.DrawAndClear(s.pick, func(tx *gorm.DB, winnerID int64) error {
		return s.coins.AddCoinsTx(tx, winnerID, s.cfg.LotteryPayout, models.TxTypeLotteryPayout, "lottery win")
	})
	if err != nil {
		return 0, false, err
	}
	if !drawn {
		return 0, false, nil
	}

	logger.Info("Lottery drawn", "winner", winnerID, "payout", s.cfg.LotteryPayout)
	return winnerID, true, nil
}

// TicketCount returns how many outstanding tickets a user holds
func (s *LotteryService) TicketCount(userID int64) (int64, error) {
	return s.tickets.CountForUser(userID)
}

// PoolSize returns the total number of outstanding tickets
func (s *LotteryService) PoolSize() (int64, error) {
	return s.tickets.PoolSize()
}
