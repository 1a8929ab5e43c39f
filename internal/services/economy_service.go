package services

import (
	"time"

	"github.com/crest365-hub/Telegram-bot/internal/config"
	"github.com/crest365-hub/Telegram-bot/internal/models"
	"github.com/crest365-hub/Telegram-bot/internal/repositories"
	"github.com/crest365-hub/Telegram-bot/internal/security"
	"github.com/crest365-hub/Telegram-bot/pkg/errors"
	"github.com/crest365-hub/Telegram-bot/pkg/logger"
)

// EconomyService owns every coin mutation: credits, debits, the daily
// reward with streak logic, and gifting. All balance changes go through the
// coin repository so they are atomic per user and leave an audit row.
type EconomyService struct {
	cfg   *config.Config
	users *repositories.UserRepository
	coins *repositories.CoinRepository
}

func NewEconomyService(cfg *config.Config, users *repositories.UserRepository, coins *repositories.CoinRepository) *EconomyService {
	return &EconomyService{cfg: cfg, users: users, coins: coins}
}

// EnsureUser makes sure a ledger row exists for the user, seeding new rows
// with the configured welcome bonus. The handle is sanitized here so no
// caller can write a raw display name into the row.
func (s *EconomyService) EnsureUser(telegramID int64, handle string) (*models.User, error) {
	user, created, err := s.users.EnsureUser(telegramID, security.SanitizeHandle(handle))
	if err != nil {
		return nil, err
	}

	if created && s.cfg.WelcomeCoins > 0 {
		if err := s.coins.AddCoins(telegramID, s.cfg.WelcomeCoins, models.TxTypeWelcomeBonus, "welcome bonus"); err != nil {
			return nil, err
		}
		user.CoinBalance += s.cfg.WelcomeCoins
		logger.Info("New user registered", "user_id", telegramID, "welcome_coins", s.cfg.WelcomeCoins)
	}

	return user, nil
}

// Credit adds coins to a user's balance
func (s *EconomyService) Credit(userID int64, amount int64, txType, description string) error {
	if amount <= 0 {
		return errors.New(errors.ErrCodeValidation, "credit amount must be positive")
	}
	return s.coins.AddCoins(userID, amount, txType, description)
}

// Debit removes coins from a user's balance. Returns false with no state
// change when the balance is too low.
func (s *EconomyService) Debit(userID int64, amount int64, txType, description string) (bool, error) {
	if amount <= 0 {
		return false, errors.New(errors.ErrCodeValidation, "debit amount must be positive")
	}

	err := s.coins.DeductCoins(userID, amount, txType, description)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeInsufficientFunds) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ClaimDaily claims the daily reward. A second claim on the same calendar
// day returns reward 0 with the streak unchanged.
func (s *EconomyService) ClaimDaily(userID int64) (int64, int, error) {
	return s.coins.ClaimDaily(userID, time.Now())
}

// Gift transfers coins between users. Gifting to an unknown id creates that
// user's ledger row holding the gifted balance. Returns false with no state
// change on insufficient funds.
func (s *EconomyService) Gift(fromID, toID int64, amount int64) (bool, error) {
	if amount <= 0 {
		return false, errors.New(errors.ErrCodeValidation, "gift amount must be positive")
	}
	if fromID == toID {
		return false, errors.New(errors.ErrCodeValidation, "cannot gift to yourself")
	}

	err := s.coins.Transfer(fromID, toID, amount)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeInsufficientFunds) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Balance returns a user's current coin balance
func (s *EconomyService) Balance(userID int64) (int64, error) {
	return s.coins.GetBalance(userID)
}

// TopCoins returns the richest users, descending by balance
func (s *EconomyService) TopCoins(limit int) ([]models.User, error) {
	return s.users.TopCoins(limit)
}

// History returns a user's most recent coin transactions
func (s *EconomyService) History(userID int64, limit int) ([]models.CoinTransaction, error) {
	return s.coins.GetTransactionHistory(userID, limit)
}
