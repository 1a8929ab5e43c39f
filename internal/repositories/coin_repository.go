package repositories

import (
	"fmt"
	"time"

	"github.com/crest365-hub/Telegram-bot/internal/models"
	"github.com/crest365-hub/Telegram-bot/pkg/errors"
	"github.com/crest365-hub/Telegram-bot/pkg/utils"
	"gorm.io/gorm"
)

type CoinRepository struct {
	db *gorm.DB
}

func NewCoinRepository(db *gorm.DB) *CoinRepository {
	return &CoinRepository{db: db}
}

// AddCoins adds coins to a user's balance with transaction logging
func (r *CoinRepository) AddCoins(userID int64, amount int64, txType, description string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return r.AddCoinsTx(tx, userID, amount, txType, description)
	})
}

// AddCoinsTx applies the same credit inside an already open transaction, so
// a caller can make the credit atomic with its own writes.
func (r *CoinRepository) AddCoinsTx(tx *gorm.DB, userID int64, amount int64, txType, description string) error {
	result := tx.Model(&models.User{}).
		Where("telegram_id = ?", userID).
		UpdateColumn("coin_balance", gorm.Expr("coin_balance + ?", amount))
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update balance")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "user not found")
	}

	return r.logTransaction(tx, userID, amount, txType, description)
}

// DeductCoins deducts coins from a user's balance with transaction logging.
// The balance check and update are a single guarded statement, so two
// concurrent deductions can never drive the balance negative. Returns an
// AppError with ErrCodeInsufficientFunds when the balance is too low.
func (r *CoinRepository) DeductCoins(userID int64, amount int64, txType, description string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("telegram_id = ? AND coin_balance >= ?", userID, amount).
			UpdateColumn("coin_balance", gorm.Expr("coin_balance - ?", amount))
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update balance")
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.User{}).Where("telegram_id = ?", userID).Count(&count).Error; err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "failed to check user")
			}
			if count == 0 {
				return errors.New(errors.ErrCodeNotFound, "user not found")
			}
			return errors.New(errors.ErrCodeInsufficientFunds, fmt.Sprintf("insufficient coins: need %d", amount))
		}

		return r.logTransaction(tx, userID, -amount, txType, description)
	})
}

// Transfer moves coins from one user to another in a single transaction.
// The recipient row is created if it does not exist, holding exactly the
// transferred amount. On insufficient funds nothing changes.
func (r *CoinRepository) Transfer(fromID, toID int64, amount int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("telegram_id = ? AND coin_balance >= ?", fromID, amount).
			UpdateColumn("coin_balance", gorm.Expr("coin_balance - ?", amount))
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to debit sender")
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.User{}).Where("telegram_id = ?", fromID).Count(&count).Error; err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "failed to check sender")
			}
			if count == 0 {
				return errors.New(errors.ErrCodeNotFound, "sender not found")
			}
			return errors.New(errors.ErrCodeInsufficientFunds, fmt.Sprintf("insufficient coins: need %d", amount))
		}

		credit := tx.Model(&models.User{}).
			Where("telegram_id = ?", toID).
			UpdateColumn("coin_balance", gorm.Expr("coin_balance + ?", amount))
		if credit.Error != nil {
			return errors.Wrap(credit.Error, errors.ErrCodeInternalError, "failed to credit recipient")
		}
		if credit.RowsAffected == 0 {
			recipient := models.User{
				TelegramID:  toID,
				PublicID:    utils.GenerateRandomID(8),
				CoinBalance: amount,
				LastSeen:    time.Now().UTC(),
			}
			if err := tx.Create(&recipient).Error; err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create recipient")
			}
		}

		if err := r.logTransaction(tx, fromID, -amount, models.TxTypeGiftSent, fmt.Sprintf("gift to %d", toID)); err != nil {
			return err
		}
		return r.logTransaction(tx, toID, amount, models.TxTypeGiftReceived, fmt.Sprintf("gift from %d", fromID))
	})
}

// ClaimDaily performs the daily reward claim for a user. At most one claim
// succeeds per UTC calendar day: the date check and the row update are a
// single guarded statement, so a concurrent double claim loses the race and
// reports zero reward. Streak increments only when the previous claim was
// exactly yesterday.
func (r *CoinRepository) ClaimDaily(userID int64, now time.Time) (reward int64, streak int, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("telegram_id = ?", userID).First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "user not found")
			}
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to get user")
		}

		if user.HasClaimedOn(now) {
			reward = 0
			streak = user.DailyStreak
			return nil
		}

		newStreak := 1
		if user.LastDailyClaim != nil {
			yesterday := now.UTC().AddDate(0, 0, -1)
			y1, m1, d1 := user.LastDailyClaim.UTC().Date()
			y2, m2, d2 := yesterday.Date()
			if y1 == y2 && m1 == m2 && d1 == d2 {
				newStreak = user.DailyStreak + 1
			}
		}

		amount := DailyReward(newStreak)
		startOfDay := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)

		claimedAt := now.UTC()
		result := tx.Model(&models.User{}).
			Where("telegram_id = ? AND (last_daily_claim IS NULL OR last_daily_claim < ?)", userID, startOfDay).
			Updates(map[string]interface{}{
				"coin_balance":     gorm.Expr("coin_balance + ?", amount),
				"daily_streak":     newStreak,
				"last_daily_claim": claimedAt,
			})
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to apply daily reward")
		}
		if result.RowsAffected == 0 {
			// Lost the race against a concurrent claim
			reward = 0
			streak = user.DailyStreak
			return nil
		}

		if err := r.logTransaction(tx, userID, amount, models.TxTypeDailyBonus, fmt.Sprintf("daily bonus, streak %d", newStreak)); err != nil {
			return err
		}

		reward = amount
		streak = newStreak
		return nil
	})
	return reward, streak, err
}

// DailyReward computes the reward for a given streak: 5 coins on day one,
// then 2 more per consecutive day, capped at 20.
func DailyReward(streak int) int64 {
	if streak <= 1 {
		return 5
	}
	reward := int64(5 + (streak-1)*2)
	if reward > 20 {
		return 20
	}
	return reward
}

// GetBalance retrieves a user's current coin balance
func (r *CoinRepository) GetBalance(userID int64) (int64, error) {
	var user models.User
	result := r.db.Select("coin_balance").Where("telegram_id = ?", userID).First(&user)

	if result.Error == gorm.ErrRecordNotFound {
		return 0, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get balance")
	}

	return user.CoinBalance, nil
}

// GetTransactionHistory retrieves a user's most recent transactions
func (r *CoinRepository) GetTransactionHistory(userID int64, limit int) ([]models.CoinTransaction, error) {
	var transactions []models.CoinTransaction
	result := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get transaction history")
	}

	return transactions, nil
}

func (r *CoinRepository) logTransaction(tx *gorm.DB, userID, amount int64, txType, description string) error {
	transaction := &models.CoinTransaction{
		UserID:          userID,
		Amount:          amount,
		TransactionType: txType,
		Description:     description,
	}
	if err := tx.Create(transaction).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create transaction record")
	}
	return nil
}
