package repositories_test

import (
	"testing"
	"time"

	"github.com/crest365-hub/Telegram-bot/internal/models"
	"github.com/crest365-hub/Telegram-bot/internal/repositories"
	apperrors "github.com/crest365-hub/Telegram-bot/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setup in-memory DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.AutoMigrate(&models.User{}, &models.CoinTransaction{}, &models.Pairing{}, &models.Ticket{}, &models.DailyCount{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func createUser(t *testing.T, db *gorm.DB, telegramID int64, balance int64) {
	t.Helper()
	users := repositories.NewUserRepository(db)
	_, _, err := users.EnsureUser(telegramID, "tester")
	require.NoError(t, err)
	if balance != 0 {
		require.NoError(t, db.Model(&models.User{}).Where("telegram_id = ?", telegramID).
			Update("coin_balance", balance).Error)
	}
}

func TestDeductCoins_GuardsBalance(t *testing.T) {
	db := setupTestDB(t)
	coins := repositories.NewCoinRepository(db)
	createUser(t, db, 1, 50)

	// first deduction fits
	err := coins.DeductCoins(1, 30, models.TxTypeFastMatch, "fee")
	assert.NoError(t, err)

	// second one does not; balance must be untouched
	err = coins.DeductCoins(1, 30, models.TxTypeFastMatch, "fee")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInsufficientFunds))

	balance, err := coins.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, int64(20), balance)
}

func TestDeductCoins_UnknownUser(t *testing.T) {
	db := setupTestDB(t)
	coins := repositories.NewCoinRepository(db)

	err := coins.DeductCoins(99, 5, models.TxTypeFastMatch, "fee")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
}

func TestAddCoins_LogsTransaction(t *testing.T) {
	db := setupTestDB(t)
	coins := repositories.NewCoinRepository(db)
	createUser(t, db, 1, 0)

	require.NoError(t, coins.AddCoins(1, 25, models.TxTypeAdminAdjustment, "grant"))

	history, err := coins.GetTransactionHistory(1, 10)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, int64(25), history[0].Amount)
	assert.Equal(t, models.TxTypeAdminAdjustment, history[0].TransactionType)
}

func TestTransfer_CreatesRecipient(t *testing.T) {
	db := setupTestDB(t)
	coins := repositories.NewCoinRepository(db)
	createUser(t, db, 1, 40)

	// recipient 2 does not exist yet
	require.NoError(t, coins.Transfer(1, 2, 15))

	fromBalance, err := coins.GetBalance(1)
	require.NoError(t, err)
	assert.Equal(t, int64(25), fromBalance)

	toBalance, err := coins.GetBalance(2)
	require.NoError(t, err)
	assert.Equal(t, int64(15), toBalance)
}

func TestTransfer_InsufficientFundsIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	coins := repositories.NewCoinRepository(db)
	createUser(t, db, 1, 10)
	createUser(t, db, 2, 0)

	err := coins.Transfer(1, 2, 50)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInsufficientFunds))

	fromBalance, _ := coins.GetBalance(1)
	toBalance, _ := coins.GetBalance(2)
	assert.Equal(t, int64(10), fromBalance)
	assert.Equal(t, int64(0), toBalance)
}

func TestClaimDaily_SameDayIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	coins := repositories.NewCoinRepository(db)
	createUser(t, db, 1, 0)

	now := time.Now().UTC()

	reward, streak, err := coins.ClaimDaily(1, now)
	require.NoError(t, err)
	assert.Equal(t, int64(5), reward)
	assert.Equal(t, 1, streak)

	reward, streak, err = coins.ClaimDaily(1, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), reward)
	assert.Equal(t, 1, streak)

	balance, _ := coins.GetBalance(1)
	assert.Equal(t, int64(5), balance)
}

func TestClaimDaily_StreakSequence(t *testing.T) {
	db := setupTestDB(t)
	coins := repositories.NewCoinRepository(db)
	createUser(t, db, 1, 0)

	wantRewards := []int64{5, 7, 9, 11, 13, 15}
	day := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, want := range wantRewards {
		reward, streak, err := coins.ClaimDaily(1, day.AddDate(0, 0, i))
		require.NoError(t, err)
		assert.Equal(t, want, reward, "day %d", i+1)
		assert.Equal(t, i+1, streak, "day %d", i+1)
	}
}

func TestClaimDaily_GapResetsStreak(t *testing.T) {
	db := setupTestDB(t)
	coins := repositories.NewCoinRepository(db)
	createUser(t, db, 1, 0)

	day := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	_, _, err := coins.ClaimDaily(1, day)
	require.NoError(t, err)
	_, streak, err := coins.ClaimDaily(1, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, streak)

	// two-day gap
	reward, streak, err := coins.ClaimDaily(1, day.AddDate(0, 0, 4))
	require.NoError(t, err)
	assert.Equal(t, int64(5), reward)
	assert.Equal(t, 1, streak)
}

func TestDailyReward_Cap(t *testing.T) {
	assert.Equal(t, int64(5), repositories.DailyReward(1))
	assert.Equal(t, int64(15), repositories.DailyReward(6))
	assert.Equal(t, int64(19), repositories.DailyReward(8))
	assert.Equal(t, int64(20), repositories.DailyReward(9))
	assert.Equal(t, int64(20), repositories.DailyReward(100))
}
