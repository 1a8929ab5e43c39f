package services

import (
	"os"
	"testing"
	"time"

	"github.com/crest365-hub/Telegram-bot/internal/config"
	"github.com/crest365-hub/Telegram-bot/internal/models"
	"github.com/crest365-hub/Telegram-bot/internal/repositories"
	"github.com/crest365-hub/Telegram-bot/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func setupEconomy(t *testing.T, cfg *config.Config) (*EconomyService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.CoinTransaction{}, &models.Ticket{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	users := repositories.NewUserRepository(db)
	coins := repositories.NewCoinRepository(db)
	return NewEconomyService(cfg, users, coins), db
}

func TestEnsureUser_WelcomeBonusOnlyOnce(t *testing.T) {
	economy, _ := setupEconomy(t, &config.Config{WelcomeCoins: 10})

	user, err := economy.EnsureUser(1, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(10), user.CoinBalance)

	user, err = economy.EnsureUser(1, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(10), user.CoinBalance)
}

func TestEnsureUser_SanitizesHandleOnEveryTouch(t *testing.T) {
	economy, db := setupEconomy(t, &config.Config{})

	user, err := economy.EnsureUser(1, "Mallory")
	require.NoError(t, err)
	assert.Equal(t, "Mallory", user.Handle)

	// a later touch with a raw display name must not undo the sanitization
	_, err = economy.EnsureUser(1, "<script>alert(1)</script>Mallory")
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.Where("telegram_id = ?", int64(1)).First(&stored).Error)
	assert.Equal(t, "Mallory", stored.Handle)
}

func TestDebit_NeverGoesNegative(t *testing.T) {
	economy, _ := setupEconomy(t, &config.Config{WelcomeCoins: 10})
	_, err := economy.EnsureUser(1, "alice")
	require.NoError(t, err)

	ok, err := economy.Debit(1, 7, models.TxTypeFastMatch, "fee")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = economy.Debit(1, 7, models.TxTypeFastMatch, "fee")
	require.NoError(t, err)
	assert.False(t, ok)

	balance, err := economy.Balance(1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), balance)
}

func TestDebit_RejectsNonPositiveAmount(t *testing.T) {
	economy, _ := setupEconomy(t, &config.Config{})
	_, err := economy.EnsureUser(1, "alice")
	require.NoError(t, err)

	_, err = economy.Debit(1, 0, models.TxTypeFastMatch, "fee")
	assert.Error(t, err)
	_, err = economy.Debit(1, -5, models.TxTypeFastMatch, "fee")
	assert.Error(t, err)
}

func TestGift_TransfersAndCreatesRecipient(t *testing.T) {
	economy, _ := setupEconomy(t, &config.Config{WelcomeCoins: 50})
	_, err := economy.EnsureUser(1, "alice")
	require.NoError(t, err)

	sent, err := economy.Gift(1, 2, 20)
	require.NoError(t, err)
	assert.True(t, sent)

	fromBalance, _ := economy.Balance(1)
	toBalance, _ := economy.Balance(2)
	assert.Equal(t, int64(30), fromBalance)
	assert.Equal(t, int64(20), toBalance)
}

func TestGift_InsufficientFunds(t *testing.T) {
	economy, _ := setupEconomy(t, &config.Config{WelcomeCoins: 5})
	_, err := economy.EnsureUser(1, "alice")
	require.NoError(t, err)
	_, err = economy.EnsureUser(2, "bob")
	require.NoError(t, err)

	sent, err := economy.Gift(1, 2, 100)
	require.NoError(t, err)
	assert.False(t, sent)

	fromBalance, _ := economy.Balance(1)
	toBalance, _ := economy.Balance(2)
	assert.Equal(t, int64(5), fromBalance)
	assert.Equal(t, int64(5), toBalance)
}

func TestGift_SelfGiftRejected(t *testing.T) {
	economy, _ := setupEconomy(t, &config.Config{WelcomeCoins: 50})
	_, err := economy.EnsureUser(1, "alice")
	require.NoError(t, err)

	_, err = economy.Gift(1, 1, 10)
	assert.Error(t, err)
}

func TestClaimDaily_ThroughService(t *testing.T) {
	economy, db := setupEconomy(t, &config.Config{})
	_, err := economy.EnsureUser(1, "alice")
	require.NoError(t, err)

	reward, streak, err := economy.ClaimDaily(1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), reward)
	assert.Equal(t, 1, streak)

	// second claim the same day yields nothing
	reward, streak, err = economy.ClaimDaily(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), reward)
	assert.Equal(t, 1, streak)

	// pretend the claim happened yesterday
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	require.NoError(t, db.Model(&models.User{}).Where("telegram_id = ?", 1).
		Update("last_daily_claim", yesterday).Error)

	reward, streak, err = economy.ClaimDaily(1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), reward)
	assert.Equal(t, 2, streak)
}

func TestTopCoins_Ordering(t *testing.T) {
	economy, _ := setupEconomy(t, &config.Config{})
	for id, grant := range map[int64]int64{1: 30, 2: 50, 3: 10} {
		_, err := economy.EnsureUser(id, "user")
		require.NoError(t, err)
		require.NoError(t, economy.Credit(id, grant, models.TxTypeAdminAdjustment, "grant"))
	}

	top, err := economy.TopCoins(2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(2), top[0].TelegramID)
	assert.Equal(t, int64(1), top[1].TelegramID)
}
