package repositories

import (
	"time"

	"github.com/crest365-hub/Telegram-bot/internal/models"
	"github.com/crest365-hub/Telegram-bot/pkg/errors"
	"github.com/crest365-hub/Telegram-bot/pkg/utils"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// EnsureUser returns the user row for a Telegram id, creating it if it does
// not exist yet. Every user-facing operation goes through this before
// touching any other state. The second return value reports whether the row
// was created by this call.
func (r *UserRepository) EnsureUser(telegramID int64, handle string) (*models.User, bool, error) {
	var user models.User
	result := r.db.Where("telegram_id = ?", telegramID).First(&user)

	if result.Error == nil {
		updates := map[string]interface{}{"last_seen": time.Now().UTC()}
		if handle != "" && handle != user.Handle {
			updates["handle"] = handle
			user.Handle = handle
		}
		if err := r.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to touch user")
		}
		return &user, false, nil
	}

	if result.Error != gorm.ErrRecordNotFound {
		return nil, false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	user = models.User{
		TelegramID: telegramID,
		Handle:     handle,
		PublicID:   utils.GenerateRandomID(8),
		LastSeen:   time.Now().UTC(),
	}
	if err := r.db.Create(&user).Error; err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to create user")
	}

	return &user, true, nil
}

// GetByTelegramID retrieves a user by Telegram id
func (r *UserRepository) GetByTelegramID(telegramID int64) (*models.User, error) {
	var user models.User
	result := r.db.Where("telegram_id = ?", telegramID).First(&user)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	return &user, nil
}

// GetByPublicID retrieves a user by public id
func (r *UserRepository) GetByPublicID(publicID string) (*models.User, error) {
	var user models.User
	result := r.db.Where("public_id = ?", publicID).First(&user)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	return &user, nil
}

// UpdateProfile sets the user's gender tag and age. Either argument may be
// nil to clear the field.
func (r *UserRepository) UpdateProfile(telegramID int64, gender *string, age *int) error {
	result := r.db.Model(&models.User{}).
		Where("telegram_id = ?", telegramID).
		Updates(map[string]interface{}{"gender": gender, "age": age})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update profile")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "user not found")
	}
	return nil
}

// SetVIP flips the user's VIP flag
func (r *UserRepository) SetVIP(telegramID int64, vip bool) error {
	result := r.db.Model(&models.User{}).Where("telegram_id = ?", telegramID).Update("vip", vip)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update vip flag")
	}
	return nil
}

// TopCoins returns up to limit users ordered by balance descending, oldest
// row first on ties.
func (r *UserRepository) TopCoins(limit int) ([]models.User, error) {
	var users []models.User
	result := r.db.Order("coin_balance DESC, id ASC").Limit(limit).Find(&users)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get top coins")
	}
	return users, nil
}
