package repositories

import (
	"time"

	"github.com/crest365-hub/Telegram-bot/internal/models"
	"github.com/crest365-hub/Telegram-bot/pkg/errors"
	"gorm.io/gorm"
)

type PairingRepository struct {
	db *gorm.DB
}

func NewPairingRepository(db *gorm.DB) *PairingRepository {
	return &PairingRepository{db: db}
}

// CreatePair links two users. Any pairing rows either user still holds are
// replaced, so re-matching destroys the old link.
func (r *PairingRepository) CreatePair(userA, userB int64, startedAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id IN ? OR partner_id IN ?", []int64{userA, userB}, []int64{userA, userB}).
			Delete(&models.Pairing{}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to clear stale pairings")
		}

		rows := []models.Pairing{
			{UserID: userA, PartnerID: userB, StartedAt: startedAt},
			{UserID: userB, PartnerID: userA, StartedAt: startedAt},
		}
		if err := tx.Create(&rows).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create pairing")
		}
		return nil
	})
}

// DeletePair removes the pairing a user is part of, both directions.
// Returns the vacated partner id and whether a pairing existed.
func (r *PairingRepository) DeletePair(userID int64) (int64, bool, error) {
	var partnerID int64
	existed := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var row models.Pairing
		result := tx.Where("user_id = ?", userID).First(&row)
		if result.Error == gorm.ErrRecordNotFound {
			return nil
		}
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to look up pairing")
		}

		partnerID = row.PartnerID
		existed = true

		if err := tx.Where("user_id IN ?", []int64{userID, partnerID}).
			Delete(&models.Pairing{}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete pairing")
		}
		return nil
	})

	return partnerID, existed, err
}

// PartnerOf looks up the active partner for a user
func (r *PairingRepository) PartnerOf(userID int64) (int64, bool, error) {
	var row models.Pairing
	result := r.db.Where("user_id = ?", userID).First(&row)

	if result.Error == gorm.ErrRecordNotFound {
		return 0, false, nil
	}
	if result.Error != nil {
		return 0, false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to look up pairing")
	}

	return row.PartnerID, true, nil
}

// All returns every directional pairing row, used to rebuild the in-memory
// routing map at startup.
func (r *PairingRepository) All() ([]models.Pairing, error) {
	var rows []models.Pairing
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to load pairings")
	}
	return rows, nil
}
