package repositories

import (
	"github.com/crest365-hub/Telegram-bot/internal/models"
	"github.com/crest365-hub/Telegram-bot/pkg/errors"
	"gorm.io/gorm"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// CreateTicket appends one lottery ticket for a user
func (r *TicketRepository) CreateTicket(userID int64) error {
	ticket := &models.Ticket{UserID: userID}
	if err := r.db.Create(ticket).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create ticket")
	}
	return nil
}

// CountForUser returns the number of outstanding tickets a user holds
func (r *TicketRepository) CountForUser(userID int64) (int64, error) {
	var count int64
	result := r.db.Model(&models.Ticket{}).Where("user_id = ?", userID).Count(&count)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to count tickets")
	}
	return count, nil
}

// PoolSize returns the total number of outstanding tickets
func (r *TicketRepository) PoolSize() (int64, error) {
	var count int64
	result := r.db.Model(&models.Ticket{}).Count(&count)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to count ticket pool")
	}
	return count, nil
}

// DrawAndClear selects one ticket with the supplied pick function, deletes
// the whole pool, and runs the credit callback, all in one transaction.
// A failed credit rolls the clearing back, so the pool is never lost
// without the payout landing. Returns the winning user id and whether a
// draw happened; an empty pool is a no-op.
func (r *TicketRepository) DrawAndClear(pick func(n int) int, credit func(tx *gorm.DB, winnerID int64) error) (int64, bool, error) {
	var winnerID int64
	drawn := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var tickets []models.Ticket
		if err := tx.Order("id ASC").Find(&tickets).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to load tickets")
		}
		if len(tickets) == 0 {
			return nil
		}

		winnerID = tickets[pick(len(tickets))].UserID
		drawn = true

		if err := tx.Where("1 = 1").Delete(&models.Ticket{}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to clear ticket pool")
		}
		return credit(tx, winnerID)
	})
	if err != nil {
		return 0, false, err
	}

	return winnerID, drawn, nil
}
