package repository

import (
	"time"

	feeddomain "gitfeed/internal/feed/domain"
	"gitfeed/pkg/apperr"

	"gorm.io/gorm"
)

// snoozedEventRepository implements SnoozedEventRepository interface
type snoozedEventRepository struct {
	db *gorm.DB
}

// NewSnoozedEventRepository creates a new instance of snoozedEventRepository
func NewSnoozedEventRepository(db *gorm.DB) SnoozedEventRepository {
	return &snoozedEventRepository{
		db: db,
	}
}

func (r *snoozedEventRepository) ListByUser(githubID int64) ([]*feeddomain.SnoozedEvent, error) {
	var events []*feeddomain.SnoozedEvent
	err := r.db.Where("github_id = ?", githubID).Find(&events).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to list snoozed events", err)
	}
	return events, nil
}

func (r *snoozedEventRepository) Create(event *feeddomain.SnoozedEvent) error {
	event.CreatedAt = time.Now()
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// A duplicate event id means the same event was snoozed twice;
		// surface it instead of silently ignoring.
		return tx.Create(event).Error
	})
	if err != nil {
		return apperr.Wrap(apperr.Persistence, "failed to snooze event", err)
	}
	return nil
}

func (r *snoozedEventRepository) Delete(eventID string) error {
	res := r.db.Where("event_id = ?", eventID).Delete(&feeddomain.SnoozedEvent{})
	if res.Error != nil {
		return apperr.Wrap(apperr.Persistence, "failed to unsnooze event", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Newf(apperr.NotFound, "no snoozed event with id %q", eventID)
	}
	return nil
}
