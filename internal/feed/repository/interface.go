package repository

import feeddomain "gitfeed/internal/feed/domain"

// SnoozedEventRepository defines the interface for snoozed-event persistence
type SnoozedEventRepository interface {
	// ListByUser returns all snoozed events for a user
	ListByUser(githubID int64) ([]*feeddomain.SnoozedEvent, error)
	// Create inserts a snoozed event; a colliding event id is an error
	Create(event *feeddomain.SnoozedEvent) error
	// Delete removes a snoozed event by id; apperr.NotFound when absent
	Delete(eventID string) error
}
