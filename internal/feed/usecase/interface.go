package usecase

import (
	"context"
	"encoding/json"

	authdomain "gitfeed/internal/auth/domain"
	"gitfeed/pkg/github"
)

// Feed is one composed page of activity events ready for rendering.
type Feed struct {
	TargetUser string
	Profile    *github.User
	Events     []github.Event
	Page       int
	MaxPages   int
}

// FeedUsecase defines the interface for feed composition and snoozing
type FeedUsecase interface {
	// ComposeFeed fetches one page of the target's received events with the
	// current user's snoozed events filtered out
	ComposeFeed(ctx context.Context, target string, current *authdomain.User, page int) (*Feed, error)
	// ComposeReminders returns the current user's snoozed events, unfiltered
	ComposeReminders(ctx context.Context, current *authdomain.User) (*Feed, error)
	// Snooze hides an event from the feed into the user's reminder list
	Snooze(ctx context.Context, current *authdomain.User, eventID string, payload json.RawMessage) error
	// Unsnooze removes an event from the reminder list
	Unsnooze(ctx context.Context, current *authdomain.User, eventID string) error
}
