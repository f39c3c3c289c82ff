package usecase

import (
	"context"
	"encoding/json"

	authdomain "gitfeed/internal/auth/domain"
	feeddomain "gitfeed/internal/feed/domain"
	"gitfeed/internal/feed/repository"
	"gitfeed/internal/metrics"
	"gitfeed/pkg/apperr"
	"gitfeed/pkg/github"

	"github.com/sirupsen/logrus"
)

// GitHubService is the slice of the GitHub client the feed needs.
type GitHubService interface {
	User(ctx context.Context, username, token string) (*github.User, error)
	ReceivedEvents(ctx context.Context, username string, page int, token string) ([]github.Event, int, error)
}

// feedUsecase implements FeedUsecase interface
type feedUsecase struct {
	eventRepo   repository.SnoozedEventRepository
	gh          GitHubService
	defaultUser string
}

// NewFeedUsecase creates a new instance of feedUsecase
func NewFeedUsecase(eventRepo repository.SnoozedEventRepository, gh GitHubService, defaultUser string) FeedUsecase {
	return &feedUsecase{
		eventRepo:   eventRepo,
		gh:          gh,
		defaultUser: defaultUser,
	}
}

func (u *feedUsecase) ComposeFeed(ctx context.Context, target string, current *authdomain.User, page int) (*Feed, error) {
	token := ""
	if current != nil {
		token = current.AccessToken
		if target == "" {
			target = current.Login
		}
	}
	if target == "" {
		target = u.defaultUser
	}
	if page < 1 {
		page = 1
	}

	profile, err := u.gh.User(ctx, target, token)
	if err != nil {
		countUpstream(err)
		return nil, err
	}

	events, maxPages, err := u.gh.ReceivedEvents(ctx, target, page, token)
	if err != nil {
		countUpstream(err)
		return nil, err
	}
	metrics.FeedFetches.Inc()

	snoozed, err := u.snoozedIDs(current)
	if err != nil {
		return nil, err
	}

	filtered := events[:0]
	for _, e := range events {
		if _, ok := snoozed[e.ID]; !ok {
			filtered = append(filtered, e)
		}
	}

	return &Feed{
		TargetUser: target,
		Profile:    profile,
		Events:     filtered,
		Page:       page,
		MaxPages:   maxPages,
	}, nil
}

func (u *feedUsecase) ComposeReminders(ctx context.Context, current *authdomain.User) (*Feed, error) {
	if current == nil {
		return nil, apperr.New(apperr.Auth, "not logged in")
	}

	profile, err := u.gh.User(ctx, current.Login, current.AccessToken)
	if err != nil {
		countUpstream(err)
		return nil, err
	}

	rows, err := u.eventRepo.ListByUser(current.GitHubID)
	if err != nil {
		return nil, err
	}

	events := make([]github.Event, 0, len(rows))
	for _, row := range rows {
		var e github.Event
		if err := json.Unmarshal(row.Payload, &e); err != nil {
			// Keep the reminder visible even when the stored payload no
			// longer parses as an event.
			logrus.WithField("event_id", row.EventID).Warn("unparsable snoozed payload")
			e = github.Event{ID: row.EventID}
		}
		events = append(events, e)
	}

	return &Feed{
		TargetUser: current.Login,
		Profile:    profile,
		Events:     events,
	}, nil
}

func (u *feedUsecase) Snooze(ctx context.Context, current *authdomain.User, eventID string, payload json.RawMessage) error {
	if current == nil {
		return apperr.New(apperr.Auth, "not logged in")
	}
	if eventID == "" {
		return apperr.New(apperr.Validation, "malformed event: missing id")
	}

	logrus.WithFields(logrus.Fields{"login": current.Login, "event_id": eventID}).Debug("snoozing event")
	err := u.eventRepo.Create(&feeddomain.SnoozedEvent{
		EventID:  eventID,
		Payload:  feeddomain.JSONPayload(payload),
		GitHubID: current.GitHubID,
	})
	if err != nil {
		return err
	}
	metrics.SnoozeActions.Inc()
	return nil
}

func (u *feedUsecase) Unsnooze(ctx context.Context, current *authdomain.User, eventID string) error {
	if current == nil {
		return apperr.New(apperr.Auth, "not logged in")
	}
	if eventID == "" {
		return apperr.New(apperr.Validation, "malformed event: missing id")
	}

	logrus.WithFields(logrus.Fields{"login": current.Login, "event_id": eventID}).Debug("unsnoozing event")
	if err := u.eventRepo.Delete(eventID); err != nil {
		return err
	}
	metrics.UnsnoozeActions.Inc()
	return nil
}

func (u *feedUsecase) snoozedIDs(current *authdomain.User) (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	if current == nil {
		return ids, nil
	}
	rows, err := u.eventRepo.ListByUser(current.GitHubID)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		ids[row.EventID] = struct{}{}
	}
	return ids, nil
}

func countUpstream(err error) {
	if apperr.IsKind(err, apperr.Upstream) {
		metrics.UpstreamErrors.Inc()
	}
}
