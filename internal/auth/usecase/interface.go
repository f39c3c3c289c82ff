package usecase

import (
	"context"

	authdomain "gitfeed/internal/auth/domain"
)

// AuthUsecase defines the interface for the OAuth login flow and session
// user resolution
type AuthUsecase interface {
	// AuthorizationURL returns the GitHub authorize-redirect URL for the
	// given state nonce
	AuthorizationURL(state string) string
	// HandleCallback exchanges the OAuth code and upserts the user.
	// A denied grant returns (nil, nil): the caller redirects without error.
	HandleCallback(ctx context.Context, code string) (*authdomain.User, error)
	// CurrentUser resolves a session's stored GitHub id; nil when unknown
	CurrentUser(githubID int64) (*authdomain.User, error)
}
