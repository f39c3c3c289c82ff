package usecase

import (
	"context"

	authdomain "gitfeed/internal/auth/domain"
	"gitfeed/internal/auth/repository"
	"gitfeed/pkg/github"

	"github.com/sirupsen/logrus"
)

// GitHubService is the slice of the GitHub client the auth flow needs.
type GitHubService interface {
	AuthorizationURL(scopes []string, redirectURI, state string) string
	ExchangeCode(ctx context.Context, code string) (string, error)
	AuthenticatedUser(ctx context.Context, token string) (*github.User, error)
}

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	gh       GitHubService
	scopes   []string
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, gh GitHubService) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		gh:       gh,
	}
}

func (u *authUsecase) AuthorizationURL(state string) string {
	return u.gh.AuthorizationURL(u.scopes, "", state)
}

func (u *authUsecase) HandleCallback(ctx context.Context, code string) (*authdomain.User, error) {
	token, err := u.gh.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if token == "" {
		// Provider declined the grant; not an error.
		logrus.Debug("oauth callback without an issued token")
		return nil, nil
	}

	ghUser, err := u.gh.AuthenticatedUser(ctx, token)
	if err != nil {
		return nil, err
	}

	// Token lookup covers the common case; fall back to the stable GitHub
	// id when the provider rotated the token for this account.
	user, err := u.userRepo.FindByToken(token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = u.userRepo.FindByID(ghUser.ID)
		if err != nil {
			return nil, err
		}
	}
	if user == nil {
		logrus.WithField("login", ghUser.Login).Info("creating user on first oauth login")
		user = &authdomain.User{GitHubID: ghUser.ID}
	}

	user.Login = ghUser.Login
	user.Email = ghUser.Email
	user.AccessToken = token
	if err := u.userRepo.Upsert(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) CurrentUser(githubID int64) (*authdomain.User, error) {
	return u.userRepo.FindByID(githubID)
}
