package usecase

import (
	"context"
	"testing"

	authdomain "gitfeed/internal/auth/domain"
	"gitfeed/pkg/github"
)

type fakeUserRepo struct {
	users map[int64]*authdomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*authdomain.User)}
}

func (r *fakeUserRepo) FindByToken(token string) (*authdomain.User, error) {
	for _, u := range r.users {
		if u.AccessToken == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(githubID int64) (*authdomain.User, error) {
	if u, ok := r.users[githubID]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) Upsert(user *authdomain.User) error {
	copied := *user
	r.users[user.GitHubID] = &copied
	return nil
}

type fakeGitHub struct {
	token string
	user  *github.User
}

func (f *fakeGitHub) AuthorizationURL(scopes []string, redirectURI, state string) string {
	return "https://github.com/login/oauth/authorize?state=" + state
}

func (f *fakeGitHub) ExchangeCode(ctx context.Context, code string) (string, error) {
	return f.token, nil
}

func (f *fakeGitHub) AuthenticatedUser(ctx context.Context, token string) (*github.User, error) {
	return f.user, nil
}

func TestHandleCallback_CreatesUserOnFirstLogin(t *testing.T) {
	repo := newFakeUserRepo()
	gh := &fakeGitHub{token: "tok1", user: &github.User{ID: 42, Login: "alice", Email: "alice@example.com"}}
	uc := NewAuthUsecase(repo, gh)

	user, err := uc.HandleCallback(context.Background(), "code")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user == nil || user.GitHubID != 42 || user.Login != "alice" || user.AccessToken != "tok1" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if len(repo.users) != 1 {
		t.Errorf("expected exactly one stored user, got %d", len(repo.users))
	}
}

func TestHandleCallback_IdempotentForSameAccount(t *testing.T) {
	repo := newFakeUserRepo()
	gh := &fakeGitHub{token: "tok1", user: &github.User{ID: 42, Login: "alice", Email: "alice@example.com"}}
	uc := NewAuthUsecase(repo, gh)

	if _, err := uc.HandleCallback(context.Background(), "code"); err != nil {
		t.Fatalf("first callback: %v", err)
	}

	// Second callback for the same account: rotated token, changed login.
	gh.token = "tok2"
	gh.user = &github.User{ID: 42, Login: "alice-renamed", Email: "new@example.com"}
	if _, err := uc.HandleCallback(context.Background(), "code"); err != nil {
		t.Fatalf("second callback: %v", err)
	}

	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one stored user after two callbacks, got %d", len(repo.users))
	}
	stored := repo.users[42]
	if stored.Login != "alice-renamed" || stored.Email != "new@example.com" || stored.AccessToken != "tok2" {
		t.Errorf("expected most recent values to win, got %+v", stored)
	}
}

func TestHandleCallback_DeniedGrantIsNotAnError(t *testing.T) {
	repo := newFakeUserRepo()
	gh := &fakeGitHub{token: ""}
	uc := NewAuthUsecase(repo, gh)

	user, err := uc.HandleCallback(context.Background(), "bad-code")
	if err != nil {
		t.Fatalf("denied grant must not error, got %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user for denied grant, got %+v", user)
	}
	if len(repo.users) != 0 {
		t.Errorf("expected no user row for denied grant")
	}
}

func TestCurrentUser_UnknownID(t *testing.T) {
	uc := NewAuthUsecase(newFakeUserRepo(), &fakeGitHub{})

	user, err := uc.CurrentUser(999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil for unknown id, got %+v", user)
	}
}
