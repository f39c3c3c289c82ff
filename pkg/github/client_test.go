package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gitfeed/pkg/apperr"

	"golang.org/x/oauth2"
)

func newTestService(apiURL string) *Service {
	s := NewService("client-id", "client-secret", "")
	s.apiBaseURL = apiURL
	return s
}

func TestValidateUsername(t *testing.T) {
	valid := []string{
		"a",
		"alice",
		"alice-bob",
		"a1-b2-c3",
		"0cool",
		strings.Repeat("a", 39),
	}
	for _, u := range valid {
		if !ValidateUsername(u) {
			t.Errorf("expected %q to be valid", u)
		}
	}

	invalid := []string{
		"",
		"Alice",
		"alice--bob",
		"-alice",
		"alice-",
		"alice_bob",
		"alice.bob",
		strings.Repeat("a", 40),
	}
	for _, u := range invalid {
		if ValidateUsername(u) {
			t.Errorf("expected %q to be invalid", u)
		}
	}
}

func TestUser_InvalidUsernameNoNetworkCall(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	s := newTestService(srv.URL)
	for _, username := range []string{"", "  ", "Invalid", "double--hyphen", "-lead"} {
		_, err := s.User(context.Background(), username, "")
		if !apperr.IsKind(err, apperr.Validation) {
			t.Errorf("username %q: expected validation error, got %v", username, err)
		}
	}

	_, _, err := s.ReceivedEvents(context.Background(), "trail-", 1, "")
	if !apperr.IsKind(err, apperr.Validation) {
		t.Errorf("expected validation error, got %v", err)
	}

	if requests != 0 {
		t.Errorf("expected no network calls for invalid usernames, got %d", requests)
	}
}

func TestUser_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 42, "login": "alice", "email": "alice@example.com"}`))
	}))
	defer srv.Close()

	s := newTestService(srv.URL)
	user, err := s.User(context.Background(), "alice", "tok1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer tok1" {
		t.Errorf("expected Authorization 'Bearer tok1', got %q", gotAuth)
	}
	if user.ID != 42 || user.Login != "alice" {
		t.Errorf("unexpected user decoded: %+v", user)
	}
}

func TestUser_AnonymousOmitsAuthorization(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 1, "login": "alice"}`))
	}))
	defer srv.Close()

	s := newTestService(srv.URL)
	if _, err := s.User(context.Background(), "alice", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestUser_UpstreamErrorCarriesStatusAndMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer srv.Close()

	s := newTestService(srv.URL)
	_, err := s.User(context.Background(), "alice", "")
	if !apperr.IsKind(err, apperr.Upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}

	ae := err.(*apperr.Error)
	if ae.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404 on error, got %d", ae.StatusCode)
	}
	if !strings.Contains(ae.Message, "Not Found") {
		t.Errorf("expected provider message in error, got %q", ae.Message)
	}
}

func TestUser_NonJSONResponseIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>rate limited</html>"))
	}))
	defer srv.Close()

	s := newTestService(srv.URL)
	_, err := s.User(context.Background(), "alice", "")
	if !apperr.IsKind(err, apperr.Upstream) {
		t.Errorf("expected upstream error for non-JSON response, got %v", err)
	}
}

func TestReceivedEvents_ParsesEventsAndLastPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("expected page=2 query, got %q", got)
		}
		w.Header().Set("Link", `<https://api.github.com/user/1/received_events?page=3>; rel="next", <https://api.github.com/user/1/received_events?page=7>; rel="last"`)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": "9", "type": "WatchEvent"}, {"id": "10", "type": "PushEvent"}]`))
	}))
	defer srv.Close()

	s := newTestService(srv.URL)
	events, maxPages, err := s.ReceivedEvents(context.Background(), "alice", 2, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events) != 2 || events[0].ID != "9" || events[1].Type != "PushEvent" {
		t.Errorf("unexpected events decoded: %+v", events)
	}
	if maxPages != 7 {
		t.Errorf("expected 7 max pages, got %d", maxPages)
	}
}

func TestReceivedEvents_MissingLinkFallsBackToRequestedPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	s := newTestService(srv.URL)
	_, maxPages, err := s.ReceivedEvents(context.Background(), "alice", 3, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if maxPages != 3 {
		t.Errorf("expected fallback to requested page 3, got %d", maxPages)
	}
}

func TestExchangeCode_DeniedGrantReturnsEmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "bad_verification_code"}`))
	}))
	defer srv.Close()

	s := NewService("client-id", "client-secret", "")
	s.oauth.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/authorize", TokenURL: srv.URL + "/token"}

	token, err := s.ExchangeCode(context.Background(), "bad-code")
	if err != nil {
		t.Fatalf("denied grant must not be an error, got %v", err)
	}
	if token != "" {
		t.Errorf("expected empty token for denied grant, got %q", token)
	}
}

func TestExchangeCode_GrantedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err == nil {
			if got := r.Form.Get("code"); got != "good-code" && r.PostForm.Get("code") != "good-code" {
				t.Errorf("expected code=good-code in exchange request, got %q", got)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "tok1", "token_type": "bearer"}`))
	}))
	defer srv.Close()

	s := NewService("client-id", "client-secret", "")
	s.oauth.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/authorize", TokenURL: srv.URL + "/token"}

	token, err := s.ExchangeCode(context.Background(), "good-code")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "tok1" {
		t.Errorf("expected token tok1, got %q", token)
	}
}

func TestAuthorizationURL(t *testing.T) {
	s := NewService("client-id", "client-secret", "")

	u := s.AuthorizationURL(nil, "", "")
	if !strings.HasPrefix(u, "https://github.com/login/oauth/authorize?") {
		t.Errorf("unexpected authorize URL: %s", u)
	}
	if !strings.Contains(u, "client_id=client-id") {
		t.Errorf("expected client_id param, got %s", u)
	}
	if strings.Contains(u, "scope=") || strings.Contains(u, "state=") || strings.Contains(u, "redirect_uri=") {
		t.Errorf("expected optional params to be omitted, got %s", u)
	}

	u = s.AuthorizationURL([]string{"repo", "user"}, "https://example.com/cb", "nonce123")
	for _, want := range []string{"scope=repo+user", "state=nonce123", "redirect_uri=https%3A%2F%2Fexample.com%2Fcb"} {
		if !strings.Contains(u, want) {
			t.Errorf("expected %q in authorize URL, got %s", want, u)
		}
	}
}
