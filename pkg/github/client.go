package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"gitfeed/pkg/apperr"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
)

const (
	defaultAPIBaseURL = "https://api.github.com"

	// MaxEventsPerPage is hardcoded in the GitHub events API.
	MaxEventsPerPage = 30
)

// A GitHub username may only contain lowercase alphanumerics and single
// hyphens, cannot begin or end with a hyphen, and is at most 39 characters.
// RE2 has no lookahead, so the length cap is checked separately.
var usernamePattern = regexp.MustCompile(`^[a-z0-9](?:-?[a-z0-9])*$`)

const maxUsernameLength = 39

// Service wraps authorised calls against the GitHub REST and OAuth APIs so
// the web layer stays free of HTTP client concerns.
type Service struct {
	oauth      *oauth2.Config
	httpClient *http.Client
	apiBaseURL string
}

func NewService(clientID, clientSecret, redirectURL string) *Service {
	return &Service{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     githuboauth.Endpoint,
		},
		httpClient: newHTTPClient(),
		apiBaseURL: defaultAPIBaseURL,
	}
}

// newHTTPClient returns a pooled client with timeouts so a slow provider
// cannot hang request handlers.
func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        50,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		Timeout: 30 * time.Second,
	}
}

// AuthorizationURL builds the GitHub authorize-redirect URL. Empty optional
// parameters are omitted from the query. No network call is made.
func (s *Service) AuthorizationURL(scopes []string, redirectURI, state string) string {
	conf := *s.oauth
	conf.Scopes = scopes
	if redirectURI != "" {
		conf.RedirectURL = redirectURI
	}
	return conf.AuthCodeURL(state)
}

// ExchangeCode exchanges an OAuth code for an access token. A grant the
// provider denied (bad or expired code) is not an error: the empty token is
// the signal. Transport failures are returned as errors.
func (s *Service) ExchangeCode(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			logrus.WithField("status", retrieveErr.Response.StatusCode).
				Debug("github oauth exchange denied")
			return "", nil
		}
		return "", apperr.Wrap(apperr.Upstream, "failed to exchange oauth code", err)
	}
	return token.AccessToken, nil
}

// ValidateUsername reports whether the string is a valid GitHub username.
func ValidateUsername(username string) bool {
	return len(username) <= maxUsernameLength && usernamePattern.MatchString(username)
}

func checkUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return apperr.New(apperr.Validation, "username cannot be empty")
	}
	if !ValidateUsername(username) {
		return apperr.Newf(apperr.Validation, "invalid username %q", username)
	}
	return nil
}

// AuthenticatedUser returns the details of the user the token belongs to.
func (s *Service) AuthenticatedUser(ctx context.Context, token string) (*User, error) {
	resp, err := s.get(ctx, "/user", nil, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to decode user response", err)
	}
	return &user, nil
}

// User returns the GitHub user details for the given username.
// With an empty token only public details are visible.
func (s *Service) User(ctx context.Context, username, token string) (*User, error) {
	username = strings.TrimSpace(username)
	if err := checkUsername(username); err != nil {
		return nil, err
	}

	resp, err := s.get(ctx, "/users/"+username, nil, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to decode user response", err)
	}
	return &user, nil
}

// ReceivedEvents returns one page of the user's received activity events
// and the total page count derived from the Link response header. When no
// last-page link is present the requested page is assumed to be the last.
func (s *Service) ReceivedEvents(ctx context.Context, username string, page int, token string) ([]Event, int, error) {
	username = strings.TrimSpace(username)
	if err := checkUsername(username); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}

	params := map[string]string{"page": fmt.Sprintf("%d", page)}
	resp, err := s.get(ctx, "/users/"+username+"/received_events", params, token)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, 0, apperr.Wrap(apperr.Upstream, "failed to decode events response", err)
	}

	maxPages := page
	if last, ok := lastPage(resp.Header.Get("Link")); ok {
		maxPages = last
	} else if resp.Header.Get("Link") != "" {
		// Under-reports total pages when GitHub sends a Link header we
		// cannot parse; the feed stays usable so only warn.
		logrus.WithFields(logrus.Fields{
			"username": username,
			"link":     resp.Header.Get("Link"),
		}).Warn("could not determine last page from Link header")
	}

	return events, maxPages, nil
}

// get performs an authorised GET against the GitHub API and verifies the
// response is a successful JSON response.
func (s *Service) get(ctx context.Context, path string, params map[string]string, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiBaseURL+path, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to build request", err)
	}
	if len(params) > 0 {
		q := req.URL.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logrus.WithField("url", req.URL.String()).Debug("github api request")
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "github api request failed", err)
	}
	if err := checkResponse(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

// checkResponse classifies non-success or non-JSON responses as upstream
// errors carrying the provider's status code and message.
func checkResponse(resp *http.Response) error {
	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode >= 200 && resp.StatusCode < 300 && strings.Contains(contentType, "application/json") {
		return nil
	}

	message := resp.Status
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		message = body.Message
	}

	return &apperr.Error{
		Kind:       apperr.Upstream,
		Message:    fmt.Sprintf("github api: %d: %s", resp.StatusCode, message),
		StatusCode: resp.StatusCode,
	}
}
