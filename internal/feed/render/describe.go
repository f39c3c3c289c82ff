package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"gitfeed/pkg/github"
)

// Description is a structured account of one activity event for the
// presentation layer to format. No HTML is assembled here.
type Description struct {
	Kind     string
	Known    bool
	Icon     string
	Verb     string
	RepoName string
	RepoURL  string
	// TargetLabel/TargetURL point at the specific object acted on
	// (branch, issue, release, forked repo), when the kind has one.
	TargetLabel string
	TargetURL   string
	// Comment is a short body snippet (comment text, issue title).
	Comment string
}

const (
	defaultIcon       = "far fa-question-circle"
	commentSnippetLen = 140
)

var eventIcons = map[string]string{
	"CommitCommentEvent":            "far fa-comment",
	"CreateEvent":                   "far fa-plus-square",
	"DeleteEvent":                   "fas fa-minus-square",
	"FollowEvent":                   "fas fa-user-friends",
	"ForkEvent":                     "fas fa-share-alt",
	"GistEvent":                     "far fa-file-code",
	"GollumEvent":                   "fas fa-pencil-alt",
	"IssuesEvent":                   "fas fa-clipboard-list",
	"IssueCommentEvent":             "far fa-comments",
	"MemberEvent":                   "fas fa-user-plus",
	"PublicEvent":                   "fas fa-globe-africa",
	"PullRequestEvent":              "fas fa-compress-alt",
	"PullRequestReviewCommentEvent": "far fa-comments",
	"PushEvent":                     "fas fa-long-arrow-alt-up",
	"ReleaseEvent":                  "fas fa-tag",
	"WatchEvent":                    "fas fa-star",
}

type commentPayload struct {
	Action  string `json:"action"`
	Comment struct {
		HTMLURL string `json:"html_url"`
		Body    string `json:"body"`
	} `json:"comment"`
	Issue struct {
		Number      int             `json:"number"`
		Title       string          `json:"title"`
		HTMLURL     string          `json:"html_url"`
		PullRequest json.RawMessage `json:"pull_request"`
	} `json:"issue"`
	PullRequest struct {
		Number  int    `json:"number"`
		Title   string `json:"title"`
		HTMLURL string `json:"html_url"`
	} `json:"pull_request"`
}

type refPayload struct {
	Ref     string `json:"ref"`
	RefType string `json:"ref_type"`
}

type forkPayload struct {
	Forkee struct {
		FullName string `json:"full_name"`
		HTMLURL  string `json:"html_url"`
	} `json:"forkee"`
}

type gollumPayload struct {
	Pages []struct {
		Action  string `json:"action"`
		Title   string `json:"title"`
		HTMLURL string `json:"html_url"`
	} `json:"pages"`
}

type memberPayload struct {
	Member struct {
		Login string `json:"login"`
	} `json:"member"`
}

type followPayload struct {
	Target struct {
		Login string `json:"login"`
	} `json:"target"`
}

type gistPayload struct {
	Action string `json:"action"`
	Gist   struct {
		ID      string `json:"id"`
		HTMLURL string `json:"html_url"`
	} `json:"gist"`
}

type releasePayload struct {
	Release struct {
		TagName string `json:"tag_name"`
		HTMLURL string `json:"html_url"`
	} `json:"release"`
}

// Describe maps an event to its structured description. Unknown kinds get
// the fallback variant instead of disappearing from the feed.
func Describe(e github.Event) Description {
	d := Description{
		Kind:     e.Type,
		Known:    true,
		Icon:     eventIcons[e.Type],
		RepoName: e.Repo.Name,
		RepoURL:  "https://github.com/" + e.Repo.Name,
	}
	if d.Icon == "" {
		d.Icon = defaultIcon
	}

	switch e.Type {
	case "CommitCommentEvent":
		var p commentPayload
		decode(e.Payload, &p)
		d.Verb = "commented on commit"
		d.TargetLabel = e.Repo.Name
		d.TargetURL = p.Comment.HTMLURL
		d.Comment = snippet(p.Comment.Body)

	case "CreateEvent":
		var p refPayload
		decode(e.Payload, &p)
		d.Verb = "created " + p.RefType
		d.TargetLabel = branch(p.Ref)
		if p.RefType == "repository" {
			d.TargetLabel = e.Repo.Name
			d.TargetURL = d.RepoURL
		} else {
			d.TargetURL = fmt.Sprintf("https://github.com/%s/tree/%s", e.Repo.Name, branch(p.Ref))
		}

	case "DeleteEvent":
		var p refPayload
		decode(e.Payload, &p)
		d.Verb = "deleted " + p.RefType
		d.TargetLabel = p.Ref

	case "FollowEvent":
		var p followPayload
		decode(e.Payload, &p)
		d.Verb = "started following"
		d.TargetLabel = p.Target.Login
		d.TargetURL = "https://github.com/" + p.Target.Login

	case "ForkEvent":
		var p forkPayload
		decode(e.Payload, &p)
		d.Verb = "forked"
		d.TargetLabel = p.Forkee.FullName
		d.TargetURL = p.Forkee.HTMLURL
		if d.TargetURL == "" {
			d.TargetURL = "https://github.com/" + p.Forkee.FullName
		}

	case "GistEvent":
		var p gistPayload
		decode(e.Payload, &p)
		verb := p.Action + "d"
		if p.Action == "fork" {
			verb = "forked"
		}
		d.Verb = verb
		d.TargetLabel = p.Gist.ID
		d.TargetURL = p.Gist.HTMLURL

	case "GollumEvent":
		var p gollumPayload
		decode(e.Payload, &p)
		if len(p.Pages) > 0 {
			d.Verb = p.Pages[0].Action + " the wiki of"
			d.TargetLabel = p.Pages[0].Title
			d.TargetURL = p.Pages[0].HTMLURL
		} else {
			d.Verb = "edited the wiki of"
		}

	case "IssueCommentEvent":
		var p commentPayload
		decode(e.Payload, &p)
		kind := "issue"
		if len(p.Issue.PullRequest) > 0 {
			kind = "pull request"
		}
		d.Verb = "commented on " + kind
		d.TargetLabel = fmt.Sprintf("%s#%d", e.Repo.Name, p.Issue.Number)
		d.TargetURL = p.Issue.HTMLURL
		d.Comment = snippet(p.Comment.Body)

	case "IssuesEvent":
		var p commentPayload
		decode(e.Payload, &p)
		d.Verb = p.Action + " issue"
		d.TargetLabel = fmt.Sprintf("%s#%d", e.Repo.Name, p.Issue.Number)
		d.TargetURL = p.Issue.HTMLURL
		d.Comment = snippet(p.Issue.Title)

	case "MemberEvent":
		var p memberPayload
		decode(e.Payload, &p)
		d.Verb = "added"
		d.TargetLabel = p.Member.Login
		d.TargetURL = "https://github.com/" + p.Member.Login

	case "PublicEvent":
		d.Verb = "open sourced"
		d.TargetLabel = e.Repo.Name
		d.TargetURL = d.RepoURL

	case "PullRequestEvent":
		var p commentPayload
		decode(e.Payload, &p)
		d.Verb = p.Action + " pull request"
		d.TargetLabel = fmt.Sprintf("%s#%d", e.Repo.Name, p.PullRequest.Number)
		d.TargetURL = p.PullRequest.HTMLURL
		d.Comment = snippet(p.PullRequest.Title)

	case "PullRequestReviewCommentEvent":
		var p commentPayload
		decode(e.Payload, &p)
		d.Verb = "commented on pull request"
		d.TargetLabel = fmt.Sprintf("%s#%d", e.Repo.Name, p.PullRequest.Number)
		d.TargetURL = p.PullRequest.HTMLURL
		d.Comment = snippet(p.Comment.Body)

	case "PushEvent":
		var p refPayload
		decode(e.Payload, &p)
		d.Verb = "pushed to"
		d.TargetLabel = branch(p.Ref)
		d.TargetURL = fmt.Sprintf("https://github.com/%s/tree/%s", e.Repo.Name, branch(p.Ref))

	case "ReleaseEvent":
		var p releasePayload
		decode(e.Payload, &p)
		d.Verb = "released"
		d.TargetLabel = p.Release.TagName
		d.TargetURL = p.Release.HTMLURL

	case "WatchEvent":
		d.Verb = "starred"

	default:
		d.Known = false
		d.Verb = "performed " + e.Type + " on"
	}

	return d
}

func decode(payload json.RawMessage, dst interface{}) {
	if len(payload) > 0 {
		_ = json.Unmarshal(payload, dst)
	}
}

// branch strips the refs/heads/ prefix from a git ref.
func branch(ref string) string {
	return strings.TrimPrefix(ref, "refs/heads/")
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > commentSnippetLen {
		return s[:commentSnippetLen] + "…"
	}
	return s
}
