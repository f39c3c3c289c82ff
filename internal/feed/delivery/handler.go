package delivery

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	authdelivery "gitfeed/internal/auth/delivery"
	"gitfeed/internal/feed/render"
	"gitfeed/internal/feed/usecase"
	"gitfeed/pkg/apperr"
	"gitfeed/pkg/github"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type FeedHandler struct {
	feedUsecase usecase.FeedUsecase
}

func NewFeedHandler(feedUsecase usecase.FeedUsecase) *FeedHandler {
	return &FeedHandler{
		feedUsecase: feedUsecase,
	}
}

// eventView pairs an event with its structured description for templates.
// JSON carries the raw event for the snooze button to POST back.
type eventView struct {
	Event github.Event
	Desc  render.Description
	JSON  string
}

func eventViews(events []github.Event) []eventView {
	views := make([]eventView, 0, len(events))
	for _, e := range events {
		raw, err := json.Marshal(e)
		if err != nil {
			raw = []byte("{}")
		}
		views = append(views, eventView{Event: e, Desc: render.Describe(e), JSON: string(raw)})
	}
	return views
}

func pageWindow(page, maxPages int) []int {
	start := page - 2
	if start < 1 {
		start = 1
	}
	end := page + 2
	if end > maxPages {
		end = maxPages
	}
	var pages []int
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Index redirects to the feed view.
func (h *FeedHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/events")
}

// Events renders the activity feed for the requested user, filtered by the
// current user's snoozes.
func (h *FeedHandler) Events(c *gin.Context) {
	target := c.Query("user")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	current := authdelivery.CurrentUser(c)

	session := sessions.Default(c)
	flashes := session.Flashes()
	_ = session.Save()

	feed, err := h.feedUsecase.ComposeFeed(c.Request.Context(), target, current, page)
	if err != nil {
		logrus.WithError(err).WithField("target", target).Error("failed to compose feed")
		c.HTML(http.StatusOK, "events.html", gin.H{
			"Flashes":     append(flashes, apperr.Message(err)),
			"TargetUser":  target,
			"CurrentUser": current,
			"Snoozed":     false,
			"Page":        1,
			"MaxPages":    1,
		})
		return
	}

	c.HTML(http.StatusOK, "events.html", gin.H{
		"Flashes":     flashes,
		"TargetUser":  feed.TargetUser,
		"Profile":     feed.Profile,
		"Events":      eventViews(feed.Events),
		"CurrentUser": current,
		"Snoozed":     false,
		"Page":        feed.Page,
		"MaxPages":    feed.MaxPages,
		"Pages":       pageWindow(feed.Page, feed.MaxPages),
		"PrevPage":    feed.Page - 1,
		"NextPage":    feed.Page + 1,
	})
}

// Reminders renders the current user's snoozed events.
func (h *FeedHandler) Reminders(c *gin.Context) {
	current := authdelivery.CurrentUser(c)
	session := sessions.Default(c)

	if current == nil {
		session.AddFlash("Login to access reminders")
		_ = session.Save()
		c.Redirect(http.StatusFound, "/")
		return
	}

	flashes := session.Flashes()
	_ = session.Save()

	feed, err := h.feedUsecase.ComposeReminders(c.Request.Context(), current)
	if err != nil {
		logrus.WithError(err).WithField("login", current.Login).Error("failed to compose reminders")
		c.HTML(http.StatusOK, "events.html", gin.H{
			"Flashes":     append(flashes, apperr.Message(err)),
			"TargetUser":  current.Login,
			"CurrentUser": current,
			"Snoozed":     true,
		})
		return
	}

	c.HTML(http.StatusOK, "events.html", gin.H{
		"Flashes":     flashes,
		"TargetUser":  feed.TargetUser,
		"Profile":     feed.Profile,
		"Events":      eventViews(feed.Events),
		"CurrentUser": current,
		"Snoozed":     true,
	})
}

// snoozeRequest is the JSON body of snooze/unsnooze actions: the event id
// plus, for snooze, the rest of the raw event.
type snoozeRequest struct {
	ID string `json:"id"`
}

// Snooze hides an event from the feed and stores it as a reminder.
func (h *FeedHandler) Snooze(c *gin.Context) {
	body, ok := h.readEventBody(c)
	if !ok {
		return
	}

	current := authdelivery.CurrentUser(c)
	if err := h.feedUsecase.Snooze(c.Request.Context(), current, body.ID, body.raw); err != nil {
		logrus.WithError(err).Error("failed to snooze event")
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Unsnooze removes an event from the reminder list.
func (h *FeedHandler) Unsnooze(c *gin.Context) {
	body, ok := h.readEventBody(c)
	if !ok {
		return
	}

	current := authdelivery.CurrentUser(c)
	if err := h.feedUsecase.Unsnooze(c.Request.Context(), current, body.ID); err != nil {
		logrus.WithError(err).Error("failed to unsnooze event")
		c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type eventBody struct {
	snoozeRequest
	raw json.RawMessage
}

// readEventBody enforces the request gates shared by snooze and unsnooze:
// JSON content type, an authenticated session, and an id field.
func (h *FeedHandler) readEventBody(c *gin.Context) (*eventBody, bool) {
	if !strings.HasPrefix(c.ContentType(), "application/json") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content type must be application/json"})
		return nil, false
	}
	if authdelivery.CurrentUser(c) == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return nil, false
	}

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return nil, false
	}

	var req snoozeRequest
	if err := json.Unmarshal(raw, &req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event: missing id"})
		return nil, false
	}

	return &eventBody{snoozeRequest: req, raw: raw}, true
}
