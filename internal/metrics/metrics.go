package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	FeedFetches = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gitfeed_feed_fetches_total",
		Help: "Total number of activity feed pages fetched from GitHub",
	})
	SnoozeActions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gitfeed_snoozes_total",
		Help: "Total number of events snoozed",
	})
	UnsnoozeActions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gitfeed_unsnoozes_total",
		Help: "Total number of events unsnoozed",
	})
	UpstreamErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gitfeed_github_api_errors_total",
		Help: "Total number of failed GitHub API requests",
	})
)

func Init() {
	prometheus.MustRegister(FeedFetches, SnoozeActions, UnsnoozeActions, UpstreamErrors)
}
