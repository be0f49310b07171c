package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cybermaker"

const (
	EventSubmission    = "submission"
	EventCommunityPost = "community_post"
	EventConclusion    = "conclusion"
	EventManual        = "manual"
)

var (
	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Accounts created.",
	})
	Confirmations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "confirmations_total",
		Help:      "Confirmation link redemptions by outcome.",
	}, []string{"outcome"})
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})
	MailFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_failures_total",
		Help:      "Outbound mails that could not be delivered.",
	}, []string{"template"})
	PointsAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "points_awarded_total",
		Help:      "Points added to user scores by scoring event.",
	}, []string{"event"})
)

func AwardPoints(event string, points int64) {
	if points > 0 {
		PointsAwarded.WithLabelValues(event).Add(float64(points))
	}
}
