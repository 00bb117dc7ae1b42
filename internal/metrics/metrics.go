package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "questboard_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"status"})

	SignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "questboard_signups_total",
		Help: "Accounts created through the signup form.",
	})

	QuestsPostedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "questboard_quests_posted_total",
		Help: "Quests successfully posted.",
	})

	WelcomeRedirectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "questboard_welcome_redirects_total",
		Help: "Once-per-session redirects of logged-in users to the quest listing.",
	})

	UsersTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "questboard_users_total",
		Help: "Total number of registered users in the database.",
	})

	QuestsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "questboard_quests_total",
		Help: "Total number of quests in the database.",
	})
)
