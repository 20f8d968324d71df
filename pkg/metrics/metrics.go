package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Mail metrics
	MailSendSuccess = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "warmup_mail_send_success_total",
		Help: "Total number of successful warm-up mail sends",
	}, []string{"host"})
	MailSendFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "warmup_mail_send_failure_total",
		Help: "Total number of failed warm-up mail sends",
	}, []string{"host"})

	// Controller pass metrics
	RunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "warmup_runs_total",
		Help: "Total number of warm-up passes grouped by outcome",
	}, []string{"outcome"})

	CurrentDay = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "warmup_current_day",
		Help: "Current 1-based warm-up day index",
	})
	DailyTargetVolume = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "warmup_daily_target_volume",
		Help: "Computed target email volume for the current day",
	})
	EmailsSentToday = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "warmup_emails_sent_today",
		Help: "Emails counted toward today's quota",
	})
	TotalEmailsSent = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "warmup_total_emails_sent",
		Help: "Lifetime number of warm-up emails sent",
	})
)

func init() {
	prometheus.MustRegister(MailSendSuccess)
	prometheus.MustRegister(MailSendFailure)
	prometheus.MustRegister(RunsTotal)
	prometheus.MustRegister(CurrentDay)
	prometheus.MustRegister(DailyTargetVolume)
	prometheus.MustRegister(EmailsSentToday)
	prometheus.MustRegister(TotalEmailsSent)
}

// Handler returns an HTTP handler serving the default prometheus registry.
// Exposed by the continuous mode metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
