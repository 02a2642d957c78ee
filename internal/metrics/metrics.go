package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ephemerisQueries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "greyline_ephemeris_queries_total",
			Help: "Total number of ephemeris window queries.",
		},
	)

	eventRepairs = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "greyline_event_repairs_total",
			Help: "Days where the three-event over-capture repair was applied.",
		},
	)

	malformedDays = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "greyline_malformed_event_days_total",
			Help: "Days rejected because the event set could not be reconciled.",
		},
	)

	chartsRendered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "greyline_charts_rendered_total",
			Help: "Charts successfully rendered and persisted.",
		},
	)

	chartsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "greyline_charts_failed_total",
			Help: "Chart render or persist failures.",
		},
	)

	receiversFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "greyline_receivers_failed_total",
			Help: "Receivers whose processing aborted with an error.",
		},
	)
)

func init() {
	prometheus.MustRegister(ephemerisQueries)
	prometheus.MustRegister(eventRepairs)
	prometheus.MustRegister(malformedDays)
	prometheus.MustRegister(chartsRendered)
	prometheus.MustRegister(chartsFailed)
	prometheus.MustRegister(receiversFailed)
}

func RecordEphemerisQuery() { ephemerisQueries.Inc() }

func RecordRepair() { eventRepairs.Inc() }

func RecordMalformedDay() { malformedDays.Inc() }

func RecordChartRendered() { chartsRendered.Inc() }

func RecordChartFailed() { chartsFailed.Inc() }

func RecordReceiverFailed() { receiversFailed.Inc() }

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
