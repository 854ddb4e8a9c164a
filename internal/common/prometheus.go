package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	DrawsPerformedTotal        = "draws_performed_total"
	DrawSolverDurationSeconds  = "draw_solver_duration_seconds"
)

// Values of the result label of DrawsPerformedTotal.
const (
	DrawResultSuccess    = "success"
	DrawResultNoSolution = "no_solution"
	DrawResultConflict   = "conflict"
	DrawResultFailure    = "failure"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		DrawsPerformedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: DrawsPerformedTotal,
			Help: "Count of draw attempts by result",
		}, []string{"result"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
		DrawSolverDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    DrawSolverDurationSeconds,
			Help:    "Duration of the assignment solver by the phase that finished it",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"phase"}),
	}
)
