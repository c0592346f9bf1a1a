package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resultados possíveis de uma requisição de relatório
const (
	OutcomeSuccess              = "success"
	OutcomeValidationError      = "validation_error"
	OutcomeMissingCredentials   = "missing_credentials"
	OutcomeAuthenticationFailed = "authentication_failed"
	OutcomeAPIError             = "api_error"
	OutcomeUnexpectedError      = "unexpected_error"
)

var (
	reportRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campaign_report_requests_total",
		Help: "Total de requisições de relatório de campanha por resultado.",
	}, []string{"outcome"})

	reportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "campaign_report_duration_seconds",
		Help:    "Duração das requisições de relatório de campanha.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"outcome"})
)

// ObserveReport registra o resultado e a duração de uma requisição
func ObserveReport(outcome string, started time.Time) {
	reportRequests.WithLabelValues(outcome).Inc()
	reportDuration.WithLabelValues(outcome).Observe(time.Since(started).Seconds())
}

// Handler expõe as métricas no formato Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}
