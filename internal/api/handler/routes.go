package handler

import (
	"net/http"

	"github.com/vfg2006/campaign-report-api/internal/api/handler/router"
	"github.com/vfg2006/campaign-report-api/internal/usecases/reporting"
	"github.com/vfg2006/campaign-report-api/pkg/metrics"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/health",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/reports/campaign",
			Method:  http.MethodPost,
			Handler: GetCampaignReport(service),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}
