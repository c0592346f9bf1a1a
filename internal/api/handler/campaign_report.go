package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/vfg2006/campaign-report-api/internal/usecases/reporting"
	"github.com/vfg2006/campaign-report-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-report-api/pkg/log"
	"github.com/vfg2006/campaign-report-api/pkg/metrics"
)

func GetCampaignReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		logger := log.ForContext(r.Context())

		req, err := DecodeReportRequest(w, r)
		if err != nil {
			writeValidationError(w, logger, err)
			metrics.ObserveReport(metrics.OutcomeValidationError, started)
			return
		}

		logger.WithFields(log.Fields{
			"adaccount_id": req.AdAccountID,
			"start_date":   req.StartDate,
			"end_date":     req.EndDate,
			"campaigns":    len(req.CampaignIDs),
		}).Info("reports: fetching campaign report")

		report, err := service.GetCampaignReport(r.Context(), req)
		if err != nil {
			outcome := writeReportError(w, err)
			metrics.ObserveReport(outcome, started)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(report); err != nil {
			logger.WithError(err).Warn("reports: failed to write campaign report response")
		}

		metrics.ObserveReport(metrics.OutcomeSuccess, started)
	})
}

func writeValidationError(w http.ResponseWriter, logger log.Logger, err error) {
	apiErr := apiErrors.APIError{
		Error:   apiErrors.ErrValidation,
		Message: err.Error(),
	}

	var validationErr *RequestValidationError
	if errors.As(err, &validationErr) && len(validationErr.Fields) > 0 {
		apiErr.Details = validationErr.Fields
	}

	logger.WithFields(log.Fields{
		"error":   err.Error(),
		"details": apiErr.Details,
	}).Warn("reports: invalid campaign report request")

	apiErrors.WriteError(w, http.StatusUnprocessableEntity, apiErr)
}

// writeReportError responde com o corpo padronizado e devolve o resultado para métricas
func writeReportError(w http.ResponseWriter, err error) string {
	var reportErr *reporting.ReportError
	if !errors.As(err, &reportErr) {
		apiErrors.WriteError(w, http.StatusInternalServerError, apiErrors.FromError(err))
		return metrics.OutcomeUnexpectedError
	}

	label, outcome := apiErrors.ErrUnexpected, metrics.OutcomeUnexpectedError
	switch {
	case errors.Is(reportErr, reporting.ErrMissingCredentials):
		label, outcome = apiErrors.ErrMissingCredentials, metrics.OutcomeMissingCredentials
	case errors.Is(reportErr, reporting.ErrAuthenticationFailed):
		label, outcome = apiErrors.ErrAuthenticationFailed, metrics.OutcomeAuthenticationFailed
	case errors.Is(reportErr, reporting.ErrAPI):
		label, outcome = apiErrors.ErrAPI, metrics.OutcomeAPIError
	}

	apiErrors.WriteError(w, reportErr.Status, apiErrors.APIError{
		Error:        label,
		Message:      reportErr.Message,
		ResponseData: reportErr.ResponseData,
	})

	return outcome
}
