package adsclient

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	adsdomain "github.com/vfg2006/campaign-report-api/infrastructure/integrator/universalads/domain"
	"github.com/vfg2006/campaign-report-api/internal/domain"
	"github.com/vfg2006/campaign-report-api/pkg/utils"
)

const campaignReportPath = "/v1/reports/campaign"

// Limite de leitura do corpo de resposta da plataforma
const maxResponseBytes = 32 << 20

// campaignReportBody é o corpo enviado à API. Limit e Offset ficam fora do JSON
// quando nil, para que a API aplique seus próprios padrões.
type campaignReportBody struct {
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	AdAccountID string   `json:"adaccount_id"`
	CampaignIDs []string `json:"campaign_ids,omitempty"`
	Limit       *int     `json:"limit,omitempty"`
	Offset      *int     `json:"offset,omitempty"`
}

func (c *UniversalAdsClient) GetCampaignReport(ctx context.Context, req *domain.ReportRequest) (domain.ReportResult, error) {
	payload, err := json.Marshal(campaignReportBody{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		AdAccountID: req.AdAccountID,
		CampaignIDs: req.CampaignIDs,
		Limit:       req.Limit,
		Offset:      req.Offset,
	})
	if err != nil {
		return nil, errors.Wrap(err, "encode campaign report request")
	}

	assertion, err := c.signAssertion()
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+campaignReportPath, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "build campaign report request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-API-Key", c.apiKey)
	httpReq.Header.Set("Authorization", "Bearer "+assertion)

	logrus.WithFields(logrus.Fields{
		"adaccount_id": req.AdAccountID,
		"campaigns":    len(req.CampaignIDs),
	}).Debug("universalads: requesting campaign report")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Sem resposta HTTP: erro de API sem status
		return nil, &adsdomain.APIError{
			Message: "universal ads request failed: " + err.Error(),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &adsdomain.APIError{
			Message: "failed to read universal ads response: " + err.Error(),
			Err:     err,
		}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logrus.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"response":    utils.PrettyJson(body),
		}).Debug("universalads: campaign report request rejected")

		return nil, HandleErrorResponse(resp.StatusCode, body)
	}

	if !json.Valid(body) {
		return nil, errors.Errorf("universal ads returned a non-JSON report (%d bytes)", len(body))
	}

	return domain.ReportResult(body), nil
}

// HandleErrorResponse converte uma resposta não-2xx no erro tipado correspondente
func HandleErrorResponse(statusCode int, body []byte) error {
	message := http.StatusText(statusCode)
	var responseData any

	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &responseData); err != nil {
			responseData = string(body)
		} else {
			var errorResp adsdomain.ErrorResponse
			if json.Unmarshal(body, &errorResp) == nil && errorResp.GetMessage() != "" {
				message = errorResp.GetMessage()
			}
		}
	}

	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		return &adsdomain.AuthenticationError{Message: message}
	}

	return adsdomain.NewAPIError(statusCode, message, responseData)
}
