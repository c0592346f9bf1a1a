package reporting

import (
	"context"
	"time"

	"github.com/vfg2006/campaign-report-api/infrastructure/integrator/universalads/adsclient"
	"github.com/vfg2006/campaign-report-api/internal/config"
	"github.com/vfg2006/campaign-report-api/internal/domain"
	"github.com/vfg2006/campaign-report-api/pkg/log"
)

//go:generate mockgen -destination=mocks/mock_reporter.go -package=mocks . Reporter

// Reporter busca relatórios de campanha na Universal Ads.
// Todo erro devolvido é um *ReportError.
type Reporter interface {
	GetCampaignReport(ctx context.Context, req *domain.ReportRequest) (domain.ReportResult, error)
}

// Service é o gateway entre a API HTTP e o cliente da Universal Ads.
// Não guarda estado mutável: credenciais e endpoint são fixados na construção.
type Service struct {
	credentials domain.Credentials
	baseURL     string
	newClient   adsclient.Factory
}

// NewService cria o gateway com as credenciais carregadas na inicialização
func NewService(cfg *config.Config, newClient adsclient.Factory) *Service {
	return &Service{
		credentials: cfg.Credentials(),
		baseURL:     cfg.UniversalAds.BaseURL,
		newClient:   newClient,
	}
}

// GetCampaignReport verifica as credenciais, cria um cliente para esta
// requisição e faz exatamente uma chamada, sem retry.
func (s *Service) GetCampaignReport(ctx context.Context, req *domain.ReportRequest) (domain.ReportResult, error) {
	logger := log.ForContext(ctx).WithField("adaccount_id", req.AdAccountID)

	if missing := s.credentials.Missing(); len(missing) > 0 {
		logger.WithField("missing", missing).Warn("reports: universal ads credentials are not configured")
		return nil, newMissingCredentialsError(missing)
	}

	client, err := s.newClient(s.credentials, s.baseURL)
	if err != nil {
		reportErr := classify(err)
		logger.WithError(err).Warn("reports: failed to build universal ads client")
		return nil, reportErr
	}

	startTime := time.Now()
	result, err := client.GetCampaignReport(ctx, req)
	if err != nil {
		reportErr := classify(err)
		failLogger := logger.WithFields(log.Fields{
			"error":       err.Error(),
			"status_code": reportErr.Status,
			"duration_ms": time.Since(startTime).Milliseconds(),
		})
		// Falhas atribuídas ao chamador não são erros do serviço
		if reportErr.IsClientError() {
			failLogger.Warn("reports: campaign report request rejected")
		} else {
			failLogger.Error("reports: campaign report request failed")
		}
		return nil, reportErr
	}

	logger.WithFields(log.Fields{
		"campaigns":   len(req.CampaignIDs),
		"bytes":       len(result),
		"duration_ms": time.Since(startTime).Milliseconds(),
	}).Info("reports: campaign report retrieved")

	return result, nil
}
