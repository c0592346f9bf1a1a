package reporting

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	adsdomain "github.com/vfg2006/campaign-report-api/infrastructure/integrator/universalads/domain"
)

// Categorias de erro expostas pela API de relatórios
var (
	ErrMissingCredentials   = errors.New("missing credentials")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrAPI                  = errors.New("api error")
	ErrUnexpected           = errors.New("unexpected error")
)

// ReportError é o erro normalizado devolvido pelo gateway. Err é sempre uma
// das categorias acima; Status já é o status HTTP a ser respondido.
type ReportError struct {
	Err          error  // Categoria
	Status       int    // Status HTTP (classe 400 ou 500)
	Message      string // Mensagem para o chamador
	ResponseData any    // Contexto devolvido pela plataforma (quando houver)
	Cause        error  // Erro original, apenas para logs
}

// Error implementa a interface error
func (e *ReportError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap retorna a categoria, permitindo errors.Is(err, ErrAPI)
func (e *ReportError) Unwrap() error {
	return e.Err
}

// IsClientError indica se a falha é atribuída ao chamador ou à sua configuração
func (e *ReportError) IsClientError() bool {
	return e.Status >= 400 && e.Status < 500
}

func newMissingCredentialsError(missing []string) *ReportError {
	return &ReportError{
		Err:    ErrMissingCredentials,
		Status: http.StatusBadRequest,
		Message: fmt.Sprintf(
			"Configure as credenciais da Universal Ads no arquivo .env ou no ambiente (%s)",
			strings.Join(missing, ", "),
		),
	}
}

// classify converte qualquer falha do cliente em exatamente um ReportError
func classify(err error) *ReportError {
	var reportErr *ReportError
	if errors.As(err, &reportErr) {
		return reportErr
	}

	var authErr *adsdomain.AuthenticationError
	if errors.As(err, &authErr) {
		return &ReportError{
			Err:     ErrAuthenticationFailed,
			Status:  http.StatusBadRequest,
			Message: authErr.Error(),
			Cause:   err,
		}
	}

	var apiErr *adsdomain.APIError
	if errors.As(err, &apiErr) {
		return &ReportError{
			Err:          ErrAPI,
			Status:       apiErrorStatus(apiErr.StatusCode),
			Message:      apiErr.Error(),
			ResponseData: apiErr.ResponseData,
			Cause:        err,
		}
	}

	return &ReportError{
		Err:     ErrUnexpected,
		Status:  http.StatusInternalServerError,
		Message: err.Error(),
		Cause:   err,
	}
}

// apiErrorStatus: 4xx da plataforma vira 400; sem status ou qualquer outro vira 500
func apiErrorStatus(statusCode *int) int {
	if statusCode != nil && *statusCode >= 400 && *statusCode < 500 {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
