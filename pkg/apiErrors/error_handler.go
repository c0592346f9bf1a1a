package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Valores do campo "error" das respostas de erro. São parte do contrato com os chamadores.
const (
	ErrMissingCredentials   = "Missing credentials"   // Configuração do serviço incompleta
	ErrAuthenticationFailed = "Authentication failed" // Plataforma recusou as credenciais
	ErrAPI                  = "API error"             // Plataforma respondeu com erro
	ErrUnexpected           = "Unexpected error"      // Falha não classificada

	ErrValidation       = "Validation error"   // Corpo da requisição inválido
	ErrNotFound         = "Not found"          // Rota inexistente
	ErrMethodNotAllowed = "Method not allowed" // Método não suportado pela rota
)

// APIError representa o corpo padronizado de erro
type APIError struct {
	Error        string `json:"error"`
	Message      string `json:"message"`
	ResponseData any    `json:"response_data,omitempty"`
	Details      any    `json:"details,omitempty"`
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, status int, apiErr APIError) {
	if status < 400 {
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(apiErr); err != nil {
		logrus.WithError(err).Error("apiErrors: failed to encode error response")
	}
}

// FromError cria um erro inesperado a partir de um erro Go
func FromError(err error) APIError {
	if err == nil {
		return APIError{
			Error:   ErrUnexpected,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Error:   ErrUnexpected,
		Message: err.Error(),
	}
}
