package adsdomain

import (
	"fmt"
	"net/http"
)

// ErrorResponse representa a estrutura de erro da API da Universal Ads.
// A API devolve tanto {"error":{"message":...}} quanto {"message":...}.
type ErrorResponse struct {
	Error   any    `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// GetMessage extrai a mensagem do formato aninhado ou plano
func (e *ErrorResponse) GetMessage() string {
	switch v := e.Error.(type) {
	case map[string]any:
		if msg, ok := v["message"].(string); ok && msg != "" {
			return msg
		}
	case string:
		if v != "" && e.Message == "" && e.Detail == "" {
			return v
		}
	}

	if e.Message != "" {
		return e.Message
	}
	return e.Detail
}

// AuthenticationError indica que a plataforma recusou as credenciais
type AuthenticationError struct {
	Message string
	Err     error
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// APIError é uma falha genérica da API. StatusCode é nil quando nenhuma
// resposta HTTP foi recebida; ResponseData é nil quando não houve corpo.
type APIError struct {
	StatusCode   *int
	Message      string
	ResponseData any
	Err          error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.StatusCode != nil {
		return fmt.Sprintf("universal ads api error: %d %s", *e.StatusCode, http.StatusText(*e.StatusCode))
	}
	return "universal ads api error"
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError cria um APIError com status HTTP
func NewAPIError(statusCode int, message string, responseData any) *APIError {
	return &APIError{
		StatusCode:   &statusCode,
		Message:      message,
		ResponseData: responseData,
	}
}
