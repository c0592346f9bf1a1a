package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/campaign-report-api/internal/domain"
)

// Decoder do corpo da requisição: nomes de campo comparados exatamente
var requestJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	CaseSensitive:          true,
}.Froze()

// Tamanho máximo aceito para o corpo da requisição
const maxRequestBodyBytes = 1 << 20

var (
	ErrEmptyBody     = errors.New("request body is required")
	ErrMalformedBody = errors.New("malformed request body")
	ErrInvalidFields = errors.New("invalid request fields")
)

// CampaignReportRequest é o formato aceito em POST /reports/campaign.
// Ponteiros distinguem campo ausente de valor zero.
type CampaignReportRequest struct {
	StartDate   *string   `json:"start_date" validate:"required"`
	EndDate     *string   `json:"end_date" validate:"required"`
	AdAccountID *string   `json:"adaccount_id" validate:"required,min=1"`
	CampaignIDs []*string `json:"campaign_ids" validate:"omitempty,dive,required"`
	Limit       *int      `json:"limit" validate:"omitempty,gt=0"`
	Offset      *int      `json:"offset" validate:"omitempty,gte=0"`
}

// ToDomain copia o pedido validado; só deve ser chamado depois da validação
func (r *CampaignReportRequest) ToDomain() *domain.ReportRequest {
	var campaignIDs []string
	if r.CampaignIDs != nil {
		campaignIDs = make([]string, 0, len(r.CampaignIDs))
		for _, id := range r.CampaignIDs {
			campaignIDs = append(campaignIDs, *id)
		}
	}

	return &domain.ReportRequest{
		StartDate:   *r.StartDate,
		EndDate:     *r.EndDate,
		AdAccountID: *r.AdAccountID,
		CampaignIDs: campaignIDs,
		Limit:       r.Limit,
		Offset:      r.Offset,
	}
}

// RequestValidationError descreve uma falha estrutural no corpo da requisição
type RequestValidationError struct {
	Err    error
	Fields map[string]string
	Detail string
}

func (e *RequestValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Detail)
	}
	return e.Err.Error()
}

func (e *RequestValidationError) Unwrap() error {
	return e.Err
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator devolve a instância única do validator, usando os nomes JSON nos erros
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

var validationMessages = map[string]string{
	"required": "this field is required",
	"min":      "must not be empty",
	"gt":       "must be greater than {param}",
	"gte":      "must be greater than or equal to {param}",
}

// DecodeReportRequest lê e valida o corpo. Campos desconhecidos, tipos
// errados e JSON malformado são rejeitados aqui, antes de qualquer chamada externa.
func DecodeReportRequest(w http.ResponseWriter, r *http.Request) (*domain.ReportRequest, error) {
	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &RequestValidationError{Err: ErrMalformedBody, Detail: err.Error()}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &RequestValidationError{Err: ErrEmptyBody}
	}
	// O decoder aceita objetos truncados; a checagem completa vem antes
	if !requestJSON.Valid(data) {
		return nil, &RequestValidationError{Err: ErrMalformedBody, Detail: "body is not valid JSON"}
	}

	decoder := requestJSON.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var req CampaignReportRequest
	if err := decoder.Decode(&req); err != nil {
		return nil, &RequestValidationError{Err: ErrMalformedBody, Detail: err.Error()}
	}
	if decoder.More() {
		return nil, &RequestValidationError{Err: ErrMalformedBody, Detail: "unexpected data after JSON object"}
	}

	if err := Validator().Struct(&req); err != nil {
		return nil, &RequestValidationError{
			Err:    ErrInvalidFields,
			Fields: fieldErrors(err),
		}
	}

	return req.ToDomain(), nil
}

func fieldErrors(err error) map[string]string {
	fields := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			message, ok := validationMessages[fieldErr.Tag()]
			if !ok {
				message = "failed on " + fieldErr.Tag() + " validation"
			}
			fields[fieldErr.Field()] = strings.ReplaceAll(message, "{param}", fieldErr.Param())
		}
	}

	return fields
}
