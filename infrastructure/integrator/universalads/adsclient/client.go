package adsclient

import (
	"context"
	"crypto"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	adsdomain "github.com/vfg2006/campaign-report-api/infrastructure/integrator/universalads/domain"
	"github.com/vfg2006/campaign-report-api/internal/domain"
	"github.com/vfg2006/campaign-report-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultBaseURL = "https://api.universalads.com"
	DefaultTimeout = 30 * time.Second

	// Validade da assinatura enviada em cada requisição
	assertionTTL = 5 * time.Minute
	jtiSize      = 21
)

//go:generate mockgen -destination=../mocks/mock_client.go -package=mocks . Client

type Client interface {
	GetCampaignReport(ctx context.Context, req *domain.ReportRequest) (domain.ReportResult, error)
}

// Factory constrói um cliente por requisição a partir das credenciais
type Factory func(creds domain.Credentials, baseURL string) (Client, error)

type UniversalAdsClient struct {
	apiKey     string
	baseURL    string
	signingKey crypto.Signer
	method     jwt.SigningMethod
	httpClient *http.Client
	now        func() time.Time
}

// NewFactory devolve uma Factory que compartilha o http.Client entre os clientes criados
func NewFactory(timeout time.Duration) Factory {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := &http.Client{Timeout: timeout}

	return func(creds domain.Credentials, baseURL string) (Client, error) {
		client, err := NewClient(creds, baseURL, httpClient)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// NewClient valida a chave privada e monta o cliente. Não faz I/O de rede.
func NewClient(creds domain.Credentials, baseURL string, httpClient *http.Client) (*UniversalAdsClient, error) {
	signer, method, err := parsePrivateKey([]byte(creds.PrivateKey))
	if err != nil {
		return nil, &adsdomain.AuthenticationError{
			Message: "invalid private key: " + err.Error(),
			Err:     err,
		}
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &UniversalAdsClient{
		apiKey:     creds.APIKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		signingKey: signer,
		method:     method,
		httpClient: httpClient,
		now:        time.Now,
	}, nil
}

// parsePrivateKey aceita chaves RSA, EC e Ed25519 em PEM (PKCS#1, SEC1 ou PKCS#8)
func parsePrivateKey(pemBytes []byte) (crypto.Signer, jwt.SigningMethod, error) {
	if rsaKey, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes); err == nil {
		return rsaKey, jwt.SigningMethodRS256, nil
	}

	if ecKey, err := jwt.ParseECPrivateKeyFromPEM(pemBytes); err == nil {
		switch ecKey.Curve.Params().BitSize {
		case 384:
			return ecKey, jwt.SigningMethodES384, nil
		case 521:
			return ecKey, jwt.SigningMethodES512, nil
		default:
			return ecKey, jwt.SigningMethodES256, nil
		}
	}

	edKey, err := jwt.ParseEdPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, nil, errors.New("unsupported or malformed PEM private key")
	}

	signer, ok := edKey.(crypto.Signer)
	if !ok {
		return nil, nil, errors.New("unsupported private key type")
	}
	return signer, jwt.SigningMethodEdDSA, nil
}

// signAssertion gera o JWT de curta duração que acompanha cada chamada
func (c *UniversalAdsClient) signAssertion() (string, error) {
	jti, err := utils.GenerateID(jtiSize)
	if err != nil {
		return "", errors.Wrap(err, "generate assertion id")
	}

	now := c.now()
	claims := jwt.RegisteredClaims{
		Issuer:    c.apiKey,
		Audience:  jwt.ClaimStrings{c.baseURL},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(assertionTTL)),
		ID:        jti,
	}

	token, err := jwt.NewWithClaims(c.method, claims).SignedString(c.signingKey)
	if err != nil {
		return "", errors.Wrap(err, "sign request assertion")
	}
	return token, nil
}
