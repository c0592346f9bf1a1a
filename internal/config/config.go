package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/campaign-report-api/internal/domain"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	UniversalAds UniversalAds `mapstructure:",squash"`
	Render       Render       `mapstructure:",squash"`
	Cors         Cors         `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

// UniversalAds agrupa credenciais e endpoint da plataforma de anúncios.
// BaseURL vazio significa usar o endpoint padrão do cliente.
type UniversalAds struct {
	APIKey     string        `mapstructure:"universal_ads_api_key"`
	PrivateKey string        `mapstructure:"universal_ads_private_key"`
	BaseURL    string        `mapstructure:"universal_ads_base_url"`
	Timeout    time.Duration `mapstructure:"universal_ads_timeout"`
}

type Render struct {
	APIKey    string `mapstructure:"render_api_key"`
	ServiceID string `mapstructure:"render_service_id"`
	APIURL    string `mapstructure:"render_api_url"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_ENV", "development")

	viper.SetDefault("UNIVERSAL_ADS_API_KEY", "")
	viper.SetDefault("UNIVERSAL_ADS_PRIVATE_KEY", "")
	viper.SetDefault("UNIVERSAL_ADS_BASE_URL", "")
	viper.SetDefault("UNIVERSAL_ADS_TIMEOUT", "30s")

	viper.SetDefault("RENDER_API_KEY", "")
	viper.SetDefault("RENDER_SERVICE_ID", "")
	viper.SetDefault("RENDER_API_URL", "https://api.render.com/v1")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

// NewConfig carrega a configuração uma única vez na inicialização.
// O valor retornado não deve ser alterado depois disso.
func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	// Credenciais ausentes no ambiente podem vir dos secret files do Render
	if config.Render.APIKey != "" && config.Render.ServiceID != "" && !config.Credentials().IsComplete() {
		renderClient := NewRenderClient(config)
		if err := config.loadSecrets(renderClient); err != nil {
			logrus.WithError(err).Error("config: failed to load Universal Ads secrets from Render")
		}
	}

	config.UniversalAds.PrivateKey = normalizePEM(config.UniversalAds.PrivateKey)
	config.Cors.AllowedOrigins = trimAll(config.Cors.AllowedOrigins)

	return config, nil
}

// Credentials devolve uma cópia das credenciais da Universal Ads
func (c *Config) Credentials() domain.Credentials {
	return domain.Credentials{
		APIKey:     c.UniversalAds.APIKey,
		PrivateKey: c.UniversalAds.PrivateKey,
	}
}

func (c *Config) loadSecrets(storage SecretStorage) error {
	secrets, err := storage.ListSecrets(c.Render.ServiceID)
	if err != nil {
		return err
	}

	if apiKey, ok := secrets[SecretAPIKey]; ok && c.UniversalAds.APIKey == "" {
		c.UniversalAds.APIKey = strings.TrimSpace(apiKey)
	}
	if privateKey, ok := secrets[SecretPrivateKey]; ok && c.UniversalAds.PrivateKey == "" {
		c.UniversalAds.PrivateKey = privateKey
	}

	logrus.WithField("secrets", len(secrets)).Info("config: secrets loaded from Render")
	return nil
}

// normalizePEM converte "\n" literais (comum em variáveis de ambiente de uma linha) em quebras reais
func normalizePEM(pem string) string {
	if strings.Contains(pem, `\n`) && !strings.Contains(pem, "\n") {
		return strings.ReplaceAll(pem, `\n`, "\n")
	}
	return pem
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
