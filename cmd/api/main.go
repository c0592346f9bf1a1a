package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-report-api/infrastructure/integrator/universalads/adsclient"
	"github.com/vfg2006/campaign-report-api/internal/api"
	"github.com/vfg2006/campaign-report-api/internal/config"
	"github.com/vfg2006/campaign-report-api/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	// Credenciais ausentes não impedem a subida; o erro é devolvido por requisição
	if missing := cfg.Credentials().Missing(); len(missing) > 0 {
		logrus.WithField("missing", missing).Warn("Credenciais da Universal Ads não configuradas")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reportService := reporting.NewService(cfg, adsclient.NewFactory(cfg.UniversalAds.Timeout))

	server, err := api.New(cfg, reportService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	// Com `go run`, o .env é procurado a partir do diretório do código
	if _, file, _, ok := runtime.Caller(0); ok {
		changeToSourceDir(path.Dir(file))
	}
}

// changeToSourceDir só troca de diretório quando ele existe; um binário
// compilado em outra máquina continua no diretório de trabalho atual
func changeToSourceDir(dir string) bool {
	if err := os.Chdir(dir); err != nil {
		logrus.WithError(err).Info("Diretório do código indisponível, mantendo o diretório atual")
		return false
	}
	return true
}
