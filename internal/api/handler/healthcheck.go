package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

var healthyBody = []byte(`{"status":"ok"}`)

// HealthcheckHandler não depende de configuração nem de credenciais
func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write(healthyBody); err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
