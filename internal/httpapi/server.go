package httpapi

import (
	"net/http"
	"time"

	"dht11-dashboard/internal/config"
)

func NewServer(cfg config.Config, handler http.Handler, recorder RequestRecorder) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           requestLogger(handler, recorder),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
