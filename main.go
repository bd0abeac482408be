package main

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config()
	cfg.logger.Debug("configuration loaded")

	mux := http.NewServeMux()
	mux.HandleFunc("/api/lookup", cfg.handlerLookup)
	mux.HandleFunc("/api/state", cfg.handlerState)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		cfg.respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	server := &http.Server{
		Addr:              ":" + cfg.port,
		Handler:           metricsMiddleware(corsMiddleware(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	cfg.logger.Info("starting server", "port", cfg.port)
	if err := server.ListenAndServe(); err != nil {
		cfg.logger.Error("server startup failed", "error", err)
		os.Exit(1)
	}
}
