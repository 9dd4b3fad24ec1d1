package httpapi

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// statusRecorder перехватывает код ответа для логов и метрик.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// observe логирует запрос и фиксирует его латентность в метриках.
func (h *Handler) observe(path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		elapsed := time.Since(started)
		h.metrics.ObserveRequest(path, recorder.status, elapsed)
		h.logger.WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     recorder.status,
			"elapsed_ms": elapsed.Milliseconds(),
		}).Info("запрос обработан")
	})
}
