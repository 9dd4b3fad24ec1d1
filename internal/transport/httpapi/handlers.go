package httpapi

import (
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/intake"
)

// Handler связывает процессор приёма заказов с HTTP-контрактом.
type Handler struct {
	processor *intake.Processor
	logger    *log.Entry
	metrics   *metrics.IntakeMetrics
}

// NewHandler конструирует HTTP-обработчики поверх процессора.
func NewHandler(processor *intake.Processor, logger *log.Entry, m *metrics.IntakeMetrics) *Handler {
	if logger == nil {
		logger = log.WithField("component", "httpapi")
	}
	if m == nil {
		m = metrics.NewIntakeMetrics()
	}
	return &Handler{processor: processor, logger: logger, metrics: m}
}

// Router собирает mux со всеми маршрутами сервиса. CORS и наблюдаемость
// навешиваются на каждый маршрут.
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/health", h.observe("/health", http.HandlerFunc(h.handleHealth)))
	mux.Handle("/products", h.observe("/products", http.HandlerFunc(h.handleProducts)))
	mux.Handle("/orders", h.observe("/orders", http.HandlerFunc(h.handleCreateOrder)))
	mux.Handle("/", h.observe("/", http.HandlerFunc(h.handleNotFound)))
	return PermissiveCORS(mux)
}

// handleHealth отвечает 200 безусловно: сам факт ответа и есть проверка.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorEnvelope{Error: codeMethodNotAllowed})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorEnvelope{Error: codeMethodNotAllowed})
		return
	}

	products, err := h.processor.ListProducts(r.Context())
	if err != nil {
		status, body := ErrorBody(err)
		writeJSON(w, status, body)
		return
	}
	writeJSON(w, http.StatusOK, ProductsBody(products))
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorEnvelope{Error: codeMethodNotAllowed})
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.WithError(err).Warn("failed to read request body")
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: codeInvalidPayload})
		return
	}

	receipt, err := h.processor.SubmitOrder(r.Context(), raw)
	if err != nil {
		status, body := ErrorBody(err)
		writeJSON(w, status, body)
		return
	}

	writeJSON(w, http.StatusCreated, OrderCreatedBody(receipt.Total))
}

func (h *Handler) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorEnvelope{Error: codeNotFound})
}
