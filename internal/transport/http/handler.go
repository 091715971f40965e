package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/asquebay/bought-together-service/internal/model"
	"github.com/asquebay/bought-together-service/internal/repository/memory"
)

// maxBodyBytes ограничивает размер тела запроса на создание заказа
const maxBodyBytes = 1 << 20

// OrderService определяет интерфейс сервиса, с которым работает хэндлер
// Это позволяет хэндлеру не зависеть от конкретной реализации сервиса
type OrderService interface {
	CreateOrder(ctx context.Context, order model.Order) error
	ListOrders(ctx context.Context) []model.Order
	ResetOrders(ctx context.Context)
	BoughtTogether(ctx context.Context, productID string) []string
}

// Options содержит необязательные настройки роутера
type Options struct {
	// RateLimit — запросов в минуту с одного IP, 0 отключает ограничение
	RateLimit int
	// MetricsPath — путь эндпоинта prometheus, пустая строка отключает его
	MetricsPath string
}

// Handler обрабатывает HTTP-запросы
type Handler struct {
	service OrderService
	log     *slog.Logger
	router  chi.Router
}

// statusResponse — ответ на изменяющие запросы
type statusResponse struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

// NewHandler создает новый экземпляр Handler
func NewHandler(service OrderService, log *slog.Logger, opts Options) *Handler {
	h := &Handler{
		service: service,
		log:     log.With(slog.String("component", "http_handler")),
		router:  chi.NewRouter(),
	}
	h.registerRoutes(opts)
	return h
}

// ServeHTTP делает Handler совместимым с http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// registerRoutes регистрирует все эндпоинты
func (h *Handler) registerRoutes(opts Options) {
	r := h.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(instrument)

	if opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, promhttp.Handler())
	}
	r.Get("/health", h.health)

	r.Group(func(r chi.Router) {
		if opts.RateLimit > 0 {
			r.Use(httprate.LimitByIP(opts.RateLimit, time.Minute))
		}

		r.Get("/", h.index)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.createOrder)
			r.Get("/", h.listOrders)
			r.Delete("/", h.resetOrders)
		})

		r.Get("/products/{product_id}/bought_together", h.boughtTogether)
	})
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Hello world!"))
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.log.Debug("failed to read request body", slog.String("error", err.Error()))
		h.respondStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Unmarshal, в отличие от Decoder, не пропускает мусор после объекта
	var order model.Order
	if err := json.Unmarshal(body, &order); err != nil {
		h.log.Debug("failed to decode order", slog.String("error", err.Error()))
		h.respondStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.service.CreateOrder(r.Context(), order)
	switch {
	case err == nil:
		h.respondJSON(w, http.StatusOK, statusResponse{Success: true})
	case errors.Is(err, memory.ErrEmptyItems):
		h.respondStatus(w, http.StatusBadRequest, "no items")
	case errors.Is(err, model.ErrInvalidOrder):
		h.respondStatus(w, http.StatusBadRequest, "invalid order")
	case errors.Is(err, memory.ErrDuplicateID):
		h.respondStatus(w, http.StatusConflict, fmt.Sprintf("order %s already exists", order.ID))
	default:
		h.log.Error("internal server error", slog.String("error", err.Error()))
		h.respondStatus(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.service.ListOrders(r.Context()))
}

func (h *Handler) resetOrders(w http.ResponseWriter, r *http.Request) {
	h.service.ResetOrders(r.Context())
	h.respondJSON(w, http.StatusAccepted, statusResponse{Success: true})
}

func (h *Handler) boughtTogether(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	// при заданном RawPath chi матчит по экранированному пути и отдаёт сегмент как есть
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(productID)
		if err != nil {
			h.respondStatus(w, http.StatusBadRequest, "invalid product id")
			return
		}
		productID = unescaped
	}
	h.respondJSON(w, http.StatusOK, h.service.BoughtTogether(r.Context(), productID))
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("failed to marshal JSON response", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success": false, "reason": "internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(response)
}

func (h *Handler) respondStatus(w http.ResponseWriter, status int, reason string) {
	h.respondJSON(w, status, statusResponse{Success: false, Reason: reason})
}
