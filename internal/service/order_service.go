package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/asquebay/bought-together-service/internal/metrics"
	"github.com/asquebay/bought-together-service/internal/model"
	"github.com/asquebay/bought-together-service/internal/recommend"
	"github.com/asquebay/bought-together-service/internal/repository/memory"
)

// OrderService инкапсулирует бизнес-логику работы с заказами и рекомендациями
type OrderService struct {
	store OrderStore
	log   *slog.Logger
}

// NewOrderService создаёт новый экземпляр сервиса заказов
func NewOrderService(store OrderStore, log *slog.Logger) *OrderService {
	return &OrderService{
		store: store,
		log:   log,
	}
}

// CreateOrder проверяет заказ и сохраняет его в хранилище
// пустой заказ отклоняется с memory.ErrEmptyItems раньше остальных проверок,
// чтобы вызывающий мог отличить его от прочих ошибок валидации
func (s *OrderService) CreateOrder(ctx context.Context, order model.Order) error {
	const op = "service.OrderService.CreateOrder"
	log := s.log.With(slog.String("op", op), slog.String("order_id", order.ID))

	if len(order.Items) == 0 {
		metrics.OrdersSubmitted.WithLabelValues(metrics.ResultEmptyItems).Inc()
		log.Warn("order rejected: no items")
		return fmt.Errorf("%s: %w", op, memory.ErrEmptyItems)
	}

	if err := order.Validate(); err != nil {
		metrics.OrdersSubmitted.WithLabelValues(metrics.ResultInvalid).Inc()
		log.Warn("order rejected: validation failed", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.Submit(order); err != nil {
		result := metrics.ResultInvalid
		switch {
		case errors.Is(err, memory.ErrDuplicateID):
			result = metrics.ResultDuplicate
		case errors.Is(err, memory.ErrEmptyItems):
			result = metrics.ResultEmptyItems
		}
		metrics.OrdersSubmitted.WithLabelValues(result).Inc()
		log.Warn("order rejected by store", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	metrics.OrdersSubmitted.WithLabelValues(metrics.ResultAccepted).Inc()
	metrics.OrdersStored.Set(float64(s.store.Len()))
	log.Info("order accepted", slog.Int("items_count", len(order.Items)))

	return nil
}

// ListOrders возвращает снимок всех заказов в порядке поступления
func (s *OrderService) ListOrders(ctx context.Context) []model.Order {
	const op = "service.OrderService.ListOrders"

	orders := s.store.List()
	s.log.Debug("orders listed", slog.String("op", op), slog.Int("orders_count", len(orders)))

	return orders
}

// ResetOrders удаляет все заказы из хранилища
func (s *OrderService) ResetOrders(ctx context.Context) {
	const op = "service.OrderService.ResetOrders"

	s.store.Reset()
	metrics.OrdersResets.Inc()
	metrics.OrdersStored.Set(0)

	s.log.Info("orders reset", slog.String("op", op))
}

// BoughtTogether возвращает товары, которые чаще всего покупают вместе с productID
// подсчёт идёт по снимку, поэтому хранилище не блокируется на время агрегации
func (s *OrderService) BoughtTogether(ctx context.Context, productID string) []string {
	const op = "service.OrderService.BoughtTogether"

	snapshot := s.store.List()
	products := recommend.BoughtTogether(snapshot, productID)

	metrics.BoughtTogetherRequests.Inc()
	metrics.BoughtTogetherResults.Observe(float64(len(products)))

	s.log.Debug("bought together computed",
		slog.String("op", op),
		slog.String("product_id", productID),
		slog.Int("orders_scanned", len(snapshot)),
		slog.Int("results_count", len(products)),
	)

	return products
}
