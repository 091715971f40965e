package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/asquebay/bought-together-service/internal/model"
	"github.com/asquebay/bought-together-service/internal/repository/memory"
)

// OrderCreator — это интерфейс, который абстрагирует консьюмер
// от конкретной реализации сервисного слоя
type OrderCreator interface {
	CreateOrder(ctx context.Context, order model.Order) error
}

// messageReader — часть kafka.Reader, которой пользуется консьюмер
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

const (
	// maxAttempts — сколько раз обрабатываем сообщение, прежде чем сдаться
	maxAttempts = 3
	// retryDelay — пауза перед повторной попыткой, растёт линейно
	retryDelay = 200 * time.Millisecond
)

// Consumer принимает заказы из топика кафки и передаёт их в сервисный слой
type Consumer struct {
	reader     messageReader
	service    OrderCreator
	log        *slog.Logger
	retryDelay time.Duration
}

// NewConsumer создает новый экземпляр консьюмера
func NewConsumer(brokers []string, topic, groupID string, service OrderCreator, log *slog.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   topic,
	})

	return &Consumer{
		reader:     reader,
		service:    service,
		log:        log.With(slog.String("component", "kafka_consumer")),
		retryDelay: retryDelay,
	}
}

// Run запускает цикл чтения сообщений из Kafka
// эта функция блокирующая, поэтому она запускается в отдельной горутине
func (c *Consumer) Run(ctx context.Context) {
	c.log.Info("kafka consumer started")

	for {
		// FetchMessage блокирует до тех пор, пока не придет новое сообщение или не возникнет ошибка
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				c.log.Info("context cancelled, stopping consumer")
				return
			}
			if errors.Is(err, io.EOF) {
				c.log.Info("kafka reader closed")
				return
			}
			c.log.Error("failed to fetch message", slog.String("error", err.Error()))
			continue
		}

		c.log.Debug("received message",
			slog.String("topic", msg.Topic),
			slog.Int("partition", msg.Partition),
			slog.Int64("offset", msg.Offset),
		)

		if err := c.handleWithRetry(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return
			}
			// reader группы уже ушёл дальше и в этой сессии сообщение не вернёт,
			// а коммит следующего offset его перекроет, поэтому заказ теряется
			c.log.Error("failed to handle message, dropping",
				slog.String("error", err.Error()),
				slog.Int("partition", msg.Partition),
				slog.Int64("offset", msg.Offset),
			)
			continue
		}

		// offset фиксируем только после успешной обработки
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.log.Error("failed to commit message", slog.String("error", err.Error()))
		}
	}
}

// handleWithRetry повторяет handleMessage до maxAttempts раз
// повторять приходится самим: FetchMessage неподтверждённое сообщение заново не отдаст
func (c *Consumer) handleWithRetry(ctx context.Context, msg kafka.Message) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = c.handleMessage(ctx, msg); err == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}

		c.log.Warn("failed to handle message, retrying",
			slog.String("error", err.Error()),
			slog.Int("attempt", attempt),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * c.retryDelay):
		}
	}
	return err
}

// handleMessage парсит и обрабатывает одно сообщение
// nil означает, что сообщение можно подтверждать
func (c *Consumer) handleMessage(ctx context.Context, msg kafka.Message) error {
	var order model.Order

	if err := json.Unmarshal(msg.Value, &order); err != nil {
		// перечитывать невалидный JSON бессмысленно
		c.log.Warn("failed to unmarshal message, skipping", slog.String("error", err.Error()))
		return nil
	}

	err := c.service.CreateOrder(ctx, order)
	switch {
	case err == nil:
		c.log.Info("order successfully processed", slog.String("order_id", order.ID))
		return nil
	case errors.Is(err, memory.ErrEmptyItems),
		errors.Is(err, memory.ErrDuplicateID),
		errors.Is(err, model.ErrInvalidOrder):
		// повторная доставка не исправит отклонённый заказ
		c.log.Warn("order rejected, skipping",
			slog.String("error", err.Error()),
			slog.String("order_id", order.ID),
		)
		return nil
	default:
		return err
	}
}

// Close останавливает консьюмер
func (c *Consumer) Close() error {
	c.log.Info("closing kafka consumer")
	return c.reader.Close()
}
