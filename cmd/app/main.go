package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/asquebay/bought-together-service/internal/config"
	"github.com/asquebay/bought-together-service/internal/lib/logger"
	"github.com/asquebay/bought-together-service/internal/repository/memory"
	"github.com/asquebay/bought-together-service/internal/service"
	httptransport "github.com/asquebay/bought-together-service/internal/transport/http"
	"github.com/asquebay/bought-together-service/internal/transport/kafka"
)

func main() {
	// 1. Инициализация конфигурации
	cfg := config.MustLoad(config.Path())

	// 2. Инициализация логгера
	log := logger.New(cfg.Logger.Level, cfg.Logger.Format)
	log.Info("starting bought-together-service", slog.String("log_level", cfg.Logger.Level))

	// 3. Инициализация хранилища заказов (только память процесса)
	orderStore := memory.NewOrderStore()

	// 4. Инициализация сервисного слоя
	orderSvc := service.NewOrderService(orderStore, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	var wg sync.WaitGroup

	// 5. Kafka-консьюмер, если включён в конфиге
	var consumer *kafka.Consumer
	if cfg.Kafka.Enabled {
		consumer = kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID, orderSvc, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			consumer.Run(ctx)
		}()
	}

	// 6. Инициализация и запуск HTTP-сервера
	handler := httptransport.NewHandler(orderSvc, log, httptransport.Options{
		RateLimit:   cfg.HTTPServer.RateLimit,
		MetricsPath: cfg.Metrics.Path,
	})
	httpServer := httptransport.NewServer(cfg.HTTPServer, handler)
	log.Info("starting http server", slog.String("port", cfg.HTTPServer.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- httpServer.Run(ctx)
	}()

	// 7. Graceful shutdown: по сигналу или если сервер упал сам
	exitCode := 0
	select {
	case <-ctx.Done():
		log.Info("shutting down application")
		if err := <-serverErr; err != nil {
			log.Error("http server shutdown failed", slog.String("error", err.Error()))
		}
	case err := <-serverErr:
		if err != nil {
			log.Error("http server failed", slog.String("error", err.Error()))
			exitCode = 1
		}
		cancel()
	}

	if consumer != nil {
		if err := consumer.Close(); err != nil {
			log.Error("error closing kafka consumer", slog.String("error", err.Error()))
		}
		wg.Wait()
	}

	log.Info("application stopped")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
