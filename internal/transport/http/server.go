package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/asquebay/bought-together-service/internal/config"
)

// Server держит http.Server и останавливает его по отмене контекста
type Server struct {
	httpServer *http.Server
	cfg        config.HTTPServer
}

// NewServer создает сервер по секции http_server конфига
func NewServer(cfg config.HTTPServer, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Port,
			Handler:           handler,
			ReadTimeout:       cfg.Timeout,
			ReadHeaderTimeout: cfg.Timeout,
			WriteTimeout:      cfg.Timeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		cfg: cfg,
	}
}

// Run слушает адрес из конфига и обслуживает запросы до отмены ctx
func (s *Server) Run(ctx context.Context) error {
	const op = "transport.http.Server.Run"

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("%s: failed to listen on %s: %w", op, s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает запросы на ln; после отмены ctx ждёт завершения
// активных запросов не дольше ShutdownTimeout
// штатная остановка возвращает nil
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	const op = "transport.http.Server.Serve"

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%s: shutdown: %w", op, err)
	}
	<-serveErr
	return nil
}
