package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-engine/internal/api/handler"
	"github.com/vfg2006/traffic-sync-engine/internal/api/handler/router"
	"github.com/vfg2006/traffic-sync-engine/internal/config"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/entitysync"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/insightsync"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/rollup"
	"github.com/vfg2006/traffic-sync-engine/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// Services reúne o que a API administrativa expõe
type Services struct {
	Authenticator authenticating.Authenticator
	Entities      entitysync.EntitySyncer
	Insights      insightsync.InsightSyncer
	Rollups       rollup.Aggregator
	Scheduler     handler.CronRunner
	RateLimiter   handler.RateLimitSnapshotter
}

func New(config *config.Config, services Services) (*Server, error) {
	rt := NewHandler(services)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           rt,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler monta o roteador com a cadeia de middlewares
func NewHandler(services Services) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Sync(services.Entities, services.Insights)...),
		router.WithRoutes(handler.Rollups(services.Rollups)...),
		router.WithRoutes(handler.CronJobs(services.Scheduler)...),
		router.WithRoutes(handler.RateLimit(services.RateLimiter)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(services.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
