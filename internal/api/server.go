package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ads-dashboard-api/internal/api/handler"
	"github.com/vfg2006/ads-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/credentialing"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/optimizing"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
	"github.com/vfg2006/ads-dashboard-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

// Dependencies são os serviços expostos pelas rotas HTTP.
type Dependencies struct {
	Insighter     insighting.Insighter
	Optimizer     optimizing.Optimizer
	Authenticator authenticating.Authenticator
	Resolver      *credentialing.Resolver
	Cookies       *credentialing.CookieWriter
	Accounts      repository.AccountRepository
	Snapshots     repository.SnapshotRepository
	SyncJobs      handler.SyncJobs
}

type Server struct {
	httpServer *http.Server
}

func New(cfg *config.Config, deps Dependencies) (*Server, error) {
	if deps.Resolver == nil || deps.Cookies == nil {
		return nil, errors.New("resolver e cookie writer são obrigatórios")
	}

	// Cancelado no Shutdown para encerrar os streams abertos.
	baseCtx, cancel := context.WithCancel(context.Background())

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           NewHandler(cfg, deps),
		ReadHeaderTimeout: 2 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	httpServer.RegisterOnShutdown(cancel)

	return &Server{httpServer: httpServer}, nil
}

// NewHandler monta o router com a cadeia global de middlewares.
func NewHandler(cfg *config.Config, deps Dependencies) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(deps.Authenticator, deps.Resolver, deps.Cookies, cfg.Session)...),
		router.WithRoutes(handler.Insights(deps.Insighter, deps.Resolver, cfg.Stream)...),
		router.WithRoutes(handler.Snapshots(deps.Accounts, deps.Snapshots, deps.Authenticator, deps.Resolver, deps.Cookies)...),
		router.WithRoutes(handler.Optimization(deps.Optimizer, deps.Resolver)...),
		router.WithRoutes(handler.Sync(deps.SyncJobs, cfg.Admin.Token)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Cors.AllowedOrigins),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.L.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		log.L.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		log.L.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.L.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	log.L.Info("Servidor desligado com sucesso")
	return nil
}

// Shutdown espera as requisições em andamento terminarem.
func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
