package main

import (
	"context"

	"github.com/vfg2006/ads-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/database/redisdb"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ads-dashboard-api/internal/api"
	"github.com/vfg2006/ads-dashboard-api/internal/api/handler"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/scheduler"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/credentialing"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/optimizing"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao carregar configuração")
	}

	log.Setup(cfg.App.LogLevel)
	log.L.WithField("log_level", cfg.App.LogLevel).Info("Logger configurado")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	redisClient, err := redisdb.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao Redis")
	}
	defer redisClient.Close()

	accountRepo := repository.NewAccountRepository(pgConn)
	snapshotRepo := repository.NewSnapshotRepository(pgConn)
	credentialStore := repository.NewCredentialStore(redisClient)

	metaClient := metaclient.NewClient(cfg.Meta)
	metaIntegrator := meta.New(metaClient)

	sealer := credentialing.NewCookieSealer(cfg.Session.CookieSecret)
	resolver := credentialing.NewResolver(sealer)
	cookies := credentialing.NewCookieWriter(cfg.Session, sealer)
	tokenRefresher := credentialing.NewTokenRefresher(metaClient, credentialStore, sealer)

	insightService := insighting.NewService(cfg, metaIntegrator)
	optimizer := optimizing.NewOptimizationService(cfg.Optimization, insightService)
	authenticator := authenticating.NewService(cfg, metaClient, metaIntegrator, accountRepo, tokenRefresher)

	snapshotSyncService := scheduler.NewInsightSnapshotSyncService(
		accountRepo,
		snapshotRepo,
		tokenRefresher,
		insightService,
		cfg,
	)

	if err := snapshotSyncService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de snapshots")
	} else {
		log.L.Info("Agendador de snapshots iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Dependencies{
		Insighter:     insightService,
		Optimizer:     optimizer,
		Authenticator: authenticator,
		Resolver:      resolver,
		Cookies:       cookies,
		Accounts:      accountRepo,
		Snapshots:     snapshotRepo,
		SyncJobs: handler.SyncJobs{
			handler.SyncJobTypeSnapshots: snapshotSyncService,
		},
	})
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao criar servidor")
	}

	if err := server.Run(ctx); err != nil {
		log.L.WithError(err).Error("Servidor encerrado com erro")
	}
}

// pgconn abre a conexão com o PostgreSQL e aplica o schema
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := postgres.Migrate(ctx, conn); err != nil {
		log.L.WithError(err).Fatal("Erro ao aplicar schema no PostgreSQL")
	}

	log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
