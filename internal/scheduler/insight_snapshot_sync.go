package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/credentialing"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-dashboard-api/pkg/metrics"
)

//go:generate mockgen -source=insight_snapshot_sync.go -destination=mocks/mock_insight_snapshot_sync.go -package=mocks

// CredentialProvider devolve um token válido para a conta, renovando se preciso.
type CredentialProvider interface {
	EnsureFresh(ctx context.Context, adAccountID string) (domain.Credentials, error)
}

// InsightSnapshotSyncConfig representa a configuração do agendador de snapshots
type InsightSnapshotSyncConfig struct {
	CronSchedule        string
	DatePreset          string
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	RetentionDays       int
	SyncEnabled         bool
}

// SyncResult resume uma execução da sincronização.
type SyncResult struct {
	Accounts  int   `json:"accounts"`
	Succeeded int   `json:"succeeded"`
	Failed    int   `json:"failed"`
	Skipped   int   `json:"skipped"`
	Snapshots int   `json:"snapshots"`
	Purged    int64 `json:"purged"`
}

// InsightSnapshotSyncService grava diariamente as métricas das campanhas de cada conta conectada
type InsightSnapshotSyncService struct {
	scheduler    *gocron.Scheduler
	config       InsightSnapshotSyncConfig
	accountRepo  repository.AccountRepository
	snapshotRepo repository.SnapshotRepository
	credentials  CredentialProvider
	reporter     insighting.CampaignReporter
	now          func() time.Time

	// baseCtx é o contexto recebido em Start; encerra também as execuções manuais.
	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          SyncResult
}

func NewInsightSnapshotSyncService(
	accountRepo repository.AccountRepository,
	snapshotRepo repository.SnapshotRepository,
	credentials CredentialProvider,
	reporter insighting.CampaignReporter,
	appConfig *config.Config,
) *InsightSnapshotSyncService {
	syncConfig := InsightSnapshotSyncConfig{
		CronSchedule:        appConfig.InsightSnapshotSync.CronSchedule,
		DatePreset:          appConfig.InsightSnapshotSync.DatePreset,
		RequestDelaySeconds: appConfig.InsightSnapshotSync.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.InsightSnapshotSync.MaxConcurrentJobs,
		RetentionDays:       appConfig.InsightSnapshotSync.RetentionDays,
		SyncEnabled:         appConfig.InsightSnapshotSync.Enabled,
	}
	if syncConfig.MaxConcurrentJobs <= 0 {
		syncConfig.MaxConcurrentJobs = 1
	}
	if syncConfig.DatePreset == "" {
		syncConfig.DatePreset = string(domain.DatePresetYesterday)
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"date_preset":           syncConfig.DatePreset,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   syncConfig.MaxConcurrentJobs,
		"retention_days":        syncConfig.RetentionDays,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de snapshots carregada")

	return &InsightSnapshotSyncService{
		scheduler:    gocron.NewScheduler(time.Local),
		config:       syncConfig,
		accountRepo:  accountRepo,
		snapshotRepo: snapshotRepo,
		credentials:  credentials,
		reporter:     reporter,
		now:          time.Now,
	}
}

// Start inicia o agendador
func (s *InsightSnapshotSyncService) Start(ctx context.Context) error {
	s.syncMutex.Lock()
	s.baseCtx = ctx
	s.syncMutex.Unlock()

	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de snapshots desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de snapshots")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runSync(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de snapshots: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de snapshots")
		s.scheduler.Stop()
	}()

	return nil
}

// runSync garante uma única execução por vez.
func (s *InsightSnapshotSyncService) runSync(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	result := s.SyncAll(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = s.now()
	s.lastResult = result
	s.syncMutex.Unlock()
}

// SyncAll processa todas as contas ativas e depois aplica a retenção.
func (s *InsightSnapshotSyncService) SyncAll(ctx context.Context) SyncResult {
	startTime := s.now()
	result := SyncResult{}

	accounts, err := s.accountRepo.ListAccounts(ctx, []domain.AdAccountStatus{domain.AdAccountStatusActive})
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar lista de contas para sincronização de snapshots")
		return result
	}

	result.Accounts = len(accounts)
	if len(accounts) == 0 {
		logrus.Info("Nenhuma conta ativa encontrada para sincronização de snapshots")
	}

	date := snapshotDate(s.now(), s.config.DatePreset)

	var resultMutex sync.Mutex
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for _, account := range accounts {
		if account.ExternalID == "" {
			logrus.WithField("account_id", account.ID).Warn("Conta sem external_id. Pulando.")
			resultMutex.Lock()
			result.Skipped++
			resultMutex.Unlock()
			metrics.SnapshotSyncRuns.WithLabelValues("skipped").Inc()
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *domain.AdAccount) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			saved, err := s.syncAccount(ctx, acc, date)

			resultMutex.Lock()
			defer resultMutex.Unlock()

			switch {
			case errors.Is(err, credentialing.ErrNoStoredCredential), errors.Is(err, credentialing.ErrReauthorizationRequired):
				result.Skipped++
				metrics.SnapshotSyncRuns.WithLabelValues("skipped").Inc()
			case err != nil:
				result.Failed++
				metrics.SnapshotSyncRuns.WithLabelValues("error").Inc()
			default:
				result.Succeeded++
				result.Snapshots += saved
				metrics.SnapshotSyncRuns.WithLabelValues("success").Inc()
			}
		}(account)
	}

	wg.Wait()

	if s.config.RetentionDays > 0 {
		purged, err := s.snapshotRepo.DeleteOlderThan(ctx, s.config.RetentionDays)
		if err != nil {
			logrus.WithError(err).Error("Erro ao remover snapshots antigos")
		}
		result.Purged = purged
	}

	logrus.WithFields(logrus.Fields{
		"duration":  time.Since(startTime).String(),
		"accounts":  result.Accounts,
		"succeeded": result.Succeeded,
		"failed":    result.Failed,
		"skipped":   result.Skipped,
		"snapshots": result.Snapshots,
		"purged":    result.Purged,
	}).Info("Sincronização de snapshots concluída")

	return result
}

func (s *InsightSnapshotSyncService) syncAccount(ctx context.Context, acc *domain.AdAccount, date time.Time) (int, error) {
	logger := logrus.WithFields(logrus.Fields{
		"account_id":   acc.ID,
		"external_id":  acc.ExternalID,
		"account_name": acc.Name,
		"date":         date.Format(time.DateOnly),
	})

	creds, err := s.credentials.EnsureFresh(ctx, acc.ExternalID)
	if err != nil {
		logger.WithError(err).Warn("Conta sem credencial válida para sincronização")
		return 0, err
	}

	report, err := s.reporter.ListCampaigns(ctx, insighting.ReportRequest{
		Credentials: creds,
		DatePreset:  s.config.DatePreset,
	})
	if err != nil {
		logger.WithError(err).Error("Erro ao obter campanhas do Meta para a conta")
		return 0, err
	}

	snapshots := domain.SnapshotsFromReport(acc, report, date)
	if len(snapshots) == 0 {
		logger.Info("Nenhuma campanha retornada para a conta")
		return 0, nil
	}

	if err := s.snapshotRepo.SaveOrUpdate(ctx, snapshots); err != nil {
		logger.WithError(err).Error("Erro ao salvar snapshots no banco de dados")
		return 0, err
	}

	logger.WithField("snapshots", len(snapshots)).Info("Snapshots salvos com sucesso")

	// Aguardar antes da próxima conta para evitar sobrecarga na API
	if delay := time.Duration(s.config.RequestDelaySeconds) * time.Second; delay > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(delay):
		}
	}

	return len(snapshots), nil
}

// snapshotDate é o dia a que o snapshot se refere: ontem para "yesterday",
// hoje para os demais presets.
func snapshotDate(now time.Time, datePreset string) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if datePreset == string(domain.DatePresetYesterday) {
		return day.AddDate(0, 0, -1)
	}
	return day
}

// TriggerManualSync inicia manualmente uma sincronização. Retorna false se já
// houver uma em andamento.
func (s *InsightSnapshotSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	ctx := s.baseCtx
	s.syncMutex.Unlock()

	if running {
		logrus.Info("Sincronização de snapshots já em andamento, ignorando solicitação manual")
		return false
	}
	if ctx == nil {
		ctx = context.Background()
	}

	logrus.Info("Iniciando sincronização manual de snapshots")
	go s.runSync(ctx)
	return true
}

// GetStatus retorna o status atual do agendador
func (s *InsightSnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_date_preset":       s.config.DatePreset,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"retention_days":         s.config.RetentionDays,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_result":            s.lastResult,
	}
}
