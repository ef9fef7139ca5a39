package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/name-tracker-api/infrastructure/repository"
	"github.com/vfg2006/name-tracker-api/internal/config"
	"github.com/vfg2006/name-tracker-api/internal/domain"
	"github.com/vfg2006/name-tracker-api/internal/usecases/reporting"
	"github.com/vfg2006/name-tracker-api/pkg/utils"
)

// digestKeyFormat identifica o snapshot diário do digest
const digestKeyFormat = "02-01-2006"

// ReportSyncConfig representa a configuração do agendador de relatórios
type ReportSyncConfig struct {
	CronSchedule string
	LookbackDays int
	SyncEnabled  bool
}

// ReportSyncService gerencia o agendamento e execução da geração de snapshots
// de relatório: o digest diário e os históricos das contas que mudaram
type ReportSyncService struct {
	scheduler           *gocron.Scheduler
	config              ReportSyncConfig
	appConfig           *config.Config
	changeRepo          repository.ChangeRepository
	reportRepo          repository.ReportRepository
	reportService       reporting.Reporter
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewReportSyncService cria uma nova instância do serviço de geração de relatórios
func NewReportSyncService(
	changeRepo repository.ChangeRepository,
	reportRepo repository.ReportRepository,
	reportService reporting.Reporter,
	appConfig *config.Config,
) *ReportSyncService {
	// Criar a configuração com base na config global
	reportConfig := ReportSyncConfig{
		CronSchedule: appConfig.ReportSync.CronSchedule,
		LookbackDays: appConfig.ReportSync.LookbackDays,
		SyncEnabled:  appConfig.ReportSync.Enabled,
	}

	// Criar o agendador
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": reportConfig.CronSchedule,
		"lookback_days": reportConfig.LookbackDays,
		"sync_enabled":  reportConfig.SyncEnabled,
	}).Info("Configuração do agendador de relatórios carregada")

	return &ReportSyncService{
		scheduler:     scheduler,
		config:        reportConfig,
		appConfig:     appConfig,
		changeRepo:    changeRepo,
		reportRepo:    reportRepo,
		reportService: reportService,
		syncRunning:   false,
	}
}

// Start inicia o agendador
func (s *ReportSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Geração agendada de relatórios desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de geração de relatórios")

	// Agendar a geração de relatórios
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncReports()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar geração de relatórios: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de geração de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// syncReports gera o digest do dia e regenera os históricos das contas que
// tiveram trocas dentro da janela de lookback
func (s *ReportSyncService) syncReports() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Geração de relatórios já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando geração de snapshots de relatório")

	if err := s.buildDailyDigest(); err != nil {
		logrus.WithError(err).Error("Erro ao gerar o digest diário")
	}

	refreshed := s.refreshAccountReports()

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":           duration.String(),
		"accounts_refreshed": refreshed,
		"lookback_days":      s.config.LookbackDays,
	}).Info("Geração de snapshots de relatório concluída")

	s.lastSyncCompletedAt = time.Now()
}

// buildDailyDigest monta o digest do dia e persiste o snapshot sob a chave da data
func (s *ReportSyncService) buildDailyDigest() error {
	content, err := s.reportService.BuildDailyDigest()
	if err != nil {
		return err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return err
	}

	report := &domain.Report{
		ID:          id,
		Kind:        domain.ReportKindDailyDigest,
		Key:         time.Now().UTC().Format(digestKeyFormat),
		Content:     content,
		GeneratedAt: time.Now().UTC(),
	}

	return s.reportRepo.Save(report)
}

// refreshAccountReports regenera os snapshots de histórico das contas com
// trocas recentes. Falha em uma conta não interrompe as demais.
func (s *ReportSyncService) refreshAccountReports() int {
	since := time.Now().UTC().AddDate(0, 0, -s.config.LookbackDays)

	accountIDs, err := s.changeRepo.ListChangedAccountIDs(since)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar contas com trocas recentes")
		return 0
	}

	refreshed := 0
	for _, accountID := range accountIDs {
		if _, err := s.reportService.RegenerateAccountReport(accountID); err != nil {
			logrus.WithError(err).WithField("account_id", accountID).Warn("Erro ao regenerar snapshot de histórico da conta")
			continue
		}
		refreshed++
	}

	return refreshed
}

// TriggerManualSync inicia manualmente a geração de relatórios
func (s *ReportSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Geração de relatórios já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando geração manual de relatórios")
	go s.syncReports()
}

// GetStatus retorna o status atual do agendador
func (s *ReportSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
