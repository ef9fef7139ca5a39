package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/name-tracker-api/infrastructure/dataset"
	"github.com/vfg2006/name-tracker-api/infrastructure/repository"
	"github.com/vfg2006/name-tracker-api/internal/config"
	"github.com/vfg2006/name-tracker-api/internal/domain"
)

// ChangeImportSyncConfig representa a configuração do agendador de importação do dataset
type ChangeImportSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// ChangeImportSyncService gerencia o agendamento e execução da importação de
// trocas de screen name a partir do dataset do coletor
type ChangeImportSyncService struct {
	scheduler           *gocron.Scheduler
	config              ChangeImportSyncConfig
	appConfig           *config.Config
	accountRepo         repository.AccountRepository
	changeRepo          repository.ChangeRepository
	datasetService      dataset.DatasetIntegrator
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewChangeImportSyncService cria uma nova instância do serviço de importação do dataset
func NewChangeImportSyncService(
	accountRepo repository.AccountRepository,
	changeRepo repository.ChangeRepository,
	datasetService dataset.DatasetIntegrator,
	appConfig *config.Config,
) *ChangeImportSyncService {
	// Criar a configuração com base na config global
	importConfig := ChangeImportSyncConfig{
		CronSchedule: appConfig.ChangeImportSync.CronSchedule,
		SyncEnabled:  appConfig.ChangeImportSync.Enabled,
	}

	// Criar o agendador
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": importConfig.CronSchedule,
		"sync_enabled":  importConfig.SyncEnabled,
	}).Info("Configuração do agendador de importação do dataset carregada")

	return &ChangeImportSyncService{
		scheduler:      scheduler,
		config:         importConfig,
		appConfig:      appConfig,
		accountRepo:    accountRepo,
		changeRepo:     changeRepo,
		datasetService: datasetService,
		syncRunning:    false,
	}
}

// Start inicia o agendador
func (s *ChangeImportSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Importação do dataset desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de importação do dataset")

	// Agendar a importação do dataset
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncDatasetChanges(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar importação do dataset: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de importação do dataset")
		s.scheduler.Stop()
	}()

	return nil
}

// syncDatasetChanges importa o dataset completo do coletor para o armazenamento
func (s *ChangeImportSyncService) syncDatasetChanges(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Importação do dataset já em andamento, ignorando")
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

	logrus.Info("Iniciando importação do dataset de trocas de screen name")

	snapshot, err := s.datasetService.FetchChanges(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar o dataset do coletor")
		return
	}

	if len(snapshot.Records) == 0 {
		logrus.Info("Dataset vazio, nada a importar")
		return
	}

	accounts, changes := s.collectImports(snapshot)

	newAccounts := s.countNewAccounts(accounts)

	// Contas primeiro: trocas referenciam contas por chave estrangeira
	if err := s.accountRepo.SaveOrUpdate(accounts); err != nil {
		logrus.WithError(err).Error("Erro ao salvar contas do dataset")
		return
	}

	inserted, err := s.changeRepo.SaveBatch(changes)
	if err != nil {
		logrus.WithError(err).Error("Erro ao salvar trocas de screen name do dataset")
		return
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":     duration.String(),
		"records":      len(snapshot.Records),
		"invalid_rows": snapshot.InvalidRows,
		"accounts":     len(accounts),
		"new_accounts": newAccounts,
		"inserted":     inserted,
	}).Info("Importação do dataset concluída")

	s.lastSyncCompletedAt = time.Now()
}

// collectImports converte os registros do dataset em trocas e no estado mais
// recente de cada conta. O registro mais novo de uma conta vence.
func (s *ChangeImportSyncService) collectImports(snapshot *dataset.Snapshot) ([]*domain.Account, []*domain.ScreenNameChange) {
	changes := make([]*domain.ScreenNameChange, 0, len(snapshot.Records))
	latest := make(map[string]*dataset.Record, len(snapshot.Records))

	for _, record := range snapshot.Records {
		changes = append(changes, record.Change())

		current, ok := latest[record.UserID]
		if !ok || record.Timestamp.After(current.Timestamp) {
			latest[record.UserID] = record
		}
	}

	accounts := make([]*domain.Account, 0, len(latest))
	for _, record := range latest {
		accounts = append(accounts, record.Account())
	}

	return accounts, changes
}

// countNewAccounts conta quantas contas do dataset ainda não estão rastreadas
func (s *ChangeImportSyncService) countNewAccounts(accounts []*domain.Account) int {
	tracked, err := s.accountRepo.ListAccountsMap()
	if err != nil {
		logrus.WithError(err).Warn("Erro ao listar contas rastreadas, pulando contagem de contas novas")
		return 0
	}

	newAccounts := 0
	for _, account := range accounts {
		if _, ok := tracked[account.ID]; !ok {
			newAccounts++
		}
	}

	return newAccounts
}

// TriggerManualSync inicia manualmente uma importação do dataset
func (s *ChangeImportSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Importação do dataset já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando importação manual do dataset")
	go s.syncDatasetChanges(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *ChangeImportSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"dataset_path":           s.appConfig.Dataset.Path,
		"dataset_url":            s.appConfig.Dataset.URL,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
