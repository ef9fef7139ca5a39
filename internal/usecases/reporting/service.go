package reporting

import (
	"time"

	"github.com/vfg2006/name-tracker-api/infrastructure/repository"
	"github.com/vfg2006/name-tracker-api/internal/config"
	"github.com/vfg2006/name-tracker-api/internal/domain"
	"github.com/vfg2006/name-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/name-tracker-api/pkg/log"
	"github.com/vfg2006/name-tracker-api/pkg/utils"
)

// digestKeyFormat identifica o snapshot diário do digest
const digestKeyFormat = "02-01-2006"

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

type Reporter interface {
	// GetDailyDigest retorna o snapshot mais recente do digest diário
	GetDailyDigest() (*domain.Report, error)

	// GetDigestByDate retorna o snapshot do digest de um dia específico
	GetDigestByDate(date time.Time) (*domain.Report, error)

	// ListDigestDates lista as chaves de data com snapshot de digest persistido
	ListDigestDates() ([]string, error)

	// GetAccountReport retorna o snapshot do histórico de uma conta, gerando
	// sob demanda a partir do armazenamento quando não houver snapshot
	GetAccountReport(accountID string) (*domain.Report, error)

	// RegenerateAccountReport reconstrói e persiste o snapshot de uma conta,
	// ignorando qualquer snapshot existente
	RegenerateAccountReport(accountID string) (*domain.Report, error)

	// GenerateFromStore roda o gerador sobre o dataset completo armazenado
	GenerateFromStore() (*domain.HistoryReport, error)

	// BuildDailyDigest monta o markdown do digest a partir do armazenamento
	BuildDailyDigest() (string, error)
}

type Service struct {
	cfg         *config.Config
	generator   *Generator
	accountRepo repository.AccountRepository
	changeRepo  repository.ChangeRepository
	reportRepo  repository.ReportRepository
}

func NewService(
	cfg *config.Config,
	accountRepo repository.AccountRepository,
	changeRepo repository.ChangeRepository,
	reportRepo repository.ReportRepository,
) Reporter {
	return &Service{
		cfg:         cfg,
		generator:   NewGenerator(),
		accountRepo: accountRepo,
		changeRepo:  changeRepo,
		reportRepo:  reportRepo,
	}
}

func (s *Service) GetDailyDigest() (*domain.Report, error) {
	return s.GetDigestByDate(time.Now().UTC())
}

func (s *Service) GetDigestByDate(date time.Time) (*domain.Report, error) {
	report, err := s.reportRepo.GetLatest(domain.ReportKindDailyDigest, date.UTC().Format(digestKeyFormat))
	if err != nil {
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if report != nil {
		return report, nil
	}

	// Para datas passadas não há fallback: ou o snapshot daquele dia existe
	// ou o relatório não foi encontrado
	if !utils.SameDate(date, time.Now()) {
		return nil, NewReportError(ErrReportNotFound, apiErrors.ErrReportNotFound, "no digest snapshot for requested date")
	}

	// Sem snapshot de hoje: cai para o snapshot mais recente de ontem antes
	// de desistir
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	report, err = s.reportRepo.GetLatest(domain.ReportKindDailyDigest, yesterday.Format(digestKeyFormat))
	if err != nil {
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if report == nil {
		return nil, NewReportError(ErrReportNotFound, apiErrors.ErrReportNotFound, "no digest snapshot available")
	}

	return report, nil
}

func (s *Service) ListDigestDates() ([]string, error) {
	keys, err := s.reportRepo.ListKeys(domain.ReportKindDailyDigest)
	if err != nil {
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return keys, nil
}

func (s *Service) GetAccountReport(accountID string) (*domain.Report, error) {
	snapshot, err := s.reportRepo.GetLatest(domain.ReportKindAccountHistory, accountID)
	if err != nil {
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if snapshot != nil {
		return snapshot, nil
	}

	// Sem snapshot: gera sob demanda a partir do armazenamento
	return s.generateAccountReport(accountID)
}

func (s *Service) RegenerateAccountReport(accountID string) (*domain.Report, error) {
	return s.generateAccountReport(accountID)
}

func (s *Service) generateAccountReport(accountID string) (*domain.Report, error) {
	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if account == nil {
		return nil, NewAccountReportError(ErrAccountNotFound, apiErrors.ErrAccountNotFound, accountID, "")
	}

	changes, err := s.changeRepo.ListByAccount(accountID)
	if err != nil {
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	history, err := buildAccountHistory(accountID, account, changes)
	if err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		ID:          id,
		Kind:        domain.ReportKindAccountHistory,
		Key:         accountID,
		Content:     RenderAccountSection(history),
		GeneratedAt: time.Now().UTC(),
	}

	// Persiste o snapshot recém-gerado; falha aqui não invalida o relatório
	if err := s.reportRepo.Save(report); err != nil {
		log.L.WithError(err).Warn("Erro ao persistir snapshot de relatório gerado sob demanda")
	}

	return report, nil
}

func (s *Service) GenerateFromStore() (*domain.HistoryReport, error) {
	accounts, err := s.accountRepo.ListAccounts(nil)
	if err != nil {
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	changes, err := s.changeRepo.ListAll()
	if err != nil {
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return s.generator.GenerateHistoryReport(accounts, changes)
}

func (s *Service) BuildDailyDigest() (string, error) {
	lookback := s.cfg.ReportSync.LookbackDays
	if lookback < s.cfg.Report.ReportedDaysLimit {
		lookback = s.cfg.Report.ReportedDaysLimit
	}

	since := time.Now().UTC().AddDate(0, 0, -lookback)

	changes, err := s.changeRepo.ListSince(since)
	if err != nil {
		return "", NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	accounts, err := s.accountRepo.ListAccounts(nil)
	if err != nil {
		return "", NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	accountsByID := make(map[string]*domain.Account, len(accounts))
	for _, account := range accounts {
		accountsByID[account.ID] = account
	}

	entries := make([]DigestEntry, 0, len(changes))
	for _, change := range changes {
		entry := DigestEntry{
			AccountID:      change.AccountID,
			ObservedAt:     change.ObservedAt,
			PreviousName:   change.PreviousName,
			NewName:        change.NewName,
			FollowersCount: change.FollowersCount,
		}

		// Metadados de status e imagem vêm do estado corrente da conta
		if account, ok := accountsByID[change.AccountID]; ok {
			entry.Verified = account.Verified
			entry.Protected = account.Protected
			entry.ProfileImageURL = account.ProfileImageURL
		}

		entries = append(entries, entry)
	}

	digest := s.generator.GenerateDailyDigest(entries, DigestOptions{
		BaseDir:             s.cfg.Dataset.Path,
		ReportedDaysLimit:   s.cfg.Report.ReportedDaysLimit,
		FollowersCountFloor: s.cfg.Report.FollowersCountFloor,
	})

	return digest, nil
}
