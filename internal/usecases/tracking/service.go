package tracking

import (
	"github.com/vfg2006/name-tracker-api/infrastructure/repository"
	"github.com/vfg2006/name-tracker-api/internal/domain"
	"github.com/vfg2006/name-tracker-api/pkg/apiErrors"
)

type TrackingService interface {
	ListAccounts(availableStatus []domain.AccountStatus) ([]*domain.Account, error)
	GetAccount(accountID string) (*domain.Account, error)
	UpdateAccount(account *domain.UpdateAccountRequest) error
	GetAccountChanges(accountID string) ([]*domain.ScreenNameChange, error)
	RecordChange(change *domain.ScreenNameChange) error
}

type Service struct {
	accountRepo repository.AccountRepository
	changeRepo  repository.ChangeRepository
}

func NewService(
	accountRepo repository.AccountRepository,
	changeRepo repository.ChangeRepository,
) TrackingService {
	return &Service{
		accountRepo: accountRepo,
		changeRepo:  changeRepo,
	}
}

func (s *Service) ListAccounts(availableStatus []domain.AccountStatus) ([]*domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(availableStatus)
	if err != nil {
		return nil, NewTrackingError(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return accounts, nil
}

func (s *Service) GetAccount(accountID string) (*domain.Account, error) {
	if accountID == "" {
		return nil, NewTrackingError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		return nil, NewTrackingError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if account == nil {
		return nil, NewTrackingErrorWithID(ErrAccountNotFound, apiErrors.ErrAccountNotFound, accountID, "")
	}

	return account, nil
}

func (s *Service) UpdateAccount(account *domain.UpdateAccountRequest) error {
	if account.ID == "" {
		return NewTrackingError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	if err := s.accountRepo.UpdateAccount(account); err != nil {
		return NewTrackingErrorWithID(ErrUpdateAccount, apiErrors.ErrDatabaseOperation, account.ID, err.Error())
	}

	return nil
}

func (s *Service) GetAccountChanges(accountID string) ([]*domain.ScreenNameChange, error) {
	if accountID == "" {
		return nil, NewTrackingError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	account, err := s.accountRepo.GetAccountByID(accountID)
	if err != nil {
		return nil, NewTrackingError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if account == nil {
		return nil, NewTrackingErrorWithID(ErrAccountNotFound, apiErrors.ErrAccountNotFound, accountID, "")
	}

	changes, err := s.changeRepo.ListByAccount(accountID)
	if err != nil {
		return nil, NewTrackingError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return changes, nil
}

// RecordChange registra uma troca avulsa, validando as invariantes de
// encadeamento contra o último registro conhecido da conta antes de aceitar.
func (s *Service) RecordChange(change *domain.ScreenNameChange) error {
	if change.AccountID == "" {
		return NewTrackingError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	latest, err := s.changeRepo.LatestByAccount(change.AccountID)
	if err != nil {
		return NewTrackingError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if latest != nil {
		// observed_at estritamente crescente por conta
		if !change.ObservedAt.After(latest.ObservedAt) {
			return NewTrackingErrorWithID(ErrChangeOutOfOrder, apiErrors.ErrMalformedRecord, change.AccountID, "")
		}

		// o previous_name da nova troca deve ser o new_name da última
		if change.PreviousName != latest.NewName {
			return NewTrackingErrorWithID(ErrBrokenChain, apiErrors.ErrMalformedRecord, change.AccountID, "")
		}
	}

	if _, err := s.changeRepo.SaveBatch([]*domain.ScreenNameChange{change}); err != nil {
		return NewTrackingError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	// Mantém o screen name corrente da conta em dia com a última troca
	account, err := s.accountRepo.GetAccountByID(change.AccountID)
	if err != nil || account == nil {
		return nil
	}

	account.CurrentScreenName = change.NewName
	account.FollowersCount = change.FollowersCount

	return s.accountRepo.SaveOrUpdate([]*domain.Account{account})
}
