package tracking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/name-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/name-tracker-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTrackingService(t *testing.T) (TrackingService, *mocks.MockAccountRepository, *mocks.MockChangeRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	changeRepo := mocks.NewMockChangeRepository(ctrl)

	return NewService(accountRepo, changeRepo), accountRepo, changeRepo
}

func TestService_GetAccount(t *testing.T) {
	t.Run("Conta existente é retornada", func(t *testing.T) {
		service, accountRepo, _ := newTrackingService(t)

		accountRepo.EXPECT().
			GetAccountByID("1001").
			Return(&domain.Account{ID: "1001", CurrentScreenName: "rob"}, nil)

		account, err := service.GetAccount("1001")
		require.NoError(t, err)
		assert.Equal(t, "rob", account.CurrentScreenName)
	})

	t.Run("Conta inexistente retorna ErrAccountNotFound", func(t *testing.T) {
		service, accountRepo, _ := newTrackingService(t)

		accountRepo.EXPECT().
			GetAccountByID("9999").
			Return(nil, nil)

		account, err := service.GetAccount("9999")
		assert.Nil(t, account)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("ID vazio é rejeitado sem tocar o banco", func(t *testing.T) {
		service, _, _ := newTrackingService(t)

		_, err := service.GetAccount("")
		assert.ErrorIs(t, err, ErrAccountIDRequired)
	})
}

func TestService_GetAccountChanges(t *testing.T) {
	base := time.Date(2022, 3, 10, 8, 0, 0, 0, time.UTC)

	t.Run("Histórico vem em ordem cronológica do repositório", func(t *testing.T) {
		service, accountRepo, changeRepo := newTrackingService(t)

		accountRepo.EXPECT().
			GetAccountByID("1001").
			Return(&domain.Account{ID: "1001"}, nil)
		changeRepo.EXPECT().
			ListByAccount("1001").
			Return([]*domain.ScreenNameChange{
				{AccountID: "1001", ObservedAt: base, PreviousName: "bobby", NewName: "bob"},
				{AccountID: "1001", ObservedAt: base.AddDate(0, 0, 1), PreviousName: "bob", NewName: "rob"},
			}, nil)

		changes, err := service.GetAccountChanges("1001")
		require.NoError(t, err)
		require.Len(t, changes, 2)
		assert.True(t, changes[0].ObservedAt.Before(changes[1].ObservedAt))
	})

	t.Run("Conta não rastreada retorna ErrAccountNotFound", func(t *testing.T) {
		service, accountRepo, _ := newTrackingService(t)

		accountRepo.EXPECT().
			GetAccountByID("9999").
			Return(nil, nil)

		changes, err := service.GetAccountChanges("9999")
		assert.Nil(t, changes)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestService_RecordChange(t *testing.T) {
	base := time.Date(2022, 3, 10, 8, 0, 0, 0, time.UTC)

	latest := &domain.ScreenNameChange{
		AccountID:    "1001",
		ObservedAt:   base,
		PreviousName: "bobby",
		NewName:      "bob",
	}

	t.Run("Troca encadeada é gravada e atualiza a conta", func(t *testing.T) {
		service, accountRepo, changeRepo := newTrackingService(t)

		change := &domain.ScreenNameChange{
			AccountID:      "1001",
			ObservedAt:     base.AddDate(0, 0, 1),
			PreviousName:   "bob",
			NewName:        "rob",
			FollowersCount: 520,
		}

		changeRepo.EXPECT().
			LatestByAccount("1001").
			Return(latest, nil)
		changeRepo.EXPECT().
			SaveBatch([]*domain.ScreenNameChange{change}).
			Return(1, nil)
		accountRepo.EXPECT().
			GetAccountByID("1001").
			Return(&domain.Account{ID: "1001", CurrentScreenName: "bob", FollowersCount: 500}, nil)
		accountRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(accounts []*domain.Account) error {
				require.Len(t, accounts, 1)
				assert.Equal(t, "rob", accounts[0].CurrentScreenName)
				assert.Equal(t, 520, accounts[0].FollowersCount)
				return nil
			})

		err := service.RecordChange(change)
		require.NoError(t, err)
	})

	t.Run("observed_at não estritamente crescente é rejeitado", func(t *testing.T) {
		service, _, changeRepo := newTrackingService(t)

		changeRepo.EXPECT().
			LatestByAccount("1001").
			Return(latest, nil)

		err := service.RecordChange(&domain.ScreenNameChange{
			AccountID:    "1001",
			ObservedAt:   base,
			PreviousName: "bob",
			NewName:      "rob",
		})
		assert.ErrorIs(t, err, ErrChangeOutOfOrder)
	})

	t.Run("previous_name que não encadeia é rejeitado", func(t *testing.T) {
		service, _, changeRepo := newTrackingService(t)

		changeRepo.EXPECT().
			LatestByAccount("1001").
			Return(latest, nil)

		err := service.RecordChange(&domain.ScreenNameChange{
			AccountID:    "1001",
			ObservedAt:   base.AddDate(0, 0, 1),
			PreviousName: "robert",
			NewName:      "rob",
		})
		assert.ErrorIs(t, err, ErrBrokenChain)
	})

	t.Run("Primeira troca de uma conta não exige cadeia anterior", func(t *testing.T) {
		service, accountRepo, changeRepo := newTrackingService(t)

		change := &domain.ScreenNameChange{
			AccountID:    "2002",
			ObservedAt:   base,
			PreviousName: "caroline",
			NewName:      "carol",
		}

		changeRepo.EXPECT().
			LatestByAccount("2002").
			Return(nil, nil)
		changeRepo.EXPECT().
			SaveBatch([]*domain.ScreenNameChange{change}).
			Return(1, nil)
		accountRepo.EXPECT().
			GetAccountByID("2002").
			Return(nil, nil)

		err := service.RecordChange(change)
		require.NoError(t, err)
	})

	t.Run("Falha de banco é propagada como ErrDatabaseOperation", func(t *testing.T) {
		service, _, changeRepo := newTrackingService(t)

		changeRepo.EXPECT().
			LatestByAccount("1001").
			Return(nil, errors.New("connection refused"))

		err := service.RecordChange(&domain.ScreenNameChange{AccountID: "1001"})
		assert.ErrorIs(t, err, ErrDatabaseOperation)
	})
}
