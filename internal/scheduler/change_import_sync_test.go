package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/name-tracker-api/infrastructure/dataset"
	datasetmocks "github.com/vfg2006/name-tracker-api/infrastructure/dataset/mocks"
	"github.com/vfg2006/name-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/name-tracker-api/internal/config"
	"github.com/vfg2006/name-tracker-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func datasetRecord(userID string, timestamp time.Time, previousName, newName string, followers int) *dataset.Record {
	return &dataset.Record{
		Timestamp:      timestamp,
		UserID:         userID,
		FollowersCount: followers,
		PreviousName:   previousName,
		NewName:        newName,
	}
}

func TestChangeImportSyncService_syncDatasetChanges(t *testing.T) {
	base := time.Date(2022, 3, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		setup func(accountRepo *mocks.MockAccountRepository, changeRepo *mocks.MockChangeRepository, datasetService *datasetmocks.MockDatasetIntegrator)
	}{
		{
			name: "Dataset completo é importado: contas e trocas",
			setup: func(accountRepo *mocks.MockAccountRepository, changeRepo *mocks.MockChangeRepository, datasetService *datasetmocks.MockDatasetIntegrator) {
				datasetService.EXPECT().
					FetchChanges(gomock.Any()).
					Return(&dataset.Snapshot{
						Records: []*dataset.Record{
							datasetRecord("1001", base, "bobby", "bob", 500),
							datasetRecord("1001", base.AddDate(0, 0, 1), "bob", "rob", 520),
							datasetRecord("2002", base, "caroline", "carol", 300),
						},
					}, nil)

				accountRepo.EXPECT().
					ListAccountsMap().
					Return(map[string]struct{}{"1001": {}}, nil)

				accountRepo.EXPECT().
					SaveOrUpdate(gomock.Any()).
					DoAndReturn(func(accounts []*domain.Account) error {
						assert.Len(t, accounts, 2)

						byID := make(map[string]*domain.Account, len(accounts))
						for _, account := range accounts {
							byID[account.ID] = account
						}

						// O registro mais novo de cada conta define o estado corrente
						assert.Equal(t, "rob", byID["1001"].CurrentScreenName)
						assert.Equal(t, 520, byID["1001"].FollowersCount)
						assert.Equal(t, "carol", byID["2002"].CurrentScreenName)
						return nil
					})

				changeRepo.EXPECT().
					SaveBatch(gomock.Any()).
					DoAndReturn(func(changes []*domain.ScreenNameChange) (int, error) {
						assert.Len(t, changes, 3)
						return 3, nil
					})
			},
		},
		{
			name: "Dataset vazio não toca o banco",
			setup: func(accountRepo *mocks.MockAccountRepository, changeRepo *mocks.MockChangeRepository, datasetService *datasetmocks.MockDatasetIntegrator) {
				datasetService.EXPECT().
					FetchChanges(gomock.Any()).
					Return(&dataset.Snapshot{}, nil)
			},
		},
		{
			name: "Falha ao buscar o dataset interrompe a importação",
			setup: func(accountRepo *mocks.MockAccountRepository, changeRepo *mocks.MockChangeRepository, datasetService *datasetmocks.MockDatasetIntegrator) {
				datasetService.EXPECT().
					FetchChanges(gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
		},
		{
			name: "Falha ao salvar contas não grava trocas órfãs",
			setup: func(accountRepo *mocks.MockAccountRepository, changeRepo *mocks.MockChangeRepository, datasetService *datasetmocks.MockDatasetIntegrator) {
				datasetService.EXPECT().
					FetchChanges(gomock.Any()).
					Return(&dataset.Snapshot{
						Records: []*dataset.Record{
							datasetRecord("1001", base, "bobby", "bob", 500),
						},
					}, nil)

				accountRepo.EXPECT().
					ListAccountsMap().
					Return(map[string]struct{}{}, nil)

				accountRepo.EXPECT().
					SaveOrUpdate(gomock.Any()).
					Return(errors.New("constraint violation"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			accountRepo := mocks.NewMockAccountRepository(ctrl)
			changeRepo := mocks.NewMockChangeRepository(ctrl)
			datasetService := datasetmocks.NewMockDatasetIntegrator(ctrl)

			tt.setup(accountRepo, changeRepo, datasetService)

			service := &ChangeImportSyncService{
				config:         ChangeImportSyncConfig{SyncEnabled: true},
				appConfig:      &config.Config{},
				accountRepo:    accountRepo,
				changeRepo:     changeRepo,
				datasetService: datasetService,
			}

			service.syncDatasetChanges(context.Background())
		})
	}
}

func TestChangeImportSyncService_GetStatus(t *testing.T) {
	service := &ChangeImportSyncService{
		config: ChangeImportSyncConfig{
			CronSchedule: "0 3 * * *",
			SyncEnabled:  true,
		},
		appConfig: &config.Config{
			Dataset: config.Dataset{Path: "screen-names/"},
		},
	}

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 3 * * *", status["sync_cron"])
	assert.Equal(t, "screen-names/", status["dataset_path"])
}
