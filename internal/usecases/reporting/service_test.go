package reporting

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/name-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/name-tracker-api/internal/config"
	"github.com/vfg2006/name-tracker-api/internal/domain"
	"github.com/vfg2006/name-tracker-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockAccountRepository, *mocks.MockChangeRepository, *mocks.MockReportRepository) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	changeRepo := mocks.NewMockChangeRepository(ctrl)
	reportRepo := mocks.NewMockReportRepository(ctrl)

	cfg := &config.Config{
		Report: config.Report{
			ReportedDaysLimit:   10,
			FollowersCountFloor: 200,
		},
		ReportSync: config.ReportSync{
			LookbackDays: 1,
		},
	}

	service := &Service{
		cfg:         cfg,
		generator:   NewGenerator(),
		accountRepo: accountRepo,
		changeRepo:  changeRepo,
		reportRepo:  reportRepo,
	}

	return service, accountRepo, changeRepo, reportRepo
}

func TestService_GetDailyDigest(t *testing.T) {
	today := time.Now().UTC().Format(digestKeyFormat)
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(digestKeyFormat)

	t.Run("Snapshot de hoje é retornado direto", func(t *testing.T) {
		service, _, _, reportRepo := newTestService(t)

		snapshot := &domain.Report{ID: "abc123", Kind: domain.ReportKindDailyDigest, Key: today}

		reportRepo.EXPECT().
			GetLatest(domain.ReportKindDailyDigest, today).
			Return(snapshot, nil)

		report, err := service.GetDailyDigest()
		require.NoError(t, err)
		assert.Equal(t, snapshot, report)
	})

	t.Run("Sem snapshot de hoje cai para o de ontem", func(t *testing.T) {
		service, _, _, reportRepo := newTestService(t)

		snapshot := &domain.Report{ID: "abc123", Kind: domain.ReportKindDailyDigest, Key: yesterday}

		reportRepo.EXPECT().
			GetLatest(domain.ReportKindDailyDigest, today).
			Return(nil, nil)
		reportRepo.EXPECT().
			GetLatest(domain.ReportKindDailyDigest, yesterday).
			Return(snapshot, nil)

		report, err := service.GetDailyDigest()
		require.NoError(t, err)
		assert.Equal(t, snapshot, report)
	})

	t.Run("Nenhum snapshot disponível retorna ErrReportNotFound", func(t *testing.T) {
		service, _, _, reportRepo := newTestService(t)

		reportRepo.EXPECT().
			GetLatest(domain.ReportKindDailyDigest, today).
			Return(nil, nil)
		reportRepo.EXPECT().
			GetLatest(domain.ReportKindDailyDigest, yesterday).
			Return(nil, nil)

		report, err := service.GetDailyDigest()
		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrReportNotFound)
	})
}

func TestService_GetDigestByDate(t *testing.T) {
	t.Run("Snapshot do dia pedido é retornado direto", func(t *testing.T) {
		service, _, _, reportRepo := newTestService(t)

		date := time.Date(2022, 3, 10, 0, 0, 0, 0, time.UTC)
		snapshot := &domain.Report{ID: "abc123", Kind: domain.ReportKindDailyDigest, Key: "10-03-2022"}

		reportRepo.EXPECT().
			GetLatest(domain.ReportKindDailyDigest, "10-03-2022").
			Return(snapshot, nil)

		report, err := service.GetDigestByDate(date)
		require.NoError(t, err)
		assert.Equal(t, snapshot, report)
	})

	t.Run("Data passada sem snapshot não cai para ontem", func(t *testing.T) {
		service, _, _, reportRepo := newTestService(t)

		date := time.Date(2022, 3, 10, 0, 0, 0, 0, time.UTC)

		reportRepo.EXPECT().
			GetLatest(domain.ReportKindDailyDigest, "10-03-2022").
			Return(nil, nil)

		report, err := service.GetDigestByDate(date)
		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrReportNotFound)
	})
}

func TestService_ListDigestDates(t *testing.T) {
	service, _, _, reportRepo := newTestService(t)

	reportRepo.EXPECT().
		ListKeys(domain.ReportKindDailyDigest).
		Return([]string{"10-03-2022", "11-03-2022"}, nil)

	dates, err := service.ListDigestDates()
	require.NoError(t, err)
	assert.Equal(t, []string{"10-03-2022", "11-03-2022"}, dates)
}

func TestService_GetAccountReport(t *testing.T) {
	base := time.Date(2022, 3, 10, 8, 0, 0, 0, time.UTC)

	t.Run("Snapshot persistido é retornado sem regenerar", func(t *testing.T) {
		service, _, _, reportRepo := newTestService(t)

		snapshot := &domain.Report{ID: "abc123", Kind: domain.ReportKindAccountHistory, Key: "1001"}

		reportRepo.EXPECT().
			GetLatest(domain.ReportKindAccountHistory, "1001").
			Return(snapshot, nil)

		report, err := service.GetAccountReport("1001")
		require.NoError(t, err)
		assert.Equal(t, snapshot, report)
	})

	t.Run("Sem snapshot gera sob demanda e persiste", func(t *testing.T) {
		service, accountRepo, changeRepo, reportRepo := newTestService(t)

		reportRepo.EXPECT().
			GetLatest(domain.ReportKindAccountHistory, "1001").
			Return(nil, nil)
		accountRepo.EXPECT().
			GetAccountByID("1001").
			Return(&domain.Account{ID: "1001", CurrentScreenName: "rob"}, nil)
		changeRepo.EXPECT().
			ListByAccount("1001").
			Return([]*domain.ScreenNameChange{
				{AccountID: "1001", ObservedAt: base, PreviousName: "bobby", NewName: "bob"},
				{AccountID: "1001", ObservedAt: base.AddDate(0, 0, 1), PreviousName: "bob", NewName: "rob"},
			}, nil)
		reportRepo.EXPECT().
			Save(gomock.Any()).
			Return(nil)

		report, err := service.GetAccountReport("1001")
		require.NoError(t, err)
		require.NotNil(t, report)
		assert.Equal(t, domain.ReportKindAccountHistory, report.Kind)
		assert.Equal(t, "1001", report.Key)
		assert.Contains(t, report.Content, "# rob")
		assert.Contains(t, report.Content, "* `bobby` → `bob`")
	})

	t.Run("Conta inexistente retorna ErrAccountNotFound", func(t *testing.T) {
		service, accountRepo, _, reportRepo := newTestService(t)

		reportRepo.EXPECT().
			GetLatest(domain.ReportKindAccountHistory, "9999").
			Return(nil, nil)
		accountRepo.EXPECT().
			GetAccountByID("9999").
			Return(nil, nil)

		report, err := service.GetAccountReport("9999")
		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("Cadeia malformada propaga o erro de validação", func(t *testing.T) {
		service, accountRepo, changeRepo, reportRepo := newTestService(t)

		reportRepo.EXPECT().
			GetLatest(domain.ReportKindAccountHistory, "1001").
			Return(nil, nil)
		accountRepo.EXPECT().
			GetAccountByID("1001").
			Return(&domain.Account{ID: "1001", CurrentScreenName: "rob"}, nil)
		changeRepo.EXPECT().
			ListByAccount("1001").
			Return([]*domain.ScreenNameChange{
				{AccountID: "1001", ObservedAt: base, PreviousName: "bobby", NewName: "bob"},
				{AccountID: "1001", ObservedAt: base.AddDate(0, 0, 1), PreviousName: "robert", NewName: "rob"},
			}, nil)

		report, err := service.GetAccountReport("1001")
		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrMalformedRecord)

		var reportErr *ReportError
		require.ErrorAs(t, err, &reportErr)
		assert.Equal(t, "1001", reportErr.AccountID)
	})
}

func TestService_GenerateFromStore(t *testing.T) {
	base := time.Date(2022, 3, 10, 8, 0, 0, 0, time.UTC)

	t.Run("Gera o relatório combinado a partir do armazenamento", func(t *testing.T) {
		service, accountRepo, changeRepo, _ := newTestService(t)

		accountRepo.EXPECT().
			ListAccounts(nil).
			Return([]*domain.Account{{ID: "1001", CurrentScreenName: "rob"}}, nil)
		changeRepo.EXPECT().
			ListAll().
			Return([]*domain.ScreenNameChange{
				{AccountID: "1001", ObservedAt: base, PreviousName: "bobby", NewName: "bob"},
			}, nil)

		report, err := service.GenerateFromStore()
		require.NoError(t, err)
		require.Len(t, report.Histories, 1)
		assert.Contains(t, report.Markdown, "## rob")
	})

	t.Run("Falha de banco é convertida em ReportError", func(t *testing.T) {
		service, accountRepo, _, _ := newTestService(t)

		accountRepo.EXPECT().
			ListAccounts(nil).
			Return(nil, errors.New("connection refused"))

		report, err := service.GenerateFromStore()
		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrDatabaseOperation)
	})
}

func TestService_BuildDailyDigest(t *testing.T) {
	service, accountRepo, changeRepo, _ := newTestService(t)

	observedAt := time.Now().UTC().AddDate(0, 0, -1)

	changeRepo.EXPECT().
		ListSince(gomock.Any()).
		Return([]*domain.ScreenNameChange{
			{AccountID: "1001", ObservedAt: observedAt, PreviousName: "bobby", NewName: "bob", FollowersCount: 500},
		}, nil)
	accountRepo.EXPECT().
		ListAccounts(nil).
		Return([]*domain.Account{
			{ID: "1001", CurrentScreenName: "bob", Verified: true, ProfileImageURL: "https://example.com/avatar.png"},
		}, nil)

	markdown, err := service.BuildDailyDigest()
	require.NoError(t, err)

	assert.Contains(t, markdown, "# Screen name changes")
	assert.Contains(t, markdown, ">bob</a>")
	// Metadados da conta enriquecem a linha do digest
	assert.Contains(t, markdown, "✔️")
}
