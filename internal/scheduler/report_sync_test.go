package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/name-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/name-tracker-api/internal/config"
	"github.com/vfg2006/name-tracker-api/internal/domain"
	reportingmocks "github.com/vfg2006/name-tracker-api/internal/usecases/reporting/mocks"
	"go.uber.org/mock/gomock"
)

func TestReportSyncService_syncReports(t *testing.T) {
	tests := []struct {
		name  string
		setup func(changeRepo *mocks.MockChangeRepository, reportRepo *mocks.MockReportRepository, reporter *reportingmocks.MockReporter)
	}{
		{
			name: "Gera o digest do dia e regenera contas com trocas recentes",
			setup: func(changeRepo *mocks.MockChangeRepository, reportRepo *mocks.MockReportRepository, reporter *reportingmocks.MockReporter) {
				reporter.EXPECT().
					BuildDailyDigest().
					Return("# Screen name changes\n", nil)

				reportRepo.EXPECT().
					Save(gomock.Any()).
					DoAndReturn(func(report *domain.Report) error {
						assert.Equal(t, domain.ReportKindDailyDigest, report.Kind)
						assert.Equal(t, time.Now().UTC().Format(digestKeyFormat), report.Key)
						assert.NotEmpty(t, report.ID)
						return nil
					})

				changeRepo.EXPECT().
					ListChangedAccountIDs(gomock.Any()).
					Return([]string{"1001", "2002"}, nil)

				reporter.EXPECT().
					RegenerateAccountReport("1001").
					Return(&domain.Report{ID: "abc123"}, nil)
				reporter.EXPECT().
					RegenerateAccountReport("2002").
					Return(&domain.Report{ID: "def456"}, nil)
			},
		},
		{
			name: "Falha no digest não impede a regeneração por conta",
			setup: func(changeRepo *mocks.MockChangeRepository, reportRepo *mocks.MockReportRepository, reporter *reportingmocks.MockReporter) {
				reporter.EXPECT().
					BuildDailyDigest().
					Return("", errors.New("connection refused"))

				changeRepo.EXPECT().
					ListChangedAccountIDs(gomock.Any()).
					Return([]string{"1001"}, nil)

				reporter.EXPECT().
					RegenerateAccountReport("1001").
					Return(&domain.Report{ID: "abc123"}, nil)
			},
		},
		{
			name: "Falha em uma conta não interrompe as demais",
			setup: func(changeRepo *mocks.MockChangeRepository, reportRepo *mocks.MockReportRepository, reporter *reportingmocks.MockReporter) {
				reporter.EXPECT().
					BuildDailyDigest().
					Return("# Screen name changes\n", nil)
				reportRepo.EXPECT().
					Save(gomock.Any()).
					Return(nil)

				changeRepo.EXPECT().
					ListChangedAccountIDs(gomock.Any()).
					Return([]string{"1001", "2002"}, nil)

				reporter.EXPECT().
					RegenerateAccountReport("1001").
					Return(nil, errors.New("broken chain"))
				reporter.EXPECT().
					RegenerateAccountReport("2002").
					Return(&domain.Report{ID: "def456"}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			changeRepo := mocks.NewMockChangeRepository(ctrl)
			reportRepo := mocks.NewMockReportRepository(ctrl)
			reporter := reportingmocks.NewMockReporter(ctrl)

			tt.setup(changeRepo, reportRepo, reporter)

			service := &ReportSyncService{
				config: ReportSyncConfig{
					LookbackDays: 1,
					SyncEnabled:  true,
				},
				appConfig:     &config.Config{},
				changeRepo:    changeRepo,
				reportRepo:    reportRepo,
				reportService: reporter,
			}

			service.syncReports()

			require.False(t, service.lastSyncCompletedAt.IsZero())
		})
	}
}
