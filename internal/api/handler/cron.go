package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/name-tracker-api/internal/domain"
	"github.com/vfg2006/name-tracker-api/internal/scheduler"
	"github.com/vfg2006/name-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/name-tracker-api/pkg/middleware"
	"github.com/vfg2006/name-tracker-api/pkg/utils"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeImport  = "import"
	CronJobTypeReports = "reports"
	CronJobTypeAll     = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	ChangeImportSyncService *scheduler.ChangeImportSyncService
	ReportSyncService       *scheduler.ReportSyncService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Verificar permissões - apenas administradores podem executar cron jobs
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != middleware.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		// Validar o tipo de cron job
		switch cronType {
		case CronJobTypeImport:
			// Executar importação do dataset
			if services.ChangeImportSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de importação do dataset não disponível", nil)
				return
			}
			services.ChangeImportSyncService.TriggerManualSync()

		case CronJobTypeReports:
			// Executar geração de relatórios
			if services.ReportSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de geração de relatórios não disponível", nil)
				return
			}
			services.ReportSyncService.TriggerManualSync()

		case CronJobTypeAll:
			// Executar ambas as sincronizações
			if services.ChangeImportSyncService != nil {
				services.ChangeImportSyncService.TriggerManualSync()
			}
			if services.ReportSyncService != nil {
				services.ReportSyncService.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: import, reports, all", nil)
			return
		}

		// Responder com sucesso
		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		// Verificar permissões - apenas administradores podem ver status das crons
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != middleware.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem verificar status de cron jobs", nil)
			return
		}

		status := map[string]any{
			"import":  services.ChangeImportSyncService.GetStatus(),
			"reports": services.ReportSyncService.GetStatus(),
		}

		logrus.Debug("Cron status: ", utils.PrettyJson(status))

		json.NewEncoder(w).Encode(status)
	}
}
