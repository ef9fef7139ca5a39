package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/name-tracker-api/internal/domain"
	"github.com/vfg2006/name-tracker-api/internal/usecases/reporting"
	"github.com/vfg2006/name-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/name-tracker-api/pkg/utils"
)

// GetDailyDigest retorna o snapshot mais recente do digest diário, ou o de
// uma data específica via ?date=YYYY-MM-DD.
// Com ?raw=true o markdown é servido direto, sem envelope JSON.
func GetDailyDigest(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var report *domain.Report
		var err error

		if dateStr := r.URL.Query().Get("date"); dateStr != "" {
			date, parseErr := utils.ParseDate(dateStr)
			if parseErr != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato YYYY-MM-DD", nil)
				return
			}

			report, err = service.GetDigestByDate(*date)
		} else {
			report, err = service.GetDailyDigest()
		}

		if err != nil {
			logrus.Error("Error fetching daily digest:", err)
			writeReportError(w, err)
			return
		}

		if r.URL.Query().Get("raw") == "true" {
			w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
			w.Write([]byte(report.Content))
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(report); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// ListDigestDates lista as datas com snapshot de digest disponível
func ListDigestDates(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dates, err := service.ListDigestDates()
		if err != nil {
			logrus.Error("Error listing digest dates:", err)
			writeReportError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(map[string]interface{}{"dates": dates}); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetAccountReport retorna o relatório de histórico de uma conta, gerando sob
// demanda quando não houver snapshot persistido
func GetAccountReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)
			return
		}

		report, err := service.GetAccountReport(id)
		if err != nil {
			logrus.Error("Error fetching account report:", err)
			writeReportError(w, err)
			return
		}

		if r.URL.Query().Get("raw") == "true" {
			w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
			w.Write([]byte(report.Content))
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(report); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GenerateReport roda o gerador sobre todo o armazenamento e retorna o
// relatório completo, incluindo as contas puladas e seus motivos
func GenerateReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GenerateReport")

		report, err := service.GenerateFromStore()
		if err != nil {
			logrus.Error("Error generating report:", err)
			writeReportError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(report); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// writeReportError converte erros do serviço de relatórios em respostas HTTP
func writeReportError(w http.ResponseWriter, err error) {
	// Verificar se é um ReportError para obter detalhes específicos do erro
	var reportErr *reporting.ReportError
	if errors.As(err, &reportErr) {
		apiErrors.WriteError(w, reportErr.Code, reportErr.Error(), map[string]interface{}{
			"account_id": reportErr.AccountID,
		})
		return
	}

	switch {
	case errors.Is(err, reporting.ErrReportNotFound):
		apiErrors.WriteError(w, apiErrors.ErrReportNotFound, "Relatório não encontrado", nil)

	case errors.Is(err, reporting.ErrAccountNotFound):
		apiErrors.WriteError(w, apiErrors.ErrAccountNotFound, "Conta não encontrada", nil)

	case errors.Is(err, reporting.ErrDatabaseOperation):
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar o banco de dados", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao gerar relatório", nil)
	}
}
