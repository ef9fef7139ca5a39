package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/name-tracker-api/internal/domain"
	"github.com/vfg2006/name-tracker-api/internal/usecases/tracking"
	"github.com/vfg2006/name-tracker-api/pkg/apiErrors"
)

func AccountList(service tracking.TrackingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filterStatus := r.URL.Query().Get("status")

		var availableStatusList []string
		availableStatus := make([]domain.AccountStatus, 0)
		if filterStatus != "" {
			availableStatusList = strings.Split(filterStatus, ",")

			for _, status := range availableStatusList {
				availableStatus = append(availableStatus, domain.AccountStatus(status))
			}
		}

		accounts, err := service.ListAccounts(availableStatus)
		if err != nil {
			logrus.Error("Error listing accounts:", err)

			// Verificar se é um TrackingError para obter detalhes específicos do erro
			var trackingErr *tracking.TrackingError
			if errors.As(err, &trackingErr) {
				apiErrors.WriteError(w, trackingErr.Code, trackingErr.Error(), nil)
				return
			}

			// Caso não seja um TrackingError específico, verificar erros comuns
			if errors.Is(err, tracking.ErrFetchAccounts) {
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar contas no banco de dados", nil)
			} else {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao listar contas", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(accounts); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func GetAccount(service tracking.TrackingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)
			return
		}

		account, err := service.GetAccount(id)
		if err != nil {
			logrus.Error("Error fetching account:", err)
			writeTrackingError(w, err, id)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(account); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetAccountChanges retorna o histórico cronológico de trocas de screen name da conta
func GetAccountChanges(service tracking.TrackingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)
			return
		}

		changes, err := service.GetAccountChanges(id)
		if err != nil {
			logrus.Error("Error fetching account changes:", err)
			writeTrackingError(w, err, id)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(changes); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func UpdateAccount(service tracking.TrackingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateAccount")

		// Define o tipo de conteúdo da resposta
		w.Header().Set("Content-Type", "application/json")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)
			return
		}

		// Decodifica o corpo da requisição
		var updateRequest domain.UpdateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&updateRequest); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		// Garante que o ID da URL seja usado
		updateRequest.ID = id

		if err := service.UpdateAccount(&updateRequest); err != nil {
			logrus.Error("Error updating account:", err)
			writeTrackingError(w, err, id)
			return
		}

		w.WriteHeader(http.StatusOK)
	})
}

// writeTrackingError converte erros do serviço de rastreamento em respostas HTTP
func writeTrackingError(w http.ResponseWriter, err error, accountID string) {
	// Verificar se é um TrackingError para obter detalhes específicos do erro
	var trackingErr *tracking.TrackingError
	if errors.As(err, &trackingErr) {
		apiErrors.WriteError(w, trackingErr.Code, trackingErr.Error(), map[string]interface{}{
			"account_id": trackingErr.AccountID,
		})
		return
	}

	switch {
	case errors.Is(err, tracking.ErrAccountIDRequired):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta é obrigatório", nil)

	case errors.Is(err, tracking.ErrAccountNotFound):
		apiErrors.WriteError(w, apiErrors.ErrAccountNotFound, "Conta não encontrada", map[string]interface{}{
			"account_id": accountID,
		})

	case errors.Is(err, tracking.ErrDatabaseOperation) || errors.Is(err, tracking.ErrUpdateAccount):
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar contas no banco de dados", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar conta", nil)
	}
}
