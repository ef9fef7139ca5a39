package tracking

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de contas rastreadas
var (
	// Erros de validação
	ErrAccountIDRequired = errors.New("account ID is required")
	ErrAccountNotFound   = errors.New("account not found")
	ErrChangeOutOfOrder  = errors.New("change observed before the latest recorded change")
	ErrBrokenChain       = errors.New("change does not chain with the latest recorded name")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
	ErrUpdateAccount     = errors.New("error updating account")
	ErrFetchAccounts     = errors.New("error fetching accounts from database")
)

// TrackingError é um erro com contexto adicional para contas
type TrackingError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	AccountID string // ID da conta envolvida (quando aplicável)
	Details   string // Detalhes adicionais
}

// Error implementa a interface error
func (e *TrackingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *TrackingError) Unwrap() error {
	return e.Err
}

// NewTrackingError cria um novo TrackingError
func NewTrackingError(err error, code string, details string) *TrackingError {
	return &TrackingError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewTrackingErrorWithID cria um novo TrackingError com ID da conta
func NewTrackingErrorWithID(err error, code string, accountID string, details string) *TrackingError {
	return &TrackingError{
		Err:       err,
		Code:      code,
		AccountID: accountID,
		Details:   details,
	}
}
