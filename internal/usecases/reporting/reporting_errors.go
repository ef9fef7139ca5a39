package reporting

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de relatórios
var (
	// Erros de validação da cadeia de trocas
	ErrMalformedRecord      = errors.New("malformed record")
	ErrUnknownAccount       = errors.New("change record references unknown account")
	ErrDuplicateObservation = errors.New("duplicate observed_at for account")

	// Erros de consulta
	ErrAccountNotFound = errors.New("account not found")
	ErrReportNotFound  = errors.New("report not found")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
)

// ReportError é um erro com contexto adicional para relatórios
type ReportError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	AccountID string // ID da conta envolvida (quando aplicável)
	Details   string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError cria um novo ReportError
func NewReportError(err error, code string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewAccountReportError cria um novo ReportError com ID da conta
func NewAccountReportError(err error, code string, accountID string, details string) *ReportError {
	return &ReportError{
		Err:       err,
		Code:      code,
		AccountID: accountID,
		Details:   details,
	}
}

// IsChainError verifica se o erro é uma violação da cadeia de trocas
func IsChainError(err error) bool {
	return errors.Is(err, ErrMalformedRecord) ||
		errors.Is(err, ErrUnknownAccount) ||
		errors.Is(err, ErrDuplicateObservation)
}
