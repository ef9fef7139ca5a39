// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

type ReportKind string

const (
	ReportKindAccountHistory ReportKind = "account_history"
	ReportKindDailyDigest    ReportKind = "daily_digest"
)

// Report é um snapshot persistido de um relatório gerado. Key identifica o
// alvo do snapshot: o account_id para account_history, a data (dd-mm-yyyy)
// para daily_digest.
type Report struct {
	ID          string     `json:"id"`
	Kind        ReportKind `json:"kind"`
	Key         string     `json:"key"`
	Content     string     `json:"content"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// AccountHistory é a forma estruturada do histórico de uma conta para
// consumidores programáticos.
type AccountHistory struct {
	AccountID         string       `json:"account_id"`
	CurrentScreenName string       `json:"current_screen_name"`
	Transitions       []Transition `json:"transitions"`
}

// SkippedAccount registra uma conta excluída de um relatório por falha de
// validação, com o motivo.
type SkippedAccount struct {
	AccountID string `json:"account_id"`
	Reason    string `json:"reason"`
}

// HistoryReport combina o documento renderizado com a forma estruturada.
type HistoryReport struct {
	Markdown  string           `json:"markdown"`
	Histories []AccountHistory `json:"histories"`
	Skipped   []SkippedAccount `json:"skipped"`
}
