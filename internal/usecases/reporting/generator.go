package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vfg2006/name-tracker-api/internal/domain"
	"github.com/vfg2006/name-tracker-api/pkg/apiErrors"
)

const transitionTimeFormat = "2006-01-02 15:04:05 MST"

// Generator transforma um conjunto de registros de troca em relatórios
// determinísticos. É uma função pura dos dados de entrada: nenhuma mutação,
// nenhum estado entre execuções, saída byte a byte idêntica para entradas
// equivalentes (independente da ordem dos registros).
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateHistoryReport agrupa os registros por conta, ordena cada grupo por
// observed_at e valida a cadeia previous_name/new_name. Contas com cadeia
// inválida não abortam o relatório: entram na seção de contas ignoradas com
// o motivo, e as demais são renderizadas normalmente.
func (g *Generator) GenerateHistoryReport(
	accounts []*domain.Account,
	records []*domain.ScreenNameChange,
) (*domain.HistoryReport, error) {
	accountsByID := make(map[string]*domain.Account, len(accounts))
	for _, account := range accounts {
		accountsByID[account.ID] = account
	}

	grouped := make(map[string][]*domain.ScreenNameChange)
	for _, record := range records {
		grouped[record.AccountID] = append(grouped[record.AccountID], record)
	}

	// Ordem estável de contas: account_id ascendente. O screen name corrente
	// muda entre observações, o ID opaco não.
	accountIDs := make([]string, 0, len(grouped))
	for accountID := range grouped {
		accountIDs = append(accountIDs, accountID)
	}
	sort.Strings(accountIDs)

	report := &domain.HistoryReport{
		Histories: make([]domain.AccountHistory, 0, len(accountIDs)),
		Skipped:   make([]domain.SkippedAccount, 0),
	}

	for _, accountID := range accountIDs {
		history, err := buildAccountHistory(accountID, accountsByID[accountID], grouped[accountID])
		if err != nil {
			report.Skipped = append(report.Skipped, domain.SkippedAccount{
				AccountID: accountID,
				Reason:    err.Error(),
			})
			continue
		}

		report.Histories = append(report.Histories, *history)
	}

	report.Markdown = renderHistoryMarkdown(report.Histories, report.Skipped)

	return report, nil
}

// buildAccountHistory ordena e valida a cadeia de uma única conta.
func buildAccountHistory(
	accountID string,
	account *domain.Account,
	records []*domain.ScreenNameChange,
) (*domain.AccountHistory, error) {
	if account == nil {
		return nil, NewAccountReportError(
			ErrUnknownAccount,
			apiErrors.ErrUnknownAccount,
			accountID,
			fmt.Sprintf("account %s is not in the tracked set", accountID),
		)
	}

	sorted := make([]*domain.ScreenNameChange, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ObservedAt.Before(sorted[j].ObservedAt)
	})

	transitions := make([]domain.Transition, 0, len(sorted))

	for i, record := range sorted {
		if i > 0 {
			previous := sorted[i-1]

			// Invariante de ordenação total: dois registros da mesma conta
			// nunca compartilham o mesmo observed_at
			if record.ObservedAt.Equal(previous.ObservedAt) {
				return nil, NewAccountReportError(
					ErrDuplicateObservation,
					apiErrors.ErrMalformedRecord,
					accountID,
					fmt.Sprintf("two records observed at %s", record.ObservedAt.UTC().Format(time.RFC3339)),
				)
			}

			// Invariante de encadeamento: o new_name de um registro é o
			// previous_name do seguinte
			if record.PreviousName != previous.NewName {
				return nil, NewAccountReportError(
					ErrMalformedRecord,
					apiErrors.ErrMalformedRecord,
					accountID,
					fmt.Sprintf(
						"previous_name %q does not chain with prior new_name %q",
						record.PreviousName,
						previous.NewName,
					),
				)
			}
		}

		transitions = append(transitions, domain.Transition{
			ObservedAt:   record.ObservedAt,
			PreviousName: record.PreviousName,
			NewName:      record.NewName,
		})
	}

	return &domain.AccountHistory{
		AccountID:         accountID,
		CurrentScreenName: account.CurrentScreenName,
		Transitions:       transitions,
	}, nil
}

// renderHistoryMarkdown emite o documento combinado: uma seção por conta com
// a cadeia cronológica de nomes, e uma seção final com as contas ignoradas.
// Entrada vazia produz um relatório vazio mas válido.
func renderHistoryMarkdown(histories []domain.AccountHistory, skipped []domain.SkippedAccount) string {
	var b strings.Builder

	b.WriteString("# Screen name history\n")
	b.WriteString("One section per tracked account, ordered by account ID. ")
	b.WriteString("Each entry shows a detected change and the moment it was observed, which may be later than the change itself.\n")

	for _, history := range histories {
		fmt.Fprintf(&b, "\n## %s\n", history.CurrentScreenName)
		fmt.Fprintf(&b, "Account ID: `%s`\n", history.AccountID)

		for _, transition := range history.Transitions {
			fmt.Fprintf(
				&b,
				"* `%s` → `%s` (%s)\n",
				transition.PreviousName,
				transition.NewName,
				transition.ObservedAt.UTC().Format(transitionTimeFormat),
			)
		}
	}

	if len(skipped) > 0 {
		b.WriteString("\n## Skipped accounts\n")
		b.WriteString("The following accounts failed validation and were left out of this report:\n")

		for _, skip := range skipped {
			fmt.Fprintf(&b, "* `%s`: %s\n", skip.AccountID, skip.Reason)
		}
	}

	return b.String()
}

// RenderAccountSection renderiza o histórico de uma única conta como um
// documento markdown independente, usado pelos snapshots por conta.
func RenderAccountSection(history *domain.AccountHistory) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", history.CurrentScreenName)
	fmt.Fprintf(&b, "Account ID: `%s`\n", history.AccountID)

	for _, transition := range history.Transitions {
		fmt.Fprintf(
			&b,
			"* `%s` → `%s` (%s)\n",
			transition.PreviousName,
			transition.NewName,
			transition.ObservedAt.UTC().Format(transitionTimeFormat),
		)
	}

	return b.String()
}
