package dataset

import (
	"fmt"
	"strconv"
	"time"

	"github.com/vfg2006/name-tracker-api/internal/domain"
)

// Número de colunas do data.csv produzido pelo coletor:
// timestamp, user_id, verified, protected, followers_count,
// previous_screen_name, new_screen_name, profile_image_url
const recordFieldCount = 8

// Record é uma linha validada do data.csv. A validação acontece aqui, na
// borda, para que nenhum dado malformado chegue na lógica de relatório.
type Record struct {
	Timestamp       time.Time
	UserID          string
	Verified        bool
	Protected       bool
	FollowersCount  int
	PreviousName    string
	NewName         string
	ProfileImageURL string
}

// InvalidRecordError identifica uma linha do CSV que não pôde ser convertida.
type InvalidRecordError struct {
	Line   int
	Fields []string
	Reason string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid screen names record at line %d: %s", e.Line, e.Reason)
}

// parseRecord converte uma linha crua do CSV em um Record validado.
func parseRecord(line int, fields []string) (*Record, error) {
	if len(fields) != recordFieldCount {
		return nil, &InvalidRecordError{
			Line:   line,
			Fields: fields,
			Reason: fmt.Sprintf("expected %d fields, got %d", recordFieldCount, len(fields)),
		}
	}

	timestamp, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return nil, &InvalidRecordError{Line: line, Fields: fields, Reason: "invalid timestamp"}
	}

	if _, err := strconv.ParseUint(fields[1], 10, 64); err != nil {
		return nil, &InvalidRecordError{Line: line, Fields: fields, Reason: "invalid user id"}
	}

	verified, err := strconv.ParseBool(fields[2])
	if err != nil {
		return nil, &InvalidRecordError{Line: line, Fields: fields, Reason: "invalid verified flag"}
	}

	protected, err := strconv.ParseBool(fields[3])
	if err != nil {
		return nil, &InvalidRecordError{Line: line, Fields: fields, Reason: "invalid protected flag"}
	}

	followersCount, err := strconv.Atoi(fields[4])
	if err != nil || followersCount < 0 {
		return nil, &InvalidRecordError{Line: line, Fields: fields, Reason: "invalid followers count"}
	}

	return &Record{
		Timestamp:       time.Unix(timestamp, 0).UTC(),
		UserID:          fields[1],
		Verified:        verified,
		Protected:       protected,
		FollowersCount:  followersCount,
		PreviousName:    fields[5],
		NewName:         fields[6],
		ProfileImageURL: fields[7],
	}, nil
}

// Change converte o registro para o evento de domínio.
func (r *Record) Change() *domain.ScreenNameChange {
	return &domain.ScreenNameChange{
		AccountID:      r.UserID,
		ObservedAt:     r.Timestamp,
		PreviousName:   r.PreviousName,
		NewName:        r.NewName,
		FollowersCount: r.FollowersCount,
	}
}

// Account converte o registro para a visão de conta no momento da observação.
func (r *Record) Account() *domain.Account {
	return &domain.Account{
		ID:                r.UserID,
		CurrentScreenName: r.NewName,
		FollowersCount:    r.FollowersCount,
		Verified:          r.Verified,
		Protected:         r.Protected,
		ProfileImageURL:   r.ProfileImageURL,
		Status:            domain.AccountStatusActive,
	}
}
