package dataset

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/name-tracker-api/internal/domain"
	"github.com/vfg2006/name-tracker-api/pkg/log"
)

func validFields() []string {
	return []string{
		"1646899200", // 2022-03-10 08:00:00 UTC
		"1001",
		"true",
		"false",
		"500",
		"bobby",
		"bob",
		"https://pbs.example.com/profile_images/12345/bob_normal.jpg",
	}
}

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(fields []string) []string
		wantErr string
	}{
		{
			name:   "Linha válida é convertida por completo",
			mutate: func(fields []string) []string { return fields },
		},
		{
			name:    "Aridade errada é rejeitada",
			mutate:  func(fields []string) []string { return fields[:5] },
			wantErr: "expected 8 fields, got 5",
		},
		{
			name: "Timestamp não numérico é rejeitado",
			mutate: func(fields []string) []string {
				fields[0] = "ontem"
				return fields
			},
			wantErr: "invalid timestamp",
		},
		{
			name: "User id não numérico é rejeitado",
			mutate: func(fields []string) []string {
				fields[1] = "bob"
				return fields
			},
			wantErr: "invalid user id",
		},
		{
			name: "Flag verified inválida é rejeitada",
			mutate: func(fields []string) []string {
				fields[2] = "sim"
				return fields
			},
			wantErr: "invalid verified flag",
		},
		{
			name: "Contagem de seguidores negativa é rejeitada",
			mutate: func(fields []string) []string {
				fields[4] = "-1"
				return fields
			},
			wantErr: "invalid followers count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := parseRecord(1, tt.mutate(validFields()))

			if tt.wantErr != "" {
				require.Error(t, err)
				var invalidErr *InvalidRecordError
				require.ErrorAs(t, err, &invalidErr)
				assert.Contains(t, invalidErr.Reason, tt.wantErr)
				assert.Nil(t, record)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, time.Date(2022, 3, 10, 8, 0, 0, 0, time.UTC), record.Timestamp)
			assert.Equal(t, "1001", record.UserID)
			assert.True(t, record.Verified)
			assert.False(t, record.Protected)
			assert.Equal(t, 500, record.FollowersCount)
			assert.Equal(t, "bobby", record.PreviousName)
			assert.Equal(t, "bob", record.NewName)
		})
	}
}

func TestRecord_Conversions(t *testing.T) {
	record, err := parseRecord(1, validFields())
	require.NoError(t, err)

	change := record.Change()
	assert.Equal(t, "1001", change.AccountID)
	assert.Equal(t, record.Timestamp, change.ObservedAt)
	assert.Equal(t, "bobby", change.PreviousName)
	assert.Equal(t, "bob", change.NewName)
	assert.Equal(t, 500, change.FollowersCount)

	account := record.Account()
	assert.Equal(t, "1001", account.ID)
	// O new_name da observação vira o screen name corrente da conta
	assert.Equal(t, "bob", account.CurrentScreenName)
	assert.Equal(t, domain.AccountStatusActive, account.Status)
	assert.True(t, account.Verified)
}

func TestDecodeSnapshot(t *testing.T) {
	log.SetupTestLogger()

	t.Run("Linhas inválidas são contadas sem abortar a leitura", func(t *testing.T) {
		data := strings.Join([]string{
			"1646899200,1001,true,false,500,bobby,bob,https://pbs.example.com/profile_images/1/a_normal.jpg",
			"isso,não,é,um,registro",
			"1646985600,2002,false,false,300,caroline,carol,https://pbs.example.com/profile_images/2/b_normal.jpg",
		}, "\n")

		snapshot, err := decodeSnapshot(strings.NewReader(data))
		require.NoError(t, err)

		assert.Len(t, snapshot.Records, 2)
		assert.Equal(t, 1, snapshot.InvalidRows)
		assert.Equal(t, "1001", snapshot.Records[0].UserID)
		assert.Equal(t, "2002", snapshot.Records[1].UserID)
	})

	t.Run("Dataset vazio produz snapshot vazio", func(t *testing.T) {
		snapshot, err := decodeSnapshot(strings.NewReader(""))
		require.NoError(t, err)

		assert.Empty(t, snapshot.Records)
		assert.Zero(t, snapshot.InvalidRows)
	})
}
