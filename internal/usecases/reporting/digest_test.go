package reporting

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func digestEntry(accountID string, observedAt time.Time, followers int, newName string) DigestEntry {
	return DigestEntry{
		AccountID:      accountID,
		ObservedAt:     observedAt,
		PreviousName:   "old_" + newName,
		NewName:        newName,
		FollowersCount: followers,
	}
}

func TestGenerator_GenerateDailyDigest(t *testing.T) {
	generator := NewGenerator()

	day1 := time.Date(2022, 3, 10, 9, 30, 0, 0, time.UTC)
	day2 := time.Date(2022, 3, 11, 14, 0, 0, 0, time.UTC)

	opts := DigestOptions{
		ReportedDaysLimit:   10,
		FollowersCountFloor: 200,
	}

	t.Run("Agrupa por dia de detecção com dias mais recentes primeiro", func(t *testing.T) {
		entries := []DigestEntry{
			digestEntry("1001", day1, 500, "alice"),
			digestEntry("2002", day2, 900, "bob"),
		}

		markdown := generator.GenerateDailyDigest(entries, opts)

		pos11 := strings.Index(markdown, "## 11 March 2022")
		pos10 := strings.Index(markdown, "## 10 March 2022")
		require.GreaterOrEqual(t, pos11, 0)
		require.GreaterOrEqual(t, pos10, 0)
		assert.Less(t, pos11, pos10)
	})

	t.Run("Índice de conteúdo usa âncoras derivadas do cabeçalho", func(t *testing.T) {
		entries := []DigestEntry{
			digestEntry("1001", day1, 500, "alice"),
		}

		markdown := generator.GenerateDailyDigest(entries, opts)

		assert.Contains(t, markdown, "## Contents")
		assert.Contains(t, markdown, "* [10 March 2022 (1 changes found)](#10-March-2022)")
	})

	t.Run("Piso de seguidores filtra a tabela mas conta no total do dia", func(t *testing.T) {
		entries := []DigestEntry{
			digestEntry("1001", day1, 500, "alice"),
			digestEntry("2002", day1.Add(time.Hour), 50, "smallfry"),
		}

		markdown := generator.GenerateDailyDigest(entries, opts)

		assert.Contains(t, markdown, "Found 2 screen name changes, with 1 included here.")
		assert.Contains(t, markdown, "alice")
		assert.NotContains(t, markdown, "smallfry")
	})

	t.Run("Dentro do dia ordena por seguidores decrescente", func(t *testing.T) {
		entries := []DigestEntry{
			digestEntry("1001", day1, 300, "alice"),
			digestEntry("2002", day1.Add(time.Minute), 900, "bob"),
		}

		markdown := generator.GenerateDailyDigest(entries, opts)

		posBob := strings.Index(markdown, ">bob</a>")
		posAlice := strings.Index(markdown, ">alice</a>")
		require.GreaterOrEqual(t, posBob, 0)
		require.GreaterOrEqual(t, posAlice, 0)
		assert.Less(t, posBob, posAlice)
	})

	t.Run("Limite de dias corta os dias mais antigos", func(t *testing.T) {
		entries := make([]DigestEntry, 0, 12)
		for i := 0; i < 12; i++ {
			entries = append(entries, digestEntry("1001", day1.AddDate(0, 0, -i), 500, "alice"))
		}

		markdown := generator.GenerateDailyDigest(entries, opts)

		assert.Contains(t, markdown, "## 10 March 2022")
		assert.NotContains(t, markdown, "## 28 February 2022")
	})

	t.Run("Ícones de status refletem protected e verified", func(t *testing.T) {
		entry := digestEntry("1001", day1, 500, "alice")
		entry.Protected = true
		entry.Verified = true

		markdown := generator.GenerateDailyDigest([]DigestEntry{entry}, opts)

		assert.Contains(t, markdown, "🔒✔️")
	})
}

func TestThumbnailURL(t *testing.T) {
	baseDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(baseDir, "thumbnails"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(baseDir, "thumbnails", "12345-alice_400x400.jpg"),
		[]byte("img"),
		0o644,
	))

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "Thumbnail local existe e substitui a URL",
			url:      "https://pbs.example.com/profile_images/12345/alice_normal.jpg",
			expected: "./thumbnails/12345-alice_400x400.jpg",
		},
		{
			name:     "Thumbnail ausente mantém a URL original",
			url:      "https://pbs.example.com/profile_images/67890/bob_normal.jpg",
			expected: "https://pbs.example.com/profile_images/67890/bob_normal.jpg",
		},
		{
			name:     "URL fora do formato esperado é mantida",
			url:      "https://example.com/avatar.png",
			expected: "https://example.com/avatar.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, thumbnailURL(tt.url, baseDir))
		})
	}
}

func TestLessAccountID(t *testing.T) {
	// IDs numéricos em string: o mais curto é o menor, desempate lexicográfico
	assert.True(t, lessAccountID("99", "100"))
	assert.True(t, lessAccountID("100", "101"))
	assert.False(t, lessAccountID("101", "100"))
	assert.False(t, lessAccountID("100", "100"))
}
