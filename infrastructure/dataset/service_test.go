package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/name-tracker-api/internal/config"
)

func writeDataFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, DataFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return dir
}

func TestDatasetService_FetchChanges(t *testing.T) {
	t.Run("Lê o data.csv do diretório configurado", func(t *testing.T) {
		dir := writeDataFile(t,
			"1646899200,1001,true,false,500,bobby,bob,https://pbs.example.com/profile_images/12345/bob_normal.jpg\n"+
				"1646985600,1001,true,false,520,bob,rob,https://pbs.example.com/profile_images/12345/rob_normal.jpg\n")

		service := New(&config.Config{
			Dataset: config.Dataset{Path: dir},
		})

		snapshot, err := service.FetchChanges(context.Background())
		require.NoError(t, err)
		require.Len(t, snapshot.Records, 2)
		assert.Equal(t, 0, snapshot.InvalidRows)
		assert.Equal(t, "1001", snapshot.Records[0].UserID)
		assert.Equal(t, "rob", snapshot.Records[1].NewName)
	})

	t.Run("Linha inválida não derruba o restante do arquivo", func(t *testing.T) {
		dir := writeDataFile(t,
			"not-a-timestamp,1001,true,false,500,bobby,bob,https://pbs.example.com/a.jpg\n"+
				"1646899200,2002,false,false,300,caroline,carol,https://pbs.example.com/b.jpg\n")

		service := New(&config.Config{
			Dataset: config.Dataset{Path: dir},
		})

		snapshot, err := service.FetchChanges(context.Background())
		require.NoError(t, err)
		require.Len(t, snapshot.Records, 1)
		assert.Equal(t, 1, snapshot.InvalidRows)
		assert.Equal(t, "2002", snapshot.Records[0].UserID)
	})

	t.Run("Diretório sem data.csv retorna erro", func(t *testing.T) {
		service := New(&config.Config{
			Dataset: config.Dataset{Path: t.TempDir()},
		})

		snapshot, err := service.FetchChanges(context.Background())
		assert.Nil(t, snapshot)
		assert.ErrorContains(t, err, "erro ao abrir o dataset")
	})
}
