package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/name-tracker-api/internal/config"
	"github.com/vfg2006/name-tracker-api/pkg/utils"
)

// DataFileName é o nome do arquivo de dados dentro do diretório base do
// dataset, o mesmo usado pelo coletor
const DataFileName = "data.csv"

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

// Snapshot é o resultado de uma leitura completa do dataset. Linhas inválidas
// não abortam a leitura: são contadas e logadas, e o restante é aproveitado.
type Snapshot struct {
	Records     []*Record
	InvalidRows int
}

// DatasetIntegrator é o contrato com o processo de coleta externo: a única
// coisa que ele nos deve é um dataset de trocas de screen name.
type DatasetIntegrator interface {
	FetchChanges(ctx context.Context) (*Snapshot, error)
}

type DatasetService struct {
	cfg *config.Config
}

func New(cfg *config.Config) DatasetIntegrator {
	return &DatasetService{
		cfg: cfg,
	}
}

func (s *DatasetService) FetchChanges(ctx context.Context) (*Snapshot, error) {
	reader, err := s.openData(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir o dataset")
	}
	defer reader.Close()

	return decodeSnapshot(reader)
}

// openData abre o data.csv local ou remoto, conforme a configuração.
func (s *DatasetService) openData(ctx context.Context) (io.ReadCloser, error) {
	if s.cfg.Dataset.URL != "" {
		data, err := utils.MakeRequest(s.cfg.Dataset.URL)
		if err != nil {
			return nil, err
		}

		return io.NopCloser(bytes.NewReader(data)), nil
	}

	path := filepath.Join(s.cfg.Dataset.Path, DataFileName)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return file, nil
}

func decodeSnapshot(r io.Reader) (*Snapshot, error) {
	csvReader := csv.NewReader(r)
	// O dataset tem arity fixa mas a validação é nossa, linha a linha
	csvReader.FieldsPerRecord = -1

	snapshot := &Snapshot{
		Records: make([]*Record, 0),
	}

	line := 0
	for {
		fields, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "erro ao ler o CSV do dataset")
		}

		line++

		record, err := parseRecord(line, fields)
		if err != nil {
			logrus.WithError(err).Warn("Linha inválida no dataset, ignorando")
			snapshot.InvalidRows++
			continue
		}

		snapshot.Records = append(snapshot.Records, record)
	}

	return snapshot, nil
}
