package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/name-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/name-tracker-api/infrastructure/dataset"
	"github.com/vfg2006/name-tracker-api/infrastructure/repository"
	"github.com/vfg2006/name-tracker-api/internal/api"
	"github.com/vfg2006/name-tracker-api/internal/config"
	"github.com/vfg2006/name-tracker-api/internal/scheduler"
	"github.com/vfg2006/name-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/name-tracker-api/internal/usecases/reporting"
	"github.com/vfg2006/name-tracker-api/internal/usecases/tracking"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	accountRepo := repository.NewAccountRepository(pgConn)
	changeRepo := repository.NewChangeRepository(pgConn)
	reportRepo := repository.NewReportRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	datasetService := dataset.New(cfg)

	trackingService := tracking.NewService(accountRepo, changeRepo)
	reportService := reporting.NewService(cfg, accountRepo, changeRepo, reportRepo)

	// Inicializa os agendadores de sincronização separados
	changeImportSyncService := scheduler.NewChangeImportSyncService(
		accountRepo,
		changeRepo,
		datasetService,
		cfg,
	)

	reportSyncService := scheduler.NewReportSyncService(
		changeRepo,
		reportRepo,
		reportService,
		cfg,
	)

	// Inicia os agendadores em background
	if err := changeImportSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de importação do dataset")
	} else {
		logrus.Info("Agendador de importação do dataset iniciado com sucesso")
	}

	if err := reportSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de geração de relatórios")
	} else {
		logrus.Info("Agendador de geração de relatórios iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		trackingService,
		reportService,
		authenticator,
		changeImportSyncService, // Serviço de importação do dataset
		reportSyncService,       // Serviço de geração de relatórios
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
