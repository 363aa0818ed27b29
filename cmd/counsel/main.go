package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexanderramin/counsel/internal/cli"
	"github.com/alexanderramin/counsel/internal/config"
	"github.com/alexanderramin/counsel/internal/db"
	"github.com/alexanderramin/counsel/internal/intelligence"
	"github.com/alexanderramin/counsel/internal/llm"
	"github.com/alexanderramin/counsel/internal/repository"
	"github.com/alexanderramin/counsel/internal/seed"
	"github.com/alexanderramin/counsel/internal/service"
	"github.com/alexanderramin/counsel/internal/session"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfgPath := os.Getenv("COUNSEL_CONFIG")
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	logger, err := newLogger(level)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.OpenDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	studentRepo := repository.NewSQLiteStudentRepo(database)
	meetingRepo := repository.NewSQLiteMeetingRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// The model is optional: without a credential both services take the
	// rule engines.
	llmCfg := llm.LoadConfig()
	var client llm.LLMClient
	if llmCfg.HasCredential() {
		client, err = llm.NewClient(ctx, llmCfg, llm.ObserverFor(llmCfg, logger))
		if err != nil {
			return fmt.Errorf("creating model client: %w", err)
		}
	}
	topics := intelligence.NewTopicService(client, logger)
	agendaText := intelligence.NewAgendaTextService(client, logger)

	app := &cli.App{
		Topics:          topics,
		Logger:          logger,
		LogLevel:        level,
		HTTPAddr:        cfg.HTTP.Addr,
		ShutdownTimeout: cfg.ShutdownTimeout(),
		Location:        time.Local,
		Version:         version,
	}

	var store session.Store
	switch cfg.Sessions.Backend {
	case config.SessionRedis:
		rdb, err := session.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb, cfg.SessionTTL())
	default:
		mem := session.NewMemoryStore(cfg.SessionTTL())
		app.SweepSessions = mem.Sweep
		store = mem
	}

	// Wire services
	obs := service.NewZapUseCaseObserver(logger)
	meetings := service.NewMeetingService(studentRepo, meetingRepo, app.Location, obs)
	app.Students = service.NewStudentService(studentRepo, obs)
	app.Planning = service.NewPlanningService(studentRepo, topics, agendaText, obs)
	app.Meetings = meetings
	app.Sessions = service.NewPlanningSessionService(studentRepo, topics, meetings, store, obs)
	app.Import = service.NewImportService(studentRepo, uow, obs)

	if cfg.SeedDemo {
		if _, err := app.Import.SeedIfEmpty(ctx, seed.Roster()); err != nil {
			return fmt.Errorf("seeding demo roster: %w", err)
		}
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// newLogger writes human-readable entries to stderr so stdout stays free
// for command output and the MCP stdio transport.
func newLogger(level zap.AtomicLevel) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	zcfg.DisableStacktrace = true
	return zcfg.Build()
}
