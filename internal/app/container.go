package app

import (
	"context"
	"fmt"
	"time"

	"jobtrack/internal/config"
	"jobtrack/internal/database"
	"jobtrack/internal/database/migration"
	dbpostgres "jobtrack/internal/database/postgres"
	"jobtrack/internal/database/seeder"
	"jobtrack/internal/infrastructure/cache"
	"jobtrack/internal/infrastructure/storage"
	"jobtrack/internal/metrics"
	"jobtrack/internal/pkg/jwt"
	"jobtrack/internal/repository"
	"jobtrack/internal/scraper"
	"jobtrack/internal/usecase"
	"jobtrack/internal/ws"
	"jobtrack/migrations"

	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

type Usecases struct {
	Auth           usecase.AuthUsecase
	Companies      usecase.CompanyUsecase
	Applications   usecase.ApplicationUsecase
	Import         usecase.ImportUsecase
	Contacts       usecase.ContactUsecase
	Events         usecase.EventUsecase
	Reminders      usecase.ReminderUsecase
	Learning       usecase.LearningUsecase
	Resources      usecase.ResourceUsecase
	Resumes        usecase.ResumeUsecase
	EmailTemplates usecase.EmailTemplateUsecase
	Analytics      usecase.AnalyticsUsecase
	Calendar       usecase.CalendarUsecase
}

type Container struct {
	Config   config.Config
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	DB       database.DB
	Cache    *cache.Redis
	Hub      *ws.Hub
	JWT      jwt.Service
	Usecases Usecases
}

// OpenDB connects the pool and, when enabled, applies migrations and seeds.
func OpenDB(ctx context.Context, cfg config.Config, logger *zap.Logger) (database.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if _, err := Migrate(ctx, db, logger); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if cfg.Database.AutoSeed {
		if err := Seed(ctx, db, logger); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

func Migrate(ctx context.Context, db database.DB, logger *zap.Logger) (migration.Result, error) {
	res, err := migration.Runner{FS: migrations.FS, Logger: logger}.Run(ctx, db)
	if err != nil {
		return res, fmt.Errorf("migrate: %w", err)
	}
	return res, nil
}

func Seed(ctx context.Context, db database.DB, logger *zap.Logger) error {
	return seeder.Runner{Seeders: seeder.Defaults(), Logger: logger}.Run(ctx, db)
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := metrics.Default()

	db, err := OpenDB(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: m,
		DB:      db,
		Cache:   cache.NewRedis(ctx, cfg.Redis, logger.Named("cache"), m),
		Hub:     ws.NewHub(logger.Named("ws"), m),
	}
	if cfg.Auth.Enabled() {
		c.JWT = jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		)
	}
	go c.Hub.Run()

	deps := usecase.Deps{Logger: logger.Named("usecase"), Cache: c.Cache, Notifier: c.Hub}
	c.Usecases = NewUsecases(cfg, db, deps, scraper.NewImporter(cfg.Scraper, logger.Named("importer"), m), c.JWT)
	return c, nil
}

// NewUsecases wires repositories over db. jwtSvc may be nil when auth is off.
func NewUsecases(cfg config.Config, db database.DB, deps usecase.Deps, importer usecase.PostingImporter, jwtSvc jwt.Service) Usecases {
	loc := cfg.Location()

	companies := repository.NewPostgresCompanyRepository(db)
	applications := repository.NewPostgresApplicationRepository(db)
	contacts := repository.NewPostgresContactRepository(db)
	events := repository.NewPostgresEventRepository(db)
	reminders := repository.NewPostgresReminderRepository(db)
	learning := repository.NewPostgresLearningRepository(db)
	resources := repository.NewPostgresResourceRepository(db)
	resumes := repository.NewPostgresResumeRepository(db)
	templates := repository.NewPostgresEmailTemplateRepository(db)

	files := storage.NewLocal(cfg.Upload.Dir, cfg.Upload.MaxBytes)

	return Usecases{
		Auth:           usecase.NewAuthUsecase(cfg.Auth.PasswordHash, jwtSvc, deps.Logger),
		Companies:      usecase.NewCompanyUsecase(companies, deps),
		Applications:   usecase.NewApplicationUsecase(applications, files, cfg.Upload.MaxBytes, deps),
		Import:         usecase.NewImportUsecase(importer, cfg.Scraper.MaxBatchLen),
		Contacts:       usecase.NewContactUsecase(contacts, deps),
		Events:         usecase.NewEventUsecase(events, deps),
		Reminders:      usecase.NewReminderUsecase(reminders, deps),
		Learning:       usecase.NewLearningUsecase(learning, deps),
		Resources:      usecase.NewResourceUsecase(resources, deps),
		Resumes:        usecase.NewResumeUsecase(resumes, deps),
		EmailTemplates: usecase.NewEmailTemplateUsecase(templates, deps),
		Analytics: usecase.NewAnalyticsUsecase(usecase.AnalyticsSources{
			Applications: applications,
			Companies:    companies,
			Contacts:     contacts,
			Events:       events,
			Reminders:    reminders,
			Learning:     learning,
		}, loc, cfg.Redis.TTL, deps),
		Calendar: usecase.NewCalendarUsecase(events, reminders, loc, deps),
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	c.Hub.Stop()
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Warn("close cache", zap.Error(err))
		}
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
