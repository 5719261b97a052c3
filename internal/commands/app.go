package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taxsync/internal/config"
	"taxsync/internal/database"
	"taxsync/internal/declaration"
	"taxsync/internal/i18n"
	"taxsync/internal/logging"
	"taxsync/internal/model"
	"taxsync/internal/repository"
	"taxsync/internal/service"
)

// app holds what every subcommand shares. The database is opened on first use
// so commands that only read declarations work without one.
type app struct {
	envFile string
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
}

func (a *app) init() error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

func (a *app) close() {
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) database() (*gorm.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := database.NewConnection(a.cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	a.logger.Debug("connected to PostgreSQL", zap.String("host", a.cfg.DBHost), zap.String("database", a.cfg.DBName))
	a.db = db
	return db, nil
}

func (a *app) declarations() *declaration.Loader {
	labels := i18n.NewLabels()
	if a.cfg.DeclarationsDir != "" {
		return declaration.NewDirLoader(a.cfg.DeclarationsDir, labels)
	}
	return declaration.NewLoader(labels)
}

// services wires Repository -> Service
type services struct {
	reconcile service.ReconcileService
	resolver  service.ResolverService
	rates     service.TaxRateService
	audit     service.AuditService
}

func (a *app) services(notifier service.Notifier) (*services, error) {
	db, err := a.database()
	if err != nil {
		return nil, err
	}

	rateRepo := repository.NewTaxRateRepository(db, a.cfg.DBTablePrefix)
	classStore := repository.NewClassListStore(repository.NewOptionRepository(db, a.cfg.DBTablePrefix))
	auditRepo := repository.NewAuditRepository(db)

	opts := []service.ReconcileOption{
		service.WithTx(repository.NewTransactionManager(db)),
		service.WithAudit(auditRepo),
		service.WithLogger(a.logger),
	}
	if notifier != nil {
		opts = append(opts, service.WithNotifier(notifier))
	}

	return &services{
		reconcile: service.NewReconcileService(a.declarations(), rateRepo, classStore, opts...),
		resolver:  service.NewResolverService(classStore, rateRepo),
		rates:     service.NewTaxRateService(rateRepo),
		audit:     service.NewAuditService(auditRepo),
	}, nil
}

// country returns the explicit code, else the configured one, else the shop's base location option
func (a *app) country(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if code := a.cfg.Country(); code != "" {
		return code, nil
	}
	db, err := a.database()
	if err != nil {
		return "", err
	}
	location, err := repository.NewOptionRepository(db, a.cfg.DBTablePrefix).Get(ctx, model.DefaultCountryOption)
	if err != nil {
		return "", fmt.Errorf("failed to read shop base location: %w", err)
	}
	code := config.NormalizeCountry(location)
	if code == "" {
		return "", fmt.Errorf("no shop country: set SHOP_DEFAULT_COUNTRY or %s", model.DefaultCountryOption)
	}
	return code, nil
}
