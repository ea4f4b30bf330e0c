// Command seed loads demo data: accounts, residents, billing configuration
// and optionally issued bills.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	billingapp "github.com/kitabayar/backend/internal/application/billing"
	identityapp "github.com/kitabayar/backend/internal/application/identity"
	residentapp "github.com/kitabayar/backend/internal/application/resident"
	"github.com/kitabayar/backend/internal/infrastructure/config"
	"github.com/kitabayar/backend/internal/infrastructure/logger"
	"github.com/kitabayar/backend/internal/infrastructure/persistence"
)

func main() {
	var (
		fixturePath string
		residents   int
		logLevel    string
		dryRun      bool
	)
	flag.StringVar(&fixturePath, "fixture", "", "Fixture YAML file (default: built-in demo data)")
	flag.IntVar(&residents, "residents", -1, "Override the number of residents to generate")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&dryRun, "dry-run", false, "Validate the fixture without touching the database")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	fixture, err := LoadFixture(fixturePath)
	if err != nil {
		log.Fatal("Failed to load fixture", zap.Error(err))
	}
	if residents >= 0 {
		fixture.Residents.Count = residents
	}
	if dryRun {
		log.Info("Fixture is valid",
			zap.Int("categories", len(fixture.Categories)),
			zap.Int("residents", fixture.Residents.Count),
		)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database, logger.NewGormLogger(log, logger.GormLevel("warn"), time.Second))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	userRepo := persistence.NewGormUserRepository(db.DB)
	residentRepo := persistence.NewGormResidentRepository(db.DB)
	billTypeRepo := persistence.NewGormBillTypeRepository(db.DB)
	periodRepo := persistence.NewGormPeriodRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)

	seeder := NewSeeder(
		identityapp.NewUserService(userRepo, log),
		residentapp.NewService(residentRepo, userRepo, log),
		billingapp.NewConfigService(persistence.NewGormCategoryRepository(db.DB), billTypeRepo, periodRepo, log),
		billingapp.NewBillService(billRepo, billTypeRepo, periodRepo, residentRepo, paymentRepo, persistence.NewTxManager(db.DB), log),
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := seeder.Run(ctx, fixture)
	if err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
	log.Info("Seeding completed",
		zap.Int("users", report.Users),
		zap.Int("residents", report.Residents),
		zap.Int("categories", report.Categories),
		zap.Int("bill_types", report.BillTypes),
		zap.Int("periods", report.Periods),
		zap.Int("bills", report.Bills),
		zap.Int("skipped", report.Skipped),
	)
}
