package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/kitabayar/backend/internal/domain/billing"
	"github.com/kitabayar/backend/internal/domain/payment"
	"github.com/kitabayar/backend/internal/domain/resident"
	"github.com/kitabayar/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// A single connection keeps every query on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// newMockDB returns a GORM handle on the postgres dialector backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)
	return gormDB, mock, mockDB
}

var (
	jan1  = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	jan31 = time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	t   *testing.T
	db  *gorm.DB
	ctx context.Context
}

func newFixture(t *testing.T) *fixture {
	return &fixture{t: t, db: setupTestDB(t), ctx: context.Background()}
}

func (f *fixture) resident(name, house string) *resident.Resident {
	f.t.Helper()
	r, err := resident.NewResident(resident.Profile{FullName: name, HouseNumber: house})
	require.NoError(f.t, err)
	require.NoError(f.t, NewGormResidentRepository(f.db).Create(f.ctx, r))
	return r
}

func (f *fixture) category(name string) *billing.Category {
	f.t.Helper()
	c, err := billing.NewCategory(name, "", "", "")
	require.NoError(f.t, err)
	require.NoError(f.t, NewGormCategoryRepository(f.db).Create(f.ctx, c))
	return c
}

func (f *fixture) billType(categoryID uuid.UUID, name string, amount int64) *billing.BillType {
	f.t.Helper()
	bt, err := billing.NewBillType(categoryID, name, "", decimal.NewFromInt(amount))
	require.NoError(f.t, err)
	require.NoError(f.t, NewGormBillTypeRepository(f.db).Create(f.ctx, bt))
	return bt
}

func (f *fixture) period(categoryID uuid.UUID, name string, installments int) *billing.Period {
	f.t.Helper()
	p, err := billing.NewPeriod(categoryID, billing.PeriodFields{
		Name: name, StartDate: jan1, EndDate: jan31, Installments: installments,
	})
	require.NoError(f.t, err)
	require.NoError(f.t, NewGormPeriodRepository(f.db).Create(f.ctx, p))
	return p
}

func (f *fixture) bill(residentID uuid.UUID, bt *billing.BillType, p *billing.Period) *billing.Bill {
	f.t.Helper()
	b, err := billing.NewBillForPeriod(residentID, bt, p)
	require.NoError(f.t, err)
	require.NoError(f.t, NewGormBillRepository(f.db).Create(f.ctx, b))
	return b
}

func (f *fixture) payment(b *billing.Bill, amount int64, receipt string, at time.Time) *payment.Payment {
	f.t.Helper()
	p, err := payment.NewPayment(b.ResidentID, b.ID, decimal.NewFromInt(amount), payment.MethodCash)
	require.NoError(f.t, err)
	if receipt != "" {
		require.NoError(f.t, p.Complete(receipt, at))
	}
	require.NoError(f.t, NewGormPaymentRepository(f.db).Create(f.ctx, p))
	return p
}
