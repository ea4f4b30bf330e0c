package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/kitabayar/backend/internal/domain/resident"
	"github.com/kitabayar/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTxManager(t *testing.T) {
	db := setupTestDB(t)
	tx := NewTxManager(db)
	repo := NewGormResidentRepository(db)
	ctx := context.Background()

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		var id uuid.UUID

		err := tx.Transaction(ctx, func(ctx context.Context) error {
			r, err := resident.NewResident(resident.Profile{FullName: "Rollback"})
			require.NoError(t, err)
			id = r.ID
			require.NoError(t, repo.Create(ctx, r))
			return boom
		})

		assert.ErrorIs(t, err, boom)
		_, err = repo.FindByID(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("nested calls join the outer transaction", func(t *testing.T) {
		var created *resident.Resident
		err := tx.Transaction(ctx, func(ctx context.Context) error {
			return tx.Transaction(ctx, func(ctx context.Context) error {
				r, err := resident.NewResident(resident.Profile{FullName: "Nested"})
				if err != nil {
					return err
				}
				created = r
				return repo.Create(ctx, r)
			})
		})
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Nested", found.FullName)
	})
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), shared.ErrNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), shared.ErrAlreadyExists)
	assert.ErrorIs(t, translate(gorm.ErrForeignKeyViolated), ErrInUse)

	other := errors.New("connection reset")
	assert.Equal(t, other, translate(other))
}

func TestDatabase_PingAndStats(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()

	d := &Database{DB: gormDB}

	require.NoError(t, d.Ping(context.Background()))

	stats, err := d.Stats()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.OpenConnections, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBillRepository_MarkOverdue_SQL(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()

	mock.ExpectExec(`UPDATE "bills" SET "status"=\$1,"updated_at"=\$2 WHERE .*status = \$3 AND due_date < \$4`).
		WithArgs("OVERDUE", jan31, "PENDING", jan31).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := NewGormBillRepository(gormDB).MarkOverdue(context.Background(), jan31)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
