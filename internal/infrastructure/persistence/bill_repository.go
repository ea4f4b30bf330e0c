package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kitabayar/backend/internal/domain/billing"
	"github.com/kitabayar/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBillRepository implements billing.BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// Create inserts a bill; a duplicate (resident, bill type, period) yields ALREADY_EXISTS
func (r *GormBillRepository) Create(ctx context.Context, b *billing.Bill) error {
	return translate(conn(ctx, r.db).Create(models.BillModelFromDomain(b)).Error)
}

// CreateBatch inserts bills, silently skipping any that would violate the
// (resident, bill type, period) key, and returns how many rows were written.
func (r *GormBillRepository) CreateBatch(ctx context.Context, bills []*billing.Bill) (int, error) {
	if len(bills) == 0 {
		return 0, nil
	}
	rows := make([]*models.BillModel, len(bills))
	for i, b := range bills {
		rows[i] = models.BillModelFromDomain(b)
	}
	result := conn(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(rows, 200)
	if result.Error != nil {
		return 0, translate(result.Error)
	}
	return int(result.RowsAffected), nil
}

// Update writes every column of an existing bill
func (r *GormBillRepository) Update(ctx context.Context, b *billing.Bill) error {
	return updateAll(conn(ctx, r.db), models.BillModelFromDomain(b))
}

// Delete removes a bill; its payments cascade in the schema
func (r *GormBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, r.db)
	if err := db.Where("bill_id = ?", id).Delete(&models.PaymentModel{}).Error; err != nil {
		return err
	}
	return deleteByID(db, &models.BillModel{}, id)
}

// FindByID finds a bill by ID
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var m models.BillModel
	if err := conn(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindAll returns bills matching the filter and the total count
func (r *GormBillRepository) FindAll(ctx context.Context, filter billing.BillFilter) ([]*billing.Bill, int64, error) {
	q := r.applyFilter(conn(ctx, r.db).Model(&models.BillModel{}), filter)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, BillSortFields, "created_at")
	q = q.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir)).Order("id")

	var rows []models.BillModel
	if err := paginate(q, filter.Page, filter.PageSize).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]*billing.Bill, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, total, nil
}

func (r *GormBillRepository) applyFilter(q *gorm.DB, f billing.BillFilter) *gorm.DB {
	if f.ResidentID != nil {
		q = q.Where("resident_id = ?", *f.ResidentID)
	}
	if f.BillTypeID != nil {
		q = q.Where("bill_type_id = ?", *f.BillTypeID)
	}
	if f.PeriodID != nil {
		q = q.Where("period_id = ?", *f.PeriodID)
	}
	if p := strings.TrimSpace(f.Period); p != "" {
		q = q.Where("period = ?", p)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if f.DueBefore != nil {
		q = q.Where("due_date < ?", *f.DueBefore)
	}
	if f.DueAfter != nil {
		q = q.Where("due_date >= ?", *f.DueAfter)
	}
	return q
}

// Exists reports whether the resident already has a bill of the type for the period
func (r *GormBillRepository) Exists(ctx context.Context, residentID, billTypeID uuid.UUID, period string) (bool, error) {
	var n int64
	err := conn(ctx, r.db).Model(&models.BillModel{}).
		Where("resident_id = ? AND bill_type_id = ? AND period = ?", residentID, billTypeID, strings.TrimSpace(period)).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkOverdue flips PENDING bills whose due date has passed to OVERDUE
func (r *GormBillRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := conn(ctx, r.db).Model(&models.BillModel{}).
		Where("status = ? AND due_date < ?", billing.BillStatusPending, now).
		Updates(map[string]any{"status": billing.BillStatusOverdue, "updated_at": now})
	return result.RowsAffected, result.Error
}

// CountByStatus returns bill counts per status, optionally scoped to a period
func (r *GormBillRepository) CountByStatus(ctx context.Context, periodID *uuid.UUID) (map[billing.BillStatus]int64, error) {
	q := conn(ctx, r.db).Model(&models.BillModel{})
	if periodID != nil {
		q = q.Where("period_id = ?", *periodID)
	}

	var rows []struct {
		Status billing.BillStatus
		Count  int64
	}
	if err := q.Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := map[billing.BillStatus]int64{
		billing.BillStatusPending:   0,
		billing.BillStatusPaid:      0,
		billing.BillStatusOverdue:   0,
		billing.BillStatusCancelled: 0,
	}
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}
