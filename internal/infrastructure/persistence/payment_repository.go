package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kitabayar/backend/internal/domain/payment"
	"github.com/kitabayar/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const paymentRecordColumns = "payments.*, residents.full_name AS resident_name, residents.house_number AS house_number, " +
	"bill_types.name AS bill_type_name, bills.period AS bill_period"

// GormPaymentRepository implements payment.Repository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create inserts a payment; a duplicate receipt or gateway order yields ALREADY_EXISTS
func (r *GormPaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	return translate(conn(ctx, r.db).Create(models.PaymentModelFromDomain(p)).Error)
}

// Update writes every column of an existing payment
func (r *GormPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	return updateAll(conn(ctx, r.db), models.PaymentModelFromDomain(p))
}

// Delete removes a payment
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(conn(ctx, r.db), &models.PaymentModel{}, id)
}

// FindByID finds a payment by ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	var m models.PaymentModel
	if err := conn(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindByGatewayOrderID finds the payment created for a gateway order
func (r *GormPaymentRepository) FindByGatewayOrderID(ctx context.Context, orderID string) (*payment.Payment, error) {
	var m models.PaymentModel
	if err := conn(ctx, r.db).First(&m, "gateway_order_id = ?", orderID).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindAll returns payments joined with resident and bill names, latest first
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter payment.Filter) ([]*payment.Record, int64, error) {
	q := r.filtered(ctx, filter)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PaymentRecordRow
	err := paginate(
		q.Select(paymentRecordColumns).
			Order("COALESCE(payments.paid_at, payments.created_at) DESC").
			Order("payments.id"),
		filter.Page, filter.PageSize,
	).Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]*payment.Record, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, total, nil
}

func (r *GormPaymentRepository) filtered(ctx context.Context, f payment.Filter) *gorm.DB {
	q := conn(ctx, r.db).Table("payments").
		Joins("JOIN residents ON residents.id = payments.resident_id").
		Joins("JOIN bills ON bills.id = payments.bill_id").
		Joins("JOIN bill_types ON bill_types.id = bills.bill_type_id")

	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where(
			"LOWER(residents.full_name) LIKE ? OR LOWER(bill_types.name) LIKE ? OR LOWER(COALESCE(payments.receipt_number, '')) LIKE ?",
			like, like, like,
		)
	}
	if f.ResidentID != nil {
		q = q.Where("payments.resident_id = ?", *f.ResidentID)
	}
	if f.BillID != nil {
		q = q.Where("payments.bill_id = ?", *f.BillID)
	}
	if f.PeriodID != nil {
		q = q.Where("bills.period_id = ?", *f.PeriodID)
	}
	if f.Status != nil {
		q = q.Where("payments.status = ?", *f.Status)
	}
	if f.Method != nil {
		q = q.Where("payments.payment_method = ?", *f.Method)
	}
	if f.PaidFrom != nil {
		q = q.Where("payments.paid_at >= ?", *f.PaidFrom)
	}
	if f.PaidTo != nil {
		q = q.Where("payments.paid_at < ?", *f.PaidTo)
	}
	return q
}

// FindCompletedByBills returns completed payments for the bills, oldest first
func (r *GormPaymentRepository) FindCompletedByBills(ctx context.Context, billIDs []uuid.UUID) ([]*payment.Payment, error) {
	if len(billIDs) == 0 {
		return []*payment.Payment{}, nil
	}
	var rows []models.PaymentModel
	if err := conn(ctx, r.db).
		Where("bill_id IN ? AND status = ?", billIDs, payment.StatusCompleted).
		Order("paid_at").Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*payment.Payment, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// SumCompleted returns the total of completed payments for a bill
func (r *GormPaymentRepository) SumCompleted(ctx context.Context, billID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := conn(ctx, r.db).Model(&models.PaymentModel{}).
		Where("bill_id = ? AND status = ?", billID, payment.StatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total)
	return total, err
}

// LastReceipt returns the highest receipt number with the prefix, or "".
// Longer numbers sort first so KBR-2025-1000 follows KBR-2025-999.
func (r *GormPaymentRepository) LastReceipt(ctx context.Context, prefix string) (string, error) {
	var receipts []string
	err := conn(ctx, r.db).Model(&models.PaymentModel{}).
		Where("receipt_number LIKE ?", prefix+"%").
		Order("LENGTH(receipt_number) DESC").
		Order("receipt_number DESC").
		Limit(1).
		Pluck("receipt_number", &receipts).Error
	if err != nil || len(receipts) == 0 {
		return "", err
	}
	return receipts[0], nil
}

// Stats summarises the payments matching the filter
func (r *GormPaymentRepository) Stats(ctx context.Context, filter payment.Filter) (*payment.Stats, error) {
	q := r.filtered(ctx, filter)
	stats := &payment.Stats{
		CompletedAmount: decimal.Zero,
		ByMethod:        make(map[payment.Method]int64),
		ByStatus:        make(map[payment.Status]int64),
	}

	err := q.Session(&gorm.Session{}).
		Where("payments.status = ?", payment.StatusCompleted).
		Select("COALESCE(SUM(payments.amount), 0), COUNT(*)").
		Row().Scan(&stats.CompletedAmount, &stats.CompletedCount)
	if err != nil {
		return nil, err
	}

	var byStatus []struct {
		Status payment.Status
		Count  int64
	}
	if err := q.Session(&gorm.Session{}).
		Select("payments.status AS status, COUNT(*) AS count").
		Group("payments.status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.ByStatus[row.Status] = row.Count
	}

	var byMethod []struct {
		Method payment.Method
		Count  int64
	}
	if err := q.Session(&gorm.Session{}).
		Where("payments.status = ?", payment.StatusCompleted).
		Select("payments.payment_method AS method, COUNT(*) AS count").
		Group("payments.payment_method").
		Scan(&byMethod).Error; err != nil {
		return nil, err
	}
	for _, m := range payment.AllMethods {
		stats.ByMethod[m] = 0
	}
	for _, row := range byMethod {
		stats.ByMethod[row.Method] = row.Count
	}

	return stats, nil
}
