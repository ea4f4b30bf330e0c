package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kitabayar/backend/internal/domain/billing"
	"github.com/kitabayar/backend/internal/domain/payment"
	"github.com/kitabayar/backend/internal/domain/resident"
	"github.com/kitabayar/backend/internal/domain/shared"
)

// ErrBillExists is returned when the resident already has a bill of that type for the period
var ErrBillExists = shared.NewDomainError("ALREADY_EXISTS", "Bill already exists for this resident, bill type and period")

// Metrics receives bill counters. *telemetry.BillingMetrics implements it.
type Metrics interface {
	RecordBillsIssued(ctx context.Context, source string, n int)
	RecordOverdue(ctx context.Context, n int64)
}

type nopMetrics struct{}

func (nopMetrics) RecordBillsIssued(context.Context, string, int) {}
func (nopMetrics) RecordOverdue(context.Context, int64)           {}

// BillService issues and maintains bills
type BillService struct {
	bills     billing.BillRepository
	types     billing.BillTypeRepository
	periods   billing.PeriodRepository
	residents resident.Repository
	payments  payment.Repository
	tx        shared.Transactor
	metrics   Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// BillServiceOption configures a BillService
type BillServiceOption func(*BillService)

// WithMetrics sets the metrics recorder
func WithMetrics(m Metrics) BillServiceOption {
	return func(s *BillService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) BillServiceOption {
	return func(s *BillService) { s.now = now }
}

// NewBillService creates a new bill service
func NewBillService(
	bills billing.BillRepository,
	types billing.BillTypeRepository,
	periods billing.PeriodRepository,
	residents resident.Repository,
	payments payment.Repository,
	tx shared.Transactor,
	logger *zap.Logger,
	opts ...BillServiceOption,
) *BillService {
	s := &BillService{
		bills:     bills,
		types:     types,
		periods:   periods,
		residents: residents,
		payments:  payments,
		tx:        tx,
		metrics:   nopMetrics{},
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns a page of bills with resident and bill type names
func (s *BillService) List(ctx context.Context, in BillListInput) (shared.Paginated[*BillView], error) {
	items, total, err := s.bills.FindAll(ctx, billing.BillFilter{
		ResidentID: in.ResidentID,
		BillTypeID: in.BillTypeID,
		PeriodID:   in.PeriodID,
		Statuses:   in.Statuses,
		DueBefore:  in.DueBefore,
		DueAfter:   in.DueAfter,
		OrderBy:    in.OrderBy,
		OrderDir:   in.OrderDir,
		Page:       in.Page,
		PageSize:   in.PageSize,
	})
	if err != nil {
		return shared.Paginated[*BillView]{}, err
	}
	views, err := s.views(ctx, items)
	if err != nil {
		return shared.Paginated[*BillView]{}, err
	}
	return shared.NewPaginated(views, total, in.Page, in.PageSize), nil
}

// Get returns one bill
func (s *BillService) Get(ctx context.Context, id uuid.UUID) (*BillView, error) {
	b, err := s.bills.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, b)
}

func (s *BillService) view(ctx context.Context, b *billing.Bill) (*BillView, error) {
	views, err := s.views(ctx, []*billing.Bill{b})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// Create issues a single bill. With a period id the period name and due
// date are taken from the period; amount defaults to the type's base amount.
func (s *BillService) Create(ctx context.Context, in CreateBillInput) (*BillView, error) {
	if _, err := s.residents.FindByID(ctx, in.ResidentID); err != nil {
		return nil, err
	}
	bt, err := s.types.FindByID(ctx, in.BillTypeID)
	if err != nil {
		return nil, err
	}

	var b *billing.Bill
	if in.PeriodID != nil {
		p, err := s.periods.FindByID(ctx, *in.PeriodID)
		if err != nil {
			return nil, err
		}
		if b, err = billing.NewBillForPeriod(in.ResidentID, bt, p); err != nil {
			return nil, err
		}
		if in.Amount != nil || in.DueDate != nil || in.Description != "" {
			if err := b.Update(pick(in.Amount, b.Amount), pickTime(in.DueDate, b.DueDate), pickString(in.Description, b.Description)); err != nil {
				return nil, err
			}
		}
	} else {
		if in.DueDate == nil {
			return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
		}
		if b, err = billing.NewBill(in.ResidentID, bt.ID, in.Period, pick(in.Amount, bt.BaseAmount), *in.DueDate); err != nil {
			return nil, err
		}
		b.Description = pickString(in.Description, bt.Name+" - "+b.Period)
	}

	exists, err := s.bills.Exists(ctx, b.ResidentID, b.BillTypeID, b.Period)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrBillExists
	}
	if err := s.bills.Create(ctx, b); err != nil {
		return nil, err
	}
	s.metrics.RecordBillsIssued(ctx, "single", 1)
	s.logger.Info("Bill created",
		zap.String("bill_id", b.ID.String()),
		zap.String("resident_id", b.ResidentID.String()),
		zap.String("period", b.Period))
	return s.view(ctx, b)
}

// Update changes amount, due date, description and status of a bill
func (s *BillService) Update(ctx context.Context, id uuid.UUID, in UpdateBillInput) (*BillView, error) {
	b, err := s.bills.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Amount != nil || in.DueDate != nil || in.Description != nil {
		desc := b.Description
		if in.Description != nil {
			desc = *in.Description
		}
		if err := b.Update(pick(in.Amount, b.Amount), pickTime(in.DueDate, b.DueDate), desc); err != nil {
			return nil, err
		}
	}
	if in.Status != nil && *in.Status != b.Status {
		if err := b.SetStatus(*in.Status, s.now()); err != nil {
			return nil, err
		}
	}
	if err := s.bills.Update(ctx, b); err != nil {
		return nil, err
	}
	return s.view(ctx, b)
}

// Cancel voids an unpaid bill
func (s *BillService) Cancel(ctx context.Context, id uuid.UUID) (*BillView, error) {
	b, err := s.bills.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.Cancel(); err != nil {
		return nil, err
	}
	if err := s.bills.Update(ctx, b); err != nil {
		return nil, err
	}
	s.logger.Info("Bill cancelled", zap.String("bill_id", b.ID.String()))
	return s.view(ctx, b)
}

// Delete removes a bill and its payments
func (s *BillService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.bills.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Bill deleted", zap.String("bill_id", id.String()))
	return nil
}

// IssueForPeriod creates one bill per active resident for the period using
// the bill type's base amount. Residents already billed are skipped.
func (s *BillService) IssueForPeriod(ctx context.Context, in IssueInput) (*IssueResult, error) {
	result := &IssueResult{PeriodID: in.PeriodID, BillTypeID: in.BillTypeID}

	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		period, err := s.periods.FindByID(ctx, in.PeriodID)
		if err != nil {
			return err
		}
		bt, err := s.types.FindByID(ctx, in.BillTypeID)
		if err != nil {
			return err
		}
		if !bt.Active {
			return shared.NewDomainError("INVALID_BILL_TYPE", "Bill type is inactive")
		}
		residents, err := s.residents.FindActive(ctx)
		if err != nil {
			return err
		}

		bills := make([]*billing.Bill, 0, len(residents))
		for _, r := range residents {
			b, err := billing.NewBillForPeriod(r.ID, bt, period)
			if err != nil {
				return err
			}
			bills = append(bills, b)
		}

		created, err := s.bills.CreateBatch(ctx, bills)
		if err != nil {
			return err
		}
		result.Created = created
		result.Skipped = len(bills) - created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordBillsIssued(ctx, "batch", result.Created)
	s.logger.Info("Bills issued for period",
		zap.String("period_id", in.PeriodID.String()),
		zap.String("bill_type_id", in.BillTypeID.String()),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// MarkOverdue flips every pending bill past its due date to OVERDUE
func (s *BillService) MarkOverdue(ctx context.Context) (int64, error) {
	n, err := s.bills.MarkOverdue(ctx, s.now())
	if err != nil {
		return 0, err
	}
	s.metrics.RecordOverdue(ctx, n)
	if n > 0 {
		s.logger.Info("Bills marked overdue", zap.Int64("count", n))
	}
	return n, nil
}

// views joins bills with resident and bill type names and completed amounts
func (s *BillService) views(ctx context.Context, bills []*billing.Bill) ([]*BillView, error) {
	out := make([]*BillView, 0, len(bills))
	if len(bills) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, len(bills))
	for i, b := range bills {
		ids[i] = b.ID
	}
	completed, err := s.payments.FindCompletedByBills(ctx, ids)
	if err != nil {
		return nil, err
	}
	paid := make(map[uuid.UUID]decimal.Decimal, len(bills))
	for _, p := range completed {
		paid[p.BillID] = paid[p.BillID].Add(p.Amount)
	}

	residents := make(map[uuid.UUID]*resident.Resident)
	types := make(map[uuid.UUID]*billing.BillType)
	for _, b := range bills {
		v := &BillView{Bill: b, PaidAmount: paid[b.ID]}

		r, ok := residents[b.ResidentID]
		if !ok {
			if r, err = s.residents.FindByID(ctx, b.ResidentID); err != nil && !shared.IsNotFound(err) {
				return nil, err
			}
			residents[b.ResidentID] = r
		}
		if r != nil {
			v.ResidentName = r.FullName
			if r.HouseNumber != nil {
				v.HouseNumber = *r.HouseNumber
			}
		}

		bt, ok := types[b.BillTypeID]
		if !ok {
			if bt, err = s.types.FindByID(ctx, b.BillTypeID); err != nil && !shared.IsNotFound(err) {
				return nil, err
			}
			types[b.BillTypeID] = bt
		}
		if bt != nil {
			v.BillTypeName = bt.Name
			v.CategoryID = bt.CategoryID
		}
		out = append(out, v)
	}
	return out, nil
}

func pick(v *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if v == nil {
		return def
	}
	return *v
}

func pickTime(v *time.Time, def time.Time) time.Time {
	if v == nil {
		return def
	}
	return *v
}

func pickString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
