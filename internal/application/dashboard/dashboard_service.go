package dashboard

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/kitabayar/backend/internal/domain/billing"
	"github.com/kitabayar/backend/internal/domain/payment"
	"github.com/kitabayar/backend/internal/domain/resident"
	"github.com/kitabayar/backend/internal/domain/shared"
	"github.com/kitabayar/backend/internal/infrastructure/cache"
)

const (
	adminStatsKey = "dashboard:admin"
	listLimit     = 5
	historyLimit  = 10
)

// ErrNoResidentProfile is returned when the caller's account has no resident profile
var ErrNoResidentProfile = shared.NewDomainError("NOT_FOUND", "No resident profile is linked to this account")

// Service builds dashboard read models
type Service struct {
	residents resident.Repository
	types     billing.BillTypeRepository
	periods   billing.PeriodRepository
	bills     billing.BillRepository
	payments  payment.Repository
	store     cache.Store
	ttl       time.Duration
	loc       *time.Location
	dueSoon   int
	now       func() time.Time
	logger    *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithCache caches admin statistics in store for ttl
func WithCache(store cache.Store, ttl time.Duration) Option {
	return func(s *Service) {
		s.store = store
		s.ttl = ttl
	}
}

// WithLocation sets the time zone of calendar days and "this month"
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithDueSoonDays sets how many days before the due date a bill counts as due soon
func WithDueSoonDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.dueSoon = days
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new dashboard service
func NewService(
	residents resident.Repository,
	types billing.BillTypeRepository,
	periods billing.PeriodRepository,
	bills billing.BillRepository,
	payments payment.Repository,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		residents: residents,
		types:     types,
		periods:   periods,
		bills:     bills,
		payments:  payments,
		loc:       time.UTC,
		dueSoon:   billing.DueSoonDays,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AdminStats returns the admin home statistics, cached for a short TTL
func (s *Service) AdminStats(ctx context.Context) (*AdminStats, error) {
	return cache.Remember(ctx, s.store, adminStatsKey, s.ttl, s.adminStats)
}

// InvalidateAdminStats drops the cached admin statistics
func (s *Service) InvalidateAdminStats(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Delete(ctx, adminStatsKey); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", zap.Error(err))
	}
}

func (s *Service) adminStats(ctx context.Context) (*AdminStats, error) {
	now := s.now().In(s.loc)
	out := &AdminStats{GeneratedAt: now}

	var err error
	if out.TotalResidents, err = s.residents.Count(ctx, true); err != nil {
		return nil, err
	}

	counts, err := s.bills.CountByStatus(ctx, nil)
	if err != nil {
		return nil, err
	}
	out.UnpaidBills = counts[billing.BillStatusPending] + counts[billing.BillStatusOverdue]
	out.OverdueBills = counts[billing.BillStatusOverdue]
	billed := out.UnpaidBills + counts[billing.BillStatusPaid]
	out.CollectionHealth = healthOf(billing.Percentage(int(counts[billing.BillStatusPaid]), int(billed)))

	all, err := s.payments.Stats(ctx, payment.Filter{})
	if err != nil {
		return nil, err
	}
	out.TotalRevenue = all.CompletedAmount

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	month, err := s.payments.Stats(ctx, payment.Filter{PaidFrom: &monthStart, PaidTo: &now})
	if err != nil {
		return nil, err
	}
	out.MonthRevenue = month.CompletedAmount
	out.MonthPayments = month.CompletedCount

	completed := payment.StatusCompleted
	recent, _, err := s.payments.FindAll(ctx, payment.Filter{Status: &completed, Page: 1, PageSize: listLimit})
	if err != nil {
		return nil, err
	}
	out.RecentPayments = recentRows(recent)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	upcoming, _, err := s.bills.FindAll(ctx, billing.BillFilter{
		Statuses: []billing.BillStatus{billing.BillStatusPending},
		DueAfter: &today,
		OrderBy:  "due_date",
		OrderDir: "asc",
		Page:     1,
		PageSize: listLimit,
	})
	if err != nil {
		return nil, err
	}
	names := newNameCache(s.residents, s.types)
	out.UpcomingBills = make([]UpcomingBill, 0, len(upcoming))
	for _, b := range upcoming {
		r, err := names.resident(ctx, b.ResidentID)
		if err != nil {
			return nil, err
		}
		bt, err := names.billType(ctx, b.BillTypeID)
		if err != nil {
			return nil, err
		}
		out.UpcomingBills = append(out.UpcomingBills, UpcomingBill{
			ID:           b.ID,
			ResidentName: r.name,
			HouseNumber:  r.house,
			BillTypeName: bt,
			Period:       b.Period,
			Amount:       b.Amount,
			DueDate:      b.DueDate,
			Status:       b.Status,
			DaysLeft:     billing.DaysLeft(b.DueDate, now),
		})
	}
	return out, nil
}

// BillsOverview returns collection progress for every active period
func (s *Service) BillsOverview(ctx context.Context) ([]PeriodOverview, error) {
	periods, err := s.periods.FindAll(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]PeriodOverview, 0, len(periods))
	for _, p := range periods {
		counts, err := s.bills.CountByStatus(ctx, &p.ID)
		if err != nil {
			return nil, err
		}
		total := counts[billing.BillStatusPending] + counts[billing.BillStatusOverdue] + counts[billing.BillStatusPaid]
		paid := counts[billing.BillStatusPaid]
		out = append(out, PeriodOverview{
			PeriodID:     p.ID,
			Name:         p.Name,
			CategoryID:   p.CategoryID,
			DueDate:      p.DueDate,
			Installments: p.Installments,
			TotalBills:   total,
			PaidBills:    paid,
			HealthView:   healthOf(billing.Percentage(int(paid), int(total))),
		})
	}
	return out, nil
}

// PeriodDetail reconciles every resident against a period. Active residents
// without bills appear as unpaid; the summary and calendar ignore the filter.
func (s *Service) PeriodDetail(ctx context.Context, periodID uuid.UUID, in PeriodDetailInput) (*PeriodDetail, error) {
	var statusFilter billing.ProgressStatus
	if in.Status != "" {
		st, ok := billing.ParseProgressKey(strings.ToUpper(in.Status))
		if !ok {
			return nil, shared.NewDomainError("INVALID_STATUS", "Status must be LUNAS, SEBAGIAN or BELUM_BAYAR")
		}
		statusFilter = st
	}

	period, err := s.periods.FindByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	bills, _, err := s.bills.FindAll(ctx, billing.BillFilter{PeriodID: &period.ID})
	if err != nil {
		return nil, err
	}
	expected, err := s.expectedAmount(ctx, period.CategoryID)
	if err != nil {
		return nil, err
	}

	billOwner := make(map[uuid.UUID]uuid.UUID, len(bills))
	totals := make(map[uuid.UUID]decimal.Decimal)
	billIDs := make([]uuid.UUID, 0, len(bills))
	for _, b := range bills {
		if b.Status == billing.BillStatusCancelled {
			continue
		}
		billOwner[b.ID] = b.ResidentID
		totals[b.ResidentID] = totals[b.ResidentID].Add(b.Amount)
		billIDs = append(billIDs, b.ID)
	}

	var paid []*payment.Payment
	if len(billIDs) > 0 {
		if paid, err = s.payments.FindCompletedByBills(ctx, billIDs); err != nil {
			return nil, err
		}
	}
	byResident := make(map[uuid.UUID][]billing.Installment)
	all := make([]billing.Installment, 0, len(paid))
	for _, p := range paid {
		inst := installmentOf(p)
		rid := billOwner[p.BillID]
		byResident[rid] = append(byResident[rid], inst)
		all = append(all, inst)
	}

	people, err := s.periodResidents(ctx, totals)
	if err != nil {
		return nil, err
	}

	progress := make([]billing.Progress, 0, len(people))
	rows := make([]ResidentProgress, 0, len(people))
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(in.Search))
	for _, r := range people {
		total, billed := totals[r.ID]
		if !billed {
			total = expected
		}
		pr := billing.Reconcile(period.Installments, total, byResident[r.ID])
		progress = append(progress, pr)

		if statusFilter != "" && pr.Status != statusFilter {
			continue
		}
		house := ""
		if r.HouseNumber != nil {
			house = *r.HouseNumber
		}
		if needle != "" && !strings.Contains(fold.String(r.FullName), needle) && !strings.Contains(fold.String(house), needle) {
			continue
		}
		rows = append(rows, progressRow(r, house, pr))
	}

	sum := billing.Summarize(progress)
	names := make(map[uuid.UUID]string, len(people))
	for _, r := range people {
		names[r.ID] = r.FullName
	}

	return &PeriodDetail{
		Period: period,
		Summary: PeriodSummary{
			TierCounts: TierCounts{
				All:        sum.Residents,
				Lunas:      sum.Lunas,
				Sebagian:   sum.Sebagian,
				BelumBayar: sum.BelumBayar,
			},
			TotalAmount:      sum.TotalAmount,
			CollectedAmount:  sum.CollectedAmount,
			AmountPercentage: sum.AmountPercentage,
			HealthView:       healthOf(sum.Percentage),
		},
		Rows:     rows,
		Calendar: s.calendar(paid, all, billOwner, names),
	}, nil
}

// periodResidents returns active residents plus anyone billed in the period, by name
func (s *Service) periodResidents(ctx context.Context, billed map[uuid.UUID]decimal.Decimal) ([]*resident.Resident, error) {
	active, err := s.residents.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool, len(active))
	out := append([]*resident.Resident(nil), active...)
	for _, r := range active {
		seen[r.ID] = true
	}
	for id := range billed {
		if seen[id] {
			continue
		}
		r, err := s.residents.FindByID(ctx, id)
		if err != nil {
			if shared.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

// expectedAmount is what an unbilled resident owes: the active base amounts of the category
func (s *Service) expectedAmount(ctx context.Context, categoryID uuid.UUID) (decimal.Decimal, error) {
	types, err := s.types.FindByCategory(ctx, categoryID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, bt := range types {
		if bt.Active {
			total = total.Add(bt.BaseAmount)
		}
	}
	return total, nil
}

func (s *Service) calendar(paid []*payment.Payment, all []billing.Installment, owner map[uuid.UUID]uuid.UUID, names map[uuid.UUID]string) []CalendarDay {
	days := billing.DailyTotals(all, s.loc)
	out := make([]CalendarDay, len(days))
	index := make(map[string]int, len(days))
	for i, d := range days {
		key := d.Date.Format("2006-01-02")
		index[key] = i
		out[i] = CalendarDay{Date: key, Amount: d.Amount, Count: d.Count, Payments: []CalendarEntry{}}
	}
	for _, p := range paid {
		if p.PaidAt == nil {
			continue
		}
		at := p.PaidAt.In(s.loc)
		i, ok := index[at.Format("2006-01-02")]
		if !ok {
			continue
		}
		entry := CalendarEntry{
			PaymentID:    p.ID,
			ResidentName: names[owner[p.BillID]],
			Amount:       p.Amount,
			Method:       p.Method,
			PaidAt:       at,
		}
		if p.ReceiptNumber != nil {
			entry.ReceiptNumber = *p.ReceiptNumber
		}
		out[i].Payments = append(out[i].Payments, entry)
	}
	return out
}

// ResidentOverview returns the self-service dashboard of the user's resident profile
func (s *Service) ResidentOverview(ctx context.Context, userID uuid.UUID) (*ResidentOverview, error) {
	r, err := s.residents.FindByUserID(ctx, userID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, ErrNoResidentProfile
		}
		return nil, err
	}
	now := s.now().In(s.loc)

	bills, _, err := s.bills.FindAll(ctx, billing.BillFilter{ResidentID: &r.ID, OrderBy: "due_date", OrderDir: "asc"})
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(bills))
	for i, b := range bills {
		ids[i] = b.ID
	}
	var completed []*payment.Payment
	if len(ids) > 0 {
		if completed, err = s.payments.FindCompletedByBills(ctx, ids); err != nil {
			return nil, err
		}
	}
	paidByBill := make(map[uuid.UUID]decimal.Decimal, len(bills))
	for _, p := range completed {
		paidByBill[p.BillID] = paidByBill[p.BillID].Add(p.Amount)
	}

	out := &ResidentOverview{
		ResidentID:  r.ID,
		FullName:    r.FullName,
		UnpaidBills: []UnpaidBill{},
		Totals: ResidentTotals{
			TotalBilled:      decimal.Zero,
			TotalPaid:        decimal.Zero,
			TotalOutstanding: decimal.Zero,
		},
	}
	if r.HouseNumber != nil {
		out.HouseNumber = *r.HouseNumber
	}

	names := newNameCache(s.residents, s.types)
	for _, b := range bills {
		if b.Status == billing.BillStatusCancelled {
			continue
		}
		paid := paidByBill[b.ID]
		remaining := decimal.Max(b.Amount.Sub(paid), decimal.Zero)
		out.Totals.TotalBilled = out.Totals.TotalBilled.Add(b.Amount)
		out.Totals.TotalPaid = out.Totals.TotalPaid.Add(paid)
		out.Totals.TotalOutstanding = out.Totals.TotalOutstanding.Add(remaining)

		if b.Status == billing.BillStatusPaid {
			out.Totals.PaidBills++
			continue
		}
		state := billing.ClassifyDueWithin(b.Status, b.DueDate, now, s.dueSoon)
		out.Totals.UnpaidBills++
		switch state {
		case billing.DueStateOverdue:
			out.Totals.OverdueBills++
		case billing.DueStateDueSoon:
			out.Totals.DueSoonBills++
		}
		btName, err := names.billType(ctx, b.BillTypeID)
		if err != nil {
			return nil, err
		}
		out.UnpaidBills = append(out.UnpaidBills, UnpaidBill{
			ID:              b.ID,
			BillTypeName:    btName,
			Period:          b.Period,
			Amount:          b.Amount,
			PaidAmount:      paid,
			RemainingAmount: remaining,
			DueDate:         b.DueDate,
			Status:          b.Status,
			DueState:        state,
			DueLabel:        state.Label(),
			DaysLeft:        billing.DaysLeft(b.DueDate, now),
		})
	}

	history, _, err := s.payments.FindAll(ctx, payment.Filter{ResidentID: &r.ID, Page: 1, PageSize: historyLimit})
	if err != nil {
		return nil, err
	}
	out.History = recentRows(history)
	return out, nil
}

func installmentOf(p *payment.Payment) billing.Installment {
	inst := billing.Installment{Amount: p.Amount, PaidAt: p.CreatedAt}
	if p.PaidAt != nil {
		inst.PaidAt = *p.PaidAt
	}
	if p.InstallmentIndex != nil {
		inst.Index = *p.InstallmentIndex
	}
	return inst
}

func progressRow(r *resident.Resident, house string, pr billing.Progress) ResidentProgress {
	return ResidentProgress{
		ResidentID:            r.ID,
		FullName:              r.FullName,
		HouseNumber:           house,
		Installments:          pr.Installments,
		CompletedPayments:     pr.CompletedPayments,
		RemainingInstallments: pr.RemainingInstallments,
		TotalAmount:           pr.TotalAmount,
		PaidAmount:            pr.PaidAmount,
		RemainingAmount:       pr.RemainingAmount,
		InstallmentAmount:     pr.InstallmentAmount,
		CompletionPercentage:  pr.CompletionPercentage,
		AmountPercentage:      pr.AmountPercentage,
		Status:                pr.Status,
		StatusKey:             pr.Status.Key(),
		LastPaymentAt:         pr.LastPaymentAt,
	}
}

func recentRows(records []*payment.Record) []RecentPayment {
	out := make([]RecentPayment, 0, len(records))
	for _, rec := range records {
		row := RecentPayment{
			ID:           rec.ID,
			ResidentName: rec.ResidentName,
			HouseNumber:  rec.HouseNumber,
			BillTypeName: rec.BillTypeName,
			Period:       rec.Period,
			Amount:       rec.Amount,
			Method:       rec.Method,
			PaidAt:       rec.PaidAt,
		}
		if rec.ReceiptNumber != nil {
			row.ReceiptNumber = *rec.ReceiptNumber
		}
		out = append(out, row)
	}
	return out
}

type residentName struct {
	name  string
	house string
}

// nameCache memoizes resident and bill type lookups for one request
type nameCache struct {
	residents resident.Repository
	types     billing.BillTypeRepository
	people    map[uuid.UUID]residentName
	typeNames map[uuid.UUID]string
}

func newNameCache(residents resident.Repository, types billing.BillTypeRepository) *nameCache {
	return &nameCache{
		residents: residents,
		types:     types,
		people:    make(map[uuid.UUID]residentName),
		typeNames: make(map[uuid.UUID]string),
	}
}

func (c *nameCache) resident(ctx context.Context, id uuid.UUID) (residentName, error) {
	if n, ok := c.people[id]; ok {
		return n, nil
	}
	r, err := c.residents.FindByID(ctx, id)
	if err != nil && !shared.IsNotFound(err) {
		return residentName{}, err
	}
	var n residentName
	if r != nil {
		n.name = r.FullName
		if r.HouseNumber != nil {
			n.house = *r.HouseNumber
		}
	}
	c.people[id] = n
	return n, nil
}

func (c *nameCache) billType(ctx context.Context, id uuid.UUID) (string, error) {
	if n, ok := c.typeNames[id]; ok {
		return n, nil
	}
	bt, err := c.types.FindByID(ctx, id)
	if err != nil && !shared.IsNotFound(err) {
		return "", err
	}
	name := ""
	if bt != nil {
		name = bt.Name
	}
	c.typeNames[id] = name
	return name, nil
}
