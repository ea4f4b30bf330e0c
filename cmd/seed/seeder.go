package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	billingapp "github.com/kitabayar/backend/internal/application/billing"
	identityapp "github.com/kitabayar/backend/internal/application/identity"
	residentapp "github.com/kitabayar/backend/internal/application/resident"
	"github.com/kitabayar/backend/internal/domain/billing"
	"github.com/kitabayar/backend/internal/domain/identity"
	"github.com/kitabayar/backend/internal/domain/resident"
	"github.com/kitabayar/backend/internal/domain/shared"
)

// UserCreator creates login accounts
type UserCreator interface {
	Create(ctx context.Context, input identityapp.CreateUserInput) (*identityapp.UserInfo, error)
}

// ResidentRegistry lists and creates residents
type ResidentRegistry interface {
	List(ctx context.Context, input residentapp.ListInput) (shared.Paginated[*resident.Resident], error)
	Create(ctx context.Context, p resident.Profile) (*resident.Resident, error)
}

// BillingConfig finds and creates categories, bill types and periods
type BillingConfig interface {
	ListCategories(ctx context.Context, activeOnly bool) ([]*billing.Category, error)
	CreateCategory(ctx context.Context, in billingapp.CategoryInput) (*billing.Category, error)
	ListBillTypes(ctx context.Context, categoryID *uuid.UUID, activeOnly bool) ([]*billing.BillType, error)
	CreateBillType(ctx context.Context, in billingapp.BillTypeInput) (*billing.BillType, error)
	ListPeriods(ctx context.Context, categoryID *uuid.UUID, activeOnly bool) ([]*billing.Period, error)
	CreatePeriod(ctx context.Context, in billingapp.PeriodInput) (*billing.Period, error)
}

// BillIssuer issues the bills of a period
type BillIssuer interface {
	IssueForPeriod(ctx context.Context, in billingapp.IssueInput) (*billingapp.IssueResult, error)
}

// Report counts what a run created
type Report struct {
	Users      int
	Residents  int
	Categories int
	BillTypes  int
	Periods    int
	Bills      int
	Skipped    int
}

// Seeder loads a fixture through the application services so every domain
// rule applies. Existing records are matched by name and reused.
type Seeder struct {
	users     UserCreator
	residents ResidentRegistry
	config    BillingConfig
	bills     BillIssuer
	logger    *zap.Logger
}

// NewSeeder creates a seeder
func NewSeeder(users UserCreator, residents ResidentRegistry, config BillingConfig, bills BillIssuer, logger *zap.Logger) *Seeder {
	return &Seeder{users: users, residents: residents, config: config, bills: bills, logger: logger}
}

// Run applies the fixture
func (s *Seeder) Run(ctx context.Context, f *Fixture) (*Report, error) {
	report := &Report{}

	if f.Admin != nil {
		if err := s.account(ctx, *f.Admin, identity.RoleAdmin, report); err != nil {
			return report, err
		}
	}
	for _, a := range f.Staff {
		if err := s.account(ctx, a, identity.RoleStaff, report); err != nil {
			return report, err
		}
	}

	if err := s.seedResidents(ctx, f.Residents, report); err != nil {
		return report, err
	}

	for _, c := range f.Categories {
		if err := s.seedCategory(ctx, c, report); err != nil {
			return report, fmt.Errorf("category %q: %w", c.Name, err)
		}
	}
	return report, nil
}

func (s *Seeder) account(ctx context.Context, a Account, role identity.Role, report *Report) error {
	_, err := s.users.Create(ctx, identityapp.CreateUserInput{
		Email:    a.Email,
		Username: a.Username,
		Password: a.Password,
		Role:     role,
	})
	switch {
	case shared.IsAlreadyExists(err):
		report.Skipped++
		s.logger.Debug("Account exists", zap.String("email", a.Email))
		return nil
	case err != nil:
		return fmt.Errorf("account %s: %w", a.Email, err)
	}
	report.Users++
	return nil
}

// seedResidents tops the RT up to the requested count
func (s *Seeder) seedResidents(ctx context.Context, area ResidentFixture, report *Report) error {
	if area.Count == 0 {
		return nil
	}
	existing, err := s.residents.List(ctx, residentapp.ListInput{RTRW: area.RTRW, Page: 1, PageSize: 1})
	if err != nil {
		return fmt.Errorf("count residents: %w", err)
	}
	faker := NewResidentFaker(area)
	for n := int(existing.Total) + 1; n <= area.Count; n++ {
		if _, err := s.residents.Create(ctx, faker.Profile(n)); err != nil {
			return fmt.Errorf("resident %d: %w", n, err)
		}
		report.Residents++
	}
	return nil
}

func (s *Seeder) seedCategory(ctx context.Context, c CategoryFixture, report *Report) error {
	categories, err := s.config.ListCategories(ctx, false)
	if err != nil {
		return err
	}
	category := findByName(categories, c.Name, func(x *billing.Category) string { return x.Name })
	if category == nil {
		category, err = s.config.CreateCategory(ctx, billingapp.CategoryInput{
			Name:        c.Name,
			Description: c.Description,
			Color:       c.Color,
			Icon:        c.Icon,
		})
		if err != nil {
			return err
		}
		report.Categories++
	} else {
		report.Skipped++
	}

	types, err := s.config.ListBillTypes(ctx, &category.ID, false)
	if err != nil {
		return err
	}
	var typeIDs []uuid.UUID
	for _, bt := range c.BillTypes {
		existing := findByName(types, bt.Name, func(x *billing.BillType) string { return x.Name })
		if existing == nil {
			existing, err = s.config.CreateBillType(ctx, billingapp.BillTypeInput{
				CategoryID:  category.ID,
				Name:        bt.Name,
				Description: bt.Description,
				BaseAmount:  bt.BaseAmount,
			})
			if err != nil {
				return fmt.Errorf("bill type %q: %w", bt.Name, err)
			}
			report.BillTypes++
		} else {
			report.Skipped++
		}
		typeIDs = append(typeIDs, existing.ID)
	}

	periods, err := s.config.ListPeriods(ctx, &category.ID, false)
	if err != nil {
		return err
	}
	var periodIDs []uuid.UUID
	for _, p := range c.Periods {
		existing := findByName(periods, p.Name, func(x *billing.Period) string { return x.Name })
		if existing == nil {
			in := billingapp.PeriodInput{
				CategoryID:   category.ID,
				Name:         p.Name,
				Description:  p.Description,
				StartDate:    p.Start.Time,
				EndDate:      p.End.Time,
				Installments: p.Installments,
			}
			if p.Due != nil {
				due := p.Due.Time
				in.DueDate = &due
			}
			existing, err = s.config.CreatePeriod(ctx, in)
			if err != nil {
				return fmt.Errorf("period %q: %w", p.Name, err)
			}
			report.Periods++
		} else {
			report.Skipped++
		}
		periodIDs = append(periodIDs, existing.ID)
	}

	if !c.Issue {
		return nil
	}
	for _, periodID := range periodIDs {
		for _, typeID := range typeIDs {
			res, err := s.bills.IssueForPeriod(ctx, billingapp.IssueInput{PeriodID: periodID, BillTypeID: typeID})
			if err != nil {
				return fmt.Errorf("issue bills: %w", err)
			}
			report.Bills += res.Created
			report.Skipped += res.Skipped
		}
	}
	return nil
}

func findByName[T any](items []T, name string, nameOf func(T) string) T {
	var zero T
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(nameOf(item)), strings.TrimSpace(name)) {
			return item
		}
	}
	return zero
}
