package billing

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kitabayar/backend/internal/domain/billing"
	"github.com/kitabayar/backend/internal/domain/shared"
)

var (
	ErrCategoryNameTaken = shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists")
	ErrBillTypeNameTaken = shared.NewDomainError("ALREADY_EXISTS", "A bill type with this name already exists in the category")
	ErrPeriodNameTaken   = shared.NewDomainError("ALREADY_EXISTS", "A period with this name already exists in the category")
)

// ConfigService manages bill categories, bill types and periods
type ConfigService struct {
	categories billing.CategoryRepository
	types      billing.BillTypeRepository
	periods    billing.PeriodRepository
	logger     *zap.Logger
}

// NewConfigService creates a new billing configuration service
func NewConfigService(
	categories billing.CategoryRepository,
	types billing.BillTypeRepository,
	periods billing.PeriodRepository,
	logger *zap.Logger,
) *ConfigService {
	return &ConfigService{
		categories: categories,
		types:      types,
		periods:    periods,
		logger:     logger,
	}
}

// ListCategories returns categories ordered by name
func (s *ConfigService) ListCategories(ctx context.Context, activeOnly bool) ([]*billing.Category, error) {
	return s.categories.FindAll(ctx, activeOnly)
}

// GetCategory returns one category
func (s *ConfigService) GetCategory(ctx context.Context, id uuid.UUID) (*billing.Category, error) {
	return s.categories.FindByID(ctx, id)
}

// CreateCategory creates a category with a unique name
func (s *ConfigService) CreateCategory(ctx context.Context, in CategoryInput) (*billing.Category, error) {
	c, err := billing.NewCategory(in.Name, in.Description, in.Color, in.Icon)
	if err != nil {
		return nil, err
	}
	if in.Active != nil {
		c.SetActive(*in.Active)
	}
	taken, err := s.categories.ExistsByName(ctx, c.Name, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCategoryNameTaken
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("Bill category created", zap.String("category_id", c.ID.String()), zap.String("name", c.Name))
	return c, nil
}

// UpdateCategory replaces the descriptive fields of a category
func (s *ConfigService) UpdateCategory(ctx context.Context, id uuid.UUID, in CategoryInput) (*billing.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(in.Name, in.Description, in.Color, in.Icon); err != nil {
		return nil, err
	}
	if in.Active != nil {
		c.SetActive(*in.Active)
	}
	taken, err := s.categories.ExistsByName(ctx, c.Name, &c.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCategoryNameTaken
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory removes a category that no type or period references
func (s *ConfigService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Bill category deleted", zap.String("category_id", id.String()))
	return nil
}

// ListBillTypes returns bill types, optionally restricted to a category
func (s *ConfigService) ListBillTypes(ctx context.Context, categoryID *uuid.UUID, activeOnly bool) ([]*billing.BillType, error) {
	if categoryID == nil {
		return s.types.FindAll(ctx, activeOnly)
	}
	items, err := s.types.FindByCategory(ctx, *categoryID)
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return items, nil
	}
	active := items[:0:0]
	for _, bt := range items {
		if bt.Active {
			active = append(active, bt)
		}
	}
	return active, nil
}

// GetBillType returns one bill type
func (s *ConfigService) GetBillType(ctx context.Context, id uuid.UUID) (*billing.BillType, error) {
	return s.types.FindByID(ctx, id)
}

// CreateBillType creates a bill type under an existing category
func (s *ConfigService) CreateBillType(ctx context.Context, in BillTypeInput) (*billing.BillType, error) {
	if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	bt, err := billing.NewBillType(in.CategoryID, in.Name, in.Description, in.BaseAmount)
	if err != nil {
		return nil, err
	}
	if in.Active != nil {
		bt.SetActive(*in.Active)
	}
	if err := s.ensureTypeName(ctx, bt, nil); err != nil {
		return nil, err
	}
	if err := s.types.Create(ctx, bt); err != nil {
		return nil, err
	}
	s.logger.Info("Bill type created",
		zap.String("bill_type_id", bt.ID.String()),
		zap.String("base_amount", bt.BaseAmount.StringFixed(2)))
	return bt, nil
}

// UpdateBillType replaces the fields of a bill type. The category may change.
func (s *ConfigService) UpdateBillType(ctx context.Context, id uuid.UUID, in BillTypeInput) (*billing.BillType, error) {
	bt, err := s.types.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != uuid.Nil && in.CategoryID != bt.CategoryID {
		if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		bt.CategoryID = in.CategoryID
	}
	if err := bt.Update(in.Name, in.Description, in.BaseAmount); err != nil {
		return nil, err
	}
	if in.Active != nil {
		bt.SetActive(*in.Active)
	}
	if err := s.ensureTypeName(ctx, bt, &bt.ID); err != nil {
		return nil, err
	}
	if err := s.types.Update(ctx, bt); err != nil {
		return nil, err
	}
	return bt, nil
}

// DeleteBillType removes a bill type no bill references
func (s *ConfigService) DeleteBillType(ctx context.Context, id uuid.UUID) error {
	return s.types.Delete(ctx, id)
}

func (s *ConfigService) ensureTypeName(ctx context.Context, bt *billing.BillType, exclude *uuid.UUID) error {
	taken, err := s.types.ExistsByName(ctx, bt.CategoryID, bt.Name, exclude)
	if err != nil {
		return err
	}
	if taken {
		return ErrBillTypeNameTaken
	}
	return nil
}

// ListPeriods returns periods, optionally restricted to a category
func (s *ConfigService) ListPeriods(ctx context.Context, categoryID *uuid.UUID, activeOnly bool) ([]*billing.Period, error) {
	if categoryID == nil {
		return s.periods.FindAll(ctx, activeOnly)
	}
	items, err := s.periods.FindByCategory(ctx, *categoryID)
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return items, nil
	}
	active := items[:0:0]
	for _, p := range items {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

// GetPeriod returns one period
func (s *ConfigService) GetPeriod(ctx context.Context, id uuid.UUID) (*billing.Period, error) {
	return s.periods.FindByID(ctx, id)
}

// CreatePeriod creates a period under an existing category
func (s *ConfigService) CreatePeriod(ctx context.Context, in PeriodInput) (*billing.Period, error) {
	if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	p, err := billing.NewPeriod(in.CategoryID, in.fields())
	if err != nil {
		return nil, err
	}
	if in.Active != nil {
		p.SetActive(*in.Active)
	}
	if err := s.ensurePeriodName(ctx, p, nil); err != nil {
		return nil, err
	}
	if err := s.periods.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("Bill period created",
		zap.String("period_id", p.ID.String()),
		zap.String("name", p.Name),
		zap.Int("installments", p.Installments))
	return p, nil
}

// UpdatePeriod replaces the fields of a period. The category may change.
func (s *ConfigService) UpdatePeriod(ctx context.Context, id uuid.UUID, in PeriodInput) (*billing.Period, error) {
	p, err := s.periods.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != uuid.Nil && in.CategoryID != p.CategoryID {
		if _, err := s.categories.FindByID(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = in.CategoryID
	}
	if err := p.Update(in.fields()); err != nil {
		return nil, err
	}
	if in.Active != nil {
		p.SetActive(*in.Active)
	}
	if err := s.ensurePeriodName(ctx, p, &p.ID); err != nil {
		return nil, err
	}
	if err := s.periods.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePeriod removes a period
func (s *ConfigService) DeletePeriod(ctx context.Context, id uuid.UUID) error {
	return s.periods.Delete(ctx, id)
}

func (s *ConfigService) ensurePeriodName(ctx context.Context, p *billing.Period, exclude *uuid.UUID) error {
	taken, err := s.periods.ExistsByName(ctx, p.CategoryID, p.Name, exclude)
	if err != nil {
		return err
	}
	if taken {
		return ErrPeriodNameTaken
	}
	return nil
}
