package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kitabayar/backend/internal/domain/billing"
	"github.com/kitabayar/backend/internal/domain/shared"
	"github.com/kitabayar/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCategoryRepository implements billing.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create inserts a category
func (r *GormCategoryRepository) Create(ctx context.Context, c *billing.Category) error {
	m := &models.BillCategoryModel{}
	m.FromDomain(c)
	return translate(conn(ctx, r.db).Create(m).Error)
}

// Update writes every column of an existing category
func (r *GormCategoryRepository) Update(ctx context.Context, c *billing.Category) error {
	m := &models.BillCategoryModel{}
	m.FromDomain(c)
	return updateAll(conn(ctx, r.db), m)
}

// Delete removes a category that no bill type or period references
func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, r.db)
	for _, ref := range []any{&models.BillTypeModel{}, &models.BillPeriodModel{}} {
		var n int64
		if err := db.Model(ref).Where("category_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrInUse
		}
	}
	return deleteByID(db, &models.BillCategoryModel{}, id)
}

// FindByID finds a category by ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Category, error) {
	var m models.BillCategoryModel
	if err := conn(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindAll returns categories ordered by name
func (r *GormCategoryRepository) FindAll(ctx context.Context, activeOnly bool) ([]*billing.Category, error) {
	var rows []models.BillCategoryModel
	if err := activeScope(conn(ctx, r.db), activeOnly).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*billing.Category, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// ExistsByName reports whether another category uses the name, case-insensitively
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	q := conn(ctx, r.db).Model(&models.BillCategoryModel{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	return existsExcluding(q, excludeID)
}

// GormBillTypeRepository implements billing.BillTypeRepository using GORM
type GormBillTypeRepository struct {
	db *gorm.DB
}

// NewGormBillTypeRepository creates a new GormBillTypeRepository
func NewGormBillTypeRepository(db *gorm.DB) *GormBillTypeRepository {
	return &GormBillTypeRepository{db: db}
}

// Create inserts a bill type
func (r *GormBillTypeRepository) Create(ctx context.Context, bt *billing.BillType) error {
	m := &models.BillTypeModel{}
	m.FromDomain(bt)
	return translate(conn(ctx, r.db).Create(m).Error)
}

// Update writes every column of an existing bill type
func (r *GormBillTypeRepository) Update(ctx context.Context, bt *billing.BillType) error {
	m := &models.BillTypeModel{}
	m.FromDomain(bt)
	return updateAll(conn(ctx, r.db), m)
}

// Delete removes a bill type; bills referencing it block the delete
func (r *GormBillTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, r.db)
	var n int64
	if err := db.Model(&models.BillModel{}).Where("bill_type_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrInUse
	}
	return deleteByID(db, &models.BillTypeModel{}, id)
}

// FindByID finds a bill type by ID
func (r *GormBillTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.BillType, error) {
	var m models.BillTypeModel
	if err := conn(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindByCategory returns the bill types of a category ordered by name
func (r *GormBillTypeRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*billing.BillType, error) {
	return r.find(conn(ctx, r.db).Where("category_id = ?", categoryID))
}

// FindAll returns bill types ordered by name
func (r *GormBillTypeRepository) FindAll(ctx context.Context, activeOnly bool) ([]*billing.BillType, error) {
	return r.find(activeScope(conn(ctx, r.db), activeOnly))
}

func (r *GormBillTypeRepository) find(q *gorm.DB) ([]*billing.BillType, error) {
	var rows []models.BillTypeModel
	if err := q.Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*billing.BillType, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// ExistsByName reports whether another bill type in the category uses the name
func (r *GormBillTypeRepository) ExistsByName(ctx context.Context, categoryID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	q := conn(ctx, r.db).Model(&models.BillTypeModel{}).
		Where("category_id = ? AND LOWER(name) = ?", categoryID, strings.ToLower(strings.TrimSpace(name)))
	return existsExcluding(q, excludeID)
}

// GormPeriodRepository implements billing.PeriodRepository using GORM
type GormPeriodRepository struct {
	db *gorm.DB
}

// NewGormPeriodRepository creates a new GormPeriodRepository
func NewGormPeriodRepository(db *gorm.DB) *GormPeriodRepository {
	return &GormPeriodRepository{db: db}
}

// Create inserts a period
func (r *GormPeriodRepository) Create(ctx context.Context, p *billing.Period) error {
	m := &models.BillPeriodModel{}
	m.FromDomain(p)
	return translate(conn(ctx, r.db).Create(m).Error)
}

// Update writes every column of an existing period
func (r *GormPeriodRepository) Update(ctx context.Context, p *billing.Period) error {
	m := &models.BillPeriodModel{}
	m.FromDomain(p)
	return updateAll(conn(ctx, r.db), m)
}

// Delete removes a period. Bills keep their period label and lose the link.
func (r *GormPeriodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, r.db)
	if err := db.Model(&models.BillModel{}).Where("period_id = ?", id).Update("period_id", nil).Error; err != nil {
		return err
	}
	return deleteByID(db, &models.BillPeriodModel{}, id)
}

// FindByID finds a period by ID
func (r *GormPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Period, error) {
	var m models.BillPeriodModel
	if err := conn(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindByCategory returns the periods of a category, latest first
func (r *GormPeriodRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]*billing.Period, error) {
	return r.find(conn(ctx, r.db).Where("category_id = ?", categoryID))
}

// FindAll returns periods, latest first
func (r *GormPeriodRepository) FindAll(ctx context.Context, activeOnly bool) ([]*billing.Period, error) {
	return r.find(activeScope(conn(ctx, r.db), activeOnly))
}

func (r *GormPeriodRepository) find(q *gorm.DB) ([]*billing.Period, error) {
	var rows []models.BillPeriodModel
	if err := q.Order("start_date DESC").Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*billing.Period, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// ExistsByName reports whether another period in the category uses the name
func (r *GormPeriodRepository) ExistsByName(ctx context.Context, categoryID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	q := conn(ctx, r.db).Model(&models.BillPeriodModel{}).
		Where("category_id = ? AND LOWER(name) = ?", categoryID, strings.ToLower(strings.TrimSpace(name)))
	return existsExcluding(q, excludeID)
}

// updateAll writes every column of model except its key and creation time.
// No matching row yields NOT_FOUND.
func updateAll(db *gorm.DB, model any) error {
	result := db.Model(model).Select("*").Omit("id", "created_at").Updates(model)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func deleteByID(db *gorm.DB, model any, id uuid.UUID) error {
	result := db.Delete(model, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func activeScope(q *gorm.DB, activeOnly bool) *gorm.DB {
	if activeOnly {
		return q.Where("is_active = ?", true)
	}
	return q
}

func existsExcluding(q *gorm.DB, excludeID *uuid.UUID) (bool, error) {
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
