package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kitabayar/backend/internal/domain/resident"
	"github.com/kitabayar/backend/internal/domain/shared"
	"github.com/kitabayar/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormResidentRepository implements resident.Repository using GORM
type GormResidentRepository struct {
	db *gorm.DB
}

// NewGormResidentRepository creates a new GormResidentRepository
func NewGormResidentRepository(db *gorm.DB) *GormResidentRepository {
	return &GormResidentRepository{db: db}
}

// Create inserts a resident; a second resident for the same user yields ALREADY_EXISTS
func (r *GormResidentRepository) Create(ctx context.Context, res *resident.Resident) error {
	return translate(conn(ctx, r.db).Create(models.ResidentModelFromDomain(res)).Error)
}

// Update writes every column, including NULLs, of an existing resident
func (r *GormResidentRepository) Update(ctx context.Context, res *resident.Resident) error {
	model := models.ResidentModelFromDomain(res)
	result := conn(ctx, r.db).Model(model).Select("*").Omit("id", "created_at").Updates(model)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the resident row; bills and payments cascade in the schema
func (r *GormResidentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.ResidentModel{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a resident by ID
func (r *GormResidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*resident.Resident, error) {
	var model models.ResidentModel
	if err := conn(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

// FindByUserID finds the resident linked to a user
func (r *GormResidentRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*resident.Resident, error) {
	var model models.ResidentModel
	if err := conn(ctx, r.db).First(&model, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns residents matching the filter, newest first
func (r *GormResidentRepository) FindAll(ctx context.Context, filter resident.Filter) ([]*resident.Resident, int64, error) {
	q := conn(ctx, r.db).Model(&models.ResidentModel{})
	if s := strings.ToLower(strings.TrimSpace(filter.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where(
			"LOWER(full_name) LIKE ? OR LOWER(COALESCE(house_number, '')) LIKE ? OR LOWER(COALESCE(rt_rw, '')) LIKE ? OR COALESCE(phone_number, '') LIKE ?",
			like, like, like, like,
		)
	}
	if filter.Active != nil {
		q = q.Where("is_active = ?", *filter.Active)
	}
	if rtrw := strings.TrimSpace(filter.RTRW); rtrw != "" {
		q = q.Where("rt_rw = ?", rtrw)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ResidentModel
	if err := paginate(q.Order("created_at DESC").Order("id"), filter.Page, filter.PageSize).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return residentsToDomain(rows), total, nil
}

// FindActive returns every active resident ordered by house number then name
func (r *GormResidentRepository) FindActive(ctx context.Context) ([]*resident.Resident, error) {
	var rows []models.ResidentModel
	if err := conn(ctx, r.db).
		Where("is_active = ?", true).
		Order("house_number").Order("full_name").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return residentsToDomain(rows), nil
}

// Count returns the number of residents
func (r *GormResidentRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	q := conn(ctx, r.db).Model(&models.ResidentModel{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func residentsToDomain(rows []models.ResidentModel) []*resident.Resident {
	out := make([]*resident.Resident, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}
