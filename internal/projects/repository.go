package projects

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"carbon-shop/marketplace-backend/internal/orders"
	"carbon-shop/marketplace-backend/internal/store"
	"carbon-shop/marketplace-backend/pkg/pagination"
)

// Sorting lists the sort keys accepted on project listings.
var Sorting = pagination.NewSorting("id", "id",
	"name", "name",
	"created_at", "created_at",
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Project, error)
	Save(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id int64) error
	FindAll(ctx context.Context, id *int64, p pagination.Pageable) ([]Project, int64, error)
	FindByOwner(ctx context.Context, ownerCompanyID int64, p pagination.Pageable) ([]Project, int64, error)
	FindByStatus(ctx context.Context, status ProjectStatus, p pagination.Pageable) ([]Project, int64, error)
	CountByStatus(ctx context.Context, status ProjectStatus) (int64, error)
	// FirstOrderID returns the lowest id of an order placed against the project.
	FirstOrderID(ctx context.Context, projectID int64) (int64, bool, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetByID(ctx context.Context, id int64) (*Project, error) {
	var project Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, store.NotFound(err, "project", id)
	}
	return &project, nil
}

func (r *gormRepository) Save(ctx context.Context, project *Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return fmt.Errorf("failed to save project %d: %w", project.ID, err)
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&Project{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete project %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("project %d: %w", id, store.ErrNotFound)
	}
	return nil
}

func (r *gormRepository) FindAll(ctx context.Context, id *int64, p pagination.Pageable) ([]Project, int64, error) {
	query := r.db.WithContext(ctx).Model(&Project{})
	if id != nil {
		query = query.Where("id = ?", *id)
	}
	return r.page(query, p)
}

func (r *gormRepository) FindByOwner(ctx context.Context, ownerCompanyID int64, p pagination.Pageable) ([]Project, int64, error) {
	return r.page(r.db.WithContext(ctx).Model(&Project{}).Where("owner_company_id = ?", ownerCompanyID), p)
}

func (r *gormRepository) FindByStatus(ctx context.Context, status ProjectStatus, p pagination.Pageable) ([]Project, int64, error) {
	return r.page(r.db.WithContext(ctx).Model(&Project{}).Where("status = ?", status), p)
}

func (r *gormRepository) CountByStatus(ctx context.Context, status ProjectStatus) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Project{}).Where("status = ?", status).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return total, nil
}

func (r *gormRepository) FirstOrderID(ctx context.Context, projectID int64) (int64, bool, error) {
	var order orders.Order
	err := r.db.WithContext(ctx).
		Select("id").
		Where("project_id = ?", projectID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up orders of project %d: %w", projectID, err)
	}
	return order.ID, true, nil
}

// page counts the filtered rows, then fetches one sorted window of them.
func (r *gormRepository) page(query *gorm.DB, p pagination.Pageable) ([]Project, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	var projects []Project
	if err := query.Scopes(store.Paginate(p, Sorting)).Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}
