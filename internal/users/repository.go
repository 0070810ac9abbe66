package users

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"carbon-shop/marketplace-backend/internal/store"
	"carbon-shop/marketplace-backend/pkg/pagination"
)

// Sorting lists the sort keys accepted on user listings.
var Sorting = pagination.NewSorting("id", "id",
	"name", "name",
	"email", "email",
	"created_at", "created_at",
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*AppUser, error)
	Save(ctx context.Context, user *AppUser) error
	FindByStatus(ctx context.Context, status UserStatus, p pagination.Pageable) ([]AppUser, int64, error)
	CountByStatus(ctx context.Context, status UserStatus) (int64, error)
	CompanyExists(ctx context.Context, companyID int64) (bool, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetByID(ctx context.Context, id int64) (*AppUser, error) {
	var user AppUser
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, store.NotFound(err, "user", id)
	}
	return &user, nil
}

func (r *gormRepository) Save(ctx context.Context, user *AppUser) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to save user %d: %w", user.ID, err)
	}
	return nil
}

func (r *gormRepository) FindByStatus(ctx context.Context, status UserStatus, p pagination.Pageable) ([]AppUser, int64, error) {
	total, err := r.CountByStatus(ctx, status)
	if err != nil {
		return nil, 0, err
	}

	var users []AppUser
	err = r.db.WithContext(ctx).
		Where("status = ?", status).
		Scopes(store.Paginate(p, Sorting)).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (r *gormRepository) CountByStatus(ctx context.Context, status UserStatus) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&AppUser{}).Where("status = ?", status).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

func (r *gormRepository) CompanyExists(ctx context.Context, companyID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&AppUser{}).Where("company_id = ?", companyID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check company %d: %w", companyID, err)
	}
	return count > 0, nil
}
