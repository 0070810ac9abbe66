package orders

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"carbon-shop/marketplace-backend/internal/store"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Order, error)
	Save(ctx context.Context, order *Order) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetByID(ctx context.Context, id int64) (*Order, error) {
	var order Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, store.NotFound(err, "order", id)
	}
	return &order, nil
}

func (r *gormRepository) Save(ctx context.Context, order *Order) error {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		return fmt.Errorf("failed to save order %d: %w", order.ID, err)
	}
	return nil
}
