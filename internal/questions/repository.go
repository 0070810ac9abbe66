package questions

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"carbon-shop/marketplace-backend/internal/store"
	"carbon-shop/marketplace-backend/pkg/pagination"
)

// Sorting lists the sort keys accepted on question listings.
var Sorting = pagination.NewSorting("id", "id",
	"created_at", "created_at",
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Question, error)
	Save(ctx context.Context, question *Question) error
	FindUnanswered(ctx context.Context, p pagination.Pageable) ([]Question, int64, error)
	CountUnanswered(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetByID(ctx context.Context, id int64) (*Question, error) {
	var question Question
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, store.NotFound(err, "question", id)
	}
	return &question, nil
}

// Save writes the full row, so a nil Answer is persisted as NULL.
func (r *gormRepository) Save(ctx context.Context, question *Question) error {
	if err := r.db.WithContext(ctx).Save(question).Error; err != nil {
		return fmt.Errorf("failed to save question %d: %w", question.ID, err)
	}
	return nil
}

func (r *gormRepository) FindUnanswered(ctx context.Context, p pagination.Pageable) ([]Question, int64, error) {
	total, err := r.CountUnanswered(ctx)
	if err != nil {
		return nil, 0, err
	}

	var questions []Question
	err = r.db.WithContext(ctx).
		Where("answer IS NULL").
		Scopes(store.Paginate(p, Sorting)).
		Find(&questions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, total, nil
}

func (r *gormRepository) CountUnanswered(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Question{}).Where("answer IS NULL").Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return total, nil
}
