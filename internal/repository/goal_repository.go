package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"metrictracker/internal/model"
)

// GoalRepository defines goal persistence operations.
type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	ListByMetric(ctx context.Context, metricID uint) ([]model.Goal, error)
}

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository.
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(goal).Error
}

func (r *goalRepository) ListByMetric(ctx context.Context, metricID uint) ([]model.Goal, error) {
	var goals []model.Goal
	if err := r.db.WithContext(ctx).Where("metric_id = ?", metricID).Order("id").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}
