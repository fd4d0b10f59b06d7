package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"metrictracker/internal/model"
)

// MetricRepository defines metric persistence operations.
type MetricRepository interface {
	Create(ctx context.Context, metric *model.Metric) error
	Update(ctx context.Context, metric *model.Metric) error
	// FindByIDForUser returns gorm.ErrRecordNotFound unless the metric
	// exists and belongs to userID.
	FindByIDForUser(ctx context.Context, id, userID uint) (*model.Metric, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Metric, error)
	// Delete removes the metric along with its goals and entries.
	Delete(ctx context.Context, id uint) error
}

type metricRepository struct {
	db *gorm.DB
}

// NewMetricRepository creates a new metric repository.
func NewMetricRepository(db *gorm.DB) MetricRepository {
	return &metricRepository{db: db}
}

// Create creates a new metric.
func (r *metricRepository) Create(ctx context.Context, metric *model.Metric) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(metric).Error
}

// Update writes every column of an existing metric.
func (r *metricRepository) Update(ctx context.Context, metric *model.Metric) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(metric).Error
}

// FindByIDForUser finds a metric by ID scoped to its owner.
func (r *metricRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*model.Metric, error) {
	var metric model.Metric
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&metric).Error; err != nil {
		return nil, err
	}
	return &metric, nil
}

// ListByUser lists a user's metrics in creation order.
func (r *metricRepository) ListByUser(ctx context.Context, userID uint) ([]model.Metric, error) {
	var metrics []model.Metric
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

// Delete removes children first so the cascade holds without FK support.
func (r *metricRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("metric_id = ?", id).Delete(&model.Entry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("metric_id = ?", id).Delete(&model.Goal{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Metric{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
