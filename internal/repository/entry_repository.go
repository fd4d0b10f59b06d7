package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"metrictracker/internal/model"
)

// EntryFilter narrows an entry listing. Empty bounds are open; both are inclusive.
type EntryFilter struct {
	From      string
	To        string
	Ascending bool
}

// EntryRepository defines entry persistence operations.
type EntryRepository interface {
	Create(ctx context.Context, entry *model.Entry) error
	Update(ctx context.Context, entry *model.Entry) error
	Delete(ctx context.Context, id uint) error
	// FindByIDWithMetric loads the entry and its metric so callers can check ownership.
	FindByIDWithMetric(ctx context.Context, id uint) (*model.Entry, error)
	ListByMetric(ctx context.Context, metricID uint, filter EntryFilter) ([]model.Entry, error)
	// ListByUserOnDate returns entries dated exactly date across all of a user's metrics.
	ListByUserOnDate(ctx context.Context, userID uint, date string) ([]model.Entry, error)
}

type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new entry repository.
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) Create(ctx context.Context, entry *model.Entry) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error
}

func (r *entryRepository) Update(ctx context.Context, entry *model.Entry) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(entry).Error
}

func (r *entryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Entry{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *entryRepository) FindByIDWithMetric(ctx context.Context, id uint) (*model.Entry, error) {
	var entry model.Entry
	if err := r.db.WithContext(ctx).Preload("Metric").First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepository) ListByMetric(ctx context.Context, metricID uint, filter EntryFilter) ([]model.Entry, error) {
	q := r.db.WithContext(ctx).Where("metric_id = ?", metricID)
	if filter.From != "" {
		q = q.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("date <= ?", filter.To)
	}
	if filter.Ascending {
		q = q.Order("date ASC").Order("id ASC")
	} else {
		q = q.Order("date DESC").Order("id DESC")
	}

	var entries []model.Entry
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepository) ListByUserOnDate(ctx context.Context, userID uint, date string) ([]model.Entry, error) {
	var entries []model.Entry
	if err := r.db.WithContext(ctx).
		Joins("JOIN metrics ON metrics.id = entries.metric_id").
		Where("metrics.user_id = ? AND entries.date = ?", userID, date).
		Order("entries.id").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
