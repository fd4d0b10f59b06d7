package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "metrictracker/internal/errors"
	"metrictracker/internal/model"
	"metrictracker/internal/patch"
	"metrictracker/internal/repository"
)

// NewMetric holds the fields of a metric being created.
type NewMetric struct {
	Name        string
	Unit        *string
	TargetValue *float64
	Color       *string
}

// MetricPatch is a partial metric update. Absent fields are left alone and
// explicit nulls clear the optional ones.
type MetricPatch struct {
	Name        patch.Field[string]  `json:"name"`
	Unit        patch.Field[string]  `json:"unit"`
	TargetValue patch.Field[float64] `json:"target_value"`
	Color       patch.Field[string]  `json:"color"`
}

// MetricService manages a user's metric catalog. Every call is scoped to ownerID.
type MetricService interface {
	List(ctx context.Context, ownerID uint) ([]model.Metric, error)
	Create(ctx context.Context, ownerID uint, in NewMetric) (*model.Metric, error)
	Get(ctx context.Context, ownerID, id uint) (*model.Metric, error)
	Update(ctx context.Context, ownerID, id uint, p MetricPatch) (*model.Metric, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

type metricService struct {
	repo repository.MetricRepository
}

// NewMetricService creates a new metric service.
func NewMetricService(repo repository.MetricRepository) MetricService {
	return &metricService{repo: repo}
}

func (s *metricService) List(ctx context.Context, ownerID uint) ([]model.Metric, error) {
	metrics, err := s.repo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	return metrics, nil
}

func (s *metricService) Create(ctx context.Context, ownerID uint, in NewMetric) (*model.Metric, error) {
	if isBlank(in.Name) {
		return nil, apperrors.ErrNameRequired
	}
	metric := &model.Metric{
		UserID:      ownerID,
		Name:        in.Name,
		Unit:        in.Unit,
		TargetValue: in.TargetValue,
		Color:       in.Color,
	}
	if err := s.repo.Create(ctx, metric); err != nil {
		return nil, fmt.Errorf("create metric: %w", err)
	}
	return metric, nil
}

func (s *metricService) Get(ctx context.Context, ownerID, id uint) (*model.Metric, error) {
	return findOwnedMetric(ctx, s.repo, ownerID, id)
}

func (s *metricService) Update(ctx context.Context, ownerID, id uint, p MetricPatch) (*model.Metric, error) {
	metric, err := findOwnedMetric(ctx, s.repo, ownerID, id)
	if err != nil {
		return nil, err
	}

	if p.Name.Set {
		if p.Name.Null || isBlank(p.Name.Value) {
			return nil, apperrors.ErrNameRequired
		}
		metric.Name = p.Name.Value
	}
	p.Unit.ApplyTo(&metric.Unit)
	p.TargetValue.ApplyTo(&metric.TargetValue)
	p.Color.ApplyTo(&metric.Color)

	if err := s.repo.Update(ctx, metric); err != nil {
		return nil, fmt.Errorf("update metric: %w", err)
	}
	return metric, nil
}

func (s *metricService) Delete(ctx context.Context, ownerID, id uint) error {
	if _, err := findOwnedMetric(ctx, s.repo, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrMetricNotFound
		}
		return fmt.Errorf("delete metric: %w", err)
	}
	return nil
}

// findOwnedMetric is the single ownership lookup shared by every service
// that addresses a metric by id.
func findOwnedMetric(ctx context.Context, repo repository.MetricRepository, ownerID, id uint) (*model.Metric, error) {
	if id == 0 {
		return nil, apperrors.ErrMetricNotFound
	}
	metric, err := repo.FindByIDForUser(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMetricNotFound
		}
		return nil, fmt.Errorf("find metric: %w", err)
	}
	return metric, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
