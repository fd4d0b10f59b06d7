package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "metrictracker/internal/errors"
	"metrictracker/internal/model"
	"metrictracker/internal/repository"
)

// DashboardMetric is one metric's standing for the dashboard date.
type DashboardMetric struct {
	ID         uint     `json:"id"`
	Name       string   `json:"name"`
	Unit       *string  `json:"unit"`
	TotalToday float64  `json:"total_today"`
	Target     *float64 `json:"target"`
	Progress   *float64 `json:"progress"`
}

// Dashboard summarises every metric of a user for one date.
type Dashboard struct {
	Date    string            `json:"date"`
	Metrics []DashboardMetric `json:"metrics"`
}

// ReportMetric identifies the metric a report covers.
type ReportMetric struct {
	ID   uint    `json:"id"`
	Name string  `json:"name"`
	Unit *string `json:"unit"`
}

// ReportPoint is a single dated value in a report. Notes are left out.
type ReportPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Report is a metric's value series over a date range, oldest first.
type Report struct {
	Metric  ReportMetric  `json:"metric"`
	Entries []ReportPoint `json:"entries"`
}

// AggregationService computes the dashboard and reports.
type AggregationService interface {
	Dashboard(ctx context.Context, ownerID uint, today string) (*Dashboard, error)
	Report(ctx context.Context, ownerID, metricID uint, r DateRange) (*Report, error)
}

type aggregationService struct {
	metricRepo repository.MetricRepository
	entryRepo  repository.EntryRepository
}

// NewAggregationService creates a new aggregation service.
func NewAggregationService(metricRepo repository.MetricRepository, entryRepo repository.EntryRepository) AggregationService {
	return &aggregationService{
		metricRepo: metricRepo,
		entryRepo:  entryRepo,
	}
}

// Dashboard totals today's entries per metric and relates them to the target.
func (s *aggregationService) Dashboard(ctx context.Context, ownerID uint, today string) (*Dashboard, error) {
	metrics, err := s.metricRepo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	entries, err := s.entryRepo.ListByUserOnDate(ctx, ownerID, today)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	totals := make(map[uint]decimal.Decimal, len(metrics))
	for _, e := range entries {
		totals[e.MetricID] = totals[e.MetricID].Add(decimal.NewFromFloat(e.Value))
	}

	out := &Dashboard{Date: today, Metrics: make([]DashboardMetric, 0, len(metrics))}
	for _, m := range metrics {
		total := totals[m.ID]
		row := DashboardMetric{
			ID:         m.ID,
			Name:       m.Name,
			Unit:       m.Unit,
			TotalToday: total.InexactFloat64(),
		}
		// A zero target means "no target": both target and progress stay null.
		if m.TargetValue != nil && *m.TargetValue != 0 {
			target := *m.TargetValue
			progress := total.Div(decimal.NewFromFloat(target)).InexactFloat64()
			row.Target = &target
			row.Progress = &progress
		}
		out.Metrics = append(out.Metrics, row)
	}
	return out, nil
}

// Report lists the metric's values in range in ascending date order.
func (s *aggregationService) Report(ctx context.Context, ownerID, metricID uint, r DateRange) (*Report, error) {
	if metricID == 0 {
		return nil, apperrors.ErrMetricIDRequired
	}
	f, err := r.filter(true)
	if err != nil {
		return nil, err
	}
	metric, err := findOwnedMetric(ctx, s.metricRepo, ownerID, metricID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.ListByMetric(ctx, metric.ID, f)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	points := make([]ReportPoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, ReportPoint{Date: e.Date, Value: e.Value})
	}
	return &Report{
		Metric:  reportMetric(metric),
		Entries: points,
	}, nil
}

func reportMetric(m *model.Metric) ReportMetric {
	return ReportMetric{ID: m.ID, Name: m.Name, Unit: m.Unit}
}
