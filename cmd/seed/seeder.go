package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"metrictracker/internal/clock"
	apperrors "metrictracker/internal/errors"
	"metrictracker/internal/model"
	"metrictracker/internal/repository"
	"metrictracker/internal/service"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "demo-password"
	demoDays     = 7
)

type seedStats struct {
	goals   int
	entries int
}

// seeder creates the demo account with a goal per metric and a week of entries.
// Running it again only fills in what is missing.
type seeder struct {
	auth    service.AuthService
	metrics service.MetricService
	entries service.EntryService
	goals   repository.GoalRepository
	clock   clock.Clock
	log     logrus.FieldLogger
}

func (s *seeder) run(ctx context.Context) (seedStats, error) {
	var stats seedStats

	userID, err := s.demoUser(ctx)
	if err != nil {
		return stats, err
	}

	metrics, err := s.metrics.List(ctx, userID)
	if err != nil {
		return stats, err
	}

	today := s.clock.Today()
	for _, m := range metrics {
		created, err := s.ensureGoal(ctx, m, today)
		if err != nil {
			return stats, err
		}
		if created {
			stats.goals++
		}

		for offset := demoDays - 1; offset >= 0; offset-- {
			day, err := clock.AddDays(today, -offset)
			if err != nil {
				return stats, err
			}
			created, err := s.ensureEntry(ctx, userID, m, day, offset)
			if err != nil {
				return stats, err
			}
			if created {
				stats.entries++
			}
		}
	}
	return stats, nil
}

func (s *seeder) demoUser(ctx context.Context) (uint, error) {
	result, err := s.auth.Register(ctx, demoEmail, demoPassword)
	if errors.Is(err, apperrors.ErrEmailTaken) {
		s.log.Info("demo user exists, reusing it")
		result, err = s.auth.Login(ctx, demoEmail, demoPassword)
	}
	if err != nil {
		return 0, fmt.Errorf("demo user: %w", err)
	}
	return result.User.ID, nil
}

func (s *seeder) ensureGoal(ctx context.Context, m model.Metric, today string) (bool, error) {
	if m.TargetValue == nil {
		return false, nil
	}
	existing, err := s.goals.ListByMetric(ctx, m.ID)
	if err != nil {
		return false, fmt.Errorf("list goals: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}
	goal := &model.Goal{
		MetricID:    m.ID,
		TargetValue: *m.TargetValue,
		Period:      model.GoalPeriodDaily,
		StartDate:   today,
	}
	if err := s.goals.Create(ctx, goal); err != nil {
		return false, fmt.Errorf("create goal: %w", err)
	}
	return true, nil
}

func (s *seeder) ensureEntry(ctx context.Context, userID uint, m model.Metric, day string, offset int) (bool, error) {
	existing, err := s.entries.ListForMetric(ctx, userID, m.ID, service.DateRange{From: day, To: day})
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	value := demoValue(m, offset)
	if _, err := s.entries.Create(ctx, userID, service.NewEntry{MetricID: m.ID, Value: &value, Date: day}); err != nil {
		return false, err
	}
	return true, nil
}

// demoValue varies around the metric's target: from 70% up to 118% over the week.
func demoValue(m model.Metric, offset int) float64 {
	target := decimal.NewFromInt(1)
	if m.TargetValue != nil && *m.TargetValue != 0 {
		target = decimal.NewFromFloat(*m.TargetValue)
	}
	share := decimal.NewFromFloat(0.70).Add(decimal.NewFromFloat(0.08).Mul(decimal.NewFromInt(int64(offset))))
	return target.Mul(share).Round(2).InexactFloat64()
}
