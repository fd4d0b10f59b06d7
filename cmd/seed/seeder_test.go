package main

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"metrictracker/internal/auth"
	"metrictracker/internal/clock"
	apperrors "metrictracker/internal/errors"
	"metrictracker/internal/model"
	"metrictracker/internal/service"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Register(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) WhoAmI(ctx context.Context, userID uint) (*model.UserSummary, error) {
	args := m.Called(ctx, userID)
	return nil, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	return m.Called(ctx, claims).Error(0)
}

func (m *MockAuthService) DeleteAccount(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

type MockMetricService struct{ mock.Mock }

func (m *MockMetricService) List(ctx context.Context, ownerID uint) ([]model.Metric, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Metric), args.Error(1)
}

func (m *MockMetricService) Create(ctx context.Context, ownerID uint, in service.NewMetric) (*model.Metric, error) {
	args := m.Called(ctx, ownerID, in)
	return nil, args.Error(1)
}

func (m *MockMetricService) Get(ctx context.Context, ownerID, id uint) (*model.Metric, error) {
	args := m.Called(ctx, ownerID, id)
	return nil, args.Error(1)
}

func (m *MockMetricService) Update(ctx context.Context, ownerID, id uint, p service.MetricPatch) (*model.Metric, error) {
	args := m.Called(ctx, ownerID, id, p)
	return nil, args.Error(1)
}

func (m *MockMetricService) Delete(ctx context.Context, ownerID, id uint) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

type MockEntryService struct{ mock.Mock }

func (m *MockEntryService) ListForMetric(ctx context.Context, ownerID, metricID uint, r service.DateRange) ([]model.Entry, error) {
	args := m.Called(ctx, ownerID, metricID, r)
	return args.Get(0).([]model.Entry), args.Error(1)
}

func (m *MockEntryService) Create(ctx context.Context, ownerID uint, in service.NewEntry) (*model.Entry, error) {
	args := m.Called(ctx, ownerID, in)
	return &model.Entry{MetricID: in.MetricID, Value: *in.Value, Date: in.Date}, args.Error(0)
}

func (m *MockEntryService) Update(ctx context.Context, ownerID, entryID uint, p service.EntryPatch) (*model.Entry, error) {
	args := m.Called(ctx, ownerID, entryID, p)
	return nil, args.Error(1)
}

func (m *MockEntryService) Delete(ctx context.Context, ownerID, entryID uint) error {
	return m.Called(ctx, ownerID, entryID).Error(0)
}

type MockGoalRepository struct{ mock.Mock }

func (m *MockGoalRepository) Create(ctx context.Context, goal *model.Goal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *MockGoalRepository) ListByMetric(ctx context.Context, metricID uint) ([]model.Goal, error) {
	args := m.Called(ctx, metricID)
	return args.Get(0).([]model.Goal), args.Error(1)
}

func TestSeeder_ReusesExistingDemoUserAndFillsGaps(t *testing.T) {
	target := 2000.0
	water := model.Metric{ID: 1, UserID: 5, Name: "Water", TargetValue: &target}
	mood := model.Metric{ID: 2, UserID: 5, Name: "Mood"}

	authSvc := new(MockAuthService)
	authSvc.On("Register", mock.Anything, demoEmail, demoPassword).Return(nil, apperrors.ErrEmailTaken)
	authSvc.On("Login", mock.Anything, demoEmail, demoPassword).Return(&service.AuthResult{User: model.UserSummary{ID: 5}}, nil)

	metricSvc := new(MockMetricService)
	metricSvc.On("List", mock.Anything, uint(5)).Return([]model.Metric{water, mood}, nil)

	goals := new(MockGoalRepository)
	goals.On("ListByMetric", mock.Anything, uint(1)).Return([]model.Goal{}, nil)
	goals.On("Create", mock.Anything, mock.MatchedBy(func(g *model.Goal) bool {
		return g.MetricID == 1 && g.TargetValue == 2000 && g.Period == model.GoalPeriodDaily && g.StartDate == "2026-10-19"
	})).Return(nil)

	entrySvc := new(MockEntryService)
	// The newest day already has a water entry.
	entrySvc.On("ListForMetric", mock.Anything, uint(5), uint(1), service.DateRange{From: "2026-10-19", To: "2026-10-19"}).
		Return([]model.Entry{{ID: 1}}, nil)
	entrySvc.On("ListForMetric", mock.Anything, uint(5), mock.Anything, mock.Anything).Return([]model.Entry{}, nil)
	entrySvc.On("Create", mock.Anything, uint(5), mock.Anything).Return(nil)

	log := logrus.New()
	log.SetOutput(io.Discard)
	s := &seeder{
		auth:    authSvc,
		metrics: metricSvc,
		entries: entrySvc,
		goals:   goals,
		clock:   clock.Fixed{At: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)},
		log:     log,
	}

	stats, err := s.run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.goals, "metrics without a target get no goal")
	assert.Equal(t, 2*demoDays-1, stats.entries)
	entrySvc.AssertCalled(t, "Create", mock.Anything, uint(5), service.NewEntry{MetricID: 1, Value: floatPtr(2360), Date: "2026-10-13"})
	goals.AssertExpectations(t)
}

func TestDemoValue(t *testing.T) {
	target := 8.0
	sleep := model.Metric{TargetValue: &target}

	assert.Equal(t, 5.6, demoValue(sleep, 0))
	assert.Equal(t, 9.44, demoValue(sleep, 6))
	assert.Equal(t, 0.7, demoValue(model.Metric{}, 0))
}

func floatPtr(f float64) *float64 {
	return &f
}
