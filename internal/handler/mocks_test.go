package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"metrictracker/internal/auth"
	"metrictracker/internal/model"
	"metrictracker/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserSummary), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *MockAuthService) DeleteAccount(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockMetricService struct {
	mock.Mock
}

func (m *MockMetricService) List(ctx context.Context, ownerID uint) ([]model.Metric, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Metric), args.Error(1)
}

func (m *MockMetricService) Create(ctx context.Context, ownerID uint, in service.NewMetric) (*model.Metric, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Metric), args.Error(1)
}

func (m *MockMetricService) Get(ctx context.Context, ownerID, id uint) (*model.Metric, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Metric), args.Error(1)
}

func (m *MockMetricService) Update(ctx context.Context, ownerID, id uint, p service.MetricPatch) (*model.Metric, error) {
	args := m.Called(ctx, ownerID, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Metric), args.Error(1)
}

func (m *MockMetricService) Delete(ctx context.Context, ownerID, id uint) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) ListForMetric(ctx context.Context, ownerID, metricID uint, r service.DateRange) ([]model.Entry, error) {
	args := m.Called(ctx, ownerID, metricID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Entry), args.Error(1)
}

func (m *MockEntryService) Create(ctx context.Context, ownerID uint, in service.NewEntry) (*model.Entry, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entry), args.Error(1)
}

func (m *MockEntryService) Update(ctx context.Context, ownerID, entryID uint, p service.EntryPatch) (*model.Entry, error) {
	args := m.Called(ctx, ownerID, entryID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entry), args.Error(1)
}

func (m *MockEntryService) Delete(ctx context.Context, ownerID, entryID uint) error {
	args := m.Called(ctx, ownerID, entryID)
	return args.Error(0)
}

type MockAggregationService struct {
	mock.Mock
}

func (m *MockAggregationService) Dashboard(ctx context.Context, ownerID uint, today string) (*service.Dashboard, error) {
	args := m.Called(ctx, ownerID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}

func (m *MockAggregationService) Report(ctx context.Context, ownerID, metricID uint, r service.DateRange) (*service.Report, error) {
	args := m.Called(ctx, ownerID, metricID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Report), args.Error(1)
}

// request builds an echo context for a handler call. A non-zero userID
// simulates a request that already passed the token gate.
func request(method, target, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set(UserContextKey, claimsFor(userID))
	}
	return c, rec
}

func claimsFor(userID uint) *auth.Claims {
	claims := &auth.Claims{}
	claims.Subject = uintString(userID)
	claims.ID = "test-jti"
	return claims
}
