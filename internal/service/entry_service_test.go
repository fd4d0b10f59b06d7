package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"metrictracker/internal/clock"
	apperrors "metrictracker/internal/errors"
	"metrictracker/internal/model"
	"metrictracker/internal/patch"
	"metrictracker/internal/repository"
)

func newTestEntryService() (EntryService, *MockMetricRepository, *MockEntryRepository) {
	metricRepo := new(MockMetricRepository)
	entryRepo := new(MockEntryRepository)
	return NewEntryService(metricRepo, entryRepo, clock.Fixed{At: now}), metricRepo, entryRepo
}

func ownedEntry(ownerID uint) *model.Entry {
	return &model.Entry{
		ID:       11,
		MetricID: 1,
		Value:    500,
		Date:     "2026-10-18",
		Note:     strPtr("morning"),
		Metric:   *waterMetric(ownerID),
	}
}

func TestEntryService_Create(t *testing.T) {
	tests := []struct {
		name          string
		input         NewEntry
		wantDate      string
		expectedError error
	}{
		{
			name:     "date defaults to today",
			input:    NewEntry{MetricID: 1, Value: floatPtr(500)},
			wantDate: "2026-10-19",
		},
		{
			name:     "explicit date kept",
			input:    NewEntry{MetricID: 1, Value: floatPtr(0), Date: "2026-10-01"},
			wantDate: "2026-10-01",
		},
		{
			name:          "missing value",
			input:         NewEntry{MetricID: 1},
			expectedError: apperrors.ErrEntryFieldsRequired,
		},
		{
			name:          "missing metric",
			input:         NewEntry{Value: floatPtr(1)},
			expectedError: apperrors.ErrEntryFieldsRequired,
		},
		{
			name:          "malformed date",
			input:         NewEntry{MetricID: 1, Value: floatPtr(1), Date: "19/10/2026"},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, metricRepo, entryRepo := newTestEntryService()
			metricRepo.On("FindByIDForUser", mock.Anything, uint(1), uint(1)).Return(waterMetric(1), nil)
			entryRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Entry")).Return(nil)

			entry, err := svc.Create(context.Background(), 1, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				entryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, entry.Date)
			assert.Equal(t, uint(1), entry.MetricID)
			assert.Equal(t, *tt.input.Value, entry.Value)
		})
	}
}

func TestEntryService_Create_ForeignMetric(t *testing.T) {
	svc, metricRepo, entryRepo := newTestEntryService()
	metricRepo.On("FindByIDForUser", mock.Anything, uint(1), uint(2)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), 2, NewEntry{MetricID: 1, Value: floatPtr(3)})

	assert.ErrorIs(t, err, apperrors.ErrMetricNotFound)
	entryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEntryService_Update(t *testing.T) {
	tests := []struct {
		name          string
		patch         EntryPatch
		expectedError error
		check         func(*testing.T, *model.Entry)
	}{
		{
			name:  "value only",
			patch: EntryPatch{Value: patch.Of(750.0)},
			check: func(t *testing.T, e *model.Entry) {
				assert.Equal(t, 750.0, e.Value)
				assert.Equal(t, "2026-10-18", e.Date)
				require.NotNil(t, e.Note)
				assert.Equal(t, "morning", *e.Note)
			},
		},
		{
			name:  "null note clears it",
			patch: EntryPatch{Note: patch.Null[string]()},
			check: func(t *testing.T, e *model.Entry) {
				assert.Nil(t, e.Note)
				assert.Equal(t, 500.0, e.Value)
			},
		},
		{
			name:  "move to another date",
			patch: EntryPatch{Date: patch.Of("2026-10-10")},
			check: func(t *testing.T, e *model.Entry) {
				assert.Equal(t, "2026-10-10", e.Date)
			},
		},
		{
			name:          "null value rejected",
			patch:         EntryPatch{Value: patch.Null[float64]()},
			expectedError: apperrors.ErrValueRequired,
		},
		{
			name:          "null date rejected",
			patch:         EntryPatch{Date: patch.Null[string]()},
			expectedError: apperrors.ErrDateRequired,
		},
		{
			name:          "bad date rejected",
			patch:         EntryPatch{Date: patch.Of("2026-13-01")},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, entryRepo := newTestEntryService()
			entryRepo.On("FindByIDWithMetric", mock.Anything, uint(11)).Return(ownedEntry(1), nil)
			entryRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Entry")).Return(nil)

			entry, err := svc.Update(context.Background(), 1, 11, tt.patch)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				entryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			tt.check(t, entry)
		})
	}
}

func TestEntryService_ForeignEntryIsNotFound(t *testing.T) {
	svc, _, entryRepo := newTestEntryService()
	entryRepo.On("FindByIDWithMetric", mock.Anything, uint(11)).Return(ownedEntry(1), nil)
	entryRepo.On("FindByIDWithMetric", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
	ctx := context.Background()

	_, err := svc.Update(ctx, 2, 11, EntryPatch{Value: patch.Of(1.0)})
	assert.ErrorIs(t, err, apperrors.ErrEntryNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 2, 11), apperrors.ErrEntryNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 1, 99), apperrors.ErrEntryNotFound)

	entryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	entryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestEntryService_Delete(t *testing.T) {
	svc, _, entryRepo := newTestEntryService()
	entryRepo.On("FindByIDWithMetric", mock.Anything, uint(11)).Return(ownedEntry(1), nil)
	entryRepo.On("Delete", mock.Anything, uint(11)).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), 1, 11))
	entryRepo.AssertExpectations(t)
}

func TestEntryService_ListForMetric(t *testing.T) {
	t.Run("newest first within bounds", func(t *testing.T) {
		svc, metricRepo, entryRepo := newTestEntryService()
		metricRepo.On("FindByIDForUser", mock.Anything, uint(1), uint(1)).Return(waterMetric(1), nil)
		want := repository.EntryFilter{From: "2026-10-01", To: "2026-10-31", Ascending: false}
		entryRepo.On("ListByMetric", mock.Anything, uint(1), want).Return([]model.Entry{
			{ID: 2, Date: "2026-10-05"},
			{ID: 1, Date: "2026-10-02"},
		}, nil)

		entries, err := svc.ListForMetric(context.Background(), 1, 1, DateRange{From: "2026-10-01", To: "2026-10-31"})

		require.NoError(t, err)
		assert.Len(t, entries, 2)
		entryRepo.AssertExpectations(t)
	})

	t.Run("invalid bound", func(t *testing.T) {
		svc, metricRepo, _ := newTestEntryService()
		_, err := svc.ListForMetric(context.Background(), 1, 1, DateRange{From: "last week"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		metricRepo.AssertNotCalled(t, "FindByIDForUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("foreign metric", func(t *testing.T) {
		svc, metricRepo, _ := newTestEntryService()
		metricRepo.On("FindByIDForUser", mock.Anything, uint(1), uint(2)).Return(nil, gorm.ErrRecordNotFound)
		_, err := svc.ListForMetric(context.Background(), 2, 1, DateRange{})
		assert.ErrorIs(t, err, apperrors.ErrMetricNotFound)
	})
}
