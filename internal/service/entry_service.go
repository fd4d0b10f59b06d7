package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"metrictracker/internal/clock"
	apperrors "metrictracker/internal/errors"
	"metrictracker/internal/model"
	"metrictracker/internal/patch"
	"metrictracker/internal/repository"
)

// DateRange is an optional inclusive pair of ISO dates.
type DateRange struct {
	From string
	To   string
}

func (r DateRange) filter(ascending bool) (repository.EntryFilter, error) {
	f := repository.EntryFilter{Ascending: ascending}
	if r.From != "" {
		from, err := clock.ParseDate(r.From)
		if err != nil {
			return f, apperrors.Validation("date_from: %v", err)
		}
		f.From = from
	}
	if r.To != "" {
		to, err := clock.ParseDate(r.To)
		if err != nil {
			return f, apperrors.Validation("date_to: %v", err)
		}
		f.To = to
	}
	return f, nil
}

// NewEntry holds the fields of an entry being logged. Value is a pointer so
// a missing value can be told apart from zero.
type NewEntry struct {
	MetricID uint
	Value    *float64
	Date     string
	Note     *string
}

// EntryPatch is a partial entry update.
type EntryPatch struct {
	Value patch.Field[float64] `json:"value"`
	Date  patch.Field[string]  `json:"date"`
	Note  patch.Field[string]  `json:"note"`
}

// EntryService manages the entry ledger. Ownership is the entry's metric's owner.
type EntryService interface {
	ListForMetric(ctx context.Context, ownerID, metricID uint, r DateRange) ([]model.Entry, error)
	Create(ctx context.Context, ownerID uint, in NewEntry) (*model.Entry, error)
	Update(ctx context.Context, ownerID, entryID uint, p EntryPatch) (*model.Entry, error)
	Delete(ctx context.Context, ownerID, entryID uint) error
}

type entryService struct {
	metricRepo repository.MetricRepository
	entryRepo  repository.EntryRepository
	clock      clock.Clock
}

// NewEntryService creates a new entry service.
func NewEntryService(metricRepo repository.MetricRepository, entryRepo repository.EntryRepository, clk clock.Clock) EntryService {
	return &entryService{
		metricRepo: metricRepo,
		entryRepo:  entryRepo,
		clock:      clk,
	}
}

// ListForMetric returns the metric's entries, newest date first.
func (s *entryService) ListForMetric(ctx context.Context, ownerID, metricID uint, r DateRange) ([]model.Entry, error) {
	f, err := r.filter(false)
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
	return entries, nil
}

func (s *entryService) Create(ctx context.Context, ownerID uint, in NewEntry) (*model.Entry, error) {
	if in.MetricID == 0 || in.Value == nil {
		return nil, apperrors.ErrEntryFieldsRequired
	}

	date := s.clock.Today()
	if in.Date != "" {
		parsed, err := clock.ParseDate(in.Date)
		if err != nil {
			return nil, apperrors.Validation("date: %v", err)
		}
		date = parsed
	}

	metric, err := findOwnedMetric(ctx, s.metricRepo, ownerID, in.MetricID)
	if err != nil {
		return nil, err
	}

	entry := &model.Entry{
		MetricID: metric.ID,
		Value:    *in.Value,
		Date:     date,
		Note:     in.Note,
	}
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return entry, nil
}

func (s *entryService) Update(ctx context.Context, ownerID, entryID uint, p EntryPatch) (*model.Entry, error) {
	entry, err := s.findOwnedEntry(ctx, ownerID, entryID)
	if err != nil {
		return nil, err
	}

	if p.Value.Set {
		if p.Value.Null {
			return nil, apperrors.ErrValueRequired
		}
		entry.Value = p.Value.Value
	}
	if p.Date.Set {
		if p.Date.Null {
			return nil, apperrors.ErrDateRequired
		}
		date, err := clock.ParseDate(p.Date.Value)
		if err != nil {
			return nil, apperrors.Validation("date: %v", err)
		}
		entry.Date = date
	}
	p.Note.ApplyTo(&entry.Note)

	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	return entry, nil
}

func (s *entryService) Delete(ctx context.Context, ownerID, entryID uint) error {
	if _, err := s.findOwnedEntry(ctx, ownerID, entryID); err != nil {
		return err
	}
	if err := s.entryRepo.Delete(ctx, entryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrEntryNotFound
		}
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// findOwnedEntry loads globally by id, then hides foreign entries behind the
// same not-found error as missing ones.
func (s *entryService) findOwnedEntry(ctx context.Context, ownerID, entryID uint) (*model.Entry, error) {
	if entryID == 0 {
		return nil, apperrors.ErrEntryNotFound
	}
	entry, err := s.entryRepo.FindByIDWithMetric(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, fmt.Errorf("find entry: %w", err)
	}
	if entry.Metric.UserID != ownerID {
		return nil, apperrors.ErrEntryNotFound
	}
	return entry, nil
}
