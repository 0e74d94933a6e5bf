package slotservice

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/gymslot/internal/domain"
)

//go:generate mockgen -source=slotservice.go -destination=mock_slotservice.go -package=slotservice

type Repo interface {
	ListActiveEquipment(ctx context.Context) ([]domain.Equipment, error)
	InsertSlots(ctx context.Context, equipmentID int64, date time.Time, windows []domain.Window) (int64, error)
	ExpiredSlotEquipment(ctx context.Context, today time.Time) ([]int64, error)
	DeleteExpired(ctx context.Context, equipmentID int64, today time.Time) (int64, error)
	ListByDate(ctx context.Context, equipmentID int64, date time.Time) ([]domain.Slot, error)
	ActiveWindows(ctx context.Context, equipmentID int64, from, to time.Time) ([]domain.Window, error)
}

type Cache interface {
	Get(ctx context.Context, equipmentID int64, date time.Time) ([]domain.Slot, bool, error)
	Set(ctx context.Context, equipmentID int64, date time.Time, slots []domain.Slot) error
	Invalidate(ctx context.Context, equipmentID int64, date time.Time) error
}

const maxParallelUnits = 4

type Service struct {
	repo    Repo
	cache   Cache
	loc     *time.Location
	horizon int
	now     func() time.Time
}

func New(repo Repo, cache Cache, loc *time.Location, horizonDays int) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		loc:     loc,
		horizon: horizonDays,
		now:     time.Now,
	}
}

func (s *Service) dayStart(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

// DayWindows lays out slotsPerDay consecutive windows from the opening time.
func DayWindows(day time.Time, e domain.Equipment) []domain.Window {
	length := time.Duration(e.SlotMinutes) * time.Minute
	first := day.Add(e.OpensAt)
	windows := make([]domain.Window, 0, e.SlotsPerDay)
	for i := 0; i < e.SlotsPerDay; i++ {
		start := first.Add(time.Duration(i) * length)
		windows = append(windows, domain.Window{Start: start, End: start.Add(length)})
	}
	return windows
}

// GenerateDailySlots materializes the slot set of every active equipment for date.
// One failing equipment does not stop the others; failures are joined into the error.
func (s *Service) GenerateDailySlots(ctx context.Context, date time.Time) (domain.GenerationReport, error) {
	day := s.dayStart(date)
	report := domain.GenerationReport{Date: day}

	equipment, err := s.repo.ListActiveEquipment(ctx)
	if err != nil {
		return report, fmt.Errorf("list equipment: %w", err)
	}
	report.Equipment = len(equipment)

	var (
		mu   sync.Mutex
		errs error
		g    errgroup.Group
	)
	g.SetLimit(maxParallelUnits)
	for _, e := range equipment {
		e := e
		g.Go(func() error {
			created, err := s.repo.InsertSlots(ctx, e.ID, day, DayWindows(day, e))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				zap.L().Error("slot generation failed",
					zap.Int64("equipment_id", e.ID),
					zap.String("date", day.Format(time.DateOnly)),
					zap.Error(err))
				report.Failed = append(report.Failed, e.ID)
				errs = multierr.Append(errs, fmt.Errorf("equipment %d on %s: %w", e.ID, day.Format(time.DateOnly), err))
				return nil
			}
			report.Created += created
			if err := s.cache.Invalidate(ctx, e.ID, day); err != nil {
				zap.L().Warn("slot cache invalidation failed", zap.Int64("equipment_id", e.ID), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(report.Failed, func(i, j int) bool { return report.Failed[i] < report.Failed[j] })
	return report, errs
}

// GenerateHorizon regenerates the whole rolling window starting at from.
func (s *Service) GenerateHorizon(ctx context.Context, from time.Time) ([]domain.GenerationReport, error) {
	day := s.dayStart(from)
	reports := make([]domain.GenerationReport, 0, s.horizon)
	var errs error
	for i := 0; i < s.horizon; i++ {
		if ctx.Err() != nil {
			return reports, multierr.Append(errs, ctx.Err())
		}
		report, err := s.GenerateDailySlots(ctx, day.AddDate(0, 0, i))
		reports = append(reports, report)
		errs = multierr.Append(errs, err)
	}
	return reports, errs
}

// ClearExpiredSlots removes slots dated before today that no active booking overlaps.
// Inactive equipment is cleared too.
func (s *Service) ClearExpiredSlots(ctx context.Context) (domain.ClearReport, error) {
	today := s.dayStart(s.now())
	var report domain.ClearReport

	ids, err := s.repo.ExpiredSlotEquipment(ctx, today)
	if err != nil {
		return report, fmt.Errorf("list equipment with expired slots: %w", err)
	}

	var errs error
	for _, id := range ids {
		deleted, err := s.repo.DeleteExpired(ctx, id, today)
		if err != nil {
			zap.L().Error("clearing expired slots failed", zap.Int64("equipment_id", id), zap.Error(err))
			report.Failed = append(report.Failed, id)
			errs = multierr.Append(errs, fmt.Errorf("equipment %d: %w", id, err))
			continue
		}
		report.Deleted += deleted
		if err := s.cache.Invalidate(ctx, id, today.AddDate(0, 0, -1)); err != nil {
			zap.L().Warn("slot cache invalidation failed", zap.Int64("equipment_id", id), zap.Error(err))
		}
	}
	return report, errs
}

// ListSlots returns the date's slots with their derived state. Slot windows may
// come from the cache; holds are always read from the bookings table.
func (s *Service) ListSlots(ctx context.Context, equipmentID int64, date time.Time) ([]domain.SlotView, error) {
	day := s.dayStart(date)

	slots, ok, err := s.cache.Get(ctx, equipmentID, day)
	if err != nil {
		zap.L().Warn("slot cache read failed", zap.Int64("equipment_id", equipmentID), zap.Error(err))
	}
	if !ok {
		slots, err = s.repo.ListByDate(ctx, equipmentID, day)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, equipmentID, day, slots); err != nil {
			zap.L().Warn("slot cache write failed", zap.Int64("equipment_id", equipmentID), zap.Error(err))
		}
	}

	held, err := s.repo.ActiveWindows(ctx, equipmentID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	views := make([]domain.SlotView, 0, len(slots))
	for _, slot := range slots {
		view := domain.SlotView{Slot: slot, State: domain.SlotOpen}
		w := domain.Window{Start: slot.StartTime, End: slot.EndTime}
		for _, h := range held {
			if w.Overlaps(h) {
				view.State = domain.SlotHeld
				break
			}
		}
		views = append(views, view)
	}
	return views, nil
}
