package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/gymslot/internal/domain"
	"github.com/GlebRadaev/gymslot/internal/service/bookingservice"
)

//go:generate mockgen -source=reconcile.go -destination=mock_reconcile.go -package=reconcile

type Bookings interface {
	ListExpired(ctx context.Context, now time.Time, after domain.ExpiredCursor, limit int) ([]domain.Booking, error)
	FinalizeExpired(ctx context.Context, bookingID int64, now time.Time) (*domain.Booking, bool, error)
}

type Slots interface {
	GenerateHorizon(ctx context.Context, from time.Time) ([]domain.GenerationReport, error)
	ClearExpiredSlots(ctx context.Context) (domain.ClearReport, error)
}

const (
	defaultBatchSize = 500
	defaultWorkers   = 8
)

type Job struct {
	bookings  Bookings
	slots     Slots
	batchSize int
	workers   int
	now       func() time.Time
}

func New(bookings Bookings, slots Slots) *Job {
	return &Job{
		bookings:  bookings,
		slots:     slots,
		batchSize: defaultBatchSize,
		workers:   defaultWorkers,
		now:       time.Now,
	}
}

// Run finalizes every expired active booking, then refreshes the slot horizon and
// purges past slots. Bookings are handled one transaction each, so a failing
// booking is counted and the rest still commit. Any failure is returned so the
// scheduler retries the whole run.
func (j *Job) Run(ctx context.Context) (domain.ReconcileReport, error) {
	now := j.now()
	var report domain.ReconcileReport

	errs := j.finalizeAll(ctx, now, &report)

	reports, err := j.slots.GenerateHorizon(ctx, now)
	for _, r := range reports {
		report.SlotsGenerated += r.Created
	}
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("generate slots: %w", err))
	}

	cleared, err := j.slots.ClearExpiredSlots(ctx)
	report.SlotsCleared = cleared.Deleted
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("clear slots: %w", err))
	}

	zap.L().Info("Reconciliation finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("completed", report.Completed),
		zap.Int("cancelled", report.Cancelled),
		zap.Int("refunded", report.Refunded),
		zap.Int("failed", report.Failed),
		zap.Int64("slots_generated", report.SlotsGenerated),
		zap.Int64("slots_cleared", report.SlotsCleared))
	return report, errs
}

// finalizeAll pages by (end_time, id), so bookings that keep failing are
// stepped over instead of refilling every page.
func (j *Job) finalizeAll(ctx context.Context, now time.Time, report *domain.ReconcileReport) error {
	var (
		after    domain.ExpiredCursor
		failures int
	)

	for {
		batch, err := j.bookings.ListExpired(ctx, now, after, j.batchSize)
		if err != nil {
			return fmt.Errorf("list expired bookings: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		failures += j.finalizeBatch(ctx, now, batch, report)
		after = domain.CursorOf(batch[len(batch)-1])
		if len(batch) < j.batchSize || ctx.Err() != nil {
			break
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if failures > 0 {
		return fmt.Errorf("%d bookings failed to finalize", failures)
	}
	return nil
}

func (j *Job) finalizeBatch(ctx context.Context, now time.Time, batch []domain.Booking, report *domain.ReconcileReport) int {
	var (
		mu       sync.Mutex
		failures int
		g        errgroup.Group
	)
	g.SetLimit(j.workers)

	for _, b := range batch {
		b := b
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			finalized, refunded, err := j.bookings.FinalizeExpired(ctx, b.ID, now)

			mu.Lock()
			defer mu.Unlock()
			report.Scanned++
			switch {
			case errors.Is(err, bookingservice.ErrAlreadyTerminal), errors.Is(err, bookingservice.ErrBookingNotFound):
				// resolved concurrently by a cancel
			case err != nil:
				report.Failed++
				failures++
				fields := []zap.Field{zap.Int64("booking_id", b.ID), zap.Int64("user_id", b.UserID), zap.Error(err)}
				if b.EquipmentID != nil {
					fields = append(fields, zap.Int64("equipment_id", *b.EquipmentID))
				}
				zap.L().Error("Failed to finalize booking", fields...)
			case finalized.Status == domain.StatusCompleted:
				report.Completed++
			default:
				report.Cancelled++
				if refunded {
					report.Refunded++
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	return failures
}

// Task adapts Run to the scheduler.
func (j *Job) Task(ctx context.Context) error {
	_, err := j.Run(ctx)
	return err
}
