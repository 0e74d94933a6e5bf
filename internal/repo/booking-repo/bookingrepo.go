package bookingrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gymslot/internal/domain"
	"github.com/GlebRadaev/gymslot/internal/pg"
)

const bookingColumns = `id, user_id, equipment_id, coach_id, booking_type, start_time, end_time, status,
	tokens_cost, auto_booked, check_in_at, check_out_at, cancellation_reason, notes, linked_booking_id, created_at, updated_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// LockEquipment serializes admissions for one equipment until the transaction ends.
// Returns nil when the equipment does not exist or is inactive.
func (r *Repository) LockEquipment(ctx context.Context, equipmentID int64) (*domain.Equipment, error) {
	var e domain.Equipment
	var opensAtSec int64
	err := r.db.QueryRow(ctx, `
		SELECT id, name, active, slot_minutes, slots_per_day, EXTRACT(EPOCH FROM opens_at)::bigint
		FROM equipment
		WHERE id = $1 AND active
		FOR UPDATE
	`, equipmentID).Scan(&e.ID, &e.Name, &e.Active, &e.SlotMinutes, &e.SlotsPerDay, &opensAtSec)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("failed to lock equipment", zap.Int64("equipment_id", equipmentID), zap.Error(err))
		return nil, err
	}
	e.OpensAt = time.Duration(opensAtSec) * time.Second
	return &e, nil
}

func (r *Repository) HasOverlap(ctx context.Context, equipmentID int64, start, end time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE equipment_id = $1
				AND status IN ('PENDING', 'CONFIRMED')
				AND start_time < $3
				AND $2 < end_time
		)
	`, equipmentID, start, end).Scan(&exists)
	if err != nil {
		zap.L().Error("failed to check equipment overlap", zap.Int64("equipment_id", equipmentID), zap.Error(err))
		return false, err
	}
	return exists, nil
}

// LockCoach serializes session admissions for one coach until the transaction ends.
func (r *Repository) LockCoach(ctx context.Context, coachID int64) error {
	_, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, coachID)
	if err != nil {
		zap.L().Error("failed to lock coach", zap.Int64("coach_id", coachID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) HasCoachOverlap(ctx context.Context, coachID int64, start, end time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE coach_id = $1
				AND booking_type = 'SESSION'
				AND status IN ('PENDING', 'CONFIRMED')
				AND start_time < $3
				AND $2 < end_time
		)
	`, coachID, start, end).Scan(&exists)
	if err != nil {
		zap.L().Error("failed to check coach overlap", zap.Int64("coach_id", coachID), zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *Repository) Create(ctx context.Context, b *domain.Booking) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO bookings (user_id, equipment_id, coach_id, booking_type, start_time, end_time, status, tokens_cost, auto_booked, notes, linked_booking_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, b.UserID, b.EquipmentID, b.CoachID, string(b.Type), b.StartTime, b.EndTime, string(b.Status), b.TokensCost, b.AutoBooked, b.Notes, b.LinkedBookingID).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		zap.L().Error("failed to create booking", zap.Int64("user_id", b.UserID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.get(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
}

// GetForUpdate locks the booking row until the surrounding transaction ends.
func (r *Repository) GetForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.get(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
}

func (r *Repository) get(ctx context.Context, query string, id int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("failed to get booking", zap.Int64("booking_id", id), zap.Error(err))
		return nil, err
	}
	return b, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Booking, error) {
	return r.list(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE user_id = $1
		ORDER BY start_time DESC
		LIMIT $2
	`, userID, limit)
}

// ListExpired returns active bookings whose window ended before now, oldest first,
// strictly after the given cursor. The zero cursor starts from the beginning.
func (r *Repository) ListExpired(ctx context.Context, now time.Time, after domain.ExpiredCursor, limit int) ([]domain.Booking, error) {
	return r.list(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE status IN ('PENDING', 'CONFIRMED')
			AND end_time < $1
			AND (end_time, id) > ($2, $3)
		ORDER BY end_time, id
		LIMIT $4
	`, now, after.EndTime, after.ID, limit)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to list bookings", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			zap.L().Error("failed to scan booking", zap.Error(err))
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, reason *string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET status = $1, cancellation_reason = COALESCE($2, cancellation_reason), updated_at = now()
		WHERE id = $3
	`, string(status), reason, id)
	if err != nil {
		zap.L().Error("failed to update booking status", zap.Int64("booking_id", id), zap.String("status", string(status)), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) SetCheckIn(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET check_in_at = $1, updated_at = now()
		WHERE id = $2
	`, at, id)
	if err != nil {
		zap.L().Error("failed to set check-in", zap.Int64("booking_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) SetCheckOut(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET check_out_at = $1, updated_at = now()
		WHERE id = $2
	`, at, id)
	if err != nil {
		zap.L().Error("failed to set check-out", zap.Int64("booking_id", id), zap.Error(err))
		return err
	}
	return nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var bookingType, status string
	err := row.Scan(&b.ID, &b.UserID, &b.EquipmentID, &b.CoachID, &bookingType, &b.StartTime, &b.EndTime, &status,
		&b.TokensCost, &b.AutoBooked, &b.CheckInAt, &b.CheckOutAt, &b.CancellationReason, &b.Notes, &b.LinkedBookingID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Type = domain.BookingType(bookingType)
	b.Status = domain.BookingStatus(status)
	return &b, nil
}
