package slotrepo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/gymslot/internal/domain"
	"github.com/GlebRadaev/gymslot/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) ListActiveEquipment(ctx context.Context) ([]domain.Equipment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, active, slot_minutes, slots_per_day, EXTRACT(EPOCH FROM opens_at)::bigint
		FROM equipment
		WHERE active
		ORDER BY id
	`)
	if err != nil {
		zap.L().Error("failed to list equipment", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var equipment []domain.Equipment
	for rows.Next() {
		var e domain.Equipment
		var opensAtSec int64
		if err := rows.Scan(&e.ID, &e.Name, &e.Active, &e.SlotMinutes, &e.SlotsPerDay, &opensAtSec); err != nil {
			zap.L().Error("failed to scan equipment row", zap.Error(err))
			return nil, err
		}
		e.OpensAt = time.Duration(opensAtSec) * time.Second
		equipment = append(equipment, e)
	}
	return equipment, rows.Err()
}

// InsertSlots skips windows that already exist, so repeated runs add nothing.
func (r *Repository) InsertSlots(ctx context.Context, equipmentID int64, date time.Time, windows []domain.Window) (int64, error) {
	starts := make([]time.Time, len(windows))
	ends := make([]time.Time, len(windows))
	for i, w := range windows {
		starts[i] = w.Start
		ends[i] = w.End
	}

	tag, err := r.db.Exec(ctx, `
		INSERT INTO slots (equipment_id, slot_date, start_time, end_time)
		SELECT $1, $2::date, s, e
		FROM unnest($3::timestamptz[], $4::timestamptz[]) AS w(s, e)
		ON CONFLICT (equipment_id, start_time) DO NOTHING
	`, equipmentID, date, starts, ends)
	if err != nil {
		zap.L().Error("failed to insert slots", zap.Int64("equipment_id", equipmentID), zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ExpiredSlotEquipment lists every equipment that still has slots dated before
// today, including equipment deactivated since the slots were generated.
func (r *Repository) ExpiredSlotEquipment(ctx context.Context, today time.Time) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT equipment_id
		FROM slots
		WHERE slot_date < $1::date
		ORDER BY equipment_id
	`, today)
	if err != nil {
		zap.L().Error("failed to list equipment with expired slots", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			zap.L().Error("failed to scan equipment id", zap.Error(err))
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteExpired keeps any past slot still overlapped by a PENDING or CONFIRMED booking.
func (r *Repository) DeleteExpired(ctx context.Context, equipmentID int64, today time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM slots s
		WHERE s.equipment_id = $1
		  AND s.slot_date < $2::date
		  AND NOT EXISTS (
			SELECT 1
			FROM bookings b
			WHERE b.equipment_id = s.equipment_id
			  AND b.status IN ('PENDING', 'CONFIRMED')
			  AND b.start_time < s.end_time
			  AND s.start_time < b.end_time
		  )
	`, equipmentID, today)
	if err != nil {
		zap.L().Error("failed to delete expired slots", zap.Int64("equipment_id", equipmentID), zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) ListByDate(ctx context.Context, equipmentID int64, date time.Time) ([]domain.Slot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, equipment_id, slot_date, start_time, end_time
		FROM slots
		WHERE equipment_id = $1 AND slot_date = $2::date
		ORDER BY start_time
	`, equipmentID, date)
	if err != nil {
		zap.L().Error("failed to list slots", zap.Int64("equipment_id", equipmentID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var slots []domain.Slot
	for rows.Next() {
		var s domain.Slot
		if err := rows.Scan(&s.ID, &s.EquipmentID, &s.Date, &s.StartTime, &s.EndTime); err != nil {
			zap.L().Error("failed to scan slot row", zap.Error(err))
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// CoversWindow reports whether one generated slot contains [start, end).
func (r *Repository) CoversWindow(ctx context.Context, equipmentID int64, start, end time.Time) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM slots
			WHERE equipment_id = $1 AND start_time <= $2 AND end_time >= $3
		)
	`, equipmentID, start, end).Scan(&ok)
	if err != nil {
		zap.L().Error("failed to check slot coverage", zap.Int64("equipment_id", equipmentID), zap.Error(err))
		return false, err
	}
	return ok, nil
}

func (r *Repository) ActiveWindows(ctx context.Context, equipmentID int64, from, to time.Time) ([]domain.Window, error) {
	rows, err := r.db.Query(ctx, `
		SELECT start_time, end_time
		FROM bookings
		WHERE equipment_id = $1
		  AND status IN ('PENDING', 'CONFIRMED')
		  AND start_time < $3
		  AND $2 < end_time
	`, equipmentID, from, to)
	if err != nil {
		zap.L().Error("failed to list active booking windows", zap.Int64("equipment_id", equipmentID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var windows []domain.Window
	for rows.Next() {
		var w domain.Window
		if err := rows.Scan(&w.Start, &w.End); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}
