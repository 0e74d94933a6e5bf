package bookingrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/gymslot/internal/domain"
)

var bookingCols = []string{
	"id", "user_id", "equipment_id", "coach_id", "booking_type", "start_time", "end_time", "status",
	"tokens_cost", "auto_booked", "check_in_at", "check_out_at", "cancellation_reason", "notes", "linked_booking_id", "created_at", "updated_at",
}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB), mockDB
}

func bookingRow(rows *pgxmock.Rows, id int64, status string, checkIn *time.Time) *pgxmock.Rows {
	start := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	equipmentID := int64(7)
	return rows.AddRow(id, int64(1), &equipmentID, (*int64)(nil), "EQUIPMENT", start, start.Add(time.Hour), status,
		int64(5), false, checkIn, (*time.Time)(nil), (*string)(nil), (*string)(nil), (*int64)(nil), start.Add(-time.Hour), start.Add(-time.Hour))
}

func TestRepository_LockEquipment(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr bool
		expected  *domain.Equipment
	}{
		{
			name: "Equipment locked",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM equipment WHERE id = $1 AND active FOR UPDATE`)).
					WithArgs(int64(7)).
					WillReturnRows(pgxmock.NewRows([]string{"id", "name", "active", "slot_minutes", "slots_per_day", "opens_at"}).
						AddRow(int64(7), "Treadmill", true, 60, 12, int64(8*3600)))
			},
			expected: &domain.Equipment{ID: 7, Name: "Treadmill", Active: true, SlotMinutes: 60, SlotsPerDay: 12, OpensAt: 8 * time.Hour},
		},
		{
			name: "Unknown equipment",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM equipment`)).
					WithArgs(int64(7)).
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM equipment`)).
					WithArgs(int64(7)).
					WillReturnError(errors.New("lock timeout"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			equipment, err := repo.LockEquipment(context.Background(), 7)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, equipment)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_HasOverlap(t *testing.T) {
	start := time.Date(2024, 3, 10, 10, 30, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr bool
		expected  bool
	}{
		{
			name: "Overlap found",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`status IN ('PENDING', 'CONFIRMED') AND start_time < $3 AND $2 < end_time`)).
					WithArgs(int64(7), start, end).
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
			},
			expected: true,
		},
		{
			name: "Free window",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
					WithArgs(int64(7), start, end).
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
			},
		},
		{
			name: "Database error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
					WithArgs(int64(7), start, end).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			overlap, err := repo.HasOverlap(context.Background(), 7, start, end)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, overlap)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_LockCoach(t *testing.T) {
	repo, mock := NewMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock($1)`)).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	require.NoError(t, repo.LockCoach(context.Background(), 3))

	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock($1)`)).
		WithArgs(int64(4)).
		WillReturnError(errors.New("lock timeout"))
	assert.Error(t, repo.LockCoach(context.Background(), 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_HasCoachOverlap(t *testing.T) {
	repo, mock := NewMock(t)
	start := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE coach_id = $1 AND booking_type = 'SESSION'`)).
		WithArgs(int64(3), start, start.Add(time.Hour)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	busy, err := repo.HasCoachOverlap(context.Background(), 3, start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, busy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	now := time.Now()
	start := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	equipmentID := int64(7)

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr bool
	}{
		{
			name: "Booking created",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO bookings`)).
					WithArgs(int64(1), &equipmentID, (*int64)(nil), "EQUIPMENT", start, start.Add(time.Hour), "CONFIRMED", int64(5), false, (*string)(nil), (*int64)(nil)).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))
			},
		},
		{
			name: "Database error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO bookings`)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			b := &domain.Booking{
				UserID:      1,
				EquipmentID: &equipmentID,
				Type:        domain.BookingEquipment,
				StartTime:   start,
				EndTime:     start.Add(time.Hour),
				Status:      domain.StatusConfirmed,
				TokensCost:  5,
			}
			err := repo.Create(context.Background(), b)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(42), b.ID)
				assert.Equal(t, now, b.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetForUpdate(t *testing.T) {
	checkIn := time.Date(2024, 3, 10, 10, 5, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr bool
		expectNil bool
	}{
		{
			name: "Booking locked",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings WHERE id = $1 FOR UPDATE`)).
					WithArgs(int64(42)).
					WillReturnRows(bookingRow(pgxmock.NewRows(bookingCols), 42, "CONFIRMED", &checkIn))
			},
		},
		{
			name: "Missing booking",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
					WithArgs(int64(42)).
					WillReturnError(pgx.ErrNoRows)
			},
			expectNil: true,
		},
		{
			name: "Database error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
					WithArgs(int64(42)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			b, err := repo.GetForUpdate(context.Background(), 42)
			switch {
			case tt.expectErr:
				assert.Error(t, err)
			case tt.expectNil:
				assert.NoError(t, err)
				assert.Nil(t, b)
			default:
				require.NoError(t, err)
				assert.Equal(t, int64(42), b.ID)
				assert.Equal(t, domain.StatusConfirmed, b.Status)
				assert.Equal(t, domain.BookingEquipment, b.Type)
				require.NotNil(t, b.EquipmentID)
				assert.Equal(t, int64(7), *b.EquipmentID)
				assert.Nil(t, b.CoachID)
				require.NotNil(t, b.CheckInAt)
				assert.Equal(t, checkIn, *b.CheckInAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_ListExpired(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	cursor := domain.ExpiredCursor{EndTime: now.Add(-2 * time.Hour), ID: 40}

	tests := []struct {
		name      string
		after     domain.ExpiredCursor
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr bool
		expected  []int64
	}{
		{
			name: "Expired bookings returned",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(bookingCols)
				bookingRow(rows, 1, "CONFIRMED", nil)
				bookingRow(rows, 2, "PENDING", nil)
				mock.ExpectQuery(regexp.QuoteMeta(`WHERE status IN ('PENDING', 'CONFIRMED') AND end_time < $1 AND (end_time, id) > ($2, $3)`)).
					WithArgs(now, time.Time{}, int64(0), 100).
					WillReturnRows(rows)
			},
			expected: []int64{1, 2},
		},
		{
			name:  "Page after cursor",
			after: cursor,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(bookingCols)
				bookingRow(rows, 41, "CONFIRMED", nil)
				mock.ExpectQuery(regexp.QuoteMeta(`(end_time, id) > ($2, $3) ORDER BY end_time, id LIMIT $4`)).
					WithArgs(now, cursor.EndTime, int64(40), 100).
					WillReturnRows(rows)
			},
			expected: []int64{41},
		},
		{
			name: "Nothing expired",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`end_time < $1`)).
					WithArgs(now, time.Time{}, int64(0), 100).
					WillReturnRows(pgxmock.NewRows(bookingCols))
			},
		},
		{
			name: "Query error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`end_time < $1`)).
					WithArgs(now, time.Time{}, int64(0), 100).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			bookings, err := repo.ListExpired(context.Background(), now, tt.after, 100)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				var ids []int64
				for _, b := range bookings {
					ids = append(ids, b.ID)
				}
				assert.Equal(t, tt.expected, ids)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_UpdateStatus(t *testing.T) {
	reason := domain.NoShowReason

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr bool
	}{
		{
			name: "Status updated",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE bookings SET status = $1, cancellation_reason = COALESCE($2, cancellation_reason)`)).
					WithArgs("CANCELLED", &reason, int64(42)).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "Database error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE bookings`)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			err := repo.UpdateStatus(context.Background(), 42, domain.StatusCancelled, &reason)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_SetCheckIn(t *testing.T) {
	repo, mock := NewMock(t)
	at := time.Date(2024, 3, 10, 10, 2, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`SET check_in_at = $1`)).
		WithArgs(at, int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.SetCheckIn(context.Background(), 42, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetCheckOut(t *testing.T) {
	repo, mock := NewMock(t)
	at := time.Date(2024, 3, 10, 11, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`SET check_out_at = $1`)).
		WithArgs(at, int64(42)).
		WillReturnError(errors.New("database error"))

	assert.Error(t, repo.SetCheckOut(context.Background(), 42, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}
