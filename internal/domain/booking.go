package domain

import (
	"time"
)

type BookingType string

const (
	BookingEquipment BookingType = "EQUIPMENT"
	BookingSession   BookingType = "SESSION"
	BookingInBody    BookingType = "INBODY"
)

func (t BookingType) Valid() bool {
	switch t {
	case BookingEquipment, BookingSession, BookingInBody:
		return true
	}
	return false
}

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusNoShow    BookingStatus = "NO_SHOW"
)

// ActiveStatuses hold equipment and are swept by reconciliation.
var ActiveStatuses = []BookingStatus{StatusPending, StatusConfirmed}

func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

func (s BookingStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransition allows forward moves only.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	switch s {
	case StatusPending:
		return to == StatusConfirmed || to.Terminal()
	case StatusConfirmed:
		return to.Terminal()
	}
	return false
}

const NoShowReason = "No-show: booking expired without check-in"

type Booking struct {
	ID                 int64         `db:"id"`
	UserID             int64         `db:"user_id"`
	EquipmentID        *int64        `db:"equipment_id"`
	CoachID            *int64        `db:"coach_id"`
	Type               BookingType   `db:"booking_type"`
	StartTime          time.Time     `db:"start_time"`
	EndTime            time.Time     `db:"end_time"`
	Status             BookingStatus `db:"status"`
	TokensCost         int64         `db:"tokens_cost"`
	AutoBooked         bool          `db:"auto_booked"`
	CheckInAt          *time.Time    `db:"check_in_at"`
	CheckOutAt         *time.Time    `db:"check_out_at"`
	CancellationReason *string       `db:"cancellation_reason"`
	Notes              *string       `db:"notes"`
	// LinkedBookingID is the auto-booked equipment reserved with a coach session.
	LinkedBookingID    *int64        `db:"linked_booking_id"`
	CreatedAt          time.Time     `db:"created_at"`
	UpdatedAt          time.Time     `db:"updated_at"`
}

// Overlaps uses half-open [start, end) intervals.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}

func (b *Booking) Refundable() bool {
	return b.TokensCost > 0 && !b.AutoBooked
}

type BookingRequest struct {
	UserID      int64
	EquipmentID *int64
	CoachID     *int64
	Type        BookingType
	Start       time.Time
	End         time.Time
	Notes       *string
}

type CoachSessionRequest struct {
	CoachID     int64
	MemberID    int64
	EquipmentID *int64
	Start       time.Time
	End         time.Time
	Notes       *string
}

// ExpiredCursor is the (end_time, id) key of the last booking of a page.
type ExpiredCursor struct {
	EndTime time.Time
	ID      int64
}

func CursorOf(b Booking) ExpiredCursor {
	return ExpiredCursor{EndTime: b.EndTime, ID: b.ID}
}

type ReconcileReport struct {
	Scanned        int
	Completed      int
	Cancelled      int
	Refunded       int
	Failed         int
	SlotsGenerated int64
	SlotsCleared   int64
}
