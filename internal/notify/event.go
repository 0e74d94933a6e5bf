package notify

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	BookingConfirmed EventType = "booking.confirmed"
	BookingCancelled EventType = "booking.cancelled"
	TokensRefunded   EventType = "tokens.refunded"
)

type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	UserID     int64     `json:"user_id"`
	BookingID  int64     `json:"booking_id"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(eventType EventType, userID, bookingID int64, message string, at time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		UserID:     userID,
		BookingID:  bookingID,
		Message:    message,
		OccurredAt: at,
	}
}
