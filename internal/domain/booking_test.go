package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from     BookingStatus
		to       BookingStatus
		expected bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusCompleted, false},
		{StatusNoShow, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransition(tt.to))
		})
	}
}

func TestBooking_Overlaps(t *testing.T) {
	base := time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)
	b := &Booking{StartTime: base, EndTime: base.Add(time.Hour)}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected bool
	}{
		{"Same window", base, base.Add(time.Hour), true},
		{"Partial overlap", base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"Contained", base.Add(10 * time.Minute), base.Add(20 * time.Minute), true},
		{"Adjacent after", base.Add(time.Hour), base.Add(2 * time.Hour), false},
		{"Adjacent before", base.Add(-time.Hour), base, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, b.Overlaps(tt.start, tt.end))
		})
	}
}

func TestBooking_Refundable(t *testing.T) {
	assert.True(t, (&Booking{TokensCost: 5}).Refundable())
	assert.False(t, (&Booking{TokensCost: 0}).Refundable())
	assert.False(t, (&Booking{TokensCost: 5, AutoBooked: true}).Refundable())
}

func TestReference_String(t *testing.T) {
	assert.Equal(t, "booking:42", BookingRef(42).String())
	assert.Equal(t, "", Reference{}.String())
}
