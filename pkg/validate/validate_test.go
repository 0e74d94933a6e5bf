package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/gymslot/internal/dto"
)

func TestStruct(t *testing.T) {
	start := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		input       any
		expectedErr string
	}{
		{
			name:  "Valid booking",
			input: dto.CreateBookingRequestDTO{Type: "EQUIPMENT", StartTime: start, EndTime: start.Add(time.Hour)},
		},
		{
			name:        "Unknown booking type",
			input:       dto.CreateBookingRequestDTO{Type: "YOGA", StartTime: start, EndTime: start.Add(time.Hour)},
			expectedErr: "Type: oneof=EQUIPMENT SESSION INBODY",
		},
		{
			name:        "End before start",
			input:       dto.CreateBookingRequestDTO{Type: "EQUIPMENT", StartTime: start, EndTime: start.Add(-time.Hour)},
			expectedErr: "EndTime: gtfield=StartTime",
		},
		{
			name:        "Purchase needs payment id",
			input:       dto.CreditRequestDTO{UserID: 1, Amount: 5, Kind: "PURCHASE"},
			expectedErr: "PaymentID: required_if=Kind PURCHASE",
		},
		{
			name:  "Bonus without payment id",
			input: dto.CreditRequestDTO{UserID: 1, Amount: 5, Kind: "BONUS"},
		},
		{
			name:        "Bad date",
			input:       dto.GenerateSlotsRequestDTO{Date: "10.03.2024"},
			expectedErr: "Date: datetime=2006-01-02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.expectedErr)
		})
	}
}
