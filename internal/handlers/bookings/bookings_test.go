package bookings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/gymslot/internal/domain"
	"github.com/GlebRadaev/gymslot/internal/dto"
	"github.com/GlebRadaev/gymslot/internal/service/bookingservice"
	"github.com/GlebRadaev/gymslot/internal/service/ledgerservice"
	"github.com/GlebRadaev/gymslot/pkg/auth"
)

func NewMock(t *testing.T) (*BookingHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	return New(service), service
}

var start = time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)

func booking(id, userID int64, status domain.BookingStatus) *domain.Booking {
	equipmentID := int64(7)
	return &domain.Booking{
		ID:          id,
		UserID:      userID,
		EquipmentID: &equipmentID,
		Type:        domain.BookingEquipment,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		Status:      status,
		TokensCost:  5,
	}
}

func request(method, target, body string, userID int64, role auth.Role, id string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	ctx := auth.WithIdentity(r.Context(), userID, role)
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return r.WithContext(ctx)
}

func TestCreateBookingHandler(t *testing.T) {
	validBody := `{"equipment_id":7,"booking_type":"EQUIPMENT","start_time":"2024-03-10T10:00:00Z","end_time":"2024-03-10T11:00:00Z"}`

	tests := []struct {
		name          string
		body          string
		prepareMock   func(service *MockService)
		expectedCode  int
		expectedError string
	}{
		{
			name: "Booking confirmed",
			body: validBody,
			prepareMock: func(service *MockService) {
				service.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req domain.BookingRequest) (*domain.Booking, error) {
					assert.Equal(t, int64(1), req.UserID)
					assert.Equal(t, domain.BookingEquipment, req.Type)
					assert.True(t, req.Start.Equal(start))
					return booking(42, 1, domain.StatusConfirmed), nil
				})
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:          "Invalid body",
			body:          `{"booking_type":`,
			prepareMock:   func(service *MockService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
		{
			name:          "End before start",
			body:          `{"equipment_id":7,"booking_type":"EQUIPMENT","start_time":"2024-03-10T11:00:00Z","end_time":"2024-03-10T10:00:00Z"}`,
			prepareMock:   func(service *MockService) {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "EndTime",
		},
		{
			name: "Insufficient tokens",
			body: validBody,
			prepareMock: func(service *MockService) {
				service.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil, ledgerservice.ErrInsufficientBalance)
			},
			expectedCode:  http.StatusPaymentRequired,
			expectedError: "insufficient tokens",
		},
		{
			name: "Overlapping booking",
			body: validBody,
			prepareMock: func(service *MockService) {
				service.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil, bookingservice.ErrConflict)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "slot unavailable",
		},
		{
			name: "No generated slot",
			body: validBody,
			prepareMock: func(service *MockService) {
				service.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil, bookingservice.ErrNoSlot)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "slot unavailable",
		},
		{
			name: "Store failure",
			body: validBody,
			prepareMock: func(service *MockService) {
				service.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "internal error, retry later",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			w := httptest.NewRecorder()
			handler.CreateBooking(w, request(http.MethodPost, "/api/bookings", tt.body, 1, auth.RoleMember, ""))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusCreated {
				var body dto.BookingResponseDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, int64(42), body.ID)
				assert.Equal(t, "CONFIRMED", body.Status)
			}
		})
	}
}

func TestGetBookingsHandler(t *testing.T) {
	tests := []struct {
		name         string
		prepareMock  func(service *MockService)
		expectedCode int
		expectedLen  int
	}{
		{
			name: "Bookings listed",
			prepareMock: func(service *MockService) {
				service.EXPECT().ListUserBookings(gomock.Any(), int64(1), 10).
					Return([]domain.Booking{*booking(1, 1, domain.StatusConfirmed), *booking(2, 1, domain.StatusCancelled)}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name: "No bookings",
			prepareMock: func(service *MockService) {
				service.EXPECT().ListUserBookings(gomock.Any(), int64(1), 10).Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Store failure",
			prepareMock: func(service *MockService) {
				service.EXPECT().ListUserBookings(gomock.Any(), int64(1), 10).Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			w := httptest.NewRecorder()
			handler.GetBookings(w, request(http.MethodGet, "/api/bookings?limit=10", "", 1, auth.RoleMember, ""))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.BookingResponseDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Len(t, body, tt.expectedLen)
			}
		})
	}
}

func TestGetBookingHandler(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		userID       int64
		role         auth.Role
		prepareMock  func(service *MockService)
		expectedCode int
	}{
		{
			name:   "Owner sees booking",
			id:     "42",
			userID: 1,
			role:   auth.RoleMember,
			prepareMock: func(service *MockService) {
				service.EXPECT().GetBooking(gomock.Any(), int64(42)).Return(booking(42, 1, domain.StatusConfirmed), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "Other member gets not found",
			id:     "42",
			userID: 2,
			role:   auth.RoleMember,
			prepareMock: func(service *MockService) {
				service.EXPECT().GetBooking(gomock.Any(), int64(42)).Return(booking(42, 1, domain.StatusConfirmed), nil)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:   "Reception sees any booking",
			id:     "42",
			userID: 9,
			role:   auth.RoleReception,
			prepareMock: func(service *MockService) {
				service.EXPECT().GetBooking(gomock.Any(), int64(42)).Return(booking(42, 1, domain.StatusConfirmed), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "Coach sees own session",
			id:     "42",
			userID: 3,
			role:   auth.RoleCoach,
			prepareMock: func(service *MockService) {
				b := booking(42, 1, domain.StatusConfirmed)
				coachID := int64(3)
				b.CoachID = &coachID
				service.EXPECT().GetBooking(gomock.Any(), int64(42)).Return(b, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Bad id",
			id:           "abc",
			userID:       1,
			role:         auth.RoleMember,
			prepareMock:  func(service *MockService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "Missing booking",
			id:     "42",
			userID: 1,
			role:   auth.RoleMember,
			prepareMock: func(service *MockService) {
				service.EXPECT().GetBooking(gomock.Any(), int64(42)).Return(nil, bookingservice.ErrBookingNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			w := httptest.NewRecorder()
			handler.GetBooking(w, request(http.MethodGet, "/api/bookings/"+tt.id, "", tt.userID, tt.role, tt.id))

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestCancelBookingHandler(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		prepareMock   func(service *MockService)
		expectedCode  int
		expectedError string
	}{
		{
			name: "Cancelled with reason",
			body: `{"reason":"changed plans"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().GetBooking(gomock.Any(), int64(42)).Return(booking(42, 1, domain.StatusConfirmed), nil)
				service.EXPECT().CancelBooking(gomock.Any(), int64(42), "changed plans").Return(booking(42, 1, domain.StatusCancelled), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Cancelled without body",
			prepareMock: func(service *MockService) {
				service.EXPECT().GetBooking(gomock.Any(), int64(42)).Return(booking(42, 1, domain.StatusConfirmed), nil)
				service.EXPECT().CancelBooking(gomock.Any(), int64(42), defaultCancelReason).Return(booking(42, 1, domain.StatusCancelled), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Already finalized",
			body: `{}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().GetBooking(gomock.Any(), int64(42)).Return(booking(42, 1, domain.StatusCompleted), nil)
				service.EXPECT().CancelBooking(gomock.Any(), int64(42), defaultCancelReason).Return(nil, bookingservice.ErrAlreadyTerminal)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "booking already finalized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			w := httptest.NewRecorder()
			handler.CancelBooking(w, request(http.MethodPost, "/api/bookings/42/cancel", tt.body, 1, auth.RoleMember, "42"))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestCheckInHandler(t *testing.T) {
	handler, service := NewMock(t)
	checkIn := start.Add(time.Minute)
	checked := booking(42, 1, domain.StatusConfirmed)
	checked.CheckInAt = &checkIn

	service.EXPECT().GetBooking(gomock.Any(), int64(42)).Return(booking(42, 1, domain.StatusConfirmed), nil)
	service.EXPECT().CheckIn(gomock.Any(), int64(42)).Return(checked, nil)

	w := httptest.NewRecorder()
	handler.CheckIn(w, request(http.MethodPost, "/api/bookings/42/check-in", "", 1, auth.RoleMember, "42"))

	require.Equal(t, http.StatusOK, w.Code)
	var body dto.BookingResponseDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.NotNil(t, body.CheckInAt)
	assert.True(t, checkIn.Equal(*body.CheckInAt))
}

func TestCheckOutHandler(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().GetBooking(gomock.Any(), int64(42)).Return(booking(42, 1, domain.StatusConfirmed), nil)
	service.EXPECT().CheckOut(gomock.Any(), int64(42)).Return(nil, bookingservice.ErrNotCheckedIn)

	w := httptest.NewRecorder()
	handler.CheckOut(w, request(http.MethodPost, "/api/bookings/42/check-out", "", 1, auth.RoleMember, "42"))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAssignCoachSessionHandler(t *testing.T) {
	body := `{"member_id":1,"equipment_id":7,"start_time":"2024-03-10T10:00:00Z","end_time":"2024-03-10T11:00:00Z"}`

	tests := []struct {
		name         string
		body         string
		prepareMock  func(service *MockService)
		expectedCode int
	}{
		{
			name: "Session with equipment",
			body: body,
			prepareMock: func(service *MockService) {
				session := booking(100, 1, domain.StatusConfirmed)
				session.Type = domain.BookingSession
				equipment := booking(101, 1, domain.StatusConfirmed)
				equipment.AutoBooked = true
				equipment.TokensCost = 0
				service.EXPECT().AssignCoachSession(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, req domain.CoachSessionRequest) (*domain.Booking, *domain.Booking, error) {
						assert.Equal(t, int64(3), req.CoachID)
						assert.Equal(t, int64(1), req.MemberID)
						return session, equipment, nil
					})
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Missing member",
			body:         `{"start_time":"2024-03-10T10:00:00Z","end_time":"2024-03-10T11:00:00Z"}`,
			prepareMock:  func(service *MockService) {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Coach busy",
			body: body,
			prepareMock: func(service *MockService) {
				service.EXPECT().AssignCoachSession(gomock.Any(), gomock.Any()).Return(nil, nil, bookingservice.ErrConflict)
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			w := httptest.NewRecorder()
			handler.AssignCoachSession(w, request(http.MethodPost, "/api/coach/sessions", tt.body, 3, auth.RoleCoach, ""))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusCreated {
				var resp dto.CoachSessionResponseDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				require.NotNil(t, resp.Equipment)
				assert.True(t, resp.Equipment.AutoBooked)
				assert.Equal(t, "SESSION", resp.Session.Type)
			}
		})
	}
}
