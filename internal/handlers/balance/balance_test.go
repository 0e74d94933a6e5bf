package balance

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/gymslot/internal/domain"
	"github.com/GlebRadaev/gymslot/internal/dto"
	"github.com/GlebRadaev/gymslot/internal/service/ledgerservice"
	"github.com/GlebRadaev/gymslot/pkg/auth"
)

func NewMock(t *testing.T) (*BalanceHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func withUser(r *http.Request, userID int64, role auth.Role) *http.Request {
	return r.WithContext(auth.WithIdentity(r.Context(), userID, role))
}

func TestGetBalanceHandler(t *testing.T) {
	handler, service := NewMock(t)
	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody dto.BalanceResponseDTO
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				service.EXPECT().BalanceOf(gomock.Any(), int64(1)).Return(int64(10), nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.BalanceResponseDTO{UserID: 1, Balance: 10},
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().BalanceOf(gomock.Any(), int64(1)).Return(int64(0), errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			req := withUser(httptest.NewRequest(http.MethodGet, "/api/balance", nil), 1, auth.RoleMember)
			w := httptest.NewRecorder()

			handler.GetBalance(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.BalanceResponseDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, tt.expectedBody, body)
			}
		})
	}
}

func TestGetHistoryHandler(t *testing.T) {
	handler, service := NewMock(t)
	createdAt := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody []dto.LedgerEntryDTO
	}{
		{
			name: "Entries listed",
			prepareMock: func() {
				service.EXPECT().History(gomock.Any(), int64(1), 0).Return([]domain.LedgerEntry{
					{ID: 2, UserID: 1, Delta: -5, Kind: domain.TxSpend, Ref: domain.BookingRef(42), BalanceBefore: 10, BalanceAfter: 5, CreatedAt: createdAt},
					{ID: 1, UserID: 1, Delta: 10, Kind: domain.TxBonus, BalanceBefore: 0, BalanceAfter: 10, CreatedAt: createdAt},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: []dto.LedgerEntryDTO{
				{ID: 2, Delta: -5, Kind: "SPEND", Reference: "booking:42", BalanceAfter: 5, CreatedAt: createdAt},
				{ID: 1, Delta: 10, Kind: "BONUS", BalanceAfter: 10, CreatedAt: createdAt},
			},
		},
		{
			name: "No entries",
			prepareMock: func() {
				service.EXPECT().History(gomock.Any(), int64(1), 0).Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().History(gomock.Any(), int64(1), 0).Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			req := withUser(httptest.NewRequest(http.MethodGet, "/api/balance/history", nil), 1, auth.RoleMember)
			w := httptest.NewRecorder()

			handler.GetHistory(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.LedgerEntryDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				require.Len(t, body, len(tt.expectedBody))
				for i := range body {
					assert.Equal(t, tt.expectedBody[i].Reference, body[i].Reference)
					assert.Equal(t, tt.expectedBody[i].Delta, body[i].Delta)
					assert.Equal(t, tt.expectedBody[i].Kind, body[i].Kind)
					assert.True(t, tt.expectedBody[i].CreatedAt.Equal(body[i].CreatedAt))
				}
			}
		})
	}
}

func TestSpendHandler(t *testing.T) {
	handler, service := NewMock(t)
	planRef := domain.Reference{Type: domain.RefAIPlan, ID: "plan-1"}
	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Tokens spent",
			body: `{"plan_id":"plan-1","amount":4}`,
			prepareMock: func() {
				service.EXPECT().Debit(gomock.Any(), int64(1), int64(4), domain.TxSpend, planRef).
					Return(&domain.LedgerEntry{ID: 3, UserID: 1, Delta: -4, Kind: domain.TxSpend, Ref: planRef, BalanceAfter: 6}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid body",
			body:          `{"plan_id":`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
		{
			name:          "Zero amount",
			body:          `{"plan_id":"plan-1","amount":0}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Amount",
		},
		{
			name: "Insufficient tokens",
			body: `{"plan_id":"plan-1","amount":4}`,
			prepareMock: func() {
				service.EXPECT().Debit(gomock.Any(), int64(1), int64(4), domain.TxSpend, planRef).
					Return(nil, ledgerservice.ErrInsufficientBalance)
			},
			expectedCode:  http.StatusPaymentRequired,
			expectedError: "insufficient tokens",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			req := withUser(httptest.NewRequest(http.MethodPost, "/api/balance/spend", bytes.NewBufferString(tt.body)), 1, auth.RoleMember)
			w := httptest.NewRecorder()

			handler.Spend(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusOK {
				var body dto.LedgerEntryDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, "ai_plan:plan-1", body.Reference)
				assert.Equal(t, int64(6), body.BalanceAfter)
			}
		})
	}
}

func TestCreditHandler(t *testing.T) {
	handler, service := NewMock(t)
	paymentRef := domain.Reference{Type: domain.RefPayment, ID: "pay-1"}
	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Purchase credited",
			body: `{"user_id":5,"amount":20,"kind":"PURCHASE","payment_id":"pay-1"}`,
			prepareMock: func() {
				service.EXPECT().Credit(gomock.Any(), int64(5), int64(20), domain.TxPurchase, paymentRef).
					Return(&domain.LedgerEntry{ID: 9, UserID: 5, Delta: 20, Kind: domain.TxPurchase, Ref: paymentRef, BalanceAfter: 20}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Bonus without reference",
			body: `{"user_id":5,"amount":3,"kind":"BONUS"}`,
			prepareMock: func() {
				service.EXPECT().Credit(gomock.Any(), int64(5), int64(3), domain.TxBonus, domain.Reference{}).
					Return(&domain.LedgerEntry{ID: 10, UserID: 5, Delta: 3, Kind: domain.TxBonus, BalanceAfter: 23}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Purchase without payment id",
			body:         `{"user_id":5,"amount":20,"kind":"PURCHASE"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "Refund is not a manual credit",
			body:         `{"user_id":5,"amount":20,"kind":"REFUND"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Payment already credited",
			body: `{"user_id":5,"amount":20,"kind":"PURCHASE","payment_id":"pay-1"}`,
			prepareMock: func() {
				service.EXPECT().Credit(gomock.Any(), int64(5), int64(20), domain.TxPurchase, paymentRef).
					Return(nil, ledgerservice.ErrDuplicateReference)
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			req := withUser(httptest.NewRequest(http.MethodPost, "/api/admin/credits", bytes.NewBufferString(tt.body)), 9, auth.RoleReception)
			w := httptest.NewRecorder()

			handler.Credit(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
