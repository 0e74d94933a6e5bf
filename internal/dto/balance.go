package dto

import "time"

type BalanceResponseDTO struct {
	UserID  int64 `json:"user_id" example:"1"`
	Balance int64 `json:"balance" example:"10"`
}

type LedgerEntryDTO struct {
	ID           int64     `json:"id" example:"7"`
	Delta        int64     `json:"delta" example:"-5"`
	Kind         string    `json:"kind" example:"SPEND"`
	Reference    string    `json:"reference,omitempty" example:"booking:42"`
	BalanceAfter int64     `json:"balance_after" example:"5"`
	CreatedAt    time.Time `json:"created_at" example:"2024-03-10T10:00:00+03:00"`
}

// SpendRequestDTO charges tokens for a generated AI plan.
type SpendRequestDTO struct {
	PlanID string `json:"plan_id" validate:"required,max=64" example:"plan-2024-03"`
	Amount int64  `json:"amount" validate:"required,gt=0" example:"4"`
}

type CreditRequestDTO struct {
	UserID    int64  `json:"user_id" validate:"required,gt=0" example:"1"`
	Amount    int64  `json:"amount" validate:"required,gt=0" example:"20"`
	Kind      string `json:"kind" validate:"required,oneof=PURCHASE BONUS" example:"PURCHASE"`
	PaymentID string `json:"payment_id" validate:"required_if=Kind PURCHASE,max=64" example:"pay-123"`
}
