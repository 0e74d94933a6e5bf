package domain

import (
	"strconv"
	"time"
)

type TxKind string

const (
	TxPurchase TxKind = "PURCHASE"
	TxSpend    TxKind = "SPEND"
	TxRefund   TxKind = "REFUND"
	TxBonus    TxKind = "BONUS"
)

func (k TxKind) Valid() bool {
	switch k {
	case TxPurchase, TxSpend, TxRefund, TxBonus:
		return true
	}
	return false
}

const (
	RefBooking = "booking"
	RefPayment = "payment"
	RefAIPlan  = "ai_plan"
)

// Reference points a ledger entry at the entity that caused it.
type Reference struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

func BookingRef(bookingID int64) Reference {
	return Reference{Type: RefBooking, ID: strconv.FormatInt(bookingID, 10)}
}

func (r Reference) String() string {
	if r.Type == "" {
		return ""
	}
	return r.Type + ":" + r.ID
}

type LedgerEntry struct {
	ID            int64     `db:"id"`
	UserID        int64     `db:"user_id"`
	Delta         int64     `db:"delta"`
	Kind          TxKind    `db:"kind"`
	Ref           Reference `db:"-"`
	BalanceBefore int64     `db:"balance_before"`
	BalanceAfter  int64     `db:"balance_after"`
	CreatedAt     time.Time `db:"created_at"`
}

// BalanceAudit compares the stored balance with what the log implies.
type BalanceAudit struct {
	UserID       int64
	Stored       int64
	SumOfDeltas  int64
	LastAfter    int64
	EntriesCount int64
	Consistent   bool
}
