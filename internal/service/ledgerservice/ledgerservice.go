package ledgerservice

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GlebRadaev/gymslot/internal/domain"
	"github.com/GlebRadaev/gymslot/internal/pg"
)

//go:generate mockgen -source=ledgerservice.go -destination=mock_ledgerservice.go -package=ledgerservice

type Repo interface {
	LockBalance(ctx context.Context, userID int64) (int64, error)
	Append(ctx context.Context, entry *domain.LedgerEntry) error
	GetBalance(ctx context.Context, userID int64) (int64, error)
	FindByRef(ctx context.Context, kind domain.TxKind, ref domain.Reference) (*domain.LedgerEntry, error)
	History(ctx context.Context, userID int64, limit int) ([]domain.LedgerEntry, error)
	Audit(ctx context.Context, userID int64) (*domain.BalanceAudit, error)
}

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidKind         = errors.New("transaction kind not allowed")
	ErrDuplicateReference  = errors.New("reference already settled")
)

const defaultHistoryLimit = 100

type Service struct {
	repo      Repo
	txManager pg.TXManager
}

func New(repo Repo, txManager pg.TXManager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// Debit takes amount tokens from the user; only SPEND entries subtract.
func (s *Service) Debit(ctx context.Context, userID, amount int64, kind domain.TxKind, ref domain.Reference) (*domain.LedgerEntry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if kind != domain.TxSpend {
		return nil, ErrInvalidKind
	}

	var entry *domain.LedgerEntry
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		balance, err := s.repo.LockBalance(ctx, userID)
		if err != nil {
			return err
		}
		if amount > balance {
			return ErrInsufficientBalance
		}
		entry = &domain.LedgerEntry{
			UserID:        userID,
			Delta:         -amount,
			Kind:          kind,
			Ref:           ref,
			BalanceBefore: balance,
			BalanceAfter:  balance - amount,
		}
		return s.repo.Append(ctx, entry)
	})
	if err != nil {
		if !errors.Is(err, ErrInsufficientBalance) {
			zap.L().Error("debit failed", zap.Int64("user_id", userID), zap.Int64("amount", amount), zap.Error(err))
		}
		return nil, err
	}
	return entry, nil
}

// Credit adds amount tokens. Purchases that carry a reference are applied once.
func (s *Service) Credit(ctx context.Context, userID, amount int64, kind domain.TxKind, ref domain.Reference) (*domain.LedgerEntry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !kind.Valid() || kind == domain.TxSpend {
		return nil, ErrInvalidKind
	}

	var entry *domain.LedgerEntry
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.credit(ctx, userID, amount, kind, ref)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrDuplicateReference) {
			zap.L().Error("credit failed", zap.Int64("user_id", userID), zap.Int64("amount", amount), zap.Error(err))
		}
		return nil, err
	}
	return entry, nil
}

func (s *Service) credit(ctx context.Context, userID, amount int64, kind domain.TxKind, ref domain.Reference) (*domain.LedgerEntry, error) {
	balance, err := s.repo.LockBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ref.ID != "" && (kind == domain.TxPurchase || kind == domain.TxRefund) {
		existing, err := s.repo.FindByRef(ctx, kind, ref)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, ErrDuplicateReference
		}
	}
	entry := &domain.LedgerEntry{
		UserID:        userID,
		Delta:         amount,
		Kind:          kind,
		Ref:           ref,
		BalanceBefore: balance,
		BalanceAfter:  balance + amount,
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// CreditRefundForBooking returns the booking's spend once. The bool reports
// whether a refund entry was written by this call.
func (s *Service) CreditRefundForBooking(ctx context.Context, bookingID int64) (*domain.LedgerEntry, bool, error) {
	ref := domain.BookingRef(bookingID)

	var entry *domain.LedgerEntry
	var refunded bool
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		spend, err := s.repo.FindByRef(ctx, domain.TxSpend, ref)
		if err != nil {
			return err
		}
		if spend == nil {
			return nil
		}
		entry, err = s.credit(ctx, spend.UserID, -spend.Delta, domain.TxRefund, ref)
		if errors.Is(err, ErrDuplicateReference) {
			entry = nil
			return nil
		}
		if err != nil {
			return err
		}
		refunded = true
		return nil
	})
	if err != nil {
		zap.L().Error("refund failed", zap.Int64("booking_id", bookingID), zap.Error(err))
		return nil, false, fmt.Errorf("refund booking %d: %w", bookingID, err)
	}
	if refunded {
		zap.L().Info("booking refunded", zap.Int64("booking_id", bookingID), zap.Int64("user_id", entry.UserID), zap.Int64("tokens", entry.Delta))
	}
	return entry, refunded, nil
}

func (s *Service) BalanceOf(ctx context.Context, userID int64) (int64, error) {
	balance, err := s.repo.GetBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Int64("user_id", userID), zap.Error(err))
		return 0, err
	}
	return balance, nil
}

func (s *Service) History(ctx context.Context, userID int64, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	return s.repo.History(ctx, userID, limit)
}

func (s *Service) Audit(ctx context.Context, userID int64) (*domain.BalanceAudit, error) {
	audit, err := s.repo.Audit(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !audit.Consistent {
		zap.L().Error("ledger drift detected",
			zap.Int64("user_id", userID),
			zap.Int64("stored", audit.Stored),
			zap.Int64("sum_of_deltas", audit.SumOfDeltas),
			zap.Int64("last_balance_after", audit.LastAfter),
		)
	}
	return audit, nil
}
