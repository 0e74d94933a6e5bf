package ledgerrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gymslot/internal/domain"
	"github.com/GlebRadaev/gymslot/internal/pg"
)

const entryColumns = `id, user_id, delta, kind, ref_type, ref_id, balance_before, balance_after, created_at`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// LockBalance creates the balance row on first use and locks it until the
// surrounding transaction ends. Callers must already be inside a transaction.
func (r *Repository) LockBalance(ctx context.Context, userID int64) (int64, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_balances (user_id, balance)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		zap.L().Error("failed to ensure user balance", zap.Int64("user_id", userID), zap.Error(err))
		return 0, err
	}

	var balance int64
	err = r.db.QueryRow(ctx, `
		SELECT balance
		FROM user_balances
		WHERE user_id = $1
		FOR UPDATE
	`, userID).Scan(&balance)
	if err != nil {
		zap.L().Error("failed to lock user balance", zap.Int64("user_id", userID), zap.Error(err))
		return 0, err
	}
	return balance, nil
}

// Append writes the entry and moves the stored balance to entry.BalanceAfter.
func (r *Repository) Append(ctx context.Context, entry *domain.LedgerEntry) error {
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, `
			INSERT INTO ledger_entries (user_id, delta, kind, ref_type, ref_id, balance_before, balance_after)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at
		`, entry.UserID, entry.Delta, string(entry.Kind), entry.Ref.Type, entry.Ref.ID, entry.BalanceBefore, entry.BalanceAfter).
			Scan(&entry.ID, &entry.CreatedAt)
		if err != nil {
			zap.L().Error("failed to insert ledger entry", zap.Int64("user_id", entry.UserID), zap.Error(err))
			return err
		}

		_, err = r.db.Exec(ctx, `
			UPDATE user_balances
			SET balance = $1, updated_at = now()
			WHERE user_id = $2
		`, entry.BalanceAfter, entry.UserID)
		if err != nil {
			zap.L().Error("failed to update user balance", zap.Int64("user_id", entry.UserID), zap.Error(err))
			return err
		}
		return nil
	})
}

func (r *Repository) GetBalance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `
		SELECT balance
		FROM user_balances
		WHERE user_id = $1
	`, userID).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		zap.L().Error("failed to get user balance", zap.Int64("user_id", userID), zap.Error(err))
		return 0, err
	}
	return balance, nil
}

func (r *Repository) FindByRef(ctx context.Context, kind domain.TxKind, ref domain.Reference) (*domain.LedgerEntry, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		WHERE kind = $1 AND ref_type = $2 AND ref_id = $3
		ORDER BY id
		LIMIT 1
	`, string(kind), ref.Type, ref.ID)

	entry, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("failed to find ledger entry", zap.String("ref", ref.String()), zap.Error(err))
		return nil, err
	}
	return entry, nil
}

func (r *Repository) History(ctx context.Context, userID int64, limit int) ([]domain.LedgerEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		zap.L().Error("failed to fetch ledger history", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			zap.L().Error("failed to scan ledger entry", zap.Error(err))
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func (r *Repository) Audit(ctx context.Context, userID int64) (*domain.BalanceAudit, error) {
	audit := domain.BalanceAudit{UserID: userID}
	err := r.db.QueryRow(ctx, `
		SELECT
			COALESCE((SELECT balance FROM user_balances WHERE user_id = $1), 0),
			COALESCE(SUM(delta), 0),
			COUNT(*),
			COALESCE((SELECT balance_after FROM ledger_entries WHERE user_id = $1 ORDER BY id DESC LIMIT 1), 0)
		FROM ledger_entries
		WHERE user_id = $1
	`, userID).Scan(&audit.Stored, &audit.SumOfDeltas, &audit.EntriesCount, &audit.LastAfter)
	if err != nil {
		zap.L().Error("failed to audit balance", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	audit.Consistent = audit.Stored == audit.SumOfDeltas && audit.Stored == audit.LastAfter
	return &audit, nil
}

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var entry domain.LedgerEntry
	var kind string
	err := row.Scan(&entry.ID, &entry.UserID, &entry.Delta, &kind, &entry.Ref.Type, &entry.Ref.ID,
		&entry.BalanceBefore, &entry.BalanceAfter, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}
	entry.Kind = domain.TxKind(kind)
	return &entry, nil
}
