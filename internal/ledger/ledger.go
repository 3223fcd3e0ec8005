// Package ledger implements the balance invariant engine. Every mutation of a
// user's available/pending balance flows through the four operations here, so
// the set of legal transitions stays closed and auditable.
package ledger

import (
	"github.com/michealohagwam/dta-backend-clean/internal/logger"
	"github.com/michealohagwam/dta-backend-clean/pkg/apperrors"

	"gorm.io/gorm"
)

// BalanceStore applies balance deltas as single guarded updates. Each call is
// atomic at the row level: the guard and the mutation happen in one statement,
// and a false return means the guard failed (no mutation occurred).
type BalanceStore interface {
	// Reserve debits available and credits pending, guarded by available >= amount.
	Reserve(db *gorm.DB, userID string, amount float64) (bool, error)
	// Release credits available and debits pending, guarded by pending >= amount.
	Release(db *gorm.DB, userID string, amount float64) (bool, error)
	// Settle debits pending only (funds have left the system), guarded by pending >= amount.
	Settle(db *gorm.DB, userID string, amount float64) (bool, error)
	// Credit adds to available with no guard.
	Credit(db *gorm.DB, userID string, amount float64) (bool, error)
}

type Engine struct {
	store BalanceStore
}

func NewEngine(store BalanceStore) *Engine {
	return &Engine{store: store}
}

// ReserveForWithdrawal moves amount from available into pending.
func (e *Engine) ReserveForWithdrawal(db *gorm.DB, userID string, amount float64) error {
	if amount <= 0 {
		return apperrors.NewBadRequestError("amount must be positive")
	}

	ok, err := e.store.Reserve(db, userID, amount)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !ok {
		return apperrors.ErrInsufficientBalance
	}
	return nil
}

// ReleaseReservation returns a declined withdrawal's amount to available.
// A failed guard here means reservations were not tracked correctly; that is
// bookkeeping corruption, not bad input.
func (e *Engine) ReleaseReservation(db *gorm.DB, userID string, amount float64) error {
	if amount <= 0 {
		return apperrors.NewBadRequestError("amount must be positive")
	}

	ok, err := e.store.Release(db, userID, amount)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !ok {
		logger.Critical("balance release guard failed: pending below reserved amount",
			"user_id", userID, "amount", amount)
		return apperrors.ErrInvariantViolation("ledger", "pending balance below reservation on release")
	}
	return nil
}

// SettleReservation removes a paid withdrawal's amount from pending.
func (e *Engine) SettleReservation(db *gorm.DB, userID string, amount float64) error {
	if amount <= 0 {
		return apperrors.NewBadRequestError("amount must be positive")
	}

	ok, err := e.store.Settle(db, userID, amount)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !ok {
		logger.Critical("balance settle guard failed: pending below reserved amount",
			"user_id", userID, "amount", amount)
		return apperrors.ErrInvariantViolation("ledger", "pending balance below reservation on settle")
	}
	return nil
}

// Credit adds amount to available. source names the origin for the log line
// (task reward, deposit, referral bonus).
func (e *Engine) Credit(db *gorm.DB, userID string, amount float64, source string) error {
	if amount <= 0 {
		return apperrors.NewBadRequestError("amount must be positive")
	}

	ok, err := e.store.Credit(db, userID, amount)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !ok {
		return apperrors.ErrNotFound(nil)
	}

	logger.Debug("balance credited", "user_id", userID, "amount", amount, "source", source)
	return nil
}
