package catalogstore

import "database/sql"

// Transaction is the Transaction Facade: a single *sql.Tx wrapped with the
// full Repository surface (see repository.go, allocator.go, settings.go).
// Every mutation issued through a Transaction commits together or rolls
// back together; there is no partial application.
//
// Commit is the only way to persist changes made through a Transaction.
// A Transaction obtained via Handle.Begin stays open, holding the store's
// single connection, until its caller calls Commit or Rollback; it is not
// rolled back automatically. Handle.withTx ends its own Transaction in a
// deferred cleanup that calls Rollback whenever Commit has not succeeded.
type Transaction struct {
	tx *sql.Tx
}

// Commit persists every change made through t.
func (t *Transaction) Commit() error {
	return t.tx.Commit()
}

// Rollback discards every change made through t. Calling Rollback after a
// successful Commit is a no-op error from database/sql that callers
// normally ignore (see Handle.withTx).
func (t *Transaction) Rollback() error {
	return t.tx.Rollback()
}

// withTx runs fn inside a fresh short transaction, committing on success
// and rolling back on any error (including a panic from fn, which is
// re-raised after rollback). This is how Handle exposes "implicit short
// transaction" semantics for single-call repository operations, while
// Begin exposes the explicit multi-call Transaction Facade for callers
// that need several mutations to commit atomically.
func (h *Handle) withTx(fn func(*Transaction) error) error {
	t, err := h.Begin()
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			t.Rollback()
		}
	}()

	if err := fn(t); err != nil {
		return err
	}
	if err := t.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
