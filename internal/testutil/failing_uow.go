package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/rota/internal/db"
)

// FailingUoW runs transactions like the real UnitOfWork but fails the first
// write whose SQL contains Match, so tests can stop a snapshot save halfway
// and check that nothing was committed. Reads are never failed.
type FailingUoW struct {
	DB    *sql.DB
	Match string
	Err   error

	mu    sync.Mutex
	execs []string
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if fnErr := fn(ctx, &failingTx{DBTX: tx, uow: u}); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

// Execs returns every write statement attempted so far, failed ones included.
func (u *FailingUoW) Execs() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.execs...)
}

type failingTx struct {
	db.DBTX
	uow *FailingUoW
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.uow.mu.Lock()
	f.uow.execs = append(f.uow.execs, strings.Join(strings.Fields(query), " "))
	f.uow.mu.Unlock()

	if f.uow.Match != "" && strings.Contains(query, f.uow.Match) {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
