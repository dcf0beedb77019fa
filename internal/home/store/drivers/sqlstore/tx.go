package sqlstore

import (
	"context"
	"database/sql"

	"github.com/hearthhq/hearth/internal/home/store"
)

type txStore struct {
	tx *sql.Tx
	d  Dialect
	q  *Queries
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the caller commits or rolls back and the pool stays open.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) Users() store.Users         { return &usersRepo{q: t.q, d: t.d} }
func (t *txStore) Buildings() store.Buildings { return &buildingsRepo{q: t.q, d: t.d} }
func (t *txStore) Rooms() store.Rooms         { return &roomsRepo{q: t.q, d: t.d} }
func (t *txStore) Devices() store.Devices     { return &devicesRepo{q: t.q, d: t.d} }
