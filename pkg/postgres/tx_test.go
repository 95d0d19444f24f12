package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	pgx.Tx
	committed   bool
	rolledBack  bool
	commitErr   error
	rollbackErr error
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rolledBack = true
	return f.rollbackErr
}

type fakeBeginner struct {
	tx   *fakeTx
	opts pgx.TxOptions
	err  error
}

func (f *fakeBeginner) BeginTx(_ context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.tx, nil
}

func TestWithTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		db := &fakeBeginner{tx: &fakeTx{}}
		require.NoError(t, WithTransaction(ctx, db, func(pgx.Tx) error { return nil }))

		assert.True(t, db.tx.committed)
		assert.False(t, db.tx.rolledBack)
		assert.Equal(t, pgx.ReadCommitted, db.opts.IsoLevel)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db := &fakeBeginner{tx: &fakeTx{}}
		boom := errors.New("boom")

		err := WithTransaction(ctx, db, func(pgx.Tx) error { return boom })
		require.ErrorIs(t, err, boom)
		assert.True(t, db.tx.rolledBack)
		assert.False(t, db.tx.committed)
	})

	t.Run("joins rollback failure", func(t *testing.T) {
		rbErr := errors.New("conn closed")
		db := &fakeBeginner{tx: &fakeTx{rollbackErr: rbErr}}
		boom := errors.New("boom")

		err := WithTransaction(ctx, db, func(pgx.Tx) error { return boom })
		require.ErrorIs(t, err, boom)
		require.ErrorIs(t, err, rbErr)
	})

	t.Run("begin failure", func(t *testing.T) {
		db := &fakeBeginner{err: errors.New("pool exhausted")}

		err := WithTransaction(ctx, db, func(pgx.Tx) error {
			t.Fatal("fn must not run")
			return nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "begin tx")
	})

	t.Run("rolls back and repanics", func(t *testing.T) {
		db := &fakeBeginner{tx: &fakeTx{}}

		assert.PanicsWithValue(t, "kaboom", func() {
			_ = WithTransaction(ctx, db, func(pgx.Tx) error { panic("kaboom") })
		})
		assert.True(t, db.tx.rolledBack)
	})
}

func TestWithTxOptions_PassesOptions(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	opts := pgx.TxOptions{IsoLevel: pgx.Serializable, AccessMode: pgx.ReadOnly}

	require.NoError(t, WithTxOptions(context.Background(), db, opts, func(pgx.Tx) error { return nil }))
	assert.Equal(t, opts, db.opts)
}
