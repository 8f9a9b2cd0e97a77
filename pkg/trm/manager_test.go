package trm

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingDriver считает begin/commit/rollback, запросы не поддерживает
type countingDriver struct {
	begins    int
	commits   int
	rollbacks int
	isolation driver.IsolationLevel

	beginErr  error
	commitErr error
}

func (d *countingDriver) Connect(context.Context) (driver.Conn, error) { return &countingConn{d: d}, nil }
func (d *countingDriver) Driver() driver.Driver                         { return d }
func (d *countingDriver) Open(string) (driver.Conn, error)              { return &countingConn{d: d}, nil }

type countingConn struct {
	d *countingDriver
}

func (c *countingConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("queries are not supported")
}

func (c *countingConn) Close() error { return nil }

func (c *countingConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *countingConn) BeginTx(_ context.Context, opts driver.TxOptions) (driver.Tx, error) {
	if c.d.beginErr != nil {
		return nil, c.d.beginErr
	}
	c.d.begins++
	c.d.isolation = opts.Isolation
	return countingTx{d: c.d}, nil
}

type countingTx struct {
	d *countingDriver
}

func (t countingTx) Commit() error {
	t.d.commits++
	return t.d.commitErr
}

func (t countingTx) Rollback() error {
	t.d.rollbacks++
	return nil
}

func newTestManager(t *testing.T, d *countingDriver, opts ...Option) Manager {
	t.Helper()

	db := sqlx.NewDb(sql.OpenDB(d), "postgres")
	t.Cleanup(func() { db.Close() })
	return NewManager(db, opts...)
}

func TestManager_Do(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		d := &countingDriver{}
		m := newTestManager(t, d, WithIsolation(sql.LevelReadCommitted))

		err := m.Do(ctx, func(ctx context.Context) error {
			assert.NotNil(t, ExtractTx(ctx))
			return nil
		})
		require.NoError(t, err)

		assert.Equal(t, 1, d.commits)
		assert.Equal(t, 0, d.rollbacks)
		assert.Equal(t, driver.IsolationLevel(sql.LevelReadCommitted), d.isolation)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		d := &countingDriver{}
		m := newTestManager(t, d)

		wantErr := errors.New("callback error")
		err := m.Do(ctx, func(context.Context) error { return wantErr })
		assert.ErrorIs(t, err, wantErr)

		assert.Equal(t, 0, d.commits)
		assert.Equal(t, 1, d.rollbacks)
	})

	t.Run("nested call joins outer transaction", func(t *testing.T) {
		d := &countingDriver{}
		m := newTestManager(t, d)

		err := m.Do(ctx, func(outer context.Context) error {
			return m.Do(outer, func(inner context.Context) error {
				assert.Same(t, ExtractTx(outer), ExtractTx(inner))
				return nil
			})
		})
		require.NoError(t, err)

		assert.Equal(t, 1, d.begins)
		assert.Equal(t, 1, d.commits)
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		d := &countingDriver{}
		m := newTestManager(t, d)

		assert.PanicsWithValue(t, "boom", func() {
			_ = m.Do(ctx, func(context.Context) error { panic("boom") })
		})
		assert.Equal(t, 0, d.commits)
		assert.Equal(t, 1, d.rollbacks)
	})

	t.Run("begin error", func(t *testing.T) {
		wantErr := errors.New("connection refused")
		d := &countingDriver{beginErr: wantErr}
		m := newTestManager(t, d)

		called := false
		err := m.Do(ctx, func(context.Context) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, wantErr)
		assert.False(t, called)
	})

	t.Run("commit error", func(t *testing.T) {
		wantErr := errors.New("serialization failure")
		d := &countingDriver{commitErr: wantErr}
		m := newTestManager(t, d)

		err := m.Do(ctx, func(context.Context) error { return nil })
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 1, d.commits)
	})
}

func TestQuerierFrom(t *testing.T) {
	d := &countingDriver{}
	db := sqlx.NewDb(sql.OpenDB(d), "postgres")
	t.Cleanup(func() { db.Close() })

	assert.Same(t, db, QuerierFrom(context.Background(), db))

	err := NewManager(db).Do(context.Background(), func(ctx context.Context) error {
		assert.Same(t, ExtractTx(ctx), QuerierFrom(ctx, db))
		return nil
	})
	require.NoError(t, err)
}

func TestNopManager_Do(t *testing.T) {
	m := NewNopManager()
	ctx := context.Background()

	called := false
	err := m.Do(ctx, func(ctx context.Context) error {
		called = true
		assert.Nil(t, ExtractTx(ctx))
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)

	wantErr := errors.New("callback error")
	err = m.Do(ctx, func(context.Context) error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}
