package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/config"
	"github.com/SergeyBogomolovv/mpesa-checkout/internal/entities"
	"github.com/SergeyBogomolovv/mpesa-checkout/internal/postgres"
	"github.com/SergeyBogomolovv/mpesa-checkout/pkg/trm"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPostgresRepo(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("checkout"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	db, err := postgres.New(config.Postgres{
		Host:     host,
		Port:     port.Int(),
		DBName:   "checkout",
		User:     "testuser",
		Password: "testpass",
		SSLMode:  "disable",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, postgres.Migrate(db))
	// повторный запуск миграций не должен падать
	require.NoError(t, postgres.Migrate(db))

	runRepoSuite(t, func(t *testing.T) orderRepo {
		truncate(t, db)
		return NewPostgresRepo(db)
	})

	t.Run("create order in transaction", func(t *testing.T) {
		truncate(t, db)
		r := NewPostgresRepo(db)
		m := trm.NewManager(db, trm.WithIsolation(sql.LevelReadCommitted))

		order := newTestOrder("cust-tx", "ORD250101TXN001", time.Now().UTC())

		// позиции уже записаны, но ошибка откатывает весь заказ
		abort := errors.New("abort")
		err := m.Do(ctx, func(ctx context.Context) error {
			require.NoError(t, r.CreateOrder(ctx, order))
			return abort
		})
		require.ErrorIs(t, err, abort)

		_, err = r.GetOrderByID(ctx, order.ID)
		require.ErrorIs(t, err, entities.ErrOrderNotFound)

		require.NoError(t, m.Do(ctx, func(ctx context.Context) error {
			return r.CreateOrder(ctx, order)
		}))

		got, err := r.GetOrderByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Len(t, got.Items, 2)
	})
}

func truncate(t *testing.T, db *sqlx.DB) {
	for _, table := range []string{"order_items", "orders"} {
		_, err := db.Exec(fmt.Sprintf("TRUNCATE %s CASCADE", table))
		require.NoError(t, err)
	}
}
