package repo

import (
	"context"
	"testing"

	"github.com/SergeyBogomolovv/mpesa-checkout/internal/config"
	mongoconn "github.com/SergeyBogomolovv/mpesa-checkout/internal/mongodb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMongoRepo(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}

	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	runRepoSuite(t, func(t *testing.T) orderRepo {
		db, err := connectMongo(ctx, uri)
		require.NoError(t, err)
		t.Cleanup(func() { db.Client().Disconnect(ctx) })

		r := NewMongoRepo(db)
		require.NoError(t, r.CreateIndexes(ctx))
		return r
	})
}

// каждый подтест получает свою базу
func connectMongo(ctx context.Context, uri string) (*mongo.Database, error) {
	return mongoconn.New(ctx, config.Mongo{
		URI:         uri,
		Database:    "test_" + uuid.NewString()[:8],
		MaxPoolSize: 10,
	})
}
