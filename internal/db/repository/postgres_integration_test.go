//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/migrate"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// openTestQueries migrates the database named by PG_* and returns queries
// bound to a transaction that is rolled back when the test ends.
func openTestQueries(t *testing.T) *sqlcgen.Queries {
	t.Helper()
	ctx := context.Background()

	pg, err := config.LoadPostgres()
	if err != nil {
		t.Skipf("postgres not configured: %v", err)
	}
	pool, err := pgxpool.New(ctx, pg.ConnString())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	db := stdlib.OpenDBFromPool(pool)
	require.NoError(t, migrate.Run(ctx, db, "up", migrate.Options{Logger: zerolog.Nop()}))
	require.NoError(t, db.Close())

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	return sqlcgen.New(pool).WithTx(tx)
}

func TestPostgresCategoriesSeeded(t *testing.T) {
	queries := openTestQueries(t)
	repo := NewCategoryRepository(queries)

	rows, err := repo.List(context.Background())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 6)
	assert.Equal(t, "Science", rows[0].Type)

	_, err = repo.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresQuestionLifecycle(t *testing.T) {
	ctx := context.Background()
	queries := openTestQueries(t)
	repo := NewQuestionRepository(queries)

	before, err := repo.Count(ctx)
	require.NoError(t, err)

	row, err := repo.Insert(ctx, sqlcgen.InsertQuestionParams{
		Question:   "Which element has the symbol Zzq in this test?",
		Answer:     "None",
		Category:   1,
		Difficulty: 2,
	})
	require.NoError(t, err)

	found, err := repo.Search(ctx, "symbol zzQ")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, row.ID, found[0].ID)

	byCategory, err := repo.ListByCategory(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, byCategory, row)

	require.NoError(t, repo.Delete(ctx, row.ID))
	assert.ErrorIs(t, repo.Delete(ctx, row.ID), ErrNotFound)
	_, err = repo.Get(ctx, row.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	after, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
