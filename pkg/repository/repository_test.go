package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates repositories on an in-memory database
func setupTestDB(t *testing.T, pageSize int) *Repositories {
	t.Helper()
	cfg := Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		PageSize:        pageSize,
	}
	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

func TestNewRepositories(t *testing.T) {
	repos := setupTestDB(t, 0)
	require.NoError(t, repos.Ping(context.Background()))
	assert.NotNil(t, repos.Catalog)
	assert.NotNil(t, repos.Subscriber)
	assert.NotNil(t, repos.Shared)
	assert.Equal(t, defaultPageSize, repos.Subscriber.pageSize)

	// schema is idempotent
	require.NoError(t, initSchema(context.Background(), repos.DB))
}

func TestNewRepositories_BadDSN(t *testing.T) {
	_, err := NewRepositories(context.Background(), Config{DSN: "file:/nonexistent/dir/x.db?mode=ro"})
	require.Error(t, err)
}

func TestJSONSQL(t *testing.T) {
	var j jsonSQL[[]string]
	require.NoError(t, j.Scan(`["a","b"]`))
	assert.Equal(t, []string{"a", "b"}, j.V)

	require.NoError(t, j.Scan([]byte(`["c"]`)))
	assert.Equal(t, []string{"c"}, j.V)

	var empty jsonSQL[[]string]
	require.NoError(t, empty.Scan(nil))
	assert.Nil(t, empty.V)

	require.Error(t, j.Scan(42))

	v, err := jsonSQL[[]string]{V: []string{"x"}}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["x"]`, v)
}

func TestIsLockError(t *testing.T) {
	assert.False(t, isLockError(nil))
	assert.False(t, isLockError(assert.AnError))
	assert.True(t, isLockError(errString("database is locked (5) (SQLITE_BUSY)")))
	assert.True(t, isLockError(errString("database table is locked")))
}

func TestWithRetry(t *testing.T) {
	t.Run("retries lock errors", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errString("database is locked")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on other errors", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), func() error {
			calls++
			return assert.AnError
		})
		require.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 1, calls)
	})
}

type errString string

func (e errString) Error() string { return string(e) }
