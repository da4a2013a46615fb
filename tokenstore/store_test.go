package tokenstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQL(t *testing.T) *SQL {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	s, err := NewSQL(db)
	require.NoError(t, err)
	return s
}

func newRedis(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedis(client, "delivrya:", ttl), mr
}

func TestStores(t *testing.T) {
	rs, _ := newRedis(t, 0)
	stores := map[string]Store{
		"memory": NewMemory(),
		"sql":    newSQL(t),
		"redis":  rs,
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Get(ctx, TokenKey)
			assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)

			require.NoError(t, s.Set(ctx, TokenKey, "abc"))
			v, err := s.Get(ctx, TokenKey)
			require.NoError(t, err)
			assert.Equal(t, "abc", v)

			require.NoError(t, s.Set(ctx, TokenKey, "def"))
			v, err = s.Get(ctx, TokenKey)
			require.NoError(t, err)
			assert.Equal(t, "def", v)

			require.NoError(t, s.Delete(ctx, TokenKey))
			_, err = s.Get(ctx, TokenKey)
			assert.True(t, errors.Is(err, ErrNotFound))

			require.NoError(t, s.Delete(ctx, "never-set"))
		})
	}
}

func TestRedisUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "localhost:0",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	s := NewRedis(client, "delivrya:", 0)
	ctx := context.Background()

	err := s.Set(ctx, TokenKey, "abc")
	assert.Error(t, err)

	_, err = s.Get(ctx, TokenKey)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "delivrya:userToken", s.key(TokenKey))
}

func TestRedisKeysAndTTL(t *testing.T) {
	s, mr := newRedis(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, TokenKey, "abc"))
	assert.True(t, mr.Exists("delivrya:userToken"))
	assert.False(t, mr.Exists(TokenKey))
	got, err := mr.Get("delivrya:userToken")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
	assert.Equal(t, time.Hour, mr.TTL("delivrya:userToken"))

	mr.FastForward(59 * time.Minute)
	v, err := s.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	mr.FastForward(2 * time.Minute)
	_, err = s.Get(ctx, TokenKey)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestRedisWithoutTTL(t *testing.T) {
	s, mr := newRedis(t, 0)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, TokenKey, "abc"))
	assert.Zero(t, mr.TTL("delivrya:userToken"))
	mr.FastForward(48 * time.Hour)
	v, err := s.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "abc", v)
}
