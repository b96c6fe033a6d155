package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/alecthomas/assert"
	"github.com/go-redis/redis/v8"

	"github.com/brightlane/sitecms/internal/domain/entities"
)

// newRedisRepo connects to SITECMS_TEST_REDIS_ADDR, e.g. localhost:6379
func newRedisRepo(t *testing.T) *RedisRepository {
	addr := os.Getenv("SITECMS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SITECMS_TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	assert.NoError(t, client.Ping(context.Background()).Err())

	prefix := uniqueName() + ":"
	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := client.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		_ = client.Close()
	})
	return NewRedisRepository(client, prefix)
}

func TestRedisLoadSeedsDefaults(t *testing.T) {
	r := newRedisRepo(t)
	ctx := context.Background()

	data, err := r.Load(ctx, "blogs", []byte(`[1]`))
	assert.NoError(t, err)
	assert.Equal(t, []int{1}, decodeInts(t, data))

	// defaults only apply to a missing key
	data, err = r.Load(ctx, "blogs", []byte(`[2]`))
	assert.NoError(t, err)
	assert.Equal(t, []int{1}, decodeInts(t, data))

	assert.NoError(t, r.Ping(ctx))
}

func TestRedisSaveAndMutate(t *testing.T) {
	r := newRedisRepo(t)
	ctx := context.Background()

	assert.NoError(t, r.Save(ctx, "services", []byte(`[1,2]`)))

	err := r.Mutate(ctx, "services", []byte(`[]`), func(current []byte) ([]byte, error) {
		return []byte(`[1,2,3]`), nil
	})
	assert.NoError(t, err)

	data, err := r.Load(ctx, "services", []byte(`[]`))
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, decodeInts(t, data))

	err = r.Mutate(ctx, "services", nil, func([]byte) ([]byte, error) {
		return nil, entities.ErrNotFound
	})
	assert.True(t, errors.Is(err, entities.ErrNotFound))
}

func TestRedisConcurrentMutations(t *testing.T) {
	r := newRedisRepo(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := r.Mutate(ctx, "counter", []byte(`[]`), func(current []byte) ([]byte, error) {
				var ids []int
				if err := json.Unmarshal(current, &ids); err != nil {
					return nil, err
				}
				return json.Marshal(append(ids, len(ids)+1))
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	data, err := r.Load(ctx, "counter", nil)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, decodeInts(t, data))
}
