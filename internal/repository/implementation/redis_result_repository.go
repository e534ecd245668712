package implementation

import (
	"context"
	"errors"
	"strings"

	"ai-pitch-evaluator-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 200

type RedisResultRepository struct {
	rdb    redis.UniversalClient
	prefix string
}

func NewRedisResultRepository(rdb redis.UniversalClient, prefix string) contract.ResultRepository {
	return &RedisResultRepository{rdb: rdb, prefix: prefix}
}

func (r *RedisResultRepository) key(userName string) string {
	return r.prefix + userName
}

func (r *RedisResultRepository) Get(ctx context.Context, userName string) ([]byte, bool, error) {
	val, err := r.rdb.Get(ctx, r.key(userName)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisResultRepository) Put(ctx context.Context, userName string, value []byte) error {
	return r.rdb.Set(ctx, r.key(userName), value, 0).Err()
}

// ListRaw walks the keyspace with SCAN and fetches values in MGET batches.
// SCAN may return a key more than once, so each key is fetched once. Keys
// that vanish between the two steps are left out.
func (r *RedisResultRepository) ListRaw(ctx context.Context) ([]contract.RawResult, error) {
	var out []contract.RawResult
	seen := make(map[string]struct{})
	var cursor uint64
	for {
		page, next, err := r.rdb.Scan(ctx, cursor, r.prefix+"*", scanBatch).Result()
		if err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(page))
		for _, k := range page {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
		if len(keys) > 0 {
			vals, err := r.rdb.MGet(ctx, keys...).Result()
			if err != nil {
				return nil, err
			}
			for i, v := range vals {
				s, ok := v.(string)
				if !ok {
					continue
				}
				out = append(out, contract.RawResult{
					UserName: strings.TrimPrefix(keys[i], r.prefix),
					Value:    []byte(s),
				})
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return out, nil
}
