package memory

import (
	"context"

	"ai-pitch-evaluator-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// ResultRepository keeps records in process memory. Entries never expire;
// it backs tests and single-node demos.
type ResultRepository struct {
	cache *cache.Cache
}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{cache: cache.New(cache.NoExpiration, 0)}
}

func (r *ResultRepository) Get(ctx context.Context, userName string) ([]byte, bool, error) {
	if x, found := r.cache.Get(userName); found {
		return clone(x.([]byte)), true, nil
	}
	return nil, false, nil
}

func (r *ResultRepository) Put(ctx context.Context, userName string, value []byte) error {
	r.cache.Set(userName, clone(value), cache.NoExpiration)
	return nil
}

func (r *ResultRepository) ListRaw(ctx context.Context) ([]contract.RawResult, error) {
	items := r.cache.Items()
	out := make([]contract.RawResult, 0, len(items))
	for k, item := range items {
		out = append(out, contract.RawResult{UserName: k, Value: clone(item.Object.([]byte))})
	}
	return out, nil
}

func clone(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
