package memory

import (
	"context"
	"testing"

	"ai-pitch-evaluator-be/internal/repository/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ contract.ResultRepository = (*ResultRepository)(nil)

func TestResultRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewResultRepository()

	_, found, err := repo.Get(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Put(ctx, "alice", []byte(`{"messages":[]}`)))
	require.NoError(t, repo.Put(ctx, "bob", []byte(`broken`)))
	require.NoError(t, repo.Put(ctx, "alice", []byte(`{"messages":[{"role":"user","content":"hi"}]}`)))

	val, found, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"messages":[{"role":"user","content":"hi"}]}`, string(val))

	all, err := repo.ListRaw(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestResultRepositoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	repo := NewResultRepository()

	buf := []byte(`{"a":1}`)
	require.NoError(t, repo.Put(ctx, "k", buf))
	buf[2] = 'X'

	val, _, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(val))
}
