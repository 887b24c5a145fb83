package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	type payload struct {
		Name  string  `json:"name"`
		Score float64 `json:"score"`
	}

	require.NoError(t, s.SetPermanent(ctx, "k", payload{Name: "Alice", Score: 45}))

	var out payload
	ok, err := s.Get(ctx, "k", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, payload{Name: "Alice", Score: 45}, out)
}

func TestMemoryStoreMissingKey(t *testing.T) {
	s := NewMemoryStore()
	var out map[string]string
	ok, err := s.Get(context.Background(), "absent", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "short", "v", 10*time.Millisecond))
	var out string
	ok, err := s.Get(ctx, "short", &out)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(30 * time.Millisecond)
	ok, err = s.Get(ctx, "short", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreUpdate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	err := s.Update(ctx, "list", func(current []byte, found bool) (interface{}, error) {
		assert.False(t, found)
		return []int{1}, nil
	})
	require.NoError(t, err)

	err = s.Update(ctx, "list", func(current []byte, found bool) (interface{}, error) {
		require.True(t, found)
		var list []int
		require.NoError(t, json.Unmarshal(current, &list))
		return append(list, 2), nil
	})
	require.NoError(t, err)

	var list []int
	ok, err := s.Get(ctx, "list", &list)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, list)
}

func TestMemoryStoreUpdateAbortsOnError(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.SetPermanent(ctx, "k", "before"))

	boom := errors.New("boom")
	err := s.Update(ctx, "k", func([]byte, bool) (interface{}, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	var out string
	ok, err := s.Get(ctx, "k", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "before", out)
}

func TestMemoryStoreUpdateConcurrentAppends(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(ctx, "counter", func(current []byte, found bool) (interface{}, error) {
				count := 0
				if found {
					_ = json.Unmarshal(current, &count)
				}
				return count + 1, nil
			})
		}()
	}
	wg.Wait()

	var count int
	ok, err := s.Get(ctx, "counter", &count)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, n, count)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.SetPermanent(ctx, "k", 1))
	require.NoError(t, s.Delete(ctx, "k"))

	var out int
	ok, err := s.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting an absent key is a no-op
	assert.NoError(t, s.Delete(ctx, "k"))
}
