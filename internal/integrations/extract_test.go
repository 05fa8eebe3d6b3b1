package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractList(t *testing.T) {
	keys := []string{"submissions", "items", "results", "data"}

	t.Run("bare list", func(t *testing.T) {
		items, ok := ExtractList([]byte(`[{"id":1},{"id":2}]`), keys...)
		require.True(t, ok)
		assert.Len(t, items, 2)
	})

	t.Run("first matching key wins", func(t *testing.T) {
		items, ok := ExtractList([]byte(`{"items":[{"id":1}],"data":[{"id":1},{"id":2}]}`), keys...)
		require.True(t, ok)
		assert.Len(t, items, 1)
	})

	t.Run("key holding a non-list is skipped", func(t *testing.T) {
		items, ok := ExtractList([]byte(`{"submissions":{"x":1},"data":[{"id":3}]}`), keys...)
		require.True(t, ok)
		assert.Len(t, items, 1)
	})

	t.Run("object without candidate keys", func(t *testing.T) {
		_, ok := ExtractList([]byte(`{"total":3}`), keys...)
		assert.False(t, ok)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, ok := ExtractList([]byte(`not json`), keys...)
		assert.False(t, ok)
	})
}

func TestExternalIDAcceptsNumbersAndStrings(t *testing.T) {
	var out struct {
		A ExternalID `json:"a"`
		B ExternalID `json:"b"`
		C ExternalID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":77,"b":" 55 ","c":null}`), &out))
	assert.Equal(t, ExternalID("77"), out.A)
	assert.Equal(t, ExternalID("55"), out.B)
	assert.Equal(t, ExternalID(""), out.C)

	err := json.Unmarshal([]byte(`{"a":{"nested":true}}`), &out)
	assert.Error(t, err)
}

func TestPaginate(t *testing.T) {
	ctx := context.Background()

	t.Run("stops at short page", func(t *testing.T) {
		calls := 0
		items, err := Paginate(ctx, 30, 500, func(_ context.Context, offset, limit int) ([]int, error) {
			calls++
			if offset >= 60 {
				return make([]int, 7), nil
			}
			return make([]int, limit), nil
		})
		require.NoError(t, err)
		assert.Len(t, items, 67)
		assert.Equal(t, 3, calls)
	})

	t.Run("terminates at ceiling when upstream always returns full pages", func(t *testing.T) {
		calls := 0
		items, err := Paginate(ctx, 30, 500, func(_ context.Context, _, limit int) ([]int, error) {
			calls++
			return make([]int, limit), nil
		})
		require.NoError(t, err)
		assert.Len(t, items, 500)
		assert.Equal(t, 17, calls)
	})

	t.Run("returns fetch error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Paginate(ctx, 10, 100, func(context.Context, int, int) ([]int, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("honours cancellation", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := Paginate(cctx, 10, 100, func(context.Context, int, int) ([]int, error) {
			t.Fatal("fetch must not be called")
			return nil, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rejects zero page size", func(t *testing.T) {
		_, err := Paginate(ctx, 0, 100, func(context.Context, int, int) ([]int, error) { return nil, nil })
		assert.Error(t, err)
	})
}
