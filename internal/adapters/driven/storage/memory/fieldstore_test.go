package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldStore_ReadWrite(t *testing.T) {
	ctx := context.Background()
	store := NewFieldStore(`[{"name":"A"}]`)

	got, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"A"}]`, got)

	require.NoError(t, store.Write(ctx, "[]"))
	got, err = store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
	assert.Equal(t, 1, store.Writes())
}

func TestFieldStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewFieldStore("x")

	_, err := store.Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	err = store.Write(ctx, "y")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, store.Writes())
}

func TestFieldStore_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := NewFieldStore("")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Write(ctx, "[4,-1]")
			_, _ = store.Read(ctx)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, store.Writes())
}
