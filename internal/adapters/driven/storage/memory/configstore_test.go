package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("collector.workers", 3))

	val, ok := store.Get("collector.workers")
	assert.True(t, ok)
	assert.Equal(t, 3, val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_Seed(t *testing.T) {
	store := NewConfigStore(map[string]any{"a": "1"}, map[string]any{"a": "2", "b": true})

	assert.Equal(t, "2", store.GetString("a"))
	assert.True(t, store.GetBool("b"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"int":     7,
		"int64":   int64(8),
		"float":   9.0,
		"string":  " 10 ",
		"garbage": "ten",
		"bool":    true,
	})

	assert.Equal(t, 7, store.GetInt("int"))
	assert.Equal(t, 8, store.GetInt("int64"))
	assert.Equal(t, 9, store.GetInt("float"))
	assert.Equal(t, 10, store.GetInt("string"))
	assert.Zero(t, store.GetInt("garbage"))
	assert.Zero(t, store.GetInt("bool"))
	assert.Zero(t, store.GetInt("missing"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"bool":    true,
		"string":  "true",
		"garbage": "yes please",
	})

	assert.True(t, store.GetBool("bool"))
	assert.True(t, store.GetBool("string"))
	assert.False(t, store.GetBool("garbage"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_GetString_WrongType(t *testing.T) {
	store := NewConfigStore(map[string]any{"n": 1})
	assert.Empty(t, store.GetString("n"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"typed":  []string{"a", "b"},
		"any":    []any{"a", 1, "b"},
		"commas": "a, b,,c ",
		"num":    3,
	})

	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("typed"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("any"))
	assert.Equal(t, []string{"a", "b", "c"}, store.GetStringSlice("commas"))
	assert.Nil(t, store.GetStringSlice("num"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_GetStringSlice_ReturnsCopy(t *testing.T) {
	store := NewConfigStore(map[string]any{"typed": []string{"a"}})

	got := store.GetStringSlice("typed")
	got[0] = "changed"
	assert.Equal(t, []string{"a"}, store.GetStringSlice("typed"))
}

func TestConfigStore_PersistenceNoOps(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("k", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("k")
		}()
	}
	wg.Wait()

	_, ok := store.Get("k")
	assert.True(t, ok)
}
