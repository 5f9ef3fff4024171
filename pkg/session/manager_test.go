package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitsumolabs/quotetree/pkg/adapters/memory"
	"github.com/mitsumolabs/quotetree/pkg/domain"
)

func TestManager_LoadOrStart(t *testing.T) {
	m := NewManager(memory.NewStore())
	ctx := context.Background()

	started := 0
	start := func() *domain.Session {
		started++
		return domain.NewSession("entry")
	}

	sess, err := m.LoadOrStart(ctx, "s1", start)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, 1, started)

	// Second call loads the stored session instead of starting a new one.
	again, err := m.LoadOrStart(ctx, "s1", start)
	require.NoError(t, err)
	assert.Equal(t, 1, started)
	assert.Equal(t, sess.CurrentStepID, again.CurrentStepID)
}

func TestManager_SaveAndLoad(t *testing.T) {
	m := NewManager(memory.NewStore())
	ctx := context.Background()

	sess := domain.NewSession("entry")
	sess.Category = "hr"
	require.NoError(t, m.Save(ctx, "s1", sess))

	loaded, err := m.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "hr", loaded.Category)
}

func TestManager_LoadMissing(t *testing.T) {
	m := NewManager(memory.NewStore())
	_, err := m.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_WithLockSerializes(t *testing.T) {
	m := NewManager(memory.NewStore())
	ctx := context.Background()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.WithLock(ctx, "same", func(context.Context) error {
				counter++ // would race without the per-id lock
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 32, counter)
}

func TestManager_LockEntriesAreCollected(t *testing.T) {
	m := NewManager(memory.NewStore())
	ctx := context.Background()

	require.NoError(t, m.WithLock(ctx, "once", func(context.Context) error { return nil }))

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Empty(t, m.locks, "lock entries must be garbage collected at refcount zero")
}
