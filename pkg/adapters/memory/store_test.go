package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mitsumolabs/quotetree/pkg/domain"
)

func TestStore_SaveLoadDelete(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	sess := domain.NewSession("entry")
	sess.Category = "inventory"

	if err := store.Save(ctx, "s1", sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Category != "inventory" {
		t.Errorf("Category = %q, want inventory", loaded.Category)
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Load(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Load after delete = %v, want ErrSessionNotFound", err)
	}
}

func TestStore_LoadUnknown(t *testing.T) {
	store := NewStore()
	if _, err := store.Load(context.Background(), "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestStore_CopyOnWriteAndRead(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	sess := domain.NewSession("entry")
	sess.Base = &domain.Selection{Key: "standard", Std: 100}
	if err := store.Save(ctx, "s1", sess); err != nil {
		t.Fatal(err)
	}

	// Mutating the original after save must not affect the stored copy.
	sess.Base.Std = 1
	sess.CurrentStepID = "elsewhere"

	loaded, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Base.Std != 100 || loaded.CurrentStepID != "entry" {
		t.Errorf("stored session shares memory with caller: %+v", loaded)
	}

	// Mutating a loaded copy must not affect the store either.
	loaded.Category = "hacked"
	again, _ := store.Load(ctx, "s1")
	if again.Category == "hacked" {
		t.Error("loaded session shares memory with the store")
	}
}

func TestStore_List(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := store.Save(ctx, id, domain.NewSession("entry")); err != nil {
			t.Fatal(err)
		}
	}

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 3 {
		t.Errorf("List returned %d ids, want 3", len(ids))
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Save(ctx, "shared", domain.NewSession("entry"))
			_, _ = store.Load(ctx, "shared")
			_, _ = store.List(ctx)
		}()
	}
	wg.Wait()
}
