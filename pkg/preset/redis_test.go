package preset

import (
	"context"
	"os"
	"testing"

	tgerrors "github.com/benjaminghys/Tile-Generator-Maya/pkg/errors"
)

// Set TILEGEN_TEST_REDIS=localhost:6379 to run against a live server.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TILEGEN_TEST_REDIS")
	if addr == "" {
		t.Skip("TILEGEN_TEST_REDIS not set")
	}
	ctx := context.Background()
	store, err := NewRedisStore(ctx, RedisConfig{Addr: addr, Prefix: "tilegen-test:" + t.Name() + ":"})
	if err != nil {
		t.Fatalf("NewRedisStore() error: %v", err)
	}
	defer store.Close()

	p := Default()
	p.Grid.Columns = 6
	if err := store.Put(ctx, "shared", p); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	t.Cleanup(func() { _ = store.Delete(context.Background(), "shared") })

	got, err := store.Get(ctx, "shared")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Grid.Columns != 6 {
		t.Errorf("Columns = %d, want 6", got.Grid.Columns)
	}

	names, err := store.List(ctx)
	if err != nil || len(names) != 1 || names[0] != "shared" {
		t.Errorf("List() = %v, %v", names, err)
	}

	if err := store.Delete(ctx, "shared"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "shared"); !tgerrors.Is(err, tgerrors.ErrCodePresetNotFound) {
		t.Errorf("Get(deleted) error = %v, want PRESET_NOT_FOUND", err)
	}
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRedisStore(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	if !tgerrors.Is(err, tgerrors.ErrCodeExternal) {
		t.Errorf("NewRedisStore() error = %v, want EXTERNAL", err)
	}
}
