package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
}

func TestListDocuments(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b", "CPI-02-azure-CACHE.json"))
	touch(t, filepath.Join(root, "CPI-01-azure-CACHE.json"))
	touch(t, filepath.Join(root, "CPI-01.pdf"))
	touch(t, filepath.Join(root, "CPI-03.png"))
	touch(t, filepath.Join(root, "CPI-01-RESULTS.json"))
	touch(t, filepath.Join(root, ".hidden", "CPI-09-azure-CACHE.json"))

	cached, uncached, stats, err := ListDocuments(root, true)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "CPI-01-azure-CACHE.json"),
		filepath.Join(root, "b", "CPI-02-azure-CACHE.json"),
	}, cached)
	assert.Equal(t, []string{filepath.Join(root, "CPI-03.png")}, uncached)
	assert.EqualValues(t, 5, stats.Scanned)
	assert.EqualValues(t, 2, stats.Matched)
	assert.EqualValues(t, 1, stats.Uncached)

	cached, _, _, err = ListDocuments(root, false)
	require.NoError(t, err)
	assert.Len(t, cached, 3)
}

func TestListDocumentsErrors(t *testing.T) {
	_, _, _, err := ListDocuments("  ", true)
	assert.Error(t, err)

	_, _, _, err = ListDocuments(filepath.Join(t.TempDir(), "missing"), true)
	assert.Error(t, err)
}

func TestIsHidden(t *testing.T) {
	assert.True(t, IsHidden("/a/.git"))
	assert.False(t, IsHidden("/a/CPI-01.pdf"))
}

func TestStartWatcherInitialScanAndEvents(t *testing.T) {
	root := t.TempDir()
	existing := filepath.Join(root, "CPI-01-azure-CACHE.json")
	touch(t, existing)
	touch(t, filepath.Join(root, "notes.txt"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := StartWatcher(ctx, WatchConfig{
		Roots:       []string{root},
		InitialScan: true,
		Debounce:    20 * time.Millisecond,
	})
	require.NoError(t, err)

	select {
	case p := <-events:
		assert.Equal(t, existing, p)
	case <-time.After(2 * time.Second):
		t.Fatal("initial scan did not emit the cached result")
	}

	created := filepath.Join(root, "CPI-02-azure-CACHE.json")
	touch(t, created)
	select {
	case p := <-events:
		assert.Equal(t, created, p)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not emit the new cached result")
	}

	cancel()
	for range events {
	}
}

func TestStartWatcherRequiresRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{})
	assert.Error(t, err)
}
