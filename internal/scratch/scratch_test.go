package scratch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceLifecycle(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "scratch"))
	require.NoError(t, err)

	ws, err := m.Create()
	require.NoError(t, err)
	assert.DirExists(t, ws.Dir)
	assert.Equal(t, 1, m.Len())

	p, err := ws.WriteFile("../escape.pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ws.Dir, "escape.pdf"), p)
	assert.FileExists(t, p)

	require.NoError(t, m.Release(ws))
	assert.NoDirExists(t, ws.Dir)
	assert.Equal(t, 0, m.Len())
}

func TestConcurrentWorkspacesAreIsolated(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	const n = 16
	paths := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ws, err := m.Create()
			if !assert.NoError(t, err) {
				return
			}
			// Every request uses the same file name.
			p, err := ws.WriteFile("file1.pdf", []byte{byte(i)})
			assert.NoError(t, err)
			paths[i] = p
		}(i)
	}
	wg.Wait()

	for i, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, []byte{byte(i)}, data)
	}
	assert.Equal(t, n, m.Len())
}

func TestReapSkipsLiveWorkspaces(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	live, err := m.Create()
	require.NoError(t, err)
	_, err = live.WriteFile("a.pdf", []byte("%PDF"))
	require.NoError(t, err)
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(live.Dir, old, old))

	assert.Equal(t, 0, m.Reap(0))
	assert.DirExists(t, live.Dir)
	assert.FileExists(t, filepath.Join(live.Dir, "a.pdf"))
	assert.Equal(t, 1, m.Len())
}

func TestReapRemovesOrphans(t *testing.T) {
	root := t.TempDir()
	m, err := NewManager(root)
	require.NoError(t, err)

	stale := filepath.Join(root, "left-behind")
	require.NoError(t, os.Mkdir(stale, 0o700))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	recent := filepath.Join(root, "just-written")
	require.NoError(t, os.Mkdir(recent, 0o700))

	assert.Equal(t, 1, m.Reap(10*time.Minute))
	assert.NoDirExists(t, stale)
	assert.DirExists(t, recent)
}

func TestCleanup(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	ws, err := m.Create()
	require.NoError(t, err)

	m.Cleanup()
	assert.NoDirExists(t, ws.Dir)
	assert.Equal(t, 0, m.Len())
}
