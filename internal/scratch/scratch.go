// Package scratch manages per-request working directories.
//
// Types:
//   - Workspace: an isolated directory owned by one request.
//   - Manager: creates workspaces under a root and tracks the live ones.
//
// Every request gets its own directory, so concurrent requests never see
// each other's downloads. Release removes a workspace; Reap removes
// directories under the root that no live workspace owns, such as those left
// behind by a previous process.
package scratch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"pdf-stamp/internal/utils"
)

type Workspace struct {
	ID        string
	Dir       string
	CreatedAt time.Time
}

type Manager struct {
	root       string
	workspaces map[string]*Workspace
	mu         sync.RWMutex
}

// NewManager creates root if needed.
func NewManager(root string) (*Manager, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch root %s: %w", root, err)
	}
	return &Manager{
		root:       root,
		workspaces: make(map[string]*Workspace),
	}, nil
}

func (m *Manager) Root() string {
	return m.root
}

func (m *Manager) Create() (*Workspace, error) {
	id := utils.GenerateUUID()
	dir := filepath.Join(m.root, id)
	if err := os.Mkdir(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	ws := &Workspace{ID: id, Dir: dir, CreatedAt: time.Now()}

	m.mu.Lock()
	m.workspaces[id] = ws
	m.mu.Unlock()
	return ws, nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.workspaces)
}

// Release removes the workspace directory and forgets it.
func (m *Manager) Release(ws *Workspace) error {
	m.mu.Lock()
	delete(m.workspaces, ws.ID)
	m.mu.Unlock()
	return os.RemoveAll(ws.Dir)
}

// Reap removes directories under the root that are not live workspaces
// and were last modified more than maxAge ago. Workspaces still held by a
// request are never touched; their owner releases them. It returns how many
// directories it removed.
func (m *Manager) Reap(maxAge time.Duration) int {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m.mu.RLock()
		_, live := m.workspaces[entry.Name()]
		m.mu.RUnlock()
		if live {
			continue
		}
		info, err := entry.Info()
		if err != nil || time.Since(info.ModTime()) <= maxAge {
			continue
		}
		if os.RemoveAll(filepath.Join(m.root, entry.Name())) == nil {
			removed++
		}
	}
	return removed
}

// Cleanup releases every tracked workspace. Used on shutdown.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	all := m.workspaces
	m.workspaces = make(map[string]*Workspace)
	m.mu.Unlock()

	for _, ws := range all {
		_ = os.RemoveAll(ws.Dir)
	}
}

// Path returns the location of name inside the workspace. name is
// sanitized, so callers may pass names derived from URLs.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, utils.SanitizeFilename(name))
}

// WriteFile stores data under name and returns its path.
func (w *Workspace) WriteFile(name string, data []byte) (string, error) {
	p := w.Path(name)
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", p, err)
	}
	return p, nil
}
