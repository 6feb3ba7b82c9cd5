package native

import (
	"sync"

	"go.uber.org/zap"
)

// State describes the library handle lifecycle.
type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateLoadFailed
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateLoadFailed:
		return "load_failed"
	default:
		return "unloaded"
	}
}

// Status is a point-in-time snapshot of the manager state.
type Status struct {
	State State
	Path  string
	Err   error
}

// Lib is the view of a loaded library granted for the duration of a
// With call. It must not escape that call.
type Lib struct {
	loader Loader
	handle uintptr
}

// Manager owns the process-wide library handle. All loads, unloads and
// foreign calls are serialized through its mutex: one call crosses the
// FFI boundary at a time, and an in-flight call can never observe an
// unload.
type Manager struct {
	mu     sync.Mutex
	loader Loader
	logger *zap.Logger

	state   State
	lib     uintptr
	path    string
	loadErr error
}

// NewManager creates an unloaded manager backed by the given linker.
func NewManager(loader Loader, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{loader: loader, logger: logger}
}

// Load loads the library at path. Concurrent callers do not race
// separate load attempts: the first to acquire the mutex is
// authoritative. A previous failure is sticky and is returned without a
// new attempt; callers must use Reload to try again.
func (m *Manager) Load(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateLoaded:
		return nil
	case StateLoadFailed:
		return &LoadError{Path: m.path, Err: m.loadErr}
	}
	return m.loadLocked(path)
}

// Reload discards any current handle or sticky failure and attempts a
// fresh load of path.
func (m *Manager) Reload(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateLoaded {
		m.closeLocked()
	}
	m.state = StateUnloaded
	m.loadErr = nil
	return m.loadLocked(path)
}

func (m *Manager) loadLocked(path string) error {
	lib, err := m.loader.Open(path)
	if err != nil {
		m.state = StateLoadFailed
		m.path = path
		m.loadErr = err
		m.logger.Warn("native library load failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return &LoadError{Path: path, Err: err}
	}

	m.state = StateLoaded
	m.lib = lib
	m.path = path
	m.loadErr = nil
	m.logger.Info("native library loaded", zap.String("path", path))
	return nil
}

// Unload releases the handle. It is idempotent and also clears a sticky
// load failure.
func (m *Manager) Unload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateLoaded {
		m.state = StateUnloaded
		m.path = ""
		m.loadErr = nil
		return nil
	}

	err := m.closeLocked()
	m.logger.Info("native library unloaded")
	return err
}

func (m *Manager) closeLocked() error {
	err := m.loader.Close(m.lib)
	m.lib = 0
	m.path = ""
	m.state = StateUnloaded
	m.loadErr = nil
	return err
}

// With is the only sanctioned path to the foreign library. It holds the
// manager's mutex for the full duration of fn, fails fast with
// ErrNotLoaded when no handle exists, and guarantees the handle stays
// valid until fn returns. fn must not retain the Lib.
func (m *Manager) With(fn func(lib Lib) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateLoaded {
		return ErrNotLoaded
	}
	return fn(Lib{loader: m.loader, handle: m.lib})
}

// Loaded reports whether a usable handle exists.
func (m *Manager) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateLoaded
}

// Status returns the current lifecycle state for health reporting.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{State: m.state, Path: m.path, Err: m.loadErr}
}
