package filter

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/s0up4200/marquee/tmdb"
)

// Manager holds named filter presets
type Manager struct {
	compiler *Compiler
	filters  map[string]*Filter
	mu       sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler *Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: NewCompiler(WithCache(100)),
		filters:  make(map[string]*Filter),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Compiler returns the compiler used for presets and ad-hoc expressions
func (m *Manager) Compiler() *Compiler {
	return m.compiler
}

// RegisterFilter registers a new filter or updates an existing one
func (m *Manager) RegisterFilter(name, expression string) error {
	filter, err := m.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile filter '%s': %w", name, err)
	}

	m.mu.Lock()
	m.filters[name] = filter
	m.mu.Unlock()

	return nil
}

// RegisterFilters registers multiple filters at once. Nothing is
// registered if any expression fails to compile.
func (m *Manager) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]*Filter, len(filters))

	for _, name := range slices.Sorted(maps.Keys(filters)) {
		filter, err := m.compiler.Compile(filters[name])
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = filter
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()

	return nil
}

// GetFilter returns a compiled filter by name
func (m *Manager) GetFilter(name string) (*Filter, bool) {
	m.mu.RLock()
	filter, exists := m.filters[name]
	m.mu.RUnlock()
	return filter, exists
}

// ListFilters returns all registered filter names, sorted
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.filters))
}

// Resolve returns the preset called preset, or compiles expression when
// preset is empty. Both empty yields a nil filter.
func (m *Manager) Resolve(preset, expression string) (*Filter, error) {
	if preset != "" {
		filter, ok := m.GetFilter(preset)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
		}
		return filter, nil
	}
	if expression == "" {
		return nil, nil
	}
	return m.compiler.Compile(expression)
}

// EvaluateFilter applies a registered filter to movies
func (m *Manager) EvaluateFilter(name string, movies []tmdb.Movie) ([]tmdb.Movie, error) {
	filter, exists := m.GetFilter(name)
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	return filter.Apply(movies), nil
}
