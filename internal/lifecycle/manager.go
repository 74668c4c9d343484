package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/moolen/fmea/internal/logging"
)

// Manager starts components after their dependencies and stops them in
// reverse start order.
type Manager struct {
	mu              sync.Mutex
	components      []Component
	dependencies    map[Component][]Component
	started         []Component
	shutdownTimeout time.Duration
	logger          *logging.Logger
}

// NewManager creates a manager with a 10 second per-component shutdown
// timeout.
func NewManager() *Manager {
	return &Manager{
		dependencies:    make(map[Component][]Component),
		shutdownTimeout: 10 * time.Second,
		logger:          logging.GetLogger("lifecycle"),
	}
}

// Register adds a component. Dependencies must already be registered,
// which also rules out cycles.
func (m *Manager) Register(component Component, dependsOn ...Component) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if component == nil {
		return fmt.Errorf("cannot register nil component")
	}
	if component.Name() == "" {
		return fmt.Errorf("component must have a non-empty name")
	}
	if slices.Contains(m.components, component) {
		return fmt.Errorf("component %s is already registered", component.Name())
	}
	for _, dep := range dependsOn {
		if !slices.Contains(m.components, dep) {
			return fmt.Errorf("dependency %s of %s is not registered", dep.Name(), component.Name())
		}
	}

	m.components = append(m.components, component)
	m.dependencies[component] = dependsOn
	m.logger.Debug("registered %s with %d dependencies", component.Name(), len(dependsOn))
	return nil
}

// Start starts every component in dependency order. On failure the
// already started components are stopped again and the error returned.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.started = m.started[:0]
	for _, c := range m.order() {
		begin := time.Now()
		if err := c.Start(ctx); err != nil {
			m.logger.Error("failed to start %s: %v", c.Name(), err)
			m.stopStarted(context.Background())
			return fmt.Errorf("starting %s: %w", c.Name(), err)
		}
		m.started = append(m.started, c)
		m.logger.DebugWithFields("component started",
			logging.Field("component", c.Name()),
			logging.Field("took_ms", time.Since(begin).Milliseconds()),
		)
	}
	return nil
}

// Stop stops all started components in reverse order. Every component
// gets its own shutdown timeout. Errors are joined; one failing component
// does not keep the others running.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopStarted(ctx)
}

func (m *Manager) stopStarted(ctx context.Context) error {
	var errs []error
	for i := len(m.started) - 1; i >= 0; i-- {
		c := m.started[i]
		cctx, cancel := context.WithTimeout(ctx, m.shutdownTimeout)
		err := c.Stop(cctx)
		cancel()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				m.logger.Warn("%s exceeded its %s shutdown timeout", c.Name(), m.shutdownTimeout)
			} else {
				m.logger.Error("error stopping %s: %v", c.Name(), err)
			}
			errs = append(errs, fmt.Errorf("stopping %s: %w", c.Name(), err))
		}
	}
	m.started = m.started[:0]
	return errors.Join(errs...)
}

// IsRunning reports whether the component was started and not stopped.
func (m *Manager) IsRunning(component Component) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Contains(m.started, component)
}

// SetShutdownTimeout sets the per-component grace period.
func (m *Manager) SetShutdownTimeout(timeout time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shutdownTimeout = timeout
}

// order is a depth-first topological sort that keeps registration order
// among independent components.
func (m *Manager) order() []Component {
	visited := make(map[Component]bool, len(m.components))
	sorted := make([]Component, 0, len(m.components))

	var visit func(c Component)
	visit = func(c Component) {
		if visited[c] {
			return
		}
		visited[c] = true
		for _, dep := range m.dependencies[c] {
			visit(dep)
		}
		sorted = append(sorted, c)
	}
	for _, c := range m.components {
		visit(c)
	}
	return sorted
}
