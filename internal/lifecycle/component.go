package lifecycle

import "context"

// Component is anything `fmea watch` starts and stops as a unit: the
// tracing provider, the metrics endpoint and the worksheet file watcher.
type Component interface {
	// Start brings the component up. It must return once the component is
	// ready; long-running work belongs in a goroutine.
	Start(ctx context.Context) error

	// Stop releases the component's resources within ctx's deadline.
	Stop(ctx context.Context) error

	// Name is used in logs and error messages. Must not be empty.
	Name() string
}
