package ports

import "context"

// HealthChecker probes one backing dependency for the readiness endpoint.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}
