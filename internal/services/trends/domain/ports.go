package domain

import "context"

// RecorderPort accepts search events without ever blocking the caller.
// Implementations drop on backpressure; discovery latency is never spent
// on telemetry
type RecorderPort interface {
	Record(ctx context.Context, ev SearchEvent)
}

// ServicePort exposes the demand read side
type ServicePort interface {
	Top(ctx context.Context, in TopInput) (TopResponse, error)
}
