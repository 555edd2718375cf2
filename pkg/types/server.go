package types

import "context"

// Server defines the lifecycle of a long-running anchor server
type Server interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
