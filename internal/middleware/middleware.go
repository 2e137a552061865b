// Package middleware wraps shell actions with cross-cutting behavior:
// logging, metrics and the session lock.
package middleware

import "context"

// Action is one menu action run by the shell.
type Action func(ctx context.Context) error

// Interceptor wraps an action. name identifies the action for logs and metrics.
type Interceptor func(name string, next Action) Action

// Chain applies interceptors so that the first one is outermost.
func Chain(name string, action Action, interceptors ...Interceptor) Action {
	for i := len(interceptors) - 1; i >= 0; i-- {
		action = interceptors[i](name, action)
	}
	return action
}
