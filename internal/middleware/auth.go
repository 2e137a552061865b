package middleware

import (
	"context"
	"log/slog"

	"github.com/mmynk/roster/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// OperatorKey is the context key for the unlocked operator name.
	OperatorKey contextKey = "operator"
	// SessionIDKey is the context key for the current session token id.
	SessionIDKey contextKey = "session_id"
)

// GetOperator extracts the operator from the context.
// Returns empty string if not found.
func GetOperator(ctx context.Context) string {
	operator, _ := ctx.Value(OperatorKey).(string)
	return operator
}

// GetSessionID extracts the session id from the context.
// Returns empty string if not found.
func GetSessionID(ctx context.Context) string {
	id, _ := ctx.Value(SessionIDKey).(string)
	return id
}

// Unlocker asks the operator to unlock the shell and returns a new session
// token. It returns an error if the operator could not be authenticated.
type Unlocker func(ctx context.Context) (string, error)

// SessionGuard keeps the current session token and re-locks the shell when
// it expires.
type SessionGuard struct {
	sessions *auth.SessionManager
	unlock   Unlocker
	token    string
}

// NewSessionGuard creates a guard that starts locked.
func NewSessionGuard(sessions *auth.SessionManager, unlock Unlocker) *SessionGuard {
	return &SessionGuard{sessions: sessions, unlock: unlock}
}

// Unlock runs the unlocker if the current token is missing or expired.
// On success the returned context carries the operator and session id.
func (g *SessionGuard) Unlock(ctx context.Context) (context.Context, error) {
	claims, err := g.sessions.Validate(g.token)
	if err != nil {
		if g.token != "" {
			slog.Info("Session expired, locking shell")
		}
		g.token = ""

		token, err := g.unlock(ctx)
		if err != nil {
			return ctx, err
		}
		claims, err = g.sessions.Validate(token)
		if err != nil {
			return ctx, err
		}
		g.token = token
		slog.Info("Shell unlocked", "operator", claims.Operator, "session_id", claims.ID)
	}

	ctx = context.WithValue(ctx, OperatorKey, claims.Operator)
	ctx = context.WithValue(ctx, SessionIDKey, claims.ID)
	return ctx, nil
}

// RequireSession returns an interceptor that refuses to run an action until
// the shell is unlocked.
func (g *SessionGuard) RequireSession() Interceptor {
	return func(name string, next Action) Action {
		return func(ctx context.Context) error {
			ctx, err := g.Unlock(ctx)
			if err != nil {
				slog.Warn("Action refused, shell locked", "action", name, "error", err)
				return err
			}
			return next(ctx)
		}
	}
}
