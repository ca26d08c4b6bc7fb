// Package router makes the one-shot startup routing decision: password
// recovery, home, or login. Nothing renders until it resolves, and it never
// resolves twice.
package router

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Route is the initial screen choice.
type Route int

const (
	RouteLogin Route = iota
	RouteHome
	RoutePasswordReset
)

func (r Route) String() string {
	switch r {
	case RouteHome:
		return "home"
	case RoutePasswordReset:
		return "password-reset"
	default:
		return "login"
	}
}

// SessionProvider is the identity collaborator the router consults. Errors
// from HasActiveSession are treated as "no session"; RefreshSession is
// best-effort and its failure never affects routing.
type SessionProvider interface {
	HasActiveSession(ctx context.Context) (bool, error)
	RefreshSession(ctx context.Context) error
}

// Router resolves the initial route exactly once per process. A payload
// delivered later to the running process is outside its scope.
type Router struct {
	sessions     SessionProvider
	recoveryHost string
	log          *slog.Logger

	once sync.Once

	mu       sync.Mutex
	route    Route
	resolved bool
}

func New(sessions SessionProvider, recoveryHost string, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{sessions: sessions, recoveryHost: recoveryHost, log: log}
}

// Resolve decides the initial route. The first call latches the decision;
// every subsequent call returns it unchanged regardless of arguments.
func (r *Router) Resolve(ctx context.Context, payload Payload) Route {
	r.once.Do(func() {
		route := r.decide(ctx, payload)
		r.mu.Lock()
		r.route = route
		r.resolved = true
		r.mu.Unlock()
		r.log.Debug("startup route resolved", "route", route.String())
	})
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.route
}

// Resolved reports the latched decision, if any. The render boundary guards
// on this: no screen content until it returns true.
func (r *Router) Resolved() (Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.route, r.resolved
}

func (r *Router) decide(ctx context.Context, payload Payload) Route {
	// Recovery detection is local and synchronous; it wins over any session.
	if payload.IsRecovery(r.recoveryHost) {
		return RoutePasswordReset
	}

	active, err := r.sessions.HasActiveSession(ctx)
	if err != nil {
		// One query, no retries: a provider error routes to login.
		r.log.Warn("session check failed, treating as logged out", "error", err)
		return RouteLogin
	}
	if !active {
		return RouteLogin
	}

	// Best-effort refresh off the deciding path. Failure is logged and
	// ignored; the home decision stands either way.
	go func() {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := r.sessions.RefreshSession(refreshCtx); err != nil {
			r.log.Warn("session refresh failed", "error", err)
		}
	}()

	return RouteHome
}
