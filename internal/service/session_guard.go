package service

import "sync"

// SessionGuard holds the back office's current bearer tokens, one per
// role, and owns the transition into the logged-out state. The admin and
// super-admin share a single browser context, so invalidation always
// clears both tokens together. Every gated operation consults Authorized
// synchronously before running.
//
// The guard is the only shared mutable state in this core; all access is
// behind its mutex.
type SessionGuard struct {
	mu            sync.Mutex
	tokens        map[string]string // role -> bearer token
	authenticated bool
	subs          []chan struct{}
}

// NewSessionGuard derives the initial state from whatever tokens the
// client storage held at startup. With no tokens the guard starts
// unauthenticated.
func NewSessionGuard(initial map[string]string) *SessionGuard {
	g := &SessionGuard{tokens: make(map[string]string, len(initial))}
	for role, tok := range initial {
		if tok != "" {
			g.tokens[role] = tok
			g.authenticated = true
		}
	}
	return g
}

// Arm records a fresh token for a role and (re-)enters the authenticated
// state. Called on login; also how the guard recovers after invalidation.
func (g *SessionGuard) Arm(role, token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tokens[role] = token
	g.authenticated = true
}

// Invalidate moves the guard to the unauthenticated state, clearing the
// tokens of both roles at once. It is idempotent: only the first call
// against an authenticated guard clears state and notifies subscribers;
// repeated signals before the next login are no-ops with no observable
// side effects. The return value reports whether a transition happened.
func (g *SessionGuard) Invalidate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.authenticated {
		return false
	}
	g.authenticated = false
	for role := range g.tokens {
		delete(g.tokens, role)
	}
	for _, ch := range g.subs {
		// Non-blocking: a subscriber that has not drained the previous
		// signal does not hold up the transition.
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return true
}

// Authorized reports whether gated operations may currently execute.
func (g *SessionGuard) Authorized() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.authenticated
}

// Token returns the current bearer token for a role, if any. Components
// never read the token pair directly; they go through this accessor.
func (g *SessionGuard) Token(role string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	tok, ok := g.tokens[role]
	return tok, ok
}

// Holds reports whether the given bearer token is one of the session's
// current role tokens. The auth middleware uses this to tell a failing
// staff token apart from anonymous junk: only the former is a session
// event.
func (g *SessionGuard) Holds(token string) bool {
	if token == "" {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, tok := range g.tokens {
		if tok == token {
			return true
		}
	}
	return false
}

// Subscribe returns a channel that receives one signal per actual
// transition into the unauthenticated state. The channel is buffered so
// slow consumers never block the guard.
func (g *SessionGuard) Subscribe() <-chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch := make(chan struct{}, 1)
	g.subs = append(g.subs, ch)
	return ch
}
