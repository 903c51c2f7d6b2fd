package resolve

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// Resolver resolves (symbol, scope) pairs to type descriptors, caching each
// successful resolution. A cache cell is logically populated once; later
// resolutions of the same pair read the cell with no further scope lookup.
// Failed resolutions are not cached, so a symbol registered after a failed
// attempt resolves normally on the next attempt.
type Resolver struct {
	mu    sync.RWMutex
	cache map[refKey]reflect.Type

	// lookups counts underlying scope lookups (not cache reads); it is the
	// instrumentation hook for verifying resolution idempotence.
	lookups atomic.Uint64
}

// refKey identifies a forward reference: a symbol within a scope.
type refKey struct {
	scope  *Scope
	symbol string
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{
		cache: make(map[refKey]reflect.Type),
	}
}

// Resolve returns the type descriptor bound to symbol within scope.
// A nil scope means the default scope. The first successful resolution of a
// pair performs one scope lookup and populates the cache; concurrent first
// resolutions may duplicate the lookup but converge to the same binding.
func (r *Resolver) Resolve(symbol string, scope *Scope) (reflect.Type, error) {
	if scope == nil {
		scope = Default()
	}
	key := refKey{scope: scope, symbol: symbol}

	r.mu.RLock()
	t, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}

	r.lookups.Add(1)
	t, ok = scope.lookup(symbol)
	if !ok {
		return nil, fmt.Errorf("symbol %q is not registered in scope %q", symbol, scope.Name())
	}

	r.mu.Lock()
	// First writer wins: a concurrent resolution may have populated the
	// cell already, and the cell is read-only once filled.
	if cached, exists := r.cache[key]; exists {
		t = cached
	} else {
		r.cache[key] = t
	}
	r.mu.Unlock()

	return t, nil
}

// Lookups returns the number of underlying scope lookups performed.
func (r *Resolver) Lookups() uint64 {
	return r.lookups.Load()
}

// Len returns the number of cached resolutions.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}
