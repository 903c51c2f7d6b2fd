// Package resolve provides lazy resolution of symbolic forward references
// to concrete type descriptors, with a process-wide resolution cache.
package resolve

import (
	"reflect"
	"sync"
)

// Scope is a named symbol table mapping forward-reference symbols to type
// descriptors. A forward reference may be compiled before its symbol is
// registered; registration only has to happen before the first check that
// needs the resolution.
type Scope struct {
	name string

	mu      sync.RWMutex
	symbols map[string]reflect.Type
}

// NewScope creates an empty named scope.
func NewScope(name string) *Scope {
	return &Scope{
		name:    name,
		symbols: make(map[string]reflect.Type),
	}
}

var defaultScope = NewScope("default")

// Default returns the process-wide default scope. Raw string hints resolve
// against it.
func Default() *Scope {
	return defaultScope
}

// Name returns the scope's name.
func (s *Scope) Name() string {
	return s.name
}

// RegisterType binds a symbol to a type descriptor.
// Re-registering a symbol replaces the binding for future first resolutions;
// already cached resolutions are unaffected.
func (s *Scope) RegisterType(symbol string, t reflect.Type) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symbols[symbol] = t
}

// Register binds a symbol to the type T.
func Register[T any](s *Scope, symbol string) {
	s.RegisterType(symbol, reflect.TypeFor[T]())
}

// lookup returns the binding for symbol, if any.
func (s *Scope) lookup(symbol string) (reflect.Type, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.symbols[symbol]
	return t, ok
}

// Len returns the number of registered symbols.
func (s *Scope) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.symbols)
}
