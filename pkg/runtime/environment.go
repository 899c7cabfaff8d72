package runtime

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Lookup failures. ErrNotFound reports a place that was never bound;
// ErrUndefinedRead reports a place bound to the undefined sentinel. The two
// are deliberately distinct.
var (
	ErrNotFound      = errors.New("place not bound")
	ErrUndefinedRead = errors.New("place is undefined")
)

// Environment is the flat mutable store mapping place names to values for
// one block evaluation. There is no parent chain and no shadowing: inserting
// an existing place overwrites it.
type Environment struct {
	values map[string]Value
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// Lookup returns the value bound to place. Callers receive the value by
// copy; the store never hands out a live handle.
func (e *Environment) Lookup(place string) (Value, error) {
	v, ok := e.values[place]
	if !ok {
		return nil, fmt.Errorf("cannot find place %q: %w", place, ErrNotFound)
	}
	if v.Kind() == KindUndefined {
		return nil, fmt.Errorf("attempting to read undefined place %q: %w", place, ErrUndefinedRead)
	}
	return v, nil
}

// Insert binds value to place, unconditionally replacing any prior binding.
func (e *Environment) Insert(place string, value Value) {
	e.values[place] = value
}

// Len returns the number of bindings.
func (e *Environment) Len() int {
	return len(e.values)
}

// Keys returns the bound place names in sorted order (useful for determinism
// in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Render produces the diagnostic text form: one "name ↦ value" line per
// binding, sorted ascending by name.
func (e *Environment) Render() string {
	var b strings.Builder
	for _, k := range e.Keys() {
		fmt.Fprintf(&b, "%s ↦ %s\n", k, e.values[k])
	}
	return b.String()
}
