// Package env implements the interpreter's name environment: a stack of
// scopes (the global scope plus one per active explicit-definition call)
// with innermost-first lookup, matching the locale/local-name semantics
// locals (=.) write to the innermost scope and globals (=:) write through
// to the outermost one.
package env

import (
	jerr "github.com/sambacha/jgo/internal/errors"
	"github.com/sambacha/jgo/internal/token"
)

// Scope is a single flat namespace of bound names.
type Scope struct {
	names map[string]token.Word
}

func newScope() *Scope { return &Scope{names: map[string]token.Word{}} }

// Env is a stack of Scopes, innermost last.
type Env struct {
	scopes []*Scope
}

// New returns an Env with a single global scope.
func New() *Env {
	return &Env{scopes: []*Scope{newScope()}}
}

// Push enters a new innermost scope, used when a direct-definition verb's
// body begins executing.
func (e *Env) Push() { e.scopes = append(e.scopes, newScope()) }

// Pop leaves the innermost scope, used when a direct-definition verb's
// body finishes executing.
func (e *Env) Pop() {
	if len(e.scopes) > 1 {
		e.scopes = e.scopes[:len(e.scopes)-1]
	}
}

func (e *Env) innermost() *Scope { return e.scopes[len(e.scopes)-1] }
func (e *Env) outermost() *Scope { return e.scopes[0] }

// Lookup searches scopes innermost-first and reports whether name is
// bound anywhere.
func (e *Env) Lookup(name string) (token.Word, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if w, ok := e.scopes[i].names[name]; ok {
			return w, true
		}
	}
	return token.Word{}, false
}

// SetLocal binds name in the innermost scope (=.).
func (e *Env) SetLocal(name string, w token.Word) {
	e.innermost().names[name] = w
}

// SetGlobal binds name in the outermost (global) scope (=:), regardless of
// how deeply nested the current call is.
func (e *Env) SetGlobal(name string, w token.Word) {
	e.outermost().names[name] = w
}

// Resolve looks up name and returns a ValueError when unbound, the
// standard failure mode for referencing an undefined name.
func (e *Env) Resolve(name string) (token.Word, error) {
	w, ok := e.Lookup(name)
	if !ok {
		return token.Word{}, jerr.Value("%s has no value", name)
	}
	return w, nil
}

// Depth reports how many nested scopes are active (1 at the top level).
func (e *Env) Depth() int { return len(e.scopes) }
