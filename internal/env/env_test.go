package env

import (
	"testing"

	"github.com/sambacha/jgo/internal/jarray"
	"github.com/sambacha/jgo/internal/token"
)

func nounWord(a jarray.Array) token.Word { return token.Noun(a) }

func TestLookupMissingNameFails(t *testing.T) {
	e := New()
	if _, ok := e.Lookup("x"); ok {
		t.Fatal("expected x to be unbound")
	}
	if _, err := e.Resolve("x"); err == nil {
		t.Fatal("expected Resolve to report an error for an unbound name")
	}
}

func TestSetLocalIsVisibleInnermostFirst(t *testing.T) {
	e := New()
	e.SetGlobal("x", nounWord(jarray.NewIntAtom(1)))
	e.Push()
	e.SetLocal("x", nounWord(jarray.NewIntAtom(2)))

	w, ok := e.Lookup("x")
	if !ok {
		t.Fatal("expected x to be bound")
	}
	if n, _ := w.Noun.IntAt(0); n != 2 {
		t.Fatalf("expected innermost binding 2, got %d", n)
	}

	e.Pop()
	w, ok = e.Lookup("x")
	if !ok {
		t.Fatal("expected x to still be bound after Pop")
	}
	if n, _ := w.Noun.IntAt(0); n != 1 {
		t.Fatalf("expected global binding 1 after Pop, got %d", n)
	}
}

func TestSetGlobalWritesThroughNestedScopes(t *testing.T) {
	e := New()
	e.Push()
	e.Push()
	e.SetGlobal("y", nounWord(jarray.NewIntAtom(9)))
	e.Pop()
	e.Pop()

	w, ok := e.Lookup("y")
	if !ok {
		t.Fatal("expected y to be bound at the global scope")
	}
	if n, _ := w.Noun.IntAt(0); n != 9 {
		t.Fatalf("expected 9, got %d", n)
	}
}

func TestPopAtGlobalScopeIsANoop(t *testing.T) {
	e := New()
	if e.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", e.Depth())
	}
	e.Pop()
	if e.Depth() != 1 {
		t.Fatalf("expected Pop at global scope to be a no-op, got depth %d", e.Depth())
	}
}

func TestDepthTracksPushAndPop(t *testing.T) {
	e := New()
	e.Push()
	e.Push()
	if e.Depth() != 3 {
		t.Fatalf("expected depth 3, got %d", e.Depth())
	}
	e.Pop()
	if e.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", e.Depth())
	}
}
