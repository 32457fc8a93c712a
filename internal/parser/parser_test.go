package parser

import (
	"testing"

	"github.com/sambacha/jgo/internal/env"
	"github.com/sambacha/jgo/internal/lexer"
	"github.com/sambacha/jgo/internal/modifiers"
	"github.com/sambacha/jgo/internal/token"
	"github.com/sambacha/jgo/internal/verbs"
)

func parseLine(t *testing.T, src string) (token.Word, *env.Env) {
	t.Helper()
	words, err := lexer.Scan(src, 1)
	if err != nil {
		t.Fatalf("scan %q: %v", src, err)
	}
	e := env.New()
	result, err := Parse(words, e, NewVerbTable(verbs.Table()), NewModifierTable(modifiers.Table()))
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return result, e
}

func wantScalar(t *testing.T, w token.Word, want int64) {
	t.Helper()
	if w.Kind != token.KNoun {
		t.Fatalf("got kind %v, want KNoun", w.Kind)
	}
	if len(w.Noun.Nums) == 0 {
		t.Fatalf("got no numeric atoms in %+v", w.Noun)
	}
	got, ok := w.Noun.Nums[0].AsInt64()
	if !ok || got != want {
		t.Fatalf("got %v, want %d", w.Noun.Nums[0], want)
	}
}

func TestParseDyadApplication(t *testing.T) {
	w, _ := parseLine(t, "2 + 3")
	wantScalar(t, w, 5)
}

func TestParseNounStrandAndScalarExtend(t *testing.T) {
	w, _ := parseLine(t, "2 3 + 1")
	if w.Kind != token.KNoun || w.Noun.Len() != 2 {
		t.Fatalf("got %+v", w)
	}
	a, _ := w.Noun.Nums[0].AsInt64()
	b, _ := w.Noun.Nums[1].AsInt64()
	if a != 3 || b != 4 {
		t.Fatalf("got %d %d, want 3 4", a, b)
	}
}

func TestParseAssignmentBindsAndReturnsValue(t *testing.T) {
	w, e := parseLine(t, "x=:2 3")
	if w.Kind != token.KNoun || w.Noun.Len() != 2 {
		t.Fatalf("got %+v", w)
	}
	bound, err := e.Resolve("x")
	if err != nil {
		t.Fatal(err)
	}
	if bound.Kind != token.KNoun || bound.Noun.Len() != 2 {
		t.Fatalf("x resolved to %+v", bound)
	}
}

func TestParseParenthesesOverrideOrder(t *testing.T) {
	w, _ := parseLine(t, "2 * 3 + 1")
	wantScalar(t, w, 8) // right-to-left: 3+1=4, 2*4=8

	w2, _ := parseLine(t, "(2 * 3) + 1")
	wantScalar(t, w2, 7)
}

func TestParseForkAverage(t *testing.T) {
	w, _ := parseLine(t, "(+/ % #) 1 2 3")
	wantScalar(t, w, 2)
}

func TestParseHookComposesMonadically(t *testing.T) {
	w, _ := parseLine(t, "(>: <:) 5")
	wantScalar(t, w, 1)
}

// TestParseHookIndexOfTally pins the hook (i. #) applied monadically: y
// becomes both the haystack (left operand of i.) and, via #, the needle
// (its own tally). 6 is absent from the 6-item haystack 3 1 4 1 5 9, so
// the result is its not-found fallback, the haystack's tally: 6.
func TestParseHookIndexOfTally(t *testing.T) {
	w, _ := parseLine(t, "(i. #) 3 1 4 1 5 9")
	wantScalar(t, w, 6)
}

// TestParseCappedForkIsAtop pins [: g h: the left tine is dropped entirely
// rather than folded into a 3-verb fork. +/ 1 2 3 4 sums to 10; <: then
// decrements that sum to 9, with x never reaching <:.
func TestParseCappedForkIsAtop(t *testing.T) {
	w, _ := parseLine(t, "([: <: +/) 1 2 3 4")
	wantScalar(t, w, 9)
}

// TestParseCappedForkMissingRightVerbIsSyntaxError pins that a lone "[:"
// left dangling without a following 2-verb group (rather than forming a
// 3-verb train) is a syntax error, not a silently broken hook.
func TestParseCappedForkMissingRightVerbIsSyntaxError(t *testing.T) {
	words, err := lexer.Scan("([: <:) 5", 1)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	_, err = Parse(words, env.New(), NewVerbTable(verbs.Table()), NewModifierTable(modifiers.Table()))
	if err == nil {
		t.Fatal("expected an error for a capped fork missing its second verb")
	}
}
