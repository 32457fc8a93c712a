package interp

import (
	"testing"

	"github.com/sambacha/jgo/internal/foreign"
	"github.com/sambacha/jgo/internal/jarray"
)

func TestForeignParamRoundTrip(t *testing.T) {
	s := NewWithForeign(foreign.New(foreign.Policy{AllowParamStore: true}, ""))
	feedAll(t, s, "'precision' 9!:25 '6'")
	r, err := s.Feed("9!:12 'precision'")
	if err != nil {
		t.Fatal(err)
	}
	if string(r.Value.Noun.Chars) != "6" {
		t.Fatalf("got %q, want %q", string(r.Value.Noun.Chars), "6")
	}
}

func TestForeignDeniedByPolicy(t *testing.T) {
	s := NewWithForeign(foreign.New(foreign.Policy{AllowParamStore: false}, ""))
	if _, err := s.Feed("9!:12 'precision'"); err == nil {
		t.Fatal("expected policy denial error")
	}
}

func TestForeignTimedSubEvaluation(t *testing.T) {
	s := NewWithForeign(foreign.New(foreign.Policy{}, ""))
	r, err := s.Feed("6!:2 '2 + 3'")
	if err != nil {
		t.Fatal(err)
	}
	if r.Value.Noun.Kind != jarray.KindFloat {
		t.Fatalf("got kind %v, want a float elapsed-seconds atom", r.Value.Noun.Kind)
	}
	if secs := r.Value.Noun.Nums[0].Float; secs < 0 {
		t.Fatalf("got %v, want a non-negative elapsed-seconds value", secs)
	}
}

func TestForeignTimedSubEvaluationPropagatesError(t *testing.T) {
	s := NewWithForeign(foreign.New(foreign.Policy{}, ""))
	if _, err := s.Feed("6!:2 'nosuchname'"); err == nil {
		t.Fatal("expected the timed sub-evaluation's own error to propagate")
	}
}
