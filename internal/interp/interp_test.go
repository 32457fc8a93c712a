package interp

import "testing"

func feedAll(t *testing.T, s *Session, lines ...string) Result {
	t.Helper()
	var last Result
	for _, l := range lines {
		r, err := s.Feed(l)
		if err != nil {
			t.Fatalf("feed %q: %v", l, err)
		}
		last = r
	}
	return last
}

func wantInt(t *testing.T, r Result, want int64) {
	t.Helper()
	if r.Suspended {
		t.Fatal("expected a final result, got Suspended")
	}
	if len(r.Value.Noun.Nums) == 0 {
		t.Fatalf("got %+v, no numeric atoms", r.Value)
	}
	got, ok := r.Value.Noun.Nums[0].AsInt64()
	if !ok || got != want {
		t.Fatalf("got %v, want %d", r.Value.Noun.Nums[0], want)
	}
}

func TestFeedSingleLineArithmetic(t *testing.T) {
	s := New()
	r := feedAll(t, s, "2 + 3")
	wantInt(t, r, 5)
}

func TestFeedAssignmentPersistsAcrossLines(t *testing.T) {
	s := New()
	feedAll(t, s, "x=:10")
	r := feedAll(t, s, "x + 1")
	wantInt(t, r, 11)
}

func TestFeedMultilineIfBuffers(t *testing.T) {
	s := New()
	r, err := s.Feed("if. 1 do.")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Suspended {
		t.Fatal("expected Suspended while if. block is open")
	}
	r, err = s.Feed("7")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Suspended {
		t.Fatal("expected still Suspended before end.")
	}
	r, err = s.Feed("end.")
	if err != nil {
		t.Fatal(err)
	}
	wantInt(t, r, 7)
}

func TestFeedForLoopAccumulates(t *testing.T) {
	s := New()
	feedAll(t, s, "acc=:0")
	feedAll(t, s, "for_i. i. 3 do.", "acc=:acc+i", "end.")
	r, err := s.Feed("acc")
	if err != nil {
		t.Fatal(err)
	}
	wantInt(t, r, 3) // 0+1+2
}

func TestFeedDirectDefinition(t *testing.T) {
	s := New()
	feedAll(t, s, "double=:{{", "y+y", "}}")
	r, err := s.Feed("double 21")
	if err != nil {
		t.Fatal(err)
	}
	wantInt(t, r, 42)
}
