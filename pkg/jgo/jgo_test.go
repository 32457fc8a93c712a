package jgo

import "testing"

func TestFeedReturnsRenderedResult(t *testing.T) {
	s := New()
	r, err := s.Feed("2 + 3")
	if err != nil {
		t.Fatal(err)
	}
	if r.Suspended {
		t.Fatal("did not expect Suspended")
	}
	if r.Text != "5" {
		t.Fatalf("got %q, want %q", r.Text, "5")
	}
}

func TestFeedSuspendsOnOpenBlock(t *testing.T) {
	s := New()
	r, err := s.Feed("if. 1 do.")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Suspended {
		t.Fatal("expected Suspended")
	}
}

func TestSessionIDIsStable(t *testing.T) {
	s := New()
	id1 := s.ID()
	s.Feed("1")
	if s.ID() != id1 {
		t.Fatal("ID changed across Feed calls")
	}
}
