package modifiers

import (
	"testing"

	"github.com/sambacha/jgo/internal/jarray"
	"github.com/sambacha/jgo/internal/numeric"
	"github.com/sambacha/jgo/internal/token"
)

func plusVerb() *token.Verb {
	return &token.Verb{
		Name:  "+",
		Kind:  token.VerbPrimitive,
		Ranks: token.Ranks{Monad: 0, Left: 0, Right: 0},
		Monad: func(y jarray.Array) (jarray.Array, error) { return y, nil },
		Dyad: func(x, y jarray.Array) (jarray.Array, error) {
			return jarray.NewNumAtom(numeric.Add(x.Nums[0], y.Nums[0])), nil
		},
	}
}

func incVerb() *token.Verb {
	return &token.Verb{
		Name:  ">:",
		Kind:  token.VerbPrimitive,
		Ranks: token.Ranks{Monad: 0, Left: 0, Right: 0},
		Monad: func(y jarray.Array) (jarray.Array, error) {
			return jarray.NewNumAtom(numeric.Add(y.Nums[0], numeric.One())), nil
		},
	}
}

func TestInsertSumsList(t *testing.T) {
	m, err := formInsert(token.VerbOperand(plusVerb()))
	if err != nil {
		t.Fatal(err)
	}
	y := jarray.NewIntVector([]int{1, 2, 3, 4})
	out, err := m.Monad(y)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := out.Nums[0].AsLen()
	if got != 10 {
		t.Fatalf("+/ 1 2 3 4 = %d, want 10", got)
	}
}

func TestInsertTableBuildsOuterProduct(t *testing.T) {
	m, err := formInsert(token.VerbOperand(plusVerb()))
	if err != nil {
		t.Fatal(err)
	}
	x := jarray.NewIntVector([]int{1, 2})
	y := jarray.NewIntVector([]int{10, 20})
	out, err := m.Dyad(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if out.Shape[0] != 2 || out.Shape[1] != 2 {
		t.Fatalf("shape = %v, want [2 2]", out.Shape)
	}
	want := []int{11, 21, 12, 22}
	for i, w := range want {
		got, _ := out.Nums[i].AsLen()
		if got != w {
			t.Errorf("idx %d = %d, want %d", i, got, w)
		}
	}
}

func TestPowerAppliesNTimes(t *testing.T) {
	m, err := formPower(token.VerbOperand(incVerb()), token.NounOperand(jarray.NewIntAtom(3)))
	if err != nil {
		t.Fatal(err)
	}
	out, err := m.Monad(jarray.NewIntAtom(10))
	if err != nil {
		t.Fatal(err)
	}
	got, _ := out.Nums[0].AsLen()
	if got != 13 {
		t.Fatalf(">:^:3 10 = %d, want 13", got)
	}
}

func TestAtopComposesMonadically(t *testing.T) {
	m, err := formAtop(token.VerbOperand(incVerb()), token.VerbOperand(incVerb()))
	if err != nil {
		t.Fatal(err)
	}
	out, err := m.Monad(jarray.NewIntAtom(1))
	if err != nil {
		t.Fatal(err)
	}
	got, _ := out.Nums[0].AsLen()
	if got != 3 {
		t.Fatalf(">:@>: 1 = %d, want 3", got)
	}
}

func TestReflexiveDoublesArgument(t *testing.T) {
	m, err := formReflexive(token.VerbOperand(plusVerb()))
	if err != nil {
		t.Fatal(err)
	}
	out, err := m.Monad(jarray.NewIntAtom(7))
	if err != nil {
		t.Fatal(err)
	}
	got, _ := out.Nums[0].AsLen()
	if got != 14 {
		t.Fatalf("+~ 7 = %d, want 14", got)
	}
}
