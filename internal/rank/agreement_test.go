package rank

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

func TestApplyDyadScalarExtend(t *testing.T) {
	v := plusVerb()
	x := jarray.NewIntVector([]int{1, 2, 3})
	y := jarray.NewIntAtom(10)
	out, err := ApplyDyad(v, x, y)
	if err != nil {
		t.Fatal(err)
	}
	if out.Shape[0] != 3 {
		t.Fatalf("shape = %v", out.Shape)
	}
	want := []int{11, 12, 13}
	for i, w := range want {
		got, _ := out.Nums[i].AsLen()
		if got != w {
			t.Errorf("idx %d = %d, want %d", i, got, w)
		}
	}
}

func TestApplyDyadListPlusList(t *testing.T) {
	v := plusVerb()
	x := jarray.NewIntVector([]int{1, 2, 3})
	y := jarray.NewIntVector([]int{4, 5, 6})
	out, err := ApplyDyad(v, x, y)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{5, 7, 9}
	for i, w := range want {
		got, _ := out.Nums[i].AsLen()
		if got != w {
			t.Errorf("idx %d = %d, want %d", i, got, w)
		}
	}
}

func TestApplyDyadLengthErrorOnMismatchedFrames(t *testing.T) {
	v := plusVerb()
	x := jarray.NewIntVector([]int{1, 2, 3})
	y, _ := jarray.Reshape([]int{2, 3}, jarray.NewIntVector([]int{1, 2, 3, 4, 5, 6}))
	_, err := ApplyDyad(v, x, y)
	if err == nil {
		t.Fatal("expected LengthError for 1 2 3 + i. 2 3")
	}
}

func TestApplyMonadWholeArg(t *testing.T) {
	v := &token.Verb{
		Name:  "$",
		Ranks: token.Ranks{Monad: token.Infinite},
		Monad: func(y jarray.Array) (jarray.Array, error) { return y.ShapeArray(), nil },
	}
	y, _ := jarray.Reshape([]int{2, 2}, jarray.NewIntVector([]int{1, 2, 3, 4}))
	out, err := ApplyMonad(v, y)
	if err != nil {
		t.Fatal(err)
	}
	if out.Shape[0] != 2 {
		t.Fatalf("shape of shape = %v", out.Shape)
	}
}
