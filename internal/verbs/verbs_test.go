package verbs

import (
	"testing"

	"github.com/sambacha/jgo/internal/jarray"
	"github.com/sambacha/jgo/internal/numeric"
	"github.com/sambacha/jgo/internal/rank"
)

func intsFrom(a jarray.Array) []int {
	out := make([]int, a.Len())
	for i := range out {
		v, _ := a.Nums[i].AsInt64()
		out[i] = int(v)
	}
	return out
}

func wantInts(t *testing.T, got jarray.Array, want []int) {
	t.Helper()
	gi := intsFrom(got)
	if len(gi) != len(want) {
		t.Fatalf("got %v, want %v", gi, want)
	}
	for i := range want {
		if gi[i] != want[i] {
			t.Fatalf("got %v, want %v", gi, want)
		}
	}
}

func TestArithmeticPlusMinus(t *testing.T) {
	tbl := Table()
	plus := tbl["+"]
	got, err := rank.ApplyDyad(plus, jarray.NewIntAtom(2), jarray.NewIntAtom(3))
	if err != nil {
		t.Fatal(err)
	}
	wantInts(t, got, []int{5})

	minus := tbl["-"]
	got, err = rank.ApplyDyad(minus, jarray.NewIntAtom(5), jarray.NewIntAtom(2))
	if err != nil {
		t.Fatal(err)
	}
	wantInts(t, got, []int{3})
}

func TestRelationalLessThan(t *testing.T) {
	tbl := Table()
	lt := tbl["<"]
	got, err := rank.ApplyDyad(lt, jarray.NewIntAtom(2), jarray.NewIntAtom(3))
	if err != nil {
		t.Fatal(err)
	}
	wantInts(t, got, []int{1})
}

// TestRelationalOrderingNonRealComplexIsDomainError pins that ordering two
// non-real Complex values through < reports a DomainError instead of
// panicking; 1j2 < 3j5 is undefined the way J leaves complex order
// undefined, but undefined must still fail safely.
func TestRelationalOrderingNonRealComplexIsDomainError(t *testing.T) {
	tbl := Table()
	lt := tbl["<"]
	x := jarray.NewNumAtom(numeric.FromComplex(complex(1, 2)))
	y := jarray.NewNumAtom(numeric.FromComplex(complex(3, 5)))
	_, err := rank.ApplyDyad(lt, x, y)
	if err == nil {
		t.Fatal("expected a DomainError ordering non-real Complex values, got none")
	}
}

func TestShapeDollarMonadAndDyad(t *testing.T) {
	tbl := Table()
	dollar := tbl["$"]
	v := jarray.NewIntVector([]int{1, 2, 3, 4})
	shape, err := rank.ApplyMonad(dollar, v)
	if err != nil {
		t.Fatal(err)
	}
	wantInts(t, shape, []int{4})

	reshaped, err := rank.ApplyDyad(dollar, jarray.NewIntVector([]int{2, 2}), v)
	if err != nil {
		t.Fatal(err)
	}
	if reshaped.Rank() != 2 || reshaped.Shape[0] != 2 || reshaped.Shape[1] != 2 {
		t.Fatalf("shape = %v, want [2 2]", reshaped.Shape)
	}
}

func TestStructuralRavelAndAppend(t *testing.T) {
	tbl := Table()
	comma := tbl[","]
	v := jarray.NewIntVector([]int{1, 2, 3})
	raveled, err := rank.ApplyMonad(comma, v)
	if err != nil {
		t.Fatal(err)
	}
	wantInts(t, raveled, []int{1, 2, 3})

	appended, err := rank.ApplyDyad(comma, jarray.NewIntVector([]int{1, 2}), jarray.NewIntVector([]int{3, 4}))
	if err != nil {
		t.Fatal(err)
	}
	wantInts(t, appended, []int{1, 2, 3, 4})
}

func TestStructuralHeadAndBehead(t *testing.T) {
	tbl := Table()
	v := jarray.NewIntVector([]int{10, 20, 30})

	head := tbl["{."]
	got, err := rank.ApplyDyad(head, jarray.NewIntAtom(2), v)
	if err != nil {
		t.Fatal(err)
	}
	wantInts(t, got, []int{10, 20})

	behead := tbl["}."]
	got, err = rank.ApplyDyad(behead, jarray.NewIntAtom(1), v)
	if err != nil {
		t.Fatal(err)
	}
	wantInts(t, got, []int{20, 30})
}

func TestIndexingIntegersAndSelect(t *testing.T) {
	tbl := Table()
	iDot := tbl["i."]
	got, err := rank.ApplyMonad(iDot, jarray.NewIntAtom(4))
	if err != nil {
		t.Fatal(err)
	}
	wantInts(t, got, []int{0, 1, 2, 3})

	brace := tbl["{"]
	v := jarray.NewIntVector([]int{5, 6, 7, 8})
	got, err = rank.ApplyDyad(brace, jarray.NewIntAtom(2), v)
	if err != nil {
		t.Fatal(err)
	}
	wantInts(t, got, []int{7})
}

// TestIndexingDyadicSearchesXForY pins dyadic i.'s operand roles: x is the
// haystack (its tally is the not-found fallback), y supplies the needles.
// Ground truth: (i. #) 3 1 4 1 5 9 is the atom 6 (6 not found in the
// 6-item haystack, so the fallback is the haystack's own tally).
func TestIndexingDyadicSearchesXForY(t *testing.T) {
	tbl := Table()
	iDot := tbl["i."]
	haystack := jarray.NewIntVector([]int{3, 1, 4, 1, 5, 9})

	got, err := rank.ApplyDyad(iDot, haystack, jarray.NewIntAtom(4))
	if err != nil {
		t.Fatal(err)
	}
	wantInts(t, got, []int{2})

	got, err = rank.ApplyDyad(iDot, haystack, jarray.NewIntAtom(6))
	if err != nil {
		t.Fatal(err)
	}
	wantInts(t, got, []int{6})

	got, err = rank.ApplyDyad(iDot, haystack, jarray.NewIntVector([]int{1, 9, 7}))
	if err != nil {
		t.Fatal(err)
	}
	wantInts(t, got, []int{1, 5, 6})
}

func TestMiscFactorial(t *testing.T) {
	tbl := Table()
	bang := tbl["!"]
	got, err := rank.ApplyMonad(bang, jarray.NewIntAtom(5))
	if err != nil {
		t.Fatal(err)
	}
	wantInts(t, got, []int{120})
}
