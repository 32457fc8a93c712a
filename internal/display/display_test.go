package display

import (
	"math/big"
	"testing"

	"github.com/sambacha/jgo/internal/jarray"
	"github.com/sambacha/jgo/internal/numeric"
)

func TestRenderAtom(t *testing.T) {
	got := Render(jarray.NewIntAtom(5))
	if got != "5" {
		t.Fatalf("got %q, want %q", got, "5")
	}
}

func TestRenderNegativeUsesUnderscore(t *testing.T) {
	got := Render(jarray.NewIntAtom(-3))
	if got != "_3" {
		t.Fatalf("got %q, want %q", got, "_3")
	}
}

func TestRenderVectorColumnAligns(t *testing.T) {
	v := jarray.NewIntVector([]int{1, -22, 3})
	got := Render(v)
	want := "  1 _22   3"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderCharVector(t *testing.T) {
	got := Render(jarray.NewCharVector("abc"))
	if got != "abc" {
		t.Fatalf("got %q, want %q", got, "abc")
	}
}

func TestRenderMatrixBlocks(t *testing.T) {
	v := jarray.NewIntVector([]int{1, 2, 3, 4})
	m, err := jarray.Reshape([]int{2, 2}, v)
	if err != nil {
		t.Fatal(err)
	}
	got := Render(m)
	want := "1 2\n\n3 4"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderBoxedScalar(t *testing.T) {
	got := Render(jarray.NewBox(jarray.NewIntAtom(7)))
	want := "+-+\n|7|\n+-+"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatNumRational(t *testing.T) {
	n := numeric.FromRational(big.NewRat(1, 2))
	got := formatNum(n, DefaultPrecision)
	if got != "1r2" {
		t.Fatalf("got %q, want %q", got, "1r2")
	}
}

func TestFormatNumComplex(t *testing.T) {
	n := numeric.FromComplex(complex(2, -3))
	got := formatNum(n, DefaultPrecision)
	if got != "2j_3" {
		t.Fatalf("got %q, want %q", got, "2j_3")
	}
}

func TestRenderPrecisionLimitsSignificantDigits(t *testing.T) {
	got := RenderPrecision(jarray.NewNumAtom(numeric.FromFloat(1.0/3.0)), 3)
	if got != "0.333" {
		t.Fatalf("got %q, want %q", got, "0.333")
	}
}

func TestRenderPrecisionNonPositiveFallsBackToShortest(t *testing.T) {
	got := RenderPrecision(jarray.NewNumAtom(numeric.FromFloat(0.1)), 0)
	if got != "0.1" {
		t.Fatalf("got %q, want %q", got, "0.1")
	}
}
