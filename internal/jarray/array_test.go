package jarray

import (
	"testing"

	"github.com/sambacha/jgo/internal/numeric"
)

func TestReshapeCycles(t *testing.T) {
	src := NewIntVector([]int{1, 2, 3, 4})
	out, err := Reshape([]int{2, 2}, src)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rank() != 2 || out.Shape[0] != 2 || out.Shape[1] != 2 {
		t.Fatalf("shape = %v", out.Shape)
	}
	got := make([]int, 4)
	for i := range got {
		v, _ := out.Nums[i].AsLen()
		got[i] = v
	}
	want := []int{1, 2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("idx %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestReshapeNegativeFails(t *testing.T) {
	src := NewIntVector([]int{1, 2, 3})
	if _, err := Reshape([]int{-1}, src); err == nil {
		t.Error("expected error for negative dimension")
	}
}

func TestShapeOfReshapeIdentity(t *testing.T) {
	src := NewIntVector([]int{1, 2, 3, 4, 5, 6})
	reshaped, err := Reshape([]int{2, 3}, src)
	if err != nil {
		t.Fatal(err)
	}
	shapeArr := reshaped.ShapeArray()
	rt, err := Reshape(shapeArrayToInts(shapeArr), src)
	if err != nil {
		t.Fatal(err)
	}
	if rt.Shape[0] != 2 || rt.Shape[1] != 3 {
		t.Errorf("roundtrip shape = %v", rt.Shape)
	}
}

func shapeArrayToInts(a Array) []int {
	out := make([]int, a.Len())
	for i := range out {
		out[i], _ = a.IntAt(i)
	}
	return out
}

func TestTransposeReversesAxes(t *testing.T) {
	src, _ := Reshape([]int{2, 3}, NewIntVector([]int{1, 2, 3, 4, 5, 6}))
	tr := Transpose(src)
	if tr.Shape[0] != 3 || tr.Shape[1] != 2 {
		t.Fatalf("transpose shape = %v", tr.Shape)
	}
}

func TestFromFillPromoteWidensKind(t *testing.T) {
	items := []Array{
		NewIntVector([]int{1, 2}),
		{Shape: []int{1}, Kind: KindFloat, Nums: []numeric.Num{numeric.FromFloat(1.5)}},
	}
	out, err := FromFillPromote(items)
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind != KindFloat {
		t.Errorf("kind = %v, want Float", out.Kind)
	}
	if out.Shape[0] != 2 || out.Shape[1] != 2 {
		t.Errorf("shape = %v", out.Shape)
	}
}

func TestFromFillPromotePadsShortRows(t *testing.T) {
	items := []Array{
		NewIntVector([]int{1, 2, 3}),
		NewIntVector([]int{4}),
	}
	out, err := FromFillPromote(items)
	if err != nil {
		t.Fatal(err)
	}
	if out.Shape[1] != 3 {
		t.Fatalf("shape = %v", out.Shape)
	}
	v, _ := out.Nums[3].AsLen() // second row, first element = 4
	if v != 4 {
		t.Errorf("second row first elem = %d, want 4", v)
	}
	v, _ = out.Nums[4].AsLen() // second row, second element padded with 0
	if v != 0 {
		t.Errorf("pad elem = %d, want 0", v)
	}
}
