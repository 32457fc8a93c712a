package numeric

import (
	"math/big"
	"testing"
)

func TestAddPromotion(t *testing.T) {
	cases := []struct {
		name     string
		a, b     Num
		wantKind Kind
	}{
		{"bool+bool overflow to int", FromBool(true), FromBool(true), KindInt},
		{"int+int stays int", FromInt(2), FromInt(3), KindInt},
		{"int+extint promotes", FromInt(2), FromExtInt(big.NewInt(3)), KindInt},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Add(c.a, c.b)
			if got.Kind != c.wantKind {
				t.Errorf("Add(%v,%v).Kind = %v, want %v", c.a, c.b, got.Kind, c.wantKind)
			}
		})
	}
}

func TestDemoteIdempotent(t *testing.T) {
	vals := []Num{
		FromComplex(complex(3, 0)),
		FromFloat(4.0),
		FromInt(1),
		FromRational(big.NewRat(4, 2)),
		FromExtInt(big.NewInt(5)),
	}
	for _, v := range vals {
		once := v.Demote()
		twice := once.Demote()
		if once.Kind != twice.Kind {
			t.Errorf("Demote not idempotent for %+v: %v then %v", v, once.Kind, twice.Kind)
		}
	}
}

func TestDivisionExactness(t *testing.T) {
	got := Div(FromInt(6), FromInt(3))
	if got.Kind != KindInt || got.Int != 2 {
		t.Errorf("6/3 = %+v, want Int(2)", got)
	}
	got = Div(FromInt(1), FromInt(3))
	if got.Kind != KindRational {
		t.Errorf("1/3 = %+v, want Rational", got)
	}
}

func TestDivisionByZero(t *testing.T) {
	got := Div(FromInt(1), FromInt(0))
	if got.Kind != KindFloat {
		t.Fatalf("1/0 = %+v, want Float (signed infinity)", got)
	}
	if got.Float <= 0 {
		t.Errorf("1/0 should be +Inf, got %v", got.Float)
	}
}

func TestComplexDemotesThroughFloat(t *testing.T) {
	got := FromComplex(complex(5, 0)).Demote()
	if got.Kind != KindBool && got.Kind != KindInt {
		t.Errorf("Complex(5,0) should demote through Float/Int/Bool, got %v", got.Kind)
	}
}

func TestBoolFromIntRoundtrip(t *testing.T) {
	got := FromInt(0).Demote()
	if got.Kind != KindBool || got.Bool != 0 {
		t.Errorf("Int(0) should demote to Bool(0), got %+v", got)
	}
	got = FromInt(2).Demote()
	if got.Kind != KindInt {
		t.Errorf("Int(2) should stay Int, got %+v", got)
	}
}

func TestAsLen(t *testing.T) {
	if v, ok := FromInt(3).AsLen(); !ok || v != 3 {
		t.Errorf("AsLen(3) = %v,%v", v, ok)
	}
	if _, ok := FromInt(-1).AsLen(); ok {
		t.Errorf("AsLen(-1) should fail")
	}
}
