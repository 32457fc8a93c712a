// Package numeric implements the scalar numeric tower that backs every
// numeric element of a JArray: Bool, Int, ExtInt, Rational, Float and
// Complex, with automatic promotion during arithmetic and automatic
// demotion back to the narrowest lossless representation.
package numeric

import (
	"math"
	"math/big"
	"math/cmplx"

	jerr "github.com/sambacha/jgo/internal/errors"
)

// Kind identifies a variant of the numeric tower. Kinds are ordered by
// promotion rank: Bool < Int < ExtInt < Rational < Float < Complex.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindExtInt
	KindRational
	KindFloat
	KindComplex
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindExtInt:
		return "ExtInt"
	case KindRational:
		return "Rational"
	case KindFloat:
		return "Float"
	case KindComplex:
		return "Complex"
	default:
		return "Unknown"
	}
}

// Join returns the higher-ranked of two kinds, per the promotion lattice.
func Join(a, b Kind) Kind {
	if a > b {
		return a
	}
	return b
}

// maxSafeInteger mirrors the reference implementation's cutoff for treating
// a float as exactly representing an integer.
const maxSafeInteger = 9007199254740991.0

// Num is a single scalar value from the numeric tower. Exactly one of the
// fields is meaningful, selected by Kind. Values are immutable once
// constructed; every arithmetic operation returns a new Num.
type Num struct {
	Kind    Kind
	Bool    uint8
	Int     int64
	ExtInt  *big.Int
	Rat     *big.Rat
	Float   float64
	Complex complex128
}

// FromBool constructs a Bool-kind Num (0 or 1).
func FromBool(b bool) Num {
	if b {
		return Num{Kind: KindBool, Bool: 1}
	}
	return Num{Kind: KindBool, Bool: 0}
}

// FromInt constructs an Int-kind Num.
func FromInt(v int64) Num { return Num{Kind: KindInt, Int: v} }

// FromExtInt constructs an ExtInt-kind Num.
func FromExtInt(v *big.Int) Num { return Num{Kind: KindExtInt, ExtInt: v} }

// FromRational constructs a Rational-kind Num.
func FromRational(v *big.Rat) Num { return Num{Kind: KindRational, Rat: v} }

// FromFloat constructs a Float-kind Num.
func FromFloat(v float64) Num { return Num{Kind: KindFloat, Float: v} }

// FromComplex constructs a Complex-kind Num.
func FromComplex(v complex128) Num { return Num{Kind: KindComplex, Complex: v} }

// FloatOrInt returns Int(v) when v's fractional part is (numerically) zero
// and v fits safely in an int64, otherwise Float(v). This mirrors the
// behavior of monadic math verbs like floor/ceiling.
func FloatOrInt(v float64) Num {
	if i, ok := floatIsInt(v); ok {
		return FromInt(i)
	}
	return FromFloat(v)
}

func floatIsZero(v float64) bool { return math.Abs(v) < 1e-12 }

func floatIsInt(v float64) (int64, bool) {
	if floatIsZero(v) {
		return 0, true
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	if math.Abs(v) > maxSafeInteger {
		return 0, false
	}
	if !floatIsZero(v - math.Round(v)) {
		return 0, false
	}
	return int64(v), true
}

// One returns the Bool-kind value 1 (the multiplicative identity, and the
// conventional J constant used by e.g. `$.` fills and `i.` identities).
func One() Num { return FromBool(true) }

// Zero returns the Bool-kind value 0 (additive identity and numeric fill
// value).
func Zero() Num { return FromBool(false) }

// ApproxFloat converts any Num to its best float64 approximation. Complex
// values with nonzero imaginary part have no float approximation.
func (n Num) ApproxFloat() (float64, bool) {
	switch n.Kind {
	case KindBool:
		return float64(n.Bool), true
	case KindInt:
		return float64(n.Int), true
	case KindExtInt:
		f := new(big.Float).SetInt(n.ExtInt)
		v, _ := f.Float64()
		return v, true
	case KindRational:
		v, _ := new(big.Float).SetRat(n.Rat).Float64()
		return v, true
	case KindFloat:
		return n.Float, true
	case KindComplex:
		if imagIsZero(n.Complex) {
			return real(n.Complex), true
		}
		return 0, false
	}
	return 0, false
}

func imagIsZero(c complex128) bool { return floatIsZero(imag(c)) }

// AsBool reports whether n "looks like" a 1 (true) or 0 (false),
// regardless of kind, returning ok=false when n is neither.
func (n Num) AsBool() (bool, bool) {
	switch n.Kind {
	case KindBool:
		return n.Bool == 1, true
	case KindInt:
		switch n.Int {
		case 0:
			return false, true
		case 1:
			return true, true
		default:
			return false, false
		}
	case KindExtInt:
		if n.ExtInt.Sign() == 0 {
			return false, true
		}
		if n.ExtInt.Cmp(big.NewInt(1)) == 0 {
			return true, true
		}
		return false, false
	case KindFloat:
		if i, ok := floatIsInt(n.Float); ok {
			return FromInt(i).AsBool()
		}
		return false, false
	case KindRational:
		f, _ := n.Rat.Float64()
		return FromFloat(f).AsBool()
	case KindComplex:
		if imagIsZero(n.Complex) {
			return FromFloat(real(n.Complex)).AsBool()
		}
	}
	return false, false
}

// AsInt64 converts n to an int64 if it is exactly representable.
func (n Num) AsInt64() (int64, bool) {
	switch n.Kind {
	case KindBool:
		return int64(n.Bool), true
	case KindInt:
		return n.Int, true
	case KindExtInt:
		if n.ExtInt.IsInt64() {
			return n.ExtInt.Int64(), true
		}
		return 0, false
	case KindFloat:
		return floatIsInt(n.Float)
	case KindRational:
		f, _ := n.Rat.Float64()
		return FromFloat(f).AsInt64()
	case KindComplex:
		if imagIsZero(n.Complex) {
			return FromFloat(real(n.Complex)).AsInt64()
		}
	}
	return 0, false
}

// AsLen converts n to a non-negative array length/index, used throughout
// the array model for shapes and indices.
func (n Num) AsLen() (int, bool) {
	i, ok := n.AsInt64()
	if !ok || i < 0 || i > math.MaxInt32 {
		return 0, false
	}
	return int(i), true
}

// promote widens a and b to a shared Kind, the join of their individual
// kinds, returning values of that common kind.
func promote(a, b Num) (Num, Num) {
	k := Join(a.Kind, b.Kind)
	return widen(a, k), widen(b, k)
}

func widen(n Num, k Kind) Num {
	if n.Kind == k {
		return n
	}
	switch k {
	case KindInt:
		return FromInt(int64(n.Bool))
	case KindExtInt:
		switch n.Kind {
		case KindBool:
			return FromExtInt(big.NewInt(int64(n.Bool)))
		case KindInt:
			return FromExtInt(big.NewInt(n.Int))
		}
	case KindRational:
		switch n.Kind {
		case KindBool:
			return FromRational(new(big.Rat).SetInt64(int64(n.Bool)))
		case KindInt:
			return FromRational(new(big.Rat).SetInt64(n.Int))
		case KindExtInt:
			return FromRational(new(big.Rat).SetInt(n.ExtInt))
		}
	case KindFloat:
		f, _ := n.ApproxFloat()
		return FromFloat(f)
	case KindComplex:
		switch n.Kind {
		case KindComplex:
			return n
		default:
			f, _ := n.ApproxFloat()
			return FromComplex(complex(f, 0))
		}
	}
	return n
}

// Demote canonicalizes n to the narrowest variant that represents it
// losslessly: Complex with zero imaginary part collapses to Float; Float
// with an integral value collapses to Int; Int in {0,1} collapses to Bool;
// Rational with unit denominator collapses to ExtInt.
func (n Num) Demote() Num {
	switch n.Kind {
	case KindComplex:
		if imagIsZero(n.Complex) {
			return FromFloat(real(n.Complex)).Demote()
		}
		return n
	case KindFloat:
		if i, ok := floatIsInt(n.Float); ok {
			return FromInt(i).Demote()
		}
		return n
	case KindRational:
		if n.Rat.IsInt() {
			return FromExtInt(new(big.Int).Set(n.Rat.Num())).Demote()
		}
		return n
	case KindExtInt:
		if n.ExtInt.IsInt64() {
			return FromInt(n.ExtInt.Int64()).Demote()
		}
		return n
	case KindInt:
		if n.Int == 0 || n.Int == 1 {
			return FromBool(n.Int == 1)
		}
		return n
	default:
		return n
	}
}

// Add returns a+b, promoted and demoted per the tower's rules.
func Add(a, b Num) Num {
	x, y := promote(a, b)
	switch x.Kind {
	case KindBool, KindInt:
		xi, yi := asInt(x), asInt(y)
		sum := xi + yi
		if (yi > 0 && sum < xi) || (yi < 0 && sum > xi) {
			return FromFloat(float64(xi) + float64(yi)).Demote()
		}
		return FromInt(sum).Demote()
	case KindExtInt:
		return FromExtInt(new(big.Int).Add(x.ExtInt, y.ExtInt)).Demote()
	case KindRational:
		return FromRational(new(big.Rat).Add(x.Rat, y.Rat)).Demote()
	case KindFloat:
		return FromFloat(x.Float + y.Float).Demote()
	case KindComplex:
		return FromComplex(x.Complex + y.Complex).Demote()
	}
	return Num{}
}

func asInt(n Num) int64 {
	if n.Kind == KindBool {
		return int64(n.Bool)
	}
	return n.Int
}

// Sub returns a-b.
func Sub(a, b Num) Num {
	x, y := promote(a, b)
	switch x.Kind {
	case KindBool, KindInt:
		xi, yi := asInt(x), asInt(y)
		diff := xi - yi
		if (yi < 0 && diff < xi) || (yi > 0 && diff > xi) {
			return FromFloat(float64(xi) - float64(yi)).Demote()
		}
		return FromInt(diff).Demote()
	case KindExtInt:
		return FromExtInt(new(big.Int).Sub(x.ExtInt, y.ExtInt)).Demote()
	case KindRational:
		return FromRational(new(big.Rat).Sub(x.Rat, y.Rat)).Demote()
	case KindFloat:
		return FromFloat(x.Float - y.Float).Demote()
	case KindComplex:
		return FromComplex(x.Complex - y.Complex).Demote()
	}
	return Num{}
}

// Mul returns a*b.
func Mul(a, b Num) Num {
	x, y := promote(a, b)
	switch x.Kind {
	case KindBool, KindInt:
		xi, yi := asInt(x), asInt(y)
		if xi == 0 || yi == 0 {
			return FromInt(0).Demote()
		}
		prod := xi * yi
		if prod/yi != xi {
			return FromFloat(float64(xi) * float64(yi)).Demote()
		}
		return FromInt(prod).Demote()
	case KindExtInt:
		return FromExtInt(bigMul(x.ExtInt, y.ExtInt)).Demote()
	case KindRational:
		return FromRational(new(big.Rat).Mul(x.Rat, y.Rat)).Demote()
	case KindFloat:
		return FromFloat(x.Float * y.Float).Demote()
	case KindComplex:
		return FromComplex(x.Complex * y.Complex).Demote()
	}
	return Num{}
}

// Div returns a/b. Division of two integers yields Int when exact,
// otherwise Rational. Division by zero yields signed infinity or NaN
// (IEEE semantics) rather than faulting.
func Div(a, b Num) Num {
	x, y := promote(a, b)
	switch x.Kind {
	case KindBool, KindInt:
		xi, yi := asInt(x), asInt(y)
		if yi == 0 {
			return FromFloat(float64(xi) / float64(yi)).Demote()
		}
		if xi%yi == 0 {
			return FromInt(xi / yi).Demote()
		}
		return FromRational(big.NewRat(xi, yi)).Demote()
	case KindExtInt:
		if y.ExtInt.Sign() == 0 {
			f, _ := x.ApproxFloat()
			return FromFloat(f / 0).Demote()
		}
		q, r := new(big.Int), new(big.Int)
		q.QuoRem(x.ExtInt, y.ExtInt, r)
		if r.Sign() == 0 {
			return FromExtInt(q).Demote()
		}
		return FromRational(new(big.Rat).SetFrac(x.ExtInt, y.ExtInt)).Demote()
	case KindRational:
		if y.Rat.Sign() == 0 {
			xf, _ := x.ApproxFloat()
			return FromFloat(xf / 0).Demote()
		}
		return FromRational(new(big.Rat).Quo(x.Rat, y.Rat)).Demote()
	case KindFloat:
		return FromFloat(x.Float / y.Float).Demote()
	case KindComplex:
		return FromComplex(x.Complex / y.Complex).Demote()
	}
	return Num{}
}

// Neg returns -a.
func Neg(a Num) Num {
	switch a.Kind {
	case KindBool:
		return FromInt(-int64(a.Bool)).Demote()
	case KindInt:
		return FromInt(-a.Int).Demote()
	case KindExtInt:
		return FromExtInt(new(big.Int).Neg(a.ExtInt)).Demote()
	case KindRational:
		return FromRational(new(big.Rat).Neg(a.Rat)).Demote()
	case KindFloat:
		return FromFloat(-a.Float).Demote()
	case KindComplex:
		return FromComplex(-a.Complex).Demote()
	}
	return a
}

// Recip returns 1/a (monadic %).
func Recip(a Num) Num { return Div(One(), a) }

// Conjugate returns the complex conjugate of a (identity for non-complex).
func Conjugate(a Num) Num {
	if a.Kind == KindComplex {
		return FromComplex(cmplx.Conj(a.Complex)).Demote()
	}
	return a
}

// Signum returns -1, 0 or 1 for real Nums; for Complex, a/|a|.
func Signum(a Num) Num {
	if a.Kind == KindComplex {
		if a.Complex == 0 {
			return FromInt(0).Demote()
		}
		m := cmplx.Abs(a.Complex)
		return FromComplex(a.Complex / complex(m, 0)).Demote()
	}
	f, _ := a.ApproxFloat()
	switch {
	case f > 0:
		return FromInt(1).Demote()
	case f < 0:
		return FromInt(-1)
	default:
		return FromInt(0).Demote()
	}
}

// Cmp orders a against b: -1, 0, or 1. Ordering a non-real Complex value
// (one with a nonzero imaginary part) is undefined and reports a
// DomainError, the way the rest of the tower reports an operation outside
// its definition rather than panicking on valid input.
func Cmp(a, b Num) (int, error) {
	x, y := promote(a, b)
	switch x.Kind {
	case KindBool, KindInt:
		xi, yi := asInt(x), asInt(y)
		switch {
		case xi < yi:
			return -1, nil
		case xi > yi:
			return 1, nil
		default:
			return 0, nil
		}
	case KindExtInt:
		return x.ExtInt.Cmp(y.ExtInt), nil
	case KindRational:
		return x.Rat.Cmp(y.Rat), nil
	case KindFloat:
		switch {
		case x.Float < y.Float:
			return -1, nil
		case x.Float > y.Float:
			return 1, nil
		default:
			return 0, nil
		}
	case KindComplex:
		xf, xok := x.ApproxFloat()
		yf, yok := y.ApproxFloat()
		if !xok || !yok {
			return 0, jerr.Domain("ordering of non-real Complex values is undefined")
		}
		return Cmp(FromFloat(xf), FromFloat(yf))
	}
	return 0, nil
}

// Eq reports whether a equals b, defined for every pair including Complex.
func Eq(a, b Num) bool {
	x, y := promote(a, b)
	switch x.Kind {
	case KindComplex:
		return x.Complex == y.Complex
	default:
		c, _ := Cmp(a, b)
		return c == 0
	}
}
