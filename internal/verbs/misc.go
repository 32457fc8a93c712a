package verbs

import (
	"math"
	"math/big"
	"math/rand/v2"

	jerr "github.com/sambacha/jgo/internal/errors"
	"github.com/sambacha/jgo/internal/jarray"
	"github.com/sambacha/jgo/internal/numeric"
	"github.com/sambacha/jgo/internal/token"
)

// miscVerbs builds the remaining structural/math primitives. roll and deal
// (monadic and dyadic ?) draw from rng, so a session can make its draws reproducible by
// seeding rng deterministically at construction.
func miscVerbs(rng *rand.Rand) []*token.Verb {
	roll := prim("?", token.Ranks{Monad: 0, Left: 0, Right: 0},
		func(y jarray.Array) (jarray.Array, error) {
			yn, err := atomNum(y)
			if err != nil {
				return jarray.Array{}, err
			}
			n, ok := yn.AsInt64()
			if !ok {
				return jarray.Array{}, jerr.Domain("?: argument must be an integer")
			}
			if n == 0 {
				return jarray.NewNumAtom(numeric.FromFloat(rng.Float64())), nil
			}
			if n < 0 {
				return jarray.Array{}, jerr.Domain("?: argument must be non-negative")
			}
			return jarray.NewIntAtom(rng.Int64N(n)), nil
		},
		func(x, y jarray.Array) (jarray.Array, error) {
			xn, err := atomNum(x)
			if err != nil {
				return jarray.Array{}, err
			}
			yn, err := atomNum(y)
			if err != nil {
				return jarray.Array{}, err
			}
			k, ok := xn.AsLen()
			if !ok {
				return jarray.Array{}, jerr.Domain("?: left argument must be a non-negative integer")
			}
			n, ok := yn.AsLen()
			if !ok || n == 0 {
				return jarray.Array{}, jerr.Domain("?: right argument must be a positive integer")
			}
			if k > n {
				return jarray.Array{}, jerr.Domain("?: deal count %d exceeds population %d", k, n)
			}
			perm := rng.Perm(n)[:k]
			out := make([]int, k)
			copy(out, perm)
			return jarray.NewIntVector(out), nil
		})

	bang := prim("!", token.Ranks{Monad: 0, Left: 0, Right: 0},
		func(y jarray.Array) (jarray.Array, error) {
			yn, err := atomNum(y)
			if err != nil {
				return jarray.Array{}, err
			}
			return factorial(yn)
		},
		func(x, y jarray.Array) (jarray.Array, error) {
			xn, err := atomNum(x)
			if err != nil {
				return jarray.Array{}, err
			}
			yn, err := atomNum(y)
			if err != nil {
				return jarray.Array{}, err
			}
			return binomial(xn, yn)
		})

	oDot := prim("o.", token.Ranks{Monad: 0, Left: 0, Right: 0},
		func(y jarray.Array) (jarray.Array, error) {
			yn, err := atomNum(y)
			if err != nil {
				return jarray.Array{}, err
			}
			f, _ := yn.ApproxFloat()
			return jarray.NewNumAtom(numeric.FromFloat(f * math.Pi).Demote()), nil
		},
		func(x, y jarray.Array) (jarray.Array, error) {
			xn, err := atomNum(x)
			if err != nil {
				return jarray.Array{}, err
			}
			yn, err := atomNum(y)
			if err != nil {
				return jarray.Array{}, err
			}
			code, ok := xn.AsInt64()
			if !ok {
				return jarray.Array{}, jerr.Domain("o.: left argument selects a circle function by integer code")
			}
			yf, _ := yn.ApproxFloat()
			return jarray.NewNumAtom(numeric.FromFloat(circleFn(code, yf)).Demote()), nil
		})

	return []*token.Verb{roll, bang, oDot}
}

// factorial implements monadic ! : integer factorial for non-negative
// integers (arbitrary precision via math/big), and the gamma-function
// extension Γ(y+1) for non-integer or negative arguments.
func factorial(n numeric.Num) (jarray.Array, error) {
	if i, ok := n.AsInt64(); ok && i >= 0 {
		result := big.NewInt(1)
		for k := int64(2); k <= i; k++ {
			result.Mul(result, big.NewInt(k))
		}
		return jarray.NewNumAtom(numeric.FromExtInt(result).Demote()), nil
	}
	f, ok := n.ApproxFloat()
	if !ok {
		return jarray.Array{}, jerr.Domain("!: argument has no real factorial extension")
	}
	return jarray.NewNumAtom(numeric.FromFloat(math.Gamma(f + 1)).Demote()), nil
}

// binomial implements dyadic ! : x!y is the number of ways to choose x
// items from y (the binomial coefficient), computed exactly when x and y
// are both non-negative integers (0 when x > y) and through the gamma
// function otherwise.
func binomial(x, y numeric.Num) (jarray.Array, error) {
	xi, xok := x.AsInt64()
	yi, yok := y.AsInt64()
	if xok && yok && xi >= 0 && yi >= 0 {
		if xi > yi {
			return jarray.NewIntAtom(0), nil
		}
		num := big.NewInt(1)
		den := big.NewInt(1)
		for k := int64(0); k < xi; k++ {
			num.Mul(num, big.NewInt(yi-k))
			den.Mul(den, big.NewInt(k+1))
		}
		num.Quo(num, den)
		return jarray.NewNumAtom(numeric.FromExtInt(num).Demote()), nil
	}
	xf, _ := x.ApproxFloat()
	yf, _ := y.ApproxFloat()
	v := math.Gamma(yf+1) / (math.Gamma(xf+1) * math.Gamma(yf-xf+1))
	return jarray.NewNumAtom(numeric.FromFloat(v).Demote()), nil
}

// circleFn implements the subset of o.'s circle-function codes commonly
// exercised outside of trigonometric identities: 1 is sine, 2 is cosine,
// 3 is tangent, -1/-2/-3 are their inverses, and 5/6/7 are the hyperbolic
// sine/cosine/tangent; any other code, 0 included, yields NaN.
func circleFn(code int64, y float64) float64 {
	switch code {
	case 1:
		return math.Sin(y)
	case 2:
		return math.Cos(y)
	case 3:
		return math.Tan(y)
	case -1:
		return math.Asin(y)
	case -2:
		return math.Acos(y)
	case -3:
		return math.Atan(y)
	case 5:
		return math.Sinh(y)
	case 6:
		return math.Cosh(y)
	case 7:
		return math.Tanh(y)
	default:
		return math.NaN()
	}
}
