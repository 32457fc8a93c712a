package verbs

import (
	jerr "github.com/sambacha/jgo/internal/errors"
	"github.com/sambacha/jgo/internal/jarray"
	"github.com/sambacha/jgo/internal/numeric"
	"github.com/sambacha/jgo/internal/token"
)

func atomNum(a jarray.Array) (numeric.Num, error) {
	if a.Kind == jarray.KindChar || a.Kind == jarray.KindBox {
		return numeric.Num{}, jerr.Domain("expected a numeric atom, got %s", a.Kind)
	}
	if len(a.Nums) == 0 {
		return numeric.Num{}, jerr.Domain("expected a numeric atom, got empty array")
	}
	return a.Nums[0], nil
}

func numVerb0(name string, m func(numeric.Num) numeric.Num, d func(x, y numeric.Num) numeric.Num) *token.Verb {
	return prim(name, token.Ranks{Monad: 0, Left: 0, Right: 0},
		func(y jarray.Array) (jarray.Array, error) {
			yn, err := atomNum(y)
			if err != nil {
				return jarray.Array{}, err
			}
			return jarray.NewNumAtom(m(yn)), nil
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
			return jarray.NewNumAtom(d(xn, yn)), nil
		})
}

func arithmeticVerbs() []*token.Verb {
	return []*token.Verb{
		numVerb0("+", numeric.Conjugate, numeric.Add),
		numVerb0("-", numeric.Neg, numeric.Sub),
		numVerb0("*", numeric.Signum, numeric.Mul),
		numVerb0("%", numeric.Recip, numeric.Div),
	}
}
