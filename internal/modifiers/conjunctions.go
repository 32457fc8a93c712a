package modifiers

import (
	jerr "github.com/sambacha/jgo/internal/errors"
	"github.com/sambacha/jgo/internal/jarray"
	"github.com/sambacha/jgo/internal/rank"
	"github.com/sambacha/jgo/internal/token"
)

func conjunctions() []*token.Modifier {
	return []*token.Modifier{
		{Kind: token.KindConjunction, Name: "@", FormConjunction: formAtop},
		{Kind: token.KindConjunction, Name: "\"", FormConjunction: formRank},
		{Kind: token.KindConjunction, Name: "^:", FormConjunction: formPower},
		{Kind: token.KindConjunction, Name: "&", FormConjunction: formBond},
		{Kind: token.KindConjunction, Name: "&.", FormConjunction: formUnder},
	}
}

// formAtop builds u@v: monadic y applies v then u; dyadic x,y applies v
// dyadically then u monadically to the result.
func formAtop(u, v token.Operand) (*token.Verb, error) {
	if !u.IsVerb || !v.IsVerb {
		return nil, jerr.Domain("@: both operands must be verbs")
	}
	uv, vv := u.Verb, v.Verb
	return derived(uv.Name+"@"+vv.Name, token.Ranks{Monad: vv.Ranks.Monad, Left: vv.Ranks.Left, Right: vv.Ranks.Right},
		func(y jarray.Array) (jarray.Array, error) {
			mid, err := rank.ApplyMonad(vv, y)
			if err != nil {
				return jarray.Array{}, err
			}
			return rank.ApplyMonad(uv, mid)
		},
		func(x, y jarray.Array) (jarray.Array, error) {
			mid, err := rank.ApplyDyad(vv, x, y)
			if err != nil {
				return jarray.Array{}, err
			}
			return rank.ApplyMonad(uv, mid)
		}), nil
}

// formRank builds u"n: u with its rank triple replaced by n (a scalar
// applies to all three slots; a 3-item list sets monad/left/right
// independently).
func formRank(u, n token.Operand) (*token.Verb, error) {
	if !u.IsVerb {
		return nil, jerr.Domain("\": left operand must be a verb")
	}
	if n.Noun == nil {
		return nil, jerr.Domain("\": right operand must be a noun giving rank")
	}
	ranks, err := ranksFromNoun(*n.Noun)
	if err != nil {
		return nil, err
	}
	uv := u.Verb
	return derived(uv.Name+"\"", ranks, uv.Monad, uv.Dyad), nil
}

func ranksFromNoun(a jarray.Array) (token.Ranks, error) {
	items := a.OuterIter()
	toRank := func(it jarray.Array) (token.Rank, error) {
		v, ok := it.Nums[0].AsInt64()
		if !ok {
			return 0, jerr.Domain("\": rank components must be integers")
		}
		if v < 0 {
			return token.Infinite, nil
		}
		return token.Rank(v), nil
	}
	if a.IsAtom() || len(items) == 1 {
		r, err := toRank(a)
		if err != nil {
			return token.Ranks{}, err
		}
		return token.Ranks{Monad: r, Left: r, Right: r}, nil
	}
	if len(items) != 3 {
		return token.Ranks{}, jerr.Length("\": rank noun must have 1 or 3 items, got %d", len(items))
	}
	m, err := toRank(items[0])
	if err != nil {
		return token.Ranks{}, err
	}
	l, err := toRank(items[1])
	if err != nil {
		return token.Ranks{}, err
	}
	r, err := toRank(items[2])
	if err != nil {
		return token.Ranks{}, err
	}
	return token.Ranks{Monad: m, Left: l, Right: r}, nil
}

// formPower builds u^:n: repeated application of u. A non-negative integer
// n applies u that many times; the literal infinity "_" applies u until
// the result stops changing (a fixpoint).
func formPower(u, n token.Operand) (*token.Verb, error) {
	if !u.IsVerb {
		return nil, jerr.Domain("^:: left operand must be a verb")
	}
	uv := u.Verb
	if n.IsVerb {
		return nil, jerr.Nonce("^:: verb-valued right operand (condition) is not supported")
	}
	count, isInf, err := powerCount(*n.Noun)
	if err != nil {
		return nil, err
	}
	return derived(uv.Name+"^:", token.Ranks{Monad: token.Infinite, Left: token.Infinite, Right: token.Infinite},
		func(y jarray.Array) (jarray.Array, error) {
			return applyPower(uv, y, count, isInf)
		},
		func(x, y jarray.Array) (jarray.Array, error) {
			if isInf || count < 0 {
				return jarray.Array{}, jerr.Nonce("^:: infinite/negative power is only defined monadically")
			}
			cur := y
			for i := int64(0); i < count; i++ {
				r, err := rank.ApplyDyad(uv, x, cur)
				if err != nil {
					return jarray.Array{}, err
				}
				cur = r
			}
			return cur, nil
		}), nil
}

func powerCount(n jarray.Array) (int64, bool, error) {
	v, ok := n.Nums[0].AsInt64()
	if !ok {
		// Infinity is represented as a Float +Inf/-Inf noun by the scanner.
		if f, ok := n.Nums[0].ApproxFloat(); ok && (f > 1e300 || f < -1e300) {
			return 0, true, nil
		}
		return 0, false, jerr.Domain("^:: power must be an integer or infinity")
	}
	return v, false, nil
}

func applyPower(uv *token.Verb, y jarray.Array, count int64, isInf bool) (jarray.Array, error) {
	cur := y
	if isInf {
		for {
			next, err := rank.ApplyMonad(uv, cur)
			if err != nil {
				return jarray.Array{}, err
			}
			if sameArray(next, cur) {
				return next, nil
			}
			cur = next
		}
	}
	if count < 0 {
		if uv.Obverse == nil {
			return jarray.Array{}, jerr.Nonce("^:: negative power requires a declared obverse")
		}
		for i := int64(0); i < -count; i++ {
			next, err := rank.ApplyMonad(uv.Obverse, cur)
			if err != nil {
				return jarray.Array{}, err
			}
			cur = next
		}
		return cur, nil
	}
	for i := int64(0); i < count; i++ {
		next, err := rank.ApplyMonad(uv, cur)
		if err != nil {
			return jarray.Array{}, err
		}
		cur = next
	}
	return cur, nil
}

func sameArray(a, b jarray.Array) bool {
	return deepEq(a, b)
}

// formBond builds &: a noun bonded to a verb's left or right argument when
// one operand is a noun, or full composition (each side transformed by v
// before u combines them) when both operands are verbs.
func formBond(u, v token.Operand) (*token.Verb, error) {
	switch {
	case u.IsVerb && !v.IsVerb:
		uv := u.Verb
		bound := *v.Noun
		return derived(uv.Name+"&n", token.Ranks{Monad: token.Infinite},
			func(y jarray.Array) (jarray.Array, error) { return rank.ApplyDyad(uv, y, bound) },
			nil), nil
	case !u.IsVerb && v.IsVerb:
		vv := v.Verb
		bound := *u.Noun
		return derived("n&"+vv.Name, token.Ranks{Monad: token.Infinite},
			func(y jarray.Array) (jarray.Array, error) { return rank.ApplyDyad(vv, bound, y) },
			nil), nil
	case u.IsVerb && v.IsVerb:
		uv, vv := u.Verb, v.Verb
		return derived(uv.Name+"&"+vv.Name, token.Ranks{Monad: token.Infinite, Left: token.Infinite, Right: token.Infinite},
			func(y jarray.Array) (jarray.Array, error) {
				mid, err := rank.ApplyMonad(vv, y)
				if err != nil {
					return jarray.Array{}, err
				}
				return rank.ApplyMonad(uv, mid)
			},
			func(x, y jarray.Array) (jarray.Array, error) {
				mx, err := rank.ApplyMonad(vv, x)
				if err != nil {
					return jarray.Array{}, err
				}
				my, err := rank.ApplyMonad(vv, y)
				if err != nil {
					return jarray.Array{}, err
				}
				return rank.ApplyDyad(uv, mx, my)
			}), nil
	}
	return nil, jerr.Domain("&: at least one operand must be a verb")
}

// formUnder builds u&.v ("under"): transforms the argument(s) by v, applies
// u, then maps the result back through v's declared inverse.
func formUnder(u, v token.Operand) (*token.Verb, error) {
	if !u.IsVerb || !v.IsVerb {
		return nil, jerr.Domain("&.: both operands must be verbs")
	}
	uv, vv := u.Verb, v.Verb
	if vv.Obverse == nil {
		return nil, jerr.Nonce("&.: right operand has no declared obverse")
	}
	return derived(uv.Name+"&."+vv.Name, token.Ranks{Monad: token.Infinite, Left: token.Infinite, Right: token.Infinite},
		func(y jarray.Array) (jarray.Array, error) {
			mid, err := rank.ApplyMonad(vv, y)
			if err != nil {
				return jarray.Array{}, err
			}
			r, err := rank.ApplyMonad(uv, mid)
			if err != nil {
				return jarray.Array{}, err
			}
			return rank.ApplyMonad(vv.Obverse, r)
		},
		func(x, y jarray.Array) (jarray.Array, error) {
			mx, err := rank.ApplyMonad(vv, x)
			if err != nil {
				return jarray.Array{}, err
			}
			my, err := rank.ApplyMonad(vv, y)
			if err != nil {
				return jarray.Array{}, err
			}
			r, err := rank.ApplyDyad(uv, mx, my)
			if err != nil {
				return jarray.Array{}, err
			}
			return rank.ApplyMonad(vv.Obverse, r)
		}), nil
}
