// Package rank implements the rank-driven dyadic and monadic application
// ("agreement") that is the central algorithm of the evaluator: given a
// verb's argument-rank triple, split each argument into cells of that
// rank, compute a common frame across arguments, broadcast cells, apply
// the verb per pair, and reassemble by fill-promotion.
package rank

import (
	"github.com/sambacha/jgo/internal/jarray"
	jerr "github.com/sambacha/jgo/internal/errors"
	"github.com/sambacha/jgo/internal/token"
)

// ApplyMonad applies v monadically to y: Infinite rank short-circuits to a
// single whole-argument invocation; otherwise y is split into cells of
// v's monad rank and the results are fill-promote-reassembled.
func ApplyMonad(v *token.Verb, y jarray.Array) (jarray.Array, error) {
	if v.Ranks.Monad == token.Infinite || int(v.Ranks.Monad) >= y.Rank() {
		out, err := v.Monad(y)
		if err != nil {
			return jarray.Array{}, wrapVerb(err, v)
		}
		return out, nil
	}
	cells := y.RankIter(int(v.Ranks.Monad))
	results := make([]jarray.Array, len(cells))
	for i, c := range cells {
		r, err := v.Monad(c)
		if err != nil {
			return jarray.Array{}, wrapVerb(err, v)
		}
		results[i] = r
	}
	frame := jarray.FrameOf(y.Shape, int(v.Ranks.Monad))
	return reassemble(frame, results)
}

// ApplyDyad applies v dyadically to (x, y): computes frames for each
// argument from v's left/right dyad ranks, the common frame (longest
// common prefix), the surplus frame (the remainder from whichever
// argument's frame extends further), iterates the common frame pairing
// cells (cycling the shorter side across the surplus), applies v per
// pair, and fill-promote-reassembles the results.
func ApplyDyad(v *token.Verb, x, y jarray.Array) (jarray.Array, error) {
	if v.Ranks.Left == token.Infinite && v.Ranks.Right == token.Infinite {
		out, err := v.Dyad(x, y)
		if err != nil {
			return jarray.Array{}, wrapVerb(err, v)
		}
		return out, nil
	}

	lr := v.Ranks.Left.Clamp(x.Rank())
	rr := v.Ranks.Right.Clamp(y.Rank())
	xFrame := jarray.FrameOf(x.Shape, lr)
	yFrame := jarray.FrameOf(y.Shape, rr)

	commonLen := commonPrefixLen(xFrame, yFrame)
	commonFrame := xFrame[:commonLen]

	xSurplus := xFrame[commonLen:]
	ySurplus := yFrame[commonLen:]

	var surplusFrame []int
	var surplusFromX bool
	switch {
	case len(xSurplus) == 0 && len(ySurplus) == 0:
		surplusFrame = nil
	case len(xSurplus) == 0:
		surplusFrame = ySurplus
	case len(ySurplus) == 0:
		surplusFrame = xSurplus
		surplusFromX = true
	default:
		return jarray.Array{}, jerr.Length("agreement: x frame %v and y frame %v diverge past common frame %v", xFrame, yFrame, commonFrame).WithVerb(v.Name)
	}

	numCommon := product(commonFrame)
	numSurplus := product(surplusFrame)
	total := numCommon * numSurplus

	xCells := x.RankIter(lr)
	yCells := y.RankIter(rr)

	results := make([]jarray.Array, 0, total)
	for c := 0; c < numCommon; c++ {
		for s := 0; s < numSurplus; s++ {
			var xi, yi int
			if surplusFromX {
				xi = c*numSurplus + s
				yi = c
			} else {
				yi = c*numSurplus + s
				xi = c
			}
			// Cycle the shorter side's cell index within bounds (atom
			// arguments at a positive-rank operator act as a length-1
			// frame and so are cycled against every position).
			if len(xCells) > 0 {
				xi %= len(xCells)
			}
			if len(yCells) > 0 {
				yi %= len(yCells)
			}
			r, err := v.Dyad(xCells[xi], yCells[yi])
			if err != nil {
				return jarray.Array{}, wrapVerb(err, v)
			}
			results = append(results, r)
		}
	}

	frame := append(append([]int{}, commonFrame...), surplusFrame...)
	return reassemble(frame, results)
}

func product(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	if len(dims) == 0 {
		return 1
	}
	return n
}

func commonPrefixLen(a, b []int) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// reassemble fill-promotes a list of per-cell results into a single array
// shaped frame++maxInnerShape, per spec §4.G step 7.
func reassemble(frame []int, results []jarray.Array) (jarray.Array, error) {
	if len(results) == 0 {
		shape := append(append([]int{}, frame...), 0)
		return jarray.Array{Shape: shape, Kind: jarray.KindBool}, nil
	}
	// All results share the same rank/shape in the overwhelmingly common
	// case (e.g. every arithmetic primitive): skip promotion machinery.
	uniform := true
	first := results[0]
	for _, r := range results[1:] {
		if r.Rank() != first.Rank() || !sameShape(r.Shape, first.Shape) || r.Kind != first.Kind {
			uniform = false
			break
		}
	}
	if uniform {
		return stackUniform(frame, results)
	}
	promoted, err := jarray.FromFillPromote(results)
	if err != nil {
		return jarray.Array{}, err
	}
	// FromFillPromote already prepended a length-len(results) leading axis;
	// replace it with the (possibly multi-axis) frame.
	innerShape := promoted.Shape[1:]
	outShape := append(append([]int{}, frame...), innerShape...)
	promoted.Shape = outShape
	return promoted, nil
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func stackUniform(frame []int, results []jarray.Array) (jarray.Array, error) {
	inner := results[0].Shape
	outShape := append(append([]int{}, frame...), inner...)
	kind := results[0].Kind
	out := jarray.Array{Shape: outShape, Kind: kind}
	switch kind {
	case jarray.KindChar:
		for _, r := range results {
			out.Chars = append(out.Chars, r.Chars...)
		}
	case jarray.KindBox:
		for _, r := range results {
			out.Boxes = append(out.Boxes, r.Boxes...)
		}
	default:
		for _, r := range results {
			out.Nums = append(out.Nums, r.Nums...)
		}
	}
	return out, nil
}

func wrapVerb(err error, v *token.Verb) error {
	if je, ok := jerr.As(err); ok && je.Verb == "" {
		je.WithVerb(v.Name)
	}
	return err
}
