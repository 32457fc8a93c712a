// Package verbs implements the supported primitive verbs: arithmetic,
// relational, shape-manipulating, indexing, boxing, and the remaining
// structural/math primitives. Each primitive is identified by its source
// glyph and carries a
// (monad-rank, dyad-left-rank, dyad-right-rank) triple plus monadic and
// dyadic implementations operating on already rank-decomposed cells; the
// rank package is responsible for the decomposition itself.
package verbs

import (
	"math/rand/v2"

	"github.com/sambacha/jgo/internal/token"
)

// Table returns the primitive verb table, keyed by source glyph, with
// roll/deal (?) drawing from the runtime's own entropy.
func Table() map[string]*token.Verb {
	return buildTable(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// TableSeeded is Table, but roll/deal (?) draw from a source derived
// deterministically from seed, so a session can reproduce a script's random
// draws across runs. seed == 0 behaves like Table, reseeding from the
// runtime's own entropy.
func TableSeeded(seed int64) map[string]*token.Verb {
	if seed == 0 {
		return Table()
	}
	return buildTable(rand.New(rand.NewPCG(uint64(seed), uint64(seed))))
}

func buildTable(rng *rand.Rand) map[string]*token.Verb {
	t := map[string]*token.Verb{}
	register(t, arithmeticVerbs())
	register(t, relationalVerbs())
	register(t, shapeVerbs())
	register(t, structuralVerbs())
	register(t, indexingVerbs())
	register(t, boxingVerbs())
	register(t, miscVerbs(rng))
	t["[:"] = &token.Verb{Kind: token.VerbCap, Name: "[:"}
	return t
}

func register(t map[string]*token.Verb, vs []*token.Verb) {
	for _, v := range vs {
		t[v.Name] = v
	}
}

func prim(name string, ranks token.Ranks, monad token.MonadFunc, dyad token.DyadFunc) *token.Verb {
	return &token.Verb{
		Kind:  token.VerbPrimitive,
		Name:  name,
		Ranks: ranks,
		Monad: monad,
		Dyad:  dyad,
	}
}
