// Package modifiers implements the adverbs and conjunctions that combine
// verbs (and, for conjunctions, nouns) into derived verbs: Insert/Table,
// Prefix/Infix, Reflexive/Passive, Key, Atop, Rank, Power, Bond and Under.
// Every derived verb's Monad/Dyad closure recurses through rank.ApplyMonad
// / rank.ApplyDyad so a modifier built over a rank-restricted operand
// still agrees correctly against higher-rank arguments.
package modifiers

import "github.com/sambacha/jgo/internal/token"

// Table returns the modifier table, keyed by source glyph.
func Table() map[string]*token.Modifier {
	t := map[string]*token.Modifier{}
	for _, m := range adverbs() {
		t[m.Name] = m
	}
	for _, m := range conjunctions() {
		t[m.Name] = m
	}
	return t
}

func derived(name string, ranks token.Ranks, monad token.MonadFunc, dyad token.DyadFunc) *token.Verb {
	return &token.Verb{Kind: token.VerbPartial, Name: name, Ranks: ranks, Monad: monad, Dyad: dyad}
}
