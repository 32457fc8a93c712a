// Package parser turns a flat sentence of token.Words (as produced by the
// scanner and the control-word resolver) into a single reduced Word: a
// Noun value, a Verb (possibly a derived fork/hook/modifier result), or
// the value produced by an assignment. It implements J's right-to-left
// sentence grammar in passes, tightest binding first: parenthesization,
// assignment splitting, name resolution, conjunction/adverb binding, noun
// stranding, verb-train (fork/hook) collapsing, and finally right-to-left
// application.
package parser

import (
	"github.com/sambacha/jgo/internal/env"
	jerr "github.com/sambacha/jgo/internal/errors"
	"github.com/sambacha/jgo/internal/jarray"
	"github.com/sambacha/jgo/internal/rank"
	"github.com/sambacha/jgo/internal/token"
)

// ModifierTable looks up an adverb or conjunction by its source glyph.
type ModifierTable interface {
	Lookup(name string) (*token.Modifier, bool)
}

type mapModifierTable map[string]*token.Modifier

func (m mapModifierTable) Lookup(name string) (*token.Modifier, bool) {
	mod, ok := m[name]
	return mod, ok
}

// NewModifierTable adapts a plain map into a ModifierTable.
func NewModifierTable(m map[string]*token.Modifier) ModifierTable { return mapModifierTable(m) }

// VerbTable looks up a primitive verb's full implementation by its source
// glyph. The scanner emits primitive verb Words carrying only a Name (no
// Monad/Dyad closures); the parser fills those in from this table before
// any rank application happens.
type VerbTable interface {
	Lookup(name string) (*token.Verb, bool)
}

type mapVerbTable map[string]*token.Verb

func (m mapVerbTable) Lookup(name string) (*token.Verb, bool) {
	v, ok := m[name]
	return v, ok
}

// NewVerbTable adapts a plain map into a VerbTable.
func NewVerbTable(m map[string]*token.Verb) VerbTable { return mapVerbTable(m) }

// Parse reduces a sentence to a single Word, resolving names against e,
// filling in primitive verbs from verbs, and looking up adverb/conjunction
// glyphs against mods.
func Parse(words []token.Word, e *env.Env, verbs VerbTable, mods ModifierTable) (token.Word, error) {
	words = append([]token.Word{}, words...)
	words = resolveVerbs(words, verbs)
	for i, w := range words {
		if mods == nil || w.Kind != token.KVerb || w.Verb == nil || w.Verb.Kind != token.VerbPrimitive || w.Verb.Monad != nil || w.Verb.Dyad != nil {
			continue
		}
		if m, ok := mods.Lookup(w.Verb.Name); ok {
			if m.Kind == token.KindAdverb {
				words[i] = token.AdverbWord(m)
			} else {
				words[i] = token.ConjunctionWord(m)
			}
		}
	}

	words, err := resolveParens(words, e, verbs, mods)
	if err != nil {
		return token.Word{}, err
	}

	if name, isGlobal, rhs, ok := splitAssignment(words); ok {
		val, err := reduceFragment(rhs, e, mods)
		if err != nil {
			return token.Word{}, err
		}
		if isGlobal {
			e.SetGlobal(name, val)
		} else {
			e.SetLocal(name, val)
		}
		return val, nil
	}

	return reduceFragment(words, e, mods)
}

// resolveVerbs replaces every primitive verb stub the scanner produced
// (a Word carrying only a glyph Name, no implementation) with the real
// Verb registered under that glyph.
func resolveVerbs(words []token.Word, verbs VerbTable) []token.Word {
	if verbs == nil {
		return words
	}
	out := make([]token.Word, len(words))
	for i, w := range words {
		if w.Kind == token.KVerb && w.Verb != nil && w.Verb.Kind == token.VerbPrimitive && w.Verb.Monad == nil && w.Verb.Dyad == nil {
			if real, ok := verbs.Lookup(w.Verb.Name); ok {
				out[i] = token.VerbWord(real)
				continue
			}
		}
		out[i] = w
	}
	return out
}

// splitAssignment finds the first "Name (=.|=:) rest" pattern at the top
// level of words (parens already resolved, so no nested assignment is
// visible here) and reports its parts.
func splitAssignment(words []token.Word) (name string, isGlobal bool, rest []token.Word, ok bool) {
	for i := 1; i < len(words); i++ {
		if words[i].Kind == token.KIsLocal || words[i].Kind == token.KIsGlobal {
			if words[i-1].Kind == token.KName {
				return words[i-1].Name, words[i].Kind == token.KIsGlobal, words[i+1:], true
			}
		}
	}
	return "", false, nil, false
}

// resolveParens repeatedly reduces the innermost "( ... )" span to the
// single Word its contents parse to.
func resolveParens(words []token.Word, e *env.Env, verbs VerbTable, mods ModifierTable) ([]token.Word, error) {
	for {
		open := -1
		for i, w := range words {
			if w.Kind == token.KLP {
				open = i
			}
			if w.Kind == token.KRP {
				if open == -1 {
					return nil, jerr.Syntax("unmatched )")
				}
				inner := words[open+1 : i]
				val, err := Parse(inner, e, verbs, mods)
				if err != nil {
					return nil, err
				}
				words = append(append(append([]token.Word{}, words[:open]...), val), words[i+1:]...)
				open = -1
				goto restart
			}
		}
		if open != -1 {
			return nil, jerr.Syntax("unmatched (")
		}
		return words, nil
	restart:
	}
}

// reduceFragment runs the name-resolution, modifier-binding,
// noun-stranding and verb-train passes over a paren-free, assignment-free
// sentence and applies the resulting train/value right to left.
func reduceFragment(words []token.Word, e *env.Env, mods ModifierTable) (token.Word, error) {
	words, err := resolveNames(words, e)
	if err != nil {
		return token.Word{}, err
	}
	words, err = bindModifiers(words, mods)
	if err != nil {
		return token.Word{}, err
	}
	words = strandNouns(words)
	words, err = collapseTrains(words)
	if err != nil {
		return token.Word{}, err
	}
	return applyRightToLeft(words, e)
}

func resolveNames(words []token.Word, e *env.Env) ([]token.Word, error) {
	out := make([]token.Word, len(words))
	for i, w := range words {
		if w.Kind != token.KName {
			out[i] = w
			continue
		}
		v, err := e.Resolve(w.Name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func isModifierOperand(w token.Word) bool {
	return w.Kind == token.KVerb || w.Kind == token.KNoun
}

func operandOf(w token.Word) token.Operand {
	if w.Kind == token.KVerb {
		return token.VerbOperand(w.Verb)
	}
	return token.NounOperand(w.Noun)
}

// bindModifiers repeatedly reduces the leftmost "(operand) conjunction
// (operand)" or "(operand) adverb" triple/pair into the derived Verb Word
// the modifier forms, until no such pattern remains.
func bindModifiers(words []token.Word, mods ModifierTable) ([]token.Word, error) {
	for {
		reduced := false
		for i := 0; i < len(words); i++ {
			w := words[i]
			if w.Kind == token.KConjunction && i > 0 && i+1 < len(words) &&
				isModifierOperand(words[i-1]) && isModifierOperand(words[i+1]) {
				derived, err := w.Conjunction.FormConjunction(operandOf(words[i-1]), operandOf(words[i+1]))
				if err != nil {
					return nil, err
				}
				words = spliceVerb(words, i-1, i+1, derived)
				reduced = true
				break
			}
			if w.Kind == token.KAdverb && i > 0 && isModifierOperand(words[i-1]) {
				derived, err := w.Adverb.FormAdverb(operandOf(words[i-1]))
				if err != nil {
					return nil, err
				}
				words = spliceVerb(words, i-1, i, derived)
				reduced = true
				break
			}
		}
		if !reduced {
			return words, nil
		}
	}
}

func spliceVerb(words []token.Word, from, to int, v *token.Verb) []token.Word {
	out := append([]token.Word{}, words[:from]...)
	out = append(out, token.VerbWord(v))
	out = append(out, words[to+1:]...)
	return out
}

// strandNouns merges every run of adjacent Noun words into a single Noun,
// the way juxtaposed nouns with no intervening verb form a list (boxing
// the items when any of them is non-atomic or boxed).
func strandNouns(words []token.Word) []token.Word {
	var out []token.Word
	i := 0
	for i < len(words) {
		if words[i].Kind != token.KNoun {
			out = append(out, words[i])
			i++
			continue
		}
		j := i
		var items []jarray.Array
		for j < len(words) && words[j].Kind == token.KNoun {
			items = append(items, words[j].Noun)
			j++
		}
		out = append(out, token.Noun(strand(items)))
		i = j
	}
	return out
}

func strand(items []jarray.Array) jarray.Array {
	if len(items) == 1 {
		return items[0]
	}
	anyComplex := false
	for _, it := range items {
		if !it.IsAtom() || it.Kind == jarray.KindBox {
			anyComplex = true
			break
		}
	}
	if !anyComplex {
		merged, err := jarray.FromFillPromote(items)
		if err == nil {
			return merged
		}
	}
	boxed := make([]jarray.Array, len(items))
	for i, it := range items {
		boxed[i] = jarray.NewBox(it)
	}
	merged, _ := jarray.FromFillPromote(boxed)
	return merged
}

// collapseTrains repeatedly folds the rightmost run of 2 or 3 consecutive
// Verb words into a single Hook or Fork Verb Word, per J's train-parsing
// rule (groups of 3 from the right, a remainder of 2 forms a hook).
func collapseTrains(words []token.Word) ([]token.Word, error) {
	for {
		end := -1
		for i := len(words) - 1; i >= 0; i-- {
			if words[i].Kind == token.KVerb {
				end = i
				continue
			}
			break
		}
		if end == -1 {
			return words, nil
		}
		runStart := end
		for runStart > 0 && words[runStart-1].Kind == token.KVerb {
			runStart--
		}
		// If the word immediately preceding the verb run is a Noun, a
		// leading fork with a captured-noun left arm is possible once the
		// run is exactly 2 long (N g h).
		run := words[runStart : end+1]
		switch {
		case len(run) >= 3:
			f, g, h := run[len(run)-3].Verb, run[len(run)-2].Verb, run[len(run)-1].Verb
			var derived *token.Verb
			if f.Kind == token.VerbCap {
				derived = makeAtop(g, h)
			} else {
				derived = makeFork(nil, f, g, h)
			}
			words = spliceVerb(words, runStart+len(run)-3, runStart+len(run)-1, derived)
		case len(run) == 2:
			if runStart > 0 && words[runStart-1].Kind == token.KNoun {
				m := words[runStart-1].Noun
				g, h := run[0].Verb, run[1].Verb
				fork := makeFork(&m, g, h, nil)
				words = spliceVerb(words, runStart-1, runStart+1, fork)
			} else {
				u, v := run[0].Verb, run[1].Verb
				if u.Kind == token.VerbCap || v.Kind == token.VerbCap {
					return nil, jerr.Syntax("[: must cap a 2-verb group to its right, forming a 3-verb train")
				}
				hook := makeHook(u, v)
				words = spliceVerb(words, runStart, runStart+1, hook)
			}
		default:
			return words, nil
		}
	}
}

func makeFork(m *jarray.Array, f, g, h *token.Verb) *token.Verb {
	name := "fork"
	v := &token.Verb{Kind: token.VerbFork, Name: name, Ranks: token.Ranks{Monad: token.Infinite, Left: token.Infinite, Right: token.Infinite}}
	v.ForkF, v.ForkG, v.ForkH = f, g, h
	if m != nil {
		v.Const = m
	}
	v.Monad = func(y jarray.Array) (jarray.Array, error) { return applyForkMonad(v, y) }
	v.Dyad = func(x, y jarray.Array) (jarray.Array, error) { return applyForkDyad(v, x, y) }
	return v
}

// makeAtop builds the derived verb a capped fork ("[: g h") produces:
// g and h compose with the left tine dropped entirely, so x never reaches
// g. Monad: g(h(y)). Dyad: g(x h y) — h sees both arguments, g only sees
// h's result.
func makeAtop(g, h *token.Verb) *token.Verb {
	v := &token.Verb{Kind: token.VerbAtop, Name: "atop", Ranks: token.Ranks{Monad: token.Infinite, Left: token.Infinite, Right: token.Infinite}}
	v.ForkG, v.ForkH = g, h
	v.Monad = func(y jarray.Array) (jarray.Array, error) {
		right, err := rank.ApplyMonad(h, y)
		if err != nil {
			return jarray.Array{}, err
		}
		return rank.ApplyMonad(g, right)
	}
	v.Dyad = func(x, y jarray.Array) (jarray.Array, error) {
		right, err := rank.ApplyDyad(h, x, y)
		if err != nil {
			return jarray.Array{}, err
		}
		return rank.ApplyMonad(g, right)
	}
	return v
}

func applyForkMonad(v *token.Verb, y jarray.Array) (jarray.Array, error) {
	var left jarray.Array
	var err error
	if v.Const != nil {
		left = *v.Const
	} else {
		left, err = rank.ApplyMonad(v.ForkF, y)
		if err != nil {
			return jarray.Array{}, err
		}
	}
	right, err := rank.ApplyMonad(v.ForkH, y)
	if err != nil {
		return jarray.Array{}, err
	}
	return rank.ApplyDyad(v.ForkG, left, right)
}

func applyForkDyad(v *token.Verb, x, y jarray.Array) (jarray.Array, error) {
	var left jarray.Array
	var err error
	if v.Const != nil {
		left = *v.Const
	} else {
		left, err = rank.ApplyDyad(v.ForkF, x, y)
		if err != nil {
			return jarray.Array{}, err
		}
	}
	right, err := rank.ApplyDyad(v.ForkH, x, y)
	if err != nil {
		return jarray.Array{}, err
	}
	return rank.ApplyDyad(v.ForkG, left, right)
}

func makeHook(u, v *token.Verb) *token.Verb {
	h := &token.Verb{Kind: token.VerbHook, Name: "hook", Ranks: token.Ranks{Monad: token.Infinite, Left: token.Infinite, Right: token.Infinite}}
	h.HookL, h.HookR = u, v
	h.Monad = func(y jarray.Array) (jarray.Array, error) {
		right, err := rank.ApplyMonad(v, y)
		if err != nil {
			return jarray.Array{}, err
		}
		return rank.ApplyDyad(u, y, right)
	}
	h.Dyad = func(x, y jarray.Array) (jarray.Array, error) {
		right, err := rank.ApplyMonad(v, y)
		if err != nil {
			return jarray.Array{}, err
		}
		return rank.ApplyDyad(u, x, right)
	}
	return h
}

// applyRightToLeft consumes the final Noun/Verb alternation right to left:
// a trailing Noun is the running value; each Verb to its left applies
// monadically unless a Noun precedes it too, in which case it applies
// dyadically and scanning continues from further left.
func applyRightToLeft(words []token.Word, e *env.Env) (token.Word, error) {
	if len(words) == 0 {
		return token.Word{Kind: token.KNothing}, nil
	}
	i := len(words) - 1
	last := words[i]
	switch last.Kind {
	case token.KNoun, token.KVerb:
	default:
		return token.Word{}, jerr.Syntax("sentence does not reduce to a value")
	}
	if i == 0 {
		return last, nil
	}
	if last.Kind == token.KVerb {
		// A lone trailing verb with nothing to its right is a verb value
		// (e.g. naming a verb: "plus =: +"); only a deeper chain with a
		// noun argument triggers application.
		if i == 0 {
			return last, nil
		}
	}
	value := last
	i--
	for i >= 0 {
		w := words[i]
		if w.Kind != token.KVerb {
			return token.Word{}, jerr.Syntax("expected a verb at position %d", i)
		}
		if value.Kind != token.KNoun {
			return token.Word{}, jerr.Syntax("verb %s has no noun argument", w.Verb.Name)
		}
		if i > 0 && words[i-1].Kind == token.KNoun {
			x := words[i-1].Noun
			r, err := rank.ApplyDyad(w.Verb, x, value.Noun)
			if err != nil {
				return token.Word{}, err
			}
			value = token.Noun(r)
			i -= 2
			continue
		}
		r, err := rank.ApplyMonad(w.Verb, value.Noun)
		if err != nil {
			return token.Word{}, err
		}
		value = token.Noun(r)
		i--
	}
	return value, nil
}
