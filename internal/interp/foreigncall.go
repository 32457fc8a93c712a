package interp

import (
	"fmt"
	"time"

	jerr "github.com/sambacha/jgo/internal/errors"
	"github.com/sambacha/jgo/internal/jarray"
	"github.com/sambacha/jgo/internal/numeric"
	"github.com/sambacha/jgo/internal/token"
)

// resolveForeignCalls splices every "m !: n" triple in a statement into a
// single derived verb bound to the session's foreign.Dispatcher, the way
// collapseTrains splices a fork or hook into one verb: the glyph !: never
// reaches rank.ApplyDyad on its own, since its real operands are the
// flanking category/selector numbers, not a normal left/right argument
// pair.
func (s *Session) resolveForeignCalls(words []token.Word) []token.Word {
	if s.foreign == nil {
		return words
	}
	out := make([]token.Word, 0, len(words))
	for i := 0; i < len(words); i++ {
		w := words[i]
		if w.Kind == token.KNoun && i+2 < len(words) &&
			words[i+1].Kind == token.KVerb && words[i+1].Verb != nil && words[i+1].Verb.Name == "!:" &&
			words[i+2].Kind == token.KNoun {
			m, mok := w.Noun.IntAt(0)
			n, nok := words[i+2].Noun.IntAt(0)
			if mok && nok {
				out = append(out, token.VerbWord(s.foreignVerb(m, n)))
				i += 2
				continue
			}
		}
		out = append(out, w)
	}
	return out
}

// foreignVerb builds the verb m!:n dispatches to, covering the foreign
// calls this session actually implements; anything else reports a
// NonceError the way an unimplemented-but-recognized primitive does
// elsewhere in the table.
func (s *Session) foreignVerb(m, n int) *token.Verb {
	name := fmt.Sprintf("%d!:%d", m, n)
	v := &token.Verb{Kind: token.VerbPrimitive, Name: name,
		Ranks: token.Ranks{Monad: token.Infinite, Left: token.Infinite, Right: token.Infinite}}
	d := s.foreign
	switch {
	case m == 1 && n == 1:
		v.Monad = func(y jarray.Array) (jarray.Array, error) {
			return d.ReadFile(charString(y))
		}
	case m == 1 && n == 2:
		v.Dyad = func(x, y jarray.Array) (jarray.Array, error) {
			path, err := d.CacheScript(charString(x), charString(y))
			if err != nil {
				return jarray.Array{}, err
			}
			return jarray.NewCharVector(path), nil
		}
	case m == 4 && n == 1:
		v.Monad = func(y jarray.Array) (jarray.Array, error) {
			if _, ok := s.Env.Lookup(charString(y)); ok {
				return jarray.NewIntAtom(1), nil
			}
			return jarray.NewIntAtom(0), nil
		}
	case m == 6 && n == 2:
		// timespacex: evaluate y as a sentence and report the wall-clock
		// seconds it took, the way J's 6!:2 times a sub-evaluation.
		v.Monad = func(y jarray.Array) (jarray.Array, error) {
			start := time.Now()
			if _, err := s.evalString(charString(y)); err != nil {
				return jarray.Array{}, err
			}
			return jarray.NewNumAtom(numeric.FromFloat(time.Since(start).Seconds())), nil
		}
	case m == 9 && n == 12:
		v.Monad = func(y jarray.Array) (jarray.Array, error) {
			return d.GetParam(charString(y))
		}
	case m == 9 && n == 25:
		v.Dyad = func(x, y jarray.Array) (jarray.Array, error) {
			if err := d.SetParam(charString(x), charString(y)); err != nil {
				return jarray.Array{}, err
			}
			return y, nil
		}
	default:
		v.Monad = func(jarray.Array) (jarray.Array, error) {
			return jarray.Array{}, jerr.Nonce("%s is not implemented", name)
		}
		v.Dyad = func(jarray.Array, jarray.Array) (jarray.Array, error) {
			return jarray.Array{}, jerr.Nonce("%s is not implemented", name)
		}
	}
	if v.Monad == nil {
		v.Monad = func(jarray.Array) (jarray.Array, error) {
			return jarray.Array{}, jerr.Domain("%s has no monadic form", name)
		}
	}
	if v.Dyad == nil {
		v.Dyad = func(jarray.Array, jarray.Array) (jarray.Array, error) {
			return jarray.Array{}, jerr.Domain("%s has no dyadic form", name)
		}
	}
	return v
}

func charString(a jarray.Array) string {
	if a.Kind == jarray.KindBox && len(a.Boxes) == 1 {
		a = a.Boxes[0]
	}
	return string(a.Chars)
}
