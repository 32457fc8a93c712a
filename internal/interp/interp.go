// Package interp ties the scanner, control-word resolver, parser, rank
// engine and primitive tables together into a running session: Feed takes
// one line of source at a time, buffers it while a control block or
// direct definition is still open, and otherwise executes it immediately,
// the way a line-oriented script host drives its evaluator.
package interp

import (
	"strings"

	jerr "github.com/sambacha/jgo/internal/errors"
	"github.com/sambacha/jgo/internal/control"
	"github.com/sambacha/jgo/internal/env"
	"github.com/sambacha/jgo/internal/foreign"
	"github.com/sambacha/jgo/internal/jarray"
	"github.com/sambacha/jgo/internal/lexer"
	"github.com/sambacha/jgo/internal/modifiers"
	"github.com/sambacha/jgo/internal/parser"
	"github.com/sambacha/jgo/internal/token"
	"github.com/sambacha/jgo/internal/verbs"
)

// Result is what Feed reports back for one unit of input.
type Result struct {
	// Value is the last value produced, when the input was fully
	// consumed and evaluated (Suspended is false).
	Value token.Word
	// Suspended reports that Feed is still buffering a multi-line
	// control block or direct definition; call Feed again with the next
	// line before expecting a Value.
	Suspended bool
}

// breakSignal and continueSignal implement for./while. loop control via
// the error-return path; they never escape a loop's own executor.
type breakSignal struct{}

func (breakSignal) Error() string { return "break" }

type continueSignal struct{}

func (continueSignal) Error() string { return "continue" }

// Session holds the mutable state of one running script: its variable
// environment plus whatever multi-line construct is currently being
// buffered (a control block or a {{ }} direct definition body).
type Session struct {
	Env     *env.Env
	verbs   parser.VerbTable
	mods    parser.ModifierTable
	foreign *foreign.Dispatcher

	pendingLines []control.Line
	defCapture   *defCapture
}

type defCapture struct {
	prefix []token.Word // words on the opening line, before the "{{"
	raw    []string
}

// New starts a fresh session with the standard primitive and modifier
// tables installed and foreign (m!:n) calls disabled.
func New() *Session {
	return NewSeeded(0)
}

// NewSeeded is New, but the roll/deal (?) primitive draws from a source
// derived deterministically from seed; seed == 0 behaves like New,
// reseeding from the runtime's own entropy.
func NewSeeded(seed int64) *Session {
	return &Session{
		Env:   env.New(),
		verbs: parser.NewVerbTable(verbs.TableSeeded(seed)),
		mods:  parser.NewModifierTable(modifiers.Table()),
	}
}

// NewWithForeign starts a session whose m!:n calls dispatch through d.
func NewWithForeign(d *foreign.Dispatcher) *Session {
	s := New()
	s.foreign = d
	return s
}

// NewWithForeignAndSeed combines NewWithForeign and NewSeeded.
func NewWithForeignAndSeed(d *foreign.Dispatcher, seed int64) *Session {
	s := NewSeeded(seed)
	s.foreign = d
	return s
}

// Feed evaluates one line of source, or buffers it if it opens a
// construct that spans further lines.
func (s *Session) Feed(raw string) (Result, error) {
	if s.defCapture != nil {
		return s.feedDefCapture(raw)
	}

	words, err := lexer.Scan(raw, 1)
	if err != nil {
		return Result{}, err
	}
	if startsDirectDef(words) {
		s.defCapture = &defCapture{prefix: wordsBeforeOpen(words)}
		return Result{Suspended: true}, nil
	}

	s.pendingLines = append(s.pendingLines, control.Line{Words: words, Raw: raw})
	resolved, err := control.Resolve(s.pendingLines)
	if err != nil {
		if isIncomplete(err) {
			return Result{Suspended: true}, nil
		}
		s.pendingLines = nil
		return Result{}, err
	}
	s.pendingLines = nil
	val, err := s.Run(resolved)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: val}, nil
}

func isIncomplete(err error) bool {
	je, ok := jerr.As(err)
	return ok && strings.Contains(je.Message, "missing closing keyword")
}

func startsDirectDef(words []token.Word) bool {
	for _, w := range words {
		if w.Kind == token.KDirectDef {
			if open, _ := w.Control.(bool); open {
				return true
			}
		}
	}
	return false
}

func wordsBeforeOpen(words []token.Word) []token.Word {
	for i, w := range words {
		if w.Kind == token.KDirectDef {
			return append([]token.Word{}, words[:i]...)
		}
	}
	return words
}

func (s *Session) feedDefCapture(raw string) (Result, error) {
	if strings.TrimSpace(raw) == "}}" {
		verb, err := buildDirectDefVerb(s.defCapture.raw, s)
		if err != nil {
			s.defCapture = nil
			return Result{}, err
		}
		prefix := s.defCapture.prefix
		s.defCapture = nil
		sentence := append(append([]token.Word{}, prefix...), token.VerbWord(verb))
		val, err := s.Run(sentence)
		if err != nil {
			return Result{}, err
		}
		return Result{Value: val}, nil
	}
	s.defCapture.raw = append(s.defCapture.raw, raw)
	return Result{Suspended: true}, nil
}

// buildDirectDefVerb compiles a {{ }} body (optionally split at a bare
// ":" line into monad and dyad clauses) into a closure Verb bound to this
// session's environment.
func buildDirectDefVerb(rawLines []string, s *Session) (*token.Verb, error) {
	var monadSrc, dyadSrc []string
	split := -1
	for i, l := range rawLines {
		if strings.TrimSpace(l) == ":" {
			split = i
			break
		}
	}
	if split == -1 {
		monadSrc = rawLines
	} else {
		monadSrc = rawLines[:split]
		dyadSrc = rawLines[split+1:]
	}

	v := &token.Verb{Kind: token.VerbPartial, Name: "{{direct def}}", Ranks: token.Ranks{Monad: token.Infinite, Left: token.Infinite, Right: token.Infinite}}
	v.Monad = func(y jarray.Array) (jarray.Array, error) {
		return runDefBody(s, monadSrc, nil, &y)
	}
	if dyadSrc != nil {
		v.Dyad = func(x, y jarray.Array) (jarray.Array, error) {
			return runDefBody(s, dyadSrc, &x, &y)
		}
	}
	v.Body = struct{ MonadSrc, DyadSrc []string }{monadSrc, dyadSrc}
	return v, nil
}

func runDefBody(s *Session, src []string, x, y *jarray.Array) (jarray.Array, error) {
	s.Env.Push()
	defer s.Env.Pop()
	if y != nil {
		s.Env.SetLocal("y", token.Noun(*y))
	}
	if x != nil {
		s.Env.SetLocal("x", token.Noun(*x))
	}
	var lines []control.Line
	for _, raw := range src {
		words, err := lexer.Scan(raw, 1)
		if err != nil {
			return jarray.Array{}, err
		}
		if len(words) == 0 {
			continue
		}
		lines = append(lines, control.Line{Words: words, Raw: raw})
	}
	resolved, err := control.Resolve(lines)
	if err != nil {
		return jarray.Array{}, err
	}
	val, err := s.Run(resolved)
	if err != nil {
		return jarray.Array{}, err
	}
	if val.Kind != token.KNoun {
		return jarray.Array{}, jerr.Domain("direct definition did not produce a noun result")
	}
	return val.Noun, nil
}

// Run executes a fully-resolved top-level word stream (as produced by
// control.Resolve): a mix of compound control Words and plain-expression
// runs separated by KNewLine. It returns the last value produced.
func (s *Session) Run(words []token.Word) (token.Word, error) {
	var last token.Word
	i := 0
	for i < len(words) {
		w := words[i]
		switch w.Kind {
		case token.KNewLine:
			i++
			continue
		case token.KIfBlock:
			v, err := s.execIf(w.Control.(control.IfBlock))
			if err != nil {
				return token.Word{}, err
			}
			last = v
			i++
		case token.KForBlock:
			v, err := s.execFor(w.Control.(control.ForBlock))
			if err != nil {
				return token.Word{}, err
			}
			last = v
			i++
		case token.KWhileBlock:
			v, err := s.execWhile(w.Control.(control.WhileBlock))
			if err != nil {
				return token.Word{}, err
			}
			last = v
			i++
		case token.KTryBlock:
			v, err := s.execTry(w.Control.(control.TryBlock))
			if err != nil {
				return token.Word{}, err
			}
			last = v
			i++
		case token.KThrow:
			v, err := s.evalSentence(w.Control.([]token.Word))
			if err != nil {
				return token.Word{}, err
			}
			return token.Word{}, throwErrorFor(v)
		case token.KAssertLine:
			v, err := s.evalSentence(w.Control.([]token.Word))
			if err != nil {
				return token.Word{}, err
			}
			if !truthy(v) {
				return token.Word{}, jerr.Assertion("assertion failed")
			}
			last = v
			i++
		default:
			j := i
			for j < len(words) && words[j].Kind != token.KNewLine {
				j++
			}
			stmt := words[i:j]
			if isBreak(stmt) {
				return last, breakSignal{}
			}
			if isContinue(stmt) {
				return last, continueSignal{}
			}
			v, err := s.evalSentence(stmt)
			if err != nil {
				return token.Word{}, err
			}
			last = v
			i = j
		}
	}
	return last, nil
}

func isBreak(stmt []token.Word) bool {
	return len(stmt) == 1 && stmt[0].Kind == token.KName && stmt[0].Name == "break."
}

func isContinue(stmt []token.Word) bool {
	return len(stmt) == 1 && stmt[0].Kind == token.KName && stmt[0].Name == "continue."
}

func (s *Session) evalSentence(words []token.Word) (token.Word, error) {
	if len(words) == 0 {
		return token.Word{Kind: token.KNothing}, nil
	}
	words = s.resolveForeignCalls(words)
	return parser.Parse(words, s.Env, s.verbs, s.mods)
}

// evalString scans and evaluates a single sentence of source against this
// session's environment, the way 6!:2's timed sub-evaluation needs to run
// a string argument without going through Feed's multi-line buffering.
func (s *Session) evalString(raw string) (token.Word, error) {
	words, err := lexer.Scan(raw, 1)
	if err != nil {
		return token.Word{}, err
	}
	return s.evalSentence(words)
}

func truthy(w token.Word) bool {
	if w.Kind != token.KNoun || len(w.Noun.Nums) == 0 {
		return false
	}
	v, ok := w.Noun.Nums[0].AsInt64()
	return ok && v != 0
}

func throwErrorFor(w token.Word) error {
	if w.Kind == token.KNoun && w.Noun.Kind == jarray.KindChar {
		return jerr.Control("%s", string(w.Noun.Chars))
	}
	return jerr.Control("thrown value")
}

func flatten(lines []control.Line) []token.Word {
	var out []token.Word
	for _, l := range lines {
		out = append(out, l.Words...)
		out = append(out, token.NewLine())
	}
	return out
}

func (s *Session) execIf(b control.IfBlock) (token.Word, error) {
	for _, branch := range b.Branches {
		cond, err := s.evalSentence(branch.Cond)
		if err != nil {
			return token.Word{}, err
		}
		if truthy(cond) {
			return s.Run(flatten(branch.Body))
		}
	}
	if b.Else != nil {
		return s.Run(flatten(b.Else))
	}
	return token.Word{Kind: token.KNothing}, nil
}

func (s *Session) execFor(b control.ForBlock) (token.Word, error) {
	src, err := s.evalSentence(b.Source)
	if err != nil {
		return token.Word{}, err
	}
	var last token.Word
	items := src.Noun.OuterIter()
	for idx, item := range items {
		s.Env.SetLocal(b.ItemVar, token.Noun(item))
		if b.IndexVar != "" {
			s.Env.SetLocal(b.IndexVar, token.Noun(jarray.NewIntAtom(int64(idx))))
		}
		v, err := s.Run(flatten(b.Body))
		if err != nil {
			if _, ok := err.(breakSignal); ok {
				break
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return token.Word{}, err
		}
		last = v
	}
	return last, nil
}

func (s *Session) execWhile(b control.WhileBlock) (token.Word, error) {
	var last token.Word
	check := func() (bool, error) {
		c, err := s.evalSentence(b.Cond)
		if err != nil {
			return false, err
		}
		return truthy(c), nil
	}
	if b.Until {
		for {
			v, err := s.Run(flatten(b.Body))
			if err != nil {
				if _, ok := err.(breakSignal); ok {
					break
				}
				if _, ok := err.(continueSignal); ok {
					// fall through to re-check condition
				} else {
					return token.Word{}, err
				}
			} else {
				last = v
			}
			ok, err := check()
			if err != nil {
				return token.Word{}, err
			}
			if !ok {
				break
			}
		}
		return last, nil
	}
	for {
		ok, err := check()
		if err != nil {
			return token.Word{}, err
		}
		if !ok {
			break
		}
		v, err := s.Run(flatten(b.Body))
		if err != nil {
			if _, ok := err.(breakSignal); ok {
				break
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return token.Word{}, err
		}
		last = v
	}
	return last, nil
}

func (s *Session) execTry(b control.TryBlock) (token.Word, error) {
	v, err := s.Run(flatten(b.Body))
	if err == nil {
		return v, nil
	}
	if _, ok := err.(breakSignal); ok {
		return token.Word{}, err
	}
	if _, ok := err.(continueSignal); ok {
		return token.Word{}, err
	}
	if b.Catch != nil {
		return s.Run(flatten(b.Catch))
	}
	if b.CatchT != nil {
		return s.Run(flatten(b.CatchT))
	}
	return token.Word{}, err
}
