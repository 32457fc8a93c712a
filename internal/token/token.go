// Package token defines the closed enumeration of parts of speech
// ("Words") the scanner, control resolver and parser pass between them,
// plus the Verb value type every primitive, fork, hook and user-defined
// modifier closure is built from.
package token

import (
	"fmt"

	"github.com/sambacha/jgo/internal/jarray"
)

// Rank is a verb's per-argument cell rank: a non-negative integer, or
// Infinite for "the whole argument, regardless of its rank".
type Rank int

// Infinite is the sentinel Rank meaning the verb consumes its entire
// argument as one cell.
const Infinite Rank = -1

// Clamp returns the effective rank to use against an array of the given
// actual rank: Infinite or a rank exceeding actualRank clamp to
// actualRank (consume the whole argument).
func (r Rank) Clamp(actualRank int) int {
	if r == Infinite || int(r) > actualRank {
		return actualRank
	}
	return int(r)
}

func (r Rank) String() string {
	if r == Infinite {
		return "_"
	}
	return fmt.Sprintf("%d", int(r))
}

// Ranks is the (monad, dyad-left, dyad-right) rank triple every verb
// carries.
type Ranks struct {
	Monad Rank
	Left  Rank
	Right Rank
}

// VerbKind discriminates the variant of a Verb value.
type VerbKind int

const (
	VerbPrimitive VerbKind = iota
	VerbFork
	VerbHook
	VerbPartial
	VerbConstant
	VerbCap  // [: — the cap glyph itself; only meaningful as a fork's left arm
	VerbAtop // g∘h composition: monad g(h(y)), dyad g(x h y); produced by capping a fork
)

// MonadFunc is a verb's monadic implementation, operating on a single
// already rank-decomposed cell (or the whole argument, for Infinite rank).
type MonadFunc func(y jarray.Array) (jarray.Array, error)

// DyadFunc is a verb's dyadic implementation, operating on a pair of
// already rank-decomposed cells.
type DyadFunc func(x, y jarray.Array) (jarray.Array, error)

// Verb is a tagged union over primitive / fork / hook / partial(closure) /
// constant verbs. A single recursive value keeps dispatch uniform across
// the parser, rank engine and modifiers: no inheritance is needed.
type Verb struct {
	Kind  VerbKind
	Name  string
	Ranks Ranks

	Monad MonadFunc
	Dyad  DyadFunc

	// Obverse is the declared inverse, used by the power conjunction for
	// negative exponents. Nil means "no obverse; NonceError on inverse".
	Obverse *Verb

	// Fork/Hook hold the component verbs (or, for Fork.F, possibly a noun
	// captured in Const) when Kind is VerbFork/VerbHook.
	ForkF, ForkG, ForkH *Verb
	HookL, HookR        *Verb

	// Const holds the captured array for VerbConstant verbs (numeric
	// constants used as verbs) and for a Fork whose left arm is a noun.
	Const *jarray.Array

	// Body holds a user-defined verb's captured token sequence, for
	// direct-definition closures (Kind == VerbPartial with Body set).
	// It is opaque to this package; the parser/interp populate and
	// interpret it.
	Body any
}

func (v *Verb) String() string {
	if v == nil {
		return "<nil verb>"
	}
	return v.Name
}

// ModifierKind discriminates adverbs from conjunctions.
type ModifierKind int

const (
	KindAdverb ModifierKind = iota
	KindConjunction
)

// Operand is either a Noun or a Verb, the two things an adverb/conjunction
// may bind as an operand.
type Operand struct {
	IsVerb bool
	Verb   *Verb
	Noun   *jarray.Array
}

// VerbOperand wraps a Verb as an Operand.
func VerbOperand(v *Verb) Operand { return Operand{IsVerb: true, Verb: v} }

// NounOperand wraps a Noun as an Operand.
func NounOperand(a jarray.Array) Operand { return Operand{Noun: &a} }

// Modifier is an adverb (Form takes one operand) or conjunction (Form
// takes two).
type Modifier struct {
	Kind ModifierKind
	Name string
	// FormAdverb builds a derived Verb from one bound operand (u).
	FormAdverb func(u Operand) (*Verb, error)
	// FormConjunction builds a derived Verb from two bound operands (u,v).
	FormConjunction func(u, v Operand) (*Verb, error)
}

// WordKind discriminates the parts of speech a Word may be.
type WordKind int

const (
	KNoun WordKind = iota
	KVerb
	KAdverb
	KConjunction
	KName
	KIsLocal
	KIsGlobal
	KLP
	KRP
	KNothing
	KStartOfLine
	KNewLine
	KAssertLine
	KDirectDef
	KIfBlock
	KForBlock
	KWhileBlock
	KTryBlock
	KThrow
)

// Word is a single parser token: a part of speech. Exactly the fields
// relevant to Kind are populated.
type Word struct {
	Kind WordKind

	Noun       jarray.Array
	Verb       *Verb
	Adverb     *Modifier
	Conjunction *Modifier
	Name       string

	// Control carries an opaque payload for compound control tokens
	// (AssertLine, DirectDef, If/For/While/Try blocks); the control and
	// interp packages know how to interpret it.
	Control any
}

func Noun(a jarray.Array) Word    { return Word{Kind: KNoun, Noun: a} }
func VerbWord(v *Verb) Word       { return Word{Kind: KVerb, Verb: v} }
func AdverbWord(m *Modifier) Word { return Word{Kind: KAdverb, Adverb: m} }
func ConjunctionWord(m *Modifier) Word {
	return Word{Kind: KConjunction, Conjunction: m}
}
func Name(n string) Word    { return Word{Kind: KName, Name: n} }
func IsLocal() Word         { return Word{Kind: KIsLocal} }
func IsGlobal() Word        { return Word{Kind: KIsGlobal} }
func LP() Word              { return Word{Kind: KLP} }
func RP() Word              { return Word{Kind: KRP} }
func Nothing() Word         { return Word{Kind: KNothing} }
func StartOfLine() Word     { return Word{Kind: KStartOfLine} }
func NewLine() Word         { return Word{Kind: KNewLine} }

// IsEdge reports whether w is one of the grammar's "E" class: the left
// context that may precede a reduction (StartOfLine, IsGlobal, IsLocal,
// LP).
func (w Word) IsEdge() bool {
	switch w.Kind {
	case KStartOfLine, KIsGlobal, KIsLocal, KLP:
		return true
	default:
		return false
	}
}

// IsEAVN reports whether w is in the grammar's "EAVN" class: Edge, Adverb,
// Verb, or Noun.
func (w Word) IsEAVN() bool {
	if w.IsEdge() {
		return true
	}
	switch w.Kind {
	case KAdverb, KVerb, KNoun:
		return true
	default:
		return false
	}
}

// IsVerbOrNoun reports whether w can stand as an operand to an adverb or
// conjunction (the grammar's "V|N" class).
func (w Word) IsVerbOrNoun() bool {
	return w.Kind == KVerb || w.Kind == KNoun
}

func (w Word) String() string {
	switch w.Kind {
	case KNoun:
		return w.Noun.String()
	case KVerb:
		return w.Verb.String()
	case KAdverb:
		return w.Adverb.Name
	case KConjunction:
		return w.Conjunction.Name
	case KName:
		return w.Name
	case KIsLocal:
		return "=."
	case KIsGlobal:
		return "=:"
	case KLP:
		return "("
	case KRP:
		return ")"
	default:
		return fmt.Sprintf("<word kind=%d>", w.Kind)
	}
}
