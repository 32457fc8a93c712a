// Package jerr provides the interpreter's single tagged error type and
// its source-context formatting. Every failure the evaluation engine can
// raise — scanner, parser, rank engine, primitive, or modifier — is
// reported as a *JError carrying one of the taxonomy Kinds from the
// reference diagnostic vocabulary, an optional Position, and an optional
// Cause for chaining.
package jerr

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	pkgerrors "github.com/pkg/errors"
)

// Kind is one entry in the fixed error taxonomy.
type Kind int

const (
	DomainError Kind = iota
	RankError
	LengthError
	IndexError
	ValueError
	IllFormedName
	IllFormedNumber
	OpenQuote
	SpellingError
	LimitError
	SyntaxError
	NonceError
	AssertionFailure
	FileNameError
	StackSuspension
	ControlError
)

func (k Kind) String() string {
	switch k {
	case DomainError:
		return "DomainError"
	case RankError:
		return "RankError"
	case LengthError:
		return "LengthError"
	case IndexError:
		return "IndexError"
	case ValueError:
		return "ValueError"
	case IllFormedName:
		return "IllFormedName"
	case IllFormedNumber:
		return "IllFormedNumber"
	case OpenQuote:
		return "OpenQuote"
	case SpellingError:
		return "SpellingError"
	case LimitError:
		return "LimitError"
	case SyntaxError:
		return "SyntaxError"
	case NonceError:
		return "NonceError"
	case AssertionFailure:
		return "AssertionFailure"
	case FileNameError:
		return "FileNameError"
	case StackSuspension:
		return "StackSuspension"
	case ControlError:
		return "ControlError"
	default:
		return "UnknownError"
	}
}

// Position locates a failure in source text, in rune columns (matching
// the scanner's column accounting).
type Position struct {
	Line   int
	Column int
}

// JError is the interpreter's single error type. It carries a Kind from
// the taxonomy above, a human message, an optional Position, the
// innermost failing verb name (when applicable), and an optional Cause
// forming a chain of failures (e.g. a user-defined verb's body failing
// inside agreement).
type JError struct {
	Kind    Kind
	Message string
	Pos     Position
	Verb    string
	Cause   error
}

// Error implements the error interface; it is the plain form without
// source context, with a "caused by" line appended when e has a Cause.
// Use Format for source-context rendering.
func (e *JError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.Verb != "" {
		fmt.Fprintf(&sb, " in %s", e.Verb)
	}
	if e.Message != "" {
		fmt.Fprintf(&sb, ": %s", e.Message)
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, "\ncaused by: %v", e.Cause)
	}
	return sb.String()
}

// Unwrap exposes the cause chain to errors.Is/errors.As and to this
// package's As.
func (e *JError) Unwrap() error { return e.Cause }

// Format renders the error with a source line and a caret pointing at the
// failing column.
func (e *JError) Format(source string) string {
	var sb strings.Builder
	if e.Pos.Line > 0 {
		fmt.Fprintf(&sb, "%s at line %d:%d\n", e.Kind, e.Pos.Line, e.Pos.Column)
		if line := sourceLine(source, e.Pos.Line); line != "" {
			prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
			sb.WriteString("^\n")
		}
	} else {
		fmt.Fprintf(&sb, "%s\n", e.Kind)
	}
	if e.Verb != "" {
		fmt.Fprintf(&sb, "in %s\n", e.Verb)
	}
	sb.WriteString(e.Message)
	for cause := e.Cause; cause != nil; {
		je, ok := As(cause)
		if !ok || je == e {
			break
		}
		fmt.Fprintf(&sb, "\n  caused by %s: %s", je.Kind, je.Message)
		cause = je.Cause
	}
	return sb.String()
}

func sourceLine(source string, line int) string {
	if source == "" {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// WithPos attaches a source position to e and returns e, for chaining at
// construction sites.
func (e *JError) WithPos(pos Position) *JError {
	e.Pos = pos
	return e
}

// WithVerb records the innermost failing verb's name.
func (e *JError) WithVerb(verb string) *JError {
	e.Verb = verb
	return e
}

// Wrap attaches cause to e as the error's chained cause, preserving a
// descriptive chain back to the original failure.
func (e *JError) Wrap(cause error) *JError {
	e.Cause = pkgerrors.WithStack(cause)
	return e
}

func newf(k Kind, format string, args ...any) *JError {
	return &JError{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// Domain constructs a DomainError.
func Domain(format string, args ...any) *JError { return newf(DomainError, format, args...) }

// Rank constructs a RankError.
func Rank(format string, args ...any) *JError { return newf(RankError, format, args...) }

// Length constructs a LengthError.
func Length(format string, args ...any) *JError { return newf(LengthError, format, args...) }

// Index constructs an IndexError.
func Index(format string, args ...any) *JError { return newf(IndexError, format, args...) }

// Value constructs a ValueError, typically for an unbound name.
func Value(format string, args ...any) *JError { return newf(ValueError, format, args...) }

// IllName constructs an IllFormedName error.
func IllName(format string, args ...any) *JError { return newf(IllFormedName, format, args...) }

// IllNumber constructs an IllFormedNumber error.
func IllNumber(format string, args ...any) *JError { return newf(IllFormedNumber, format, args...) }

// Quote constructs an OpenQuote error.
func Quote(format string, args ...any) *JError { return newf(OpenQuote, format, args...) }

// Spelling constructs a SpellingError.
func Spelling(format string, args ...any) *JError { return newf(SpellingError, format, args...) }

// Limit constructs a LimitError, formatting the offending magnitude with
// go-humanize's comma grouping for a readable message.
func Limit(magnitude uint64, format string, args ...any) *JError {
	e := newf(LimitError, format, args...)
	e.Message = fmt.Sprintf("%s (%s)", e.Message, humanize.Comma(int64(magnitude)))
	return e
}

// Syntax constructs a SyntaxError.
func Syntax(format string, args ...any) *JError { return newf(SyntaxError, format, args...) }

// Nonce constructs a NonceError for an in-spec but unimplemented
// operation.
func Nonce(format string, args ...any) *JError { return newf(NonceError, format, args...) }

// Assertion constructs an AssertionFailure.
func Assertion(format string, args ...any) *JError { return newf(AssertionFailure, format, args...) }

// FileName constructs a FileNameError.
func FileName(format string, args ...any) *JError { return newf(FileNameError, format, args...) }

// Suspension constructs a StackSuspension pseudo-error. The interpreter
// itself never raises one: it reports a suspended multi-line construct
// through Result.Suspended instead.
func Suspension(format string, args ...any) *JError { return newf(StackSuspension, format, args...) }

// Control constructs a ControlError for malformed control structures.
func Control(format string, args ...any) *JError { return newf(ControlError, format, args...) }

// As reports whether err is (or wraps) a *JError, mirroring errors.As
// without importing the standard errors package alongside this one.
func As(err error) (*JError, bool) {
	for err != nil {
		if je, ok := err.(*JError); ok {
			return je, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
