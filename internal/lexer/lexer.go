// Package lexer implements the scanner: it turns a line of source text
// into a sequence of token.Word values (nouns, verbs, adverbs,
// conjunctions, names, parens, and control keywords), the same way the
// reference implementation's scanner turns source bytes into a token
// stream before any grammar is applied.
//
// # Unicode and Column Positions
//
// The scanner handles UTF-8 encoded source correctly. Column positions
// are reported as rune counts, not byte offsets or display widths:
//   - "column" is the count of Unicode code points from the start of the line
//   - multi-byte sequences (e.g. Greek Δ) count as a single column
//   - this trades visual alignment in terminals with wide characters for a
//     simple, reproducible position model
package lexer

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	jerr "github.com/sambacha/jgo/internal/errors"
	"github.com/sambacha/jgo/internal/jarray"
	"github.com/sambacha/jgo/internal/numeric"
	"github.com/sambacha/jgo/internal/token"
)

// Lexer scans one line of source at a time into token.Words.
type Lexer struct {
	input        string
	position     int
	readPosition int
	line         int
	column       int
	ch           rune
}

// New creates a Lexer for input, starting at the given source line number
// (1-based), used so multi-line scripts report accurate positions.
func New(input string, line int) *Lexer {
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		input = input[3:]
	}
	l := &Lexer{input: input, line: line, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) pos() jerr.Position { return jerr.Position{Line: l.line, Column: l.column} }

func (l *Lexer) skipSpaces() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

// primitiveGlyphs lists every recognized multi-rune primitive spelling,
// longest first so the scanner's greedy match prefers e.g. "<:" over "<".
var primitiveGlyphs = []string{
	"{::", "{..", "&.:",
	"=.", "=:", "=", "<.", "<:", ">.", ">:", "+.", "+:", "*.", "*:",
	"-.", "-:", "%.", "%:", "^.", "^:", "$.", "$:", "#.", "#:",
	"|.", "|:", ",.", ",:", ";:", "?.", "!.", "!:",
	".:", "..", "::", "{.", "{:", "}.", "}:", "\".", "\":", "/.", "/:",
	"&.", "&:", "[.", "[:", "i.", "i:", "j.", "o.", "p.", "p..", "r.",
	"u.", "u:", "v.", "L.", "A.", "C.", "e.", "E.", "T.", "x:", "_.",
	"(", ")", "\\", "{", "}", "[", "]", ";", ":", ",", ".", "\"", "&", "<", ">", "+", "-",
	"*", "%", "^", "$", "#", "|", "~", "/", "@", "!", "?",
}

// Scan tokenizes a full line of source into Words, stopping at an
// unescaped NB. comment or end of input. It never returns a KNewLine; the
// caller appends one between lines.
func Scan(line string, lineNo int) ([]token.Word, error) {
	l := New(line, lineNo)
	var words []token.Word
	for {
		w, err := l.next()
		if err != nil {
			return nil, err
		}
		if w == nil {
			break
		}
		words = append(words, *w)
	}
	return words, nil
}

func (l *Lexer) next() (*token.Word, error) {
	l.skipSpaces()
	if l.ch == 0 {
		return nil, nil
	}
	if l.ch == 'N' && l.peekChar() == 'B' && strings.HasPrefix(l.input[l.position:], "NB.") {
		return nil, nil // rest of line is comment
	}
	switch {
	case l.ch == '\'':
		return l.scanString()
	case l.ch == '{' && l.peekChar() == '{':
		return l.scanDirectDefDelim(true)
	case l.ch == '}' && l.peekChar() == '}':
		return l.scanDirectDefDelim(false)
	case unicode.IsDigit(l.ch) || (l.ch == '_' && l.peekChar() != '.'):
		return l.scanNumber()
	case isNameStart(l.ch):
		return l.scanNameOrKeyword()
	default:
		return l.scanGlyph()
	}
}

func isNameStart(r rune) bool {
	return unicode.IsLetter(r)
}

func isNameCont(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func (l *Lexer) scanDirectDefDelim(open bool) (*token.Word, error) {
	l.readChar()
	l.readChar()
	w := token.Word{Kind: token.KDirectDef, Control: open}
	return &w, nil
}

func (l *Lexer) scanNameOrKeyword() (*token.Word, error) {
	start := l.position
	for isNameCont(l.ch) {
		l.readChar()
	}
	ident := l.input[start:l.position]

	// Control keywords and labeled loop variants carry a trailing '.'.
	if l.ch == '.' && isControlStem(ident) {
		l.readChar()
		w := token.Name(ident + ".")
		return &w, nil
	}

	// Letter-spelled primitives (i. i: j. o. p. p.. r. u. u: v. x: e. and
	// the capitalized L. A. C. E. T.) share their first character with
	// an ordinary identifier, so a one-letter name immediately followed by
	// '.' or ':' is only a name if no such primitive exists.
	if l.ch == '.' || l.ch == ':' {
		candidate := ident + string(l.ch)
		if isPrimitiveGlyphSpelling(candidate) {
			l.readChar()
			if candidate == "p." && l.ch == '.' && isPrimitiveGlyphSpelling("p..") {
				l.readChar()
				candidate = "p.."
			}
			return glyphWord(candidate), nil
		}
	}

	w := token.Name(ident)
	return &w, nil
}

var primitiveGlyphSet = func() map[string]bool {
	m := make(map[string]bool, len(primitiveGlyphs))
	for _, g := range primitiveGlyphs {
		m[g] = true
	}
	return m
}()

func isPrimitiveGlyphSpelling(s string) bool { return primitiveGlyphSet[s] }

var controlStems = map[string]bool{
	"if": true, "elseif": true, "else": true, "end": true,
	"while": true, "whilst": true, "do": true,
	"try": true, "catch": true, "catcht": true,
	"throw": true, "assert": true, "return": true, "continue": true, "break": true,
	"select": true, "case": true, "fcase": true, "label": true, "goto": true,
}

func isControlStem(ident string) bool {
	if controlStems[ident] {
		return true
	}
	if strings.HasPrefix(ident, "for") {
		return true
	}
	return false
}

func (l *Lexer) scanGlyph() (*token.Word, error) {
	rest := l.input[l.position:]
	for _, g := range primitiveGlyphs {
		if strings.HasPrefix(rest, g) {
			for range []rune(g) {
				l.readChar()
			}
			return glyphWord(g), nil
		}
	}
	r := l.ch
	l.readChar()
	if folded := cases.Lower(language.Und).String(string(r)); folded != string(r) && isPrimitiveGlyphSpelling(folded) {
		return nil, jerr.Spelling("unrecognized character %q, did you mean %q?", r, folded).WithPos(l.pos())
	}
	return nil, jerr.Spelling("unrecognized character %q", r).WithPos(l.pos())
}

func glyphWord(g string) *token.Word {
	switch g {
	case "(":
		w := token.LP()
		return &w
	case ")":
		w := token.RP()
		return &w
	case "=.":
		w := token.IsLocal()
		return &w
	case "=:":
		w := token.IsGlobal()
		return &w
	}
	v := &token.Verb{Kind: token.VerbPrimitive, Name: g}
	w := token.VerbWord(v)
	return &w
}

func (l *Lexer) scanString() (*token.Word, error) {
	startPos := l.pos()
	l.readChar() // consume opening quote
	var sb strings.Builder
	for {
		if l.ch == 0 {
			return nil, jerr.Quote("unterminated string literal").WithPos(startPos)
		}
		if l.ch == '\'' {
			if l.peekChar() == '\'' {
				sb.WriteRune('\'')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			break
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	// String literals are normalized to NFC so that visually identical
	// names/comparisons agree regardless of the source encoding's choice
	// of precomposed vs. combining-mark sequences.
	w := token.Noun(jarray.NewCharVector(norm.NFC.String(sb.String())))
	return &w, nil
}

// scanNumber scans exactly one numeric atom: "1 2 3" is three tokens,
// which the parser later strands into one list. A leading '_' is the
// negative sign; a lone "_" is infinity and "__" negative infinity.
func (l *Lexer) scanNumber() (*token.Word, error) {
	start := l.position
	startPos := l.pos()
	if l.ch == '_' {
		l.readChar()
		if l.ch == '_' {
			l.readChar()
			w := token.Noun(jarray.NewNumAtom(numeric.FromFloat(math.Inf(-1))))
			return &w, nil
		}
		if !unicode.IsDigit(l.ch) {
			w := token.Noun(jarray.NewNumAtom(numeric.FromFloat(math.Inf(1))))
			return &w, nil
		}
	}
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	isFloat := false
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}
	isRational := false
	if l.ch == 'r' {
		isRational = true
		l.readChar()
		for unicode.IsDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}
	isComplex := false
	if l.ch == 'j' {
		isComplex = true
		l.readChar()
		if l.ch == '_' {
			l.readChar()
		}
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' && (unicode.IsDigit(l.peekChar()) || l.peekChar() == '_') {
		isFloat = true
		l.readChar()
		if l.ch == '_' {
			l.readChar()
		}
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}
	text := l.input[start:l.position]
	n, err := parseAtom(text, isFloat, isRational, isComplex)
	if err != nil {
		return nil, jerr.IllNumber("malformed numeric literal %q", text).WithPos(startPos)
	}
	w := token.Noun(jarray.NewNumAtom(n))
	return &w, nil
}

func bigRat(num, den int64) *big.Rat { return big.NewRat(num, den) }

func parseAtom(text string, isFloat, isRational, isComplex bool) (numeric.Num, error) {
	normalized := strings.ReplaceAll(text, "_", "-")
	switch {
	case isComplex:
		parts := strings.SplitN(normalized, "j", 2)
		re, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return numeric.Num{}, err
		}
		im := 0.0
		if len(parts) == 2 && parts[1] != "" {
			im, err = strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return numeric.Num{}, err
			}
		}
		return numeric.FromComplex(complex(re, im)).Demote(), nil
	case isRational:
		parts := strings.SplitN(normalized, "r", 2)
		num, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return numeric.Num{}, err
		}
		den := int64(1)
		if len(parts) == 2 && parts[1] != "" {
			den, err = strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return numeric.Num{}, err
			}
		}
		return numeric.FromRational(bigRat(num, den)).Demote(), nil
	case isFloat:
		f, err := strconv.ParseFloat(normalized, 64)
		if err != nil {
			return numeric.Num{}, err
		}
		return numeric.FromFloat(f).Demote(), nil
	default:
		i, err := strconv.ParseInt(normalized, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(normalized, 64)
			if ferr != nil {
				return numeric.Num{}, err
			}
			return numeric.FromFloat(f).Demote(), nil
		}
		return numeric.FromInt(i).Demote(), nil
	}
}
