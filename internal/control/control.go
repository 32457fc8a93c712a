// Package control recognizes and groups the control-structure keywords
// (if./elseif./else./end., for./for_item_index./end., while./whilst./end.,
// try./catch./catcht./end., throw., assert.) into the compound block
// Words the evaluator executes as units, the way a line-oriented script
// compiler groups keyword lines before any tacit expression inside them
// is parsed.
package control

import (
	"strings"

	jerr "github.com/sambacha/jgo/internal/errors"
	"github.com/sambacha/jgo/internal/token"
)

// Line is one logical source line already split into Words by the
// scanner, paired with its raw text for direct-definition capture.
type Line struct {
	Words []token.Word
	Raw   string
}

// IfBlock is the payload of a KIfBlock Word: if./elseif.* branches in
// order, plus an optional else. body.
type IfBlock struct {
	Branches []CondBranch
	Else     []Line
}

// CondBranch is one condition/body pair of an if. or elseif. branch.
type CondBranch struct {
	Cond []token.Word
	Body []Line
}

// ForBlock is the payload of a KForBlock Word. J's for. supports binding
// two variables at once via "for_item_index.", the current source item
// and the 0-based iteration index.
type ForBlock struct {
	ItemVar  string
	IndexVar string
	Source   []token.Word
	Body     []Line
}

// WhileBlock is the payload of a KWhileBlock Word; Until distinguishes
// while. (test before each iteration) from whilst. (test after the first
// iteration, a do-while).
type WhileBlock struct {
	Cond  []token.Word
	Body  []Line
	Until bool
}

// TryBlock is the payload of a KTryBlock Word.
type TryBlock struct {
	Body   []Line
	Catch  []Line
	CatchT []Line
}

// DirectDef is the payload of a KDirectDef Word: a {{ }} explicit
// definition's captured body, optionally split at a bare ":" line into a
// monad clause (before) and a dyad clause (after).
type DirectDef struct {
	MonadBody []Line
	DyadBody  []Line
}

func isForKeyword(kw string) bool {
	return kw == "for." || (strings.HasPrefix(kw, "for_") && strings.HasSuffix(kw, "."))
}

func leadingKeyword(l Line) string {
	if len(l.Words) == 0 {
		return ""
	}
	w := l.Words[0]
	if w.Kind == token.KName {
		return w.Name
	}
	return ""
}

func blockOpener(kw string) bool {
	switch {
	case kw == "if.", kw == "while.", kw == "whilst.", kw == "try.":
		return true
	case isForKeyword(kw):
		return true
	default:
		return false
	}
}

// Resolve groups a flat sequence of scanned Lines into a sequence of
// Words, replacing every control-keyword run with one compound Word and
// leaving ordinary lines (noun/verb/assignment expressions) as their
// original Words, each terminated by a KNewLine separator.
func Resolve(lines []Line) ([]token.Word, error) {
	var out []token.Word
	for len(lines) > 0 {
		kw := leadingKeyword(lines[0])
		switch {
		case kw == "if.":
			w, rest, err := resolveIf(lines)
			if err != nil {
				return nil, err
			}
			out = append(out, w)
			lines = rest
		case isForKeyword(kw):
			w, rest, err := resolveFor(lines)
			if err != nil {
				return nil, err
			}
			out = append(out, w)
			lines = rest
		case kw == "while.", kw == "whilst.":
			w, rest, err := resolveWhile(lines)
			if err != nil {
				return nil, err
			}
			out = append(out, w)
			lines = rest
		case kw == "try.":
			w, rest, err := resolveTry(lines)
			if err != nil {
				return nil, err
			}
			out = append(out, w)
			lines = rest
		case kw == "throw.":
			out = append(out, token.Word{Kind: token.KThrow, Control: lines[0].Words[1:]})
			lines = lines[1:]
		case kw == "assert.":
			out = append(out, token.Word{Kind: token.KAssertLine, Control: lines[0].Words[1:]})
			lines = lines[1:]
		case kw == "do.":
			// A standalone do. separating a condition/source from its body;
			// meaningful only inside if./for./while., which strip it
			// themselves. One reaching here stands alone and is a no-op.
			lines = lines[1:]
		case kw == "end." || kw == "else." || kw == "elseif." || kw == "catch." || kw == "catcht.":
			return nil, jerr.Control("%s without a matching opening keyword", kw)
		default:
			out = append(out, lines[0].Words...)
			out = append(out, token.NewLine())
			lines = lines[1:]
		}
	}
	return out, nil
}

// takeUntilAny scans lines for the first line, at the same nesting depth,
// whose leading keyword is one of stops. It returns the lines strictly
// before that line, the remainder starting at the matching line, and the
// matched keyword.
func takeUntilAny(lines []Line, stops ...string) ([]Line, []Line, string, error) {
	depth := 0
	for i, l := range lines {
		kw := leadingKeyword(l)
		if depth == 0 {
			for _, s := range stops {
				if kw == s {
					return lines[:i], lines[i:], kw, nil
				}
			}
		}
		switch {
		case blockOpener(kw):
			depth++
		case kw == "end." && depth > 0:
			depth--
		}
	}
	return nil, nil, "", jerr.Control("missing closing keyword, expected one of %v", stops)
}

// stripTrailingDo removes a trailing "do." keyword word from a condition
// or source expression: if./for./while. accept their body either on the
// same line after a "do." separator or on the following line(s).
func stripTrailingDo(words []token.Word) []token.Word {
	if n := len(words); n > 0 && words[n-1].Kind == token.KName && words[n-1].Name == "do." {
		return words[:n-1]
	}
	return words
}

// dropLeadingDo skips a standalone "do." line opening a body, the form
// used when the condition/source and its body are on separate lines.
func dropLeadingDo(lines []Line) []Line {
	if len(lines) > 0 && leadingKeyword(lines[0]) == "do." {
		return lines[1:]
	}
	return lines
}

func resolveIf(lines []Line) (token.Word, []Line, error) {
	block := IfBlock{}
	cond := stripTrailingDo(lines[0].Words[1:])
	lines = lines[1:]
	for {
		lines = dropLeadingDo(lines)
		bodyLines, rest, kw, err := takeUntilAny(lines, "elseif.", "else.", "end.")
		if err != nil {
			return token.Word{}, nil, err
		}
		grouped, err := Resolve(bodyLines)
		if err != nil {
			return token.Word{}, nil, err
		}
		block.Branches = append(block.Branches, CondBranch{Cond: cond, Body: toLines(grouped)})
		lines = rest

		switch kw {
		case "elseif.":
			cond = stripTrailingDo(lines[0].Words[1:])
			lines = lines[1:]
			continue
		case "else.":
			lines = lines[1:]
			elseLines, rest2, _, err2 := takeUntilAny(lines, "end.")
			if err2 != nil {
				return token.Word{}, nil, err2
			}
			grouped2, err3 := Resolve(elseLines)
			if err3 != nil {
				return token.Word{}, nil, err3
			}
			block.Else = toLines(grouped2)
			lines = rest2[1:] // consume end.
			return token.Word{Kind: token.KIfBlock, Control: block}, lines, nil
		case "end.":
			lines = lines[1:]
			return token.Word{Kind: token.KIfBlock, Control: block}, lines, nil
		}
	}
}

func resolveFor(lines []Line) (token.Word, []Line, error) {
	first := lines[0]
	kw := leadingKeyword(first)
	block := ForBlock{Source: stripTrailingDo(first.Words[1:])}
	if kw != "for." {
		name := strings.TrimSuffix(strings.TrimPrefix(kw, "for_"), ".")
		block.ItemVar, block.IndexVar = splitForNames(name)
	}
	lines = lines[1:]
	lines = dropLeadingDo(lines)
	bodyLines, rest, _, err := takeUntilAny(lines, "end.")
	if err != nil {
		return token.Word{}, nil, err
	}
	grouped, err := Resolve(bodyLines)
	if err != nil {
		return token.Word{}, nil, err
	}
	block.Body = toLines(grouped)
	rest = rest[1:]
	return token.Word{Kind: token.KForBlock, Control: block}, rest, nil
}

func splitForNames(name string) (item, index string) {
	if i := strings.IndexByte(name, '_'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return name, ""
}

func resolveWhile(lines []Line) (token.Word, []Line, error) {
	first := lines[0]
	until := leadingKeyword(first) == "whilst."
	block := WhileBlock{Cond: stripTrailingDo(first.Words[1:]), Until: until}
	lines = lines[1:]
	lines = dropLeadingDo(lines)
	bodyLines, rest, _, err := takeUntilAny(lines, "end.")
	if err != nil {
		return token.Word{}, nil, err
	}
	grouped, err := Resolve(bodyLines)
	if err != nil {
		return token.Word{}, nil, err
	}
	block.Body = toLines(grouped)
	rest = rest[1:]
	return token.Word{Kind: token.KWhileBlock, Control: block}, rest, nil
}

func resolveTry(lines []Line) (token.Word, []Line, error) {
	block := TryBlock{}
	lines = lines[1:]
	bodyLines, rest, kw, err := takeUntilAny(lines, "catch.", "catcht.", "end.")
	if err != nil {
		return token.Word{}, nil, err
	}
	grouped, err := Resolve(bodyLines)
	if err != nil {
		return token.Word{}, nil, err
	}
	block.Body = toLines(grouped)
	lines = rest

	for kw == "catch." || kw == "catcht." {
		isT := kw == "catcht."
		lines = lines[1:]
		var handlerLines []Line
		handlerLines, rest, kw, err = takeUntilAny(lines, "catch.", "catcht.", "end.")
		if err != nil {
			return token.Word{}, nil, err
		}
		grouped, err = Resolve(handlerLines)
		if err != nil {
			return token.Word{}, nil, err
		}
		if isT {
			block.CatchT = toLines(grouped)
		} else {
			block.Catch = toLines(grouped)
		}
		lines = rest
	}
	lines = lines[1:] // consume end.
	return token.Word{Kind: token.KTryBlock, Control: block}, lines, nil
}

func toLines(words []token.Word) []Line {
	var out []Line
	var cur []token.Word
	for _, w := range words {
		if w.Kind == token.KNewLine {
			if len(cur) > 0 {
				out = append(out, Line{Words: cur})
				cur = nil
			}
			continue
		}
		cur = append(cur, w)
	}
	if len(cur) > 0 {
		out = append(out, Line{Words: cur})
	}
	return out
}
