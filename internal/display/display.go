// Package display renders a jarray.Array the way a session echoes a
// computed result back to the user: atoms print bare, vectors print as a
// single space-separated, column-aligned line, higher-rank arrays print
// as blank-line-delimited blocks of their leading-axis cells, and boxed
// values print inside a drawn frame.
package display

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/sambacha/jgo/internal/jarray"
	"github.com/sambacha/jgo/internal/numeric"
)

// DefaultPrecision is the number of significant digits used for floating
// output when no session print precision is available, matching
// config.Default().PrintPrecision.
const DefaultPrecision = 6

// Render produces the display text for a at DefaultPrecision, following
// J's convention of nesting boxes for any rank-0/1 layout before composing
// higher ranks from aligned row blocks.
func Render(a jarray.Array) string {
	return RenderPrecision(a, DefaultPrecision)
}

// RenderPrecision renders a the same way Render does, but formats floating
// values to precision significant digits (J's 9!:11 print precision),
// falling back to the shortest round-tripping representation when
// precision is not positive.
func RenderPrecision(a jarray.Array, precision int) string {
	var sb strings.Builder
	renderInto(&sb, a, precision)
	return strings.TrimRight(sb.String(), "\n")
}

func renderInto(sb *strings.Builder, a jarray.Array, precision int) {
	switch {
	case a.Kind == jarray.KindBox:
		sb.WriteString(renderBoxed(a, precision))
	case a.Kind == jarray.KindChar:
		sb.WriteString(renderChar(a))
	case a.Rank() <= 1:
		sb.WriteString(renderFlatNumeric(a, precision))
	default:
		sb.WriteString(renderHighRank(a, precision))
	}
}

func renderChar(a jarray.Array) string {
	if a.IsAtom() {
		if len(a.Chars) == 0 {
			return ""
		}
		return string(a.Chars[0])
	}
	return string(a.Chars)
}

func renderFlatNumeric(a jarray.Array, precision int) string {
	if a.IsAtom() {
		if len(a.Nums) == 0 {
			return ""
		}
		return formatNum(a.Nums[0], precision)
	}
	cells := make([]string, len(a.Nums))
	for i, n := range a.Nums {
		cells[i] = formatNum(n, precision)
	}
	width := 0
	for _, c := range cells {
		if w := runewidth.StringWidth(c); w > width {
			width = w
		}
	}
	parts := make([]string, len(cells))
	for i, c := range cells {
		pad := width - runewidth.StringWidth(c)
		parts[i] = strings.Repeat(" ", pad) + c
	}
	return strings.Join(parts, " ")
}

// renderHighRank prints a rank>=2 array as its leading-axis cells, each
// rendered independently and separated by a blank line, the way J's
// default boxless display lays out tables and higher arrays.
func renderHighRank(a jarray.Array, precision int) string {
	cellRank := a.Rank() - 1
	cells := a.RankIter(cellRank)
	blocks := make([]string, len(cells))
	for i, c := range cells {
		var cb strings.Builder
		renderInto(&cb, c, precision)
		blocks[i] = cb.String()
	}
	return strings.Join(blocks, "\n\n")
}

// renderBoxed draws a single-line box around a scalar boxed value, or a
// row of adjacent boxes for a boxed list; nested boxes recurse.
func renderBoxed(a jarray.Array, precision int) string {
	if a.IsAtom() {
		inner := RenderPrecision(a.Boxes[0], precision)
		return frame(inner)
	}
	parts := make([]string, len(a.Boxes))
	for i, b := range a.Boxes {
		parts[i] = frame(RenderPrecision(b, precision))
	}
	return strings.Join(parts, " ")
}

func frame(inner string) string {
	lines := strings.Split(inner, "\n")
	width := 0
	for _, l := range lines {
		if w := runewidth.StringWidth(l); w > width {
			width = w
		}
	}
	var sb strings.Builder
	sb.WriteString("+" + strings.Repeat("-", width) + "+\n")
	for _, l := range lines {
		sb.WriteString("|" + l + strings.Repeat(" ", width-runewidth.StringWidth(l)) + "|\n")
	}
	sb.WriteString("+" + strings.Repeat("-", width) + "+")
	return sb.String()
}

// formatNum renders a scalar in J's numeric spelling: "_" for a negative
// sign, "_" alone for infinity, "r" separating a rational's numerator and
// denominator, "j" separating a complex number's real and imaginary parts.
func formatNum(n numeric.Num, precision int) string {
	switch n.Kind {
	case numeric.KindBool:
		return strconv.FormatInt(n.Int, 10)
	case numeric.KindInt:
		return jSpell(strconv.FormatInt(n.Int, 10))
	case numeric.KindExtInt:
		return jSpell(n.ExtInt.String())
	case numeric.KindRational:
		return formatRational(n.Rat)
	case numeric.KindFloat:
		return formatFloat(n.Float, precision)
	case numeric.KindComplex:
		return formatComplex(n.Complex, precision)
	default:
		return "?"
	}
}

func jSpell(s string) string {
	if strings.HasPrefix(s, "-") {
		return "_" + s[1:]
	}
	return s
}

func formatRational(r *big.Rat) string {
	if r.IsInt() {
		return jSpell(r.Num().String())
	}
	return jSpell(r.Num().String()) + "r" + r.Denom().String()
}

func formatFloat(f float64, precision int) string {
	switch {
	case math.IsInf(f, 1):
		return "_"
	case math.IsInf(f, -1):
		return "__"
	case math.IsNaN(f):
		return "_."
	}
	return jSpell(strconv.FormatFloat(f, 'g', sigDigits(precision), 64))
}

func formatComplex(c complex128, precision int) string {
	re, im := real(c), imag(c)
	prec := sigDigits(precision)
	if im == 0 {
		return jSpell(strconv.FormatFloat(re, 'g', prec, 64))
	}
	return jSpell(strconv.FormatFloat(re, 'g', prec, 64)) + "j" + jSpell(strconv.FormatFloat(im, 'g', prec, 64))
}

// sigDigits adapts a session's print precision to strconv.FormatFloat's
// 'g'-format precision argument: -1 (shortest round-tripping
// representation) when no positive precision was supplied, the value
// itself otherwise.
func sigDigits(precision int) int {
	if precision <= 0 {
		return -1
	}
	return precision
}
