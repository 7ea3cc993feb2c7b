// Package svgexport provides the formatting helpers shared by the
// SVG exporters: number precision, XML escaping, color properties
// and the per document export state.
package svgexport

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/benoitkugler/okcanvas/config"
)

// Num formats v rounded to digits decimals, without trailing zeros.
// Ties are rounded away from zero and negative zero is written "0",
// so that the output matches javascript's parseFloat(v.toFixed(digits)).
func Num(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Raw(v)
	}
	if digits < 0 {
		digits = 0
	}
	neg := v < 0
	s := roundHalfUp(math.Abs(v), digits)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f == 0 {
		return "0"
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if neg {
		return "-" + out
	}
	return out
}

// roundHalfUp returns the decimal representation of a (non negative)
// rounded to digits decimals, computed exactly.
func roundHalfUp(a float64, digits int) string {
	const prec = 256
	x := new(big.Float).SetPrec(prec).SetFloat64(a)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	x.Mul(x, new(big.Float).SetPrec(prec).SetInt(scale))
	x.Add(x, new(big.Float).SetPrec(prec).SetFloat64(0.5))
	n, _ := x.Int(nil) // truncates, which is floor for positive values
	s := n.String()
	if digits == 0 {
		return s
	}
	if len(s) <= digits {
		s = strings.Repeat("0", digits-len(s)+1) + s
	}
	return s[:len(s)-digits] + "." + s[len(s)-digits:]
}

// N formats v with the precision of the global configuration.
func N(v float64) string { return Num(v, config.Get().NumFractionDigits) }

// Raw formats v as the shortest representation, like a javascript
// number converted to string: exponent form is used outside [1e-6, 1e21).
func Raw(v float64) string {
	if v == 0 {
		return "0"
	}
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if abs := math.Abs(v); abs < 1e-6 || abs >= 1e21 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&apos;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeXML escapes the five XML special characters.
func EscapeXML(s string) string { return xmlEscaper.Replace(s) }
