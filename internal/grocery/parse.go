// Package grocery parses ingredient lines and folds the ingredients of a week's meals into a
// single shopping list.
package grocery

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Line is a parsed ingredient line.
type Line struct {
	Quantity float64
	Unit     string
	Name     string
}

var unicodeFractions = map[rune]float64{
	'½': 0.5, '⅓': 1.0 / 3, '⅔': 2.0 / 3, '¼': 0.25, '¾': 0.75,
	'⅛': 0.125, '⅜': 0.375, '⅝': 0.625, '⅞': 0.875,
}

// ParseLine splits a free-text ingredient such as "1 1/2 cups flour" or "½ tsp salt" into its
// quantity, unit and name. Lines without a leading amount get quantity 0.
func ParseLine(text string) Line {
	fields := strings.Fields(strings.TrimSpace(text))
	var qty float64
	i := 0
	for i < len(fields) {
		v, ok := parseAmount(fields[i])
		if !ok {
			break
		}
		qty += v
		i++
	}
	// "2-3 tomatoes" style ranges take the upper bound
	if i == 0 && len(fields) > 0 {
		if lo, hi, ok := strings.Cut(fields[0], "-"); ok {
			if _, okLo := parseAmount(lo); okLo {
				if v, okHi := parseAmount(hi); okHi {
					qty = v
					i = 1
				}
			}
		}
	}

	line := Line{Quantity: qty}
	if i < len(fields) {
		if unit, ok := CanonicalUnit(strings.TrimSuffix(fields[i], ".")); ok && qty > 0 {
			line.Unit = unit
			i++
			if i < len(fields) && fields[i] == "of" {
				i++
			}
		}
	}
	line.Name = strings.TrimSpace(strings.Join(fields[i:], " "))
	if line.Name == "" {
		line.Name = strings.TrimSpace(text)
	}
	return line
}

func parseAmount(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	runes := []rune(s)
	if v, ok := unicodeFractions[runes[len(runes)-1]]; ok {
		if len(runes) == 1 {
			return v, true
		}
		whole, err := strconv.Atoi(string(runes[:len(runes)-1]))
		if err != nil {
			return 0, false
		}
		return float64(whole) + v, true
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, ok1 := plainNumber(num)
		d, ok2 := plainNumber(den)
		if !ok1 || !ok2 || d == 0 || math.IsInf(n/d, 0) {
			return 0, false
		}
		return n / d, true
	}
	return plainNumber(s)
}

// plainNumber parses a finite decimal that starts with a digit or a point, so
// words like "nan" or "inf" are not quantities.
func plainNumber(s string) (float64, bool) {
	if s == "" || (!unicode.IsDigit(rune(s[0])) && s[0] != '.') {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
