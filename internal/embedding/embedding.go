// Package embedding turns recipe text into small fixed-size vectors that can be stored in a
// pgvector column and compared with cosine similarity.
package embedding

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// Dimensions is the size of every vector produced by Embed.
const Dimensions = 64

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "the": {}, "of": {}, "with": {}, "in": {}, "on": {},
	"for": {}, "to": {}, "or": {}, "at": {}, "by": {}, "from": {},
}

// Tokens splits text into lowercase words, dropping stopwords and single characters.
func Tokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, skip := stopwords[f]; skip {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Embed returns an L2-normalised hashed bag-of-words vector. Empty text yields a vector with a
// single non-zero component so the result is always a valid pgvector value.
func Embed(text string) []float32 {
	vec := make([]float32, Dimensions)
	for _, tok := range Tokens(text) {
		h := fnv.New32a()
		h.Write([]byte(tok))
		sum := h.Sum32()
		idx := int(sum % Dimensions)
		// the next bit picks the sign so unrelated tokens cancel rather than pile up
		if sum&(1<<16) != 0 {
			vec[idx] -= 1
		} else {
			vec[idx] += 1
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		vec[0] = 1
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}

// Cosine returns the cosine similarity of a and b, or 0 when either is empty or their sizes differ.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
