package textutil

import "sort"

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm. Shared terms are
// summed in lexical order so the result does not depend on argument order or
// map iteration. The result is clamped to [-1, 1].
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	if a == b {
		return 1
	}
	small, large := a, b
	if len(small.tokens) > len(large.tokens) {
		small, large = large, small
	}
	shared := make([]string, 0, len(small.tokens))
	for token := range small.tokens {
		if _, ok := large.tokens[token]; ok {
			shared = append(shared, token)
		}
	}
	if len(shared) == 0 {
		return 0
	}
	sort.Strings(shared)
	var dot float64
	for _, token := range shared {
		dot += a.tokens[token] * b.tokens[token]
	}
	if dot == 0 {
		return 0
	}
	sim := dot / (a.norm * b.norm)
	switch {
	case sim > 1:
		return 1
	case sim < -1:
		return -1
	}
	return sim
}
