package textutil

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Fingerprint represents a sparse term-weight vector for similarity comparison.
type Fingerprint struct {
	tokens map[string]float64
	norm   float64
}

// NewFingerprint creates a term-count fingerprint from the provided text.
// Returns nil if the text produces no valid tokens.
func NewFingerprint(text string) *Fingerprint {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return &Fingerprint{
		tokens: counts,
		norm:   l2norm(counts),
	}
}

// Tokenize splits text into lowercase terms of at least two characters and
// drops English stop words. Term order follows the input.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	raw := strings.FieldsFunc(lowered, func(r rune) bool {
		return !isWordRune(r)
	})
	terms := make([]string, 0, len(raw))
	for _, token := range raw {
		if len([]rune(token)) < 2 {
			continue
		}
		if IsStopWord(token) {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}

// isWordRune matches the \w class: letters, any Unicode number (so "²"
// and "½" count) and underscore. Combining marks split words.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// TokenCount returns the number of unique tokens in the fingerprint.
func (f *Fingerprint) TokenCount() int {
	if f == nil {
		return 0
	}
	return len(f.tokens)
}

// Weight returns the weight recorded for term, or 0 when absent.
func (f *Fingerprint) Weight(term string) float64 {
	if f == nil {
		return 0
	}
	return f.tokens[term]
}

// Norm returns the Euclidean length of the fingerprint.
func (f *Fingerprint) Norm() float64 {
	if f == nil {
		return 0
	}
	return f.norm
}

// WithIDF returns a new Fingerprint with TF-IDF weights applied.
// Each term's count is multiplied by its IDF weight. The norm is recomputed.
// Terms absent from the IDF map retain their original weight.
func (f *Fingerprint) WithIDF(idf map[string]float64) *Fingerprint {
	if f == nil || len(idf) == 0 {
		return f
	}
	weighted := make(map[string]float64, len(f.tokens))
	for token, count := range f.tokens {
		w := count
		if idfVal, ok := idf[token]; ok {
			w *= idfVal
		}
		if w == 0 {
			continue
		}
		weighted[token] = w
	}
	if len(weighted) == 0 {
		return nil
	}
	return &Fingerprint{
		tokens: weighted,
		norm:   l2norm(weighted),
	}
}

// Normalized returns a copy scaled to unit length.
func (f *Fingerprint) Normalized() *Fingerprint {
	if f == nil || f.norm == 0 {
		return f
	}
	scaled := make(map[string]float64, len(f.tokens))
	for token, w := range f.tokens {
		scaled[token] = w / f.norm
	}
	return &Fingerprint{tokens: scaled, norm: l2norm(scaled)}
}

// Terms returns the fingerprint's terms in lexical order.
func (f *Fingerprint) Terms() []string {
	if f == nil {
		return nil
	}
	terms := make([]string, 0, len(f.tokens))
	for token := range f.tokens {
		terms = append(terms, token)
	}
	sort.Strings(terms)
	return terms
}

// l2norm sums in lexical key order so equal inputs yield bit-identical norms.
func l2norm(weights map[string]float64) float64 {
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sum float64
	for _, k := range keys {
		sum += weights[k] * weights[k]
	}
	return math.Sqrt(sum)
}

// Corpus collects document frequency statistics for IDF computation.
type Corpus struct {
	docCount int
	docFreq  map[string]int
}

// NewCorpus creates an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{docFreq: make(map[string]int)}
}

// Add registers a document's unique terms in the corpus. A nil fingerprint
// still counts as a document so empty rows dilute the IDF like any other.
func (c *Corpus) Add(fp *Fingerprint) {
	if c == nil {
		return
	}
	c.docCount++
	if fp == nil {
		return
	}
	for token := range fp.tokens {
		c.docFreq[token]++
	}
}

// Documents returns the number of documents registered.
func (c *Corpus) Documents() int {
	if c == nil {
		return 0
	}
	return c.docCount
}

// Vocabulary returns the number of distinct terms registered.
func (c *Corpus) Vocabulary() int {
	if c == nil {
		return 0
	}
	return len(c.docFreq)
}

// IDF computes smoothed inverse document frequency weights:
// ln((N+1)/(1+df)) + 1 for each term.
func (c *Corpus) IDF() map[string]float64 {
	if c == nil || c.docCount == 0 {
		return nil
	}
	idf := make(map[string]float64, len(c.docFreq))
	n := float64(c.docCount)
	for term, df := range c.docFreq {
		idf[term] = math.Log((n+1)/(1+float64(df))) + 1
	}
	return idf
}
