package recommend

import (
	"fmt"

	"marquee/internal/catalog"
	"marquee/internal/textutil"
)

// Model holds one term-weight vector per catalog item.
type Model struct {
	version    string
	vectors    []*textutil.Fingerprint
	vocabulary int
}

// Fit builds the term-weight vectors for every item in snap. Vocabulary and
// IDF weights come from snap alone.
func Fit(snap *catalog.Snapshot) (*Model, error) {
	if snap.Len() == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInvalidInput)
	}
	items := snap.Items()
	counts := make([]*textutil.Fingerprint, len(items))
	corpus := textutil.NewCorpus()
	for i, item := range items {
		counts[i] = textutil.NewFingerprint(item.Document())
		corpus.Add(counts[i])
	}

	idf := corpus.IDF()
	vectors := make([]*textutil.Fingerprint, len(items))
	for i, fp := range counts {
		vectors[i] = fp.WithIDF(idf).Normalized()
	}
	return &Model{
		version:    snap.Version(),
		vectors:    vectors,
		vocabulary: corpus.Vocabulary(),
	}, nil
}

// Version returns the snapshot version the model was fit from.
func (m *Model) Version() string {
	if m == nil {
		return ""
	}
	return m.version
}

// Len returns the number of item vectors.
func (m *Model) Len() int {
	if m == nil {
		return 0
	}
	return len(m.vectors)
}

// Vocabulary returns the number of retained terms.
func (m *Model) Vocabulary() int {
	if m == nil {
		return 0
	}
	return m.vocabulary
}

// Similarity returns the cosine similarity between items a and b. Items with
// no retained terms score 0 against everything, themselves included.
func (m *Model) Similarity(a, b int) float64 {
	if m == nil || a < 0 || b < 0 || a >= len(m.vectors) || b >= len(m.vectors) {
		return 0
	}
	return textutil.CosineSimilarity(m.vectors[a], m.vectors[b])
}

// Scores returns the similarity of ref to every item, indexed by item ID.
func (m *Model) Scores(ref int) []float64 {
	scores := make([]float64, m.Len())
	for i := range scores {
		scores[i] = m.Similarity(ref, i)
	}
	return scores
}

func (m *Model) hasTerms(id int) bool {
	return m.vectors[id].TokenCount() > 0
}
