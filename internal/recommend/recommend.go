package recommend

import (
	"fmt"
	"sort"

	"marquee/internal/catalog"
)

// DefaultK is the number of recommendations the browsing flow asks for.
const DefaultK = 5

// Recommendation pairs a catalog item with its similarity to the reference.
type Recommendation struct {
	Item  catalog.Item `json:"item"`
	Score float64      `json:"score"`
}

// Recommend fits a fresh model over snap and returns the k items most
// similar to referenceID. See Model.Recommend.
func Recommend(snap *catalog.Snapshot, referenceID, k int) ([]Recommendation, error) {
	model, err := Fit(snap)
	if err != nil {
		return nil, err
	}
	return model.Recommend(snap, referenceID, k)
}

// Recommend returns up to k items from snap ordered by descending
// similarity to referenceID, excluding the reference itself. Equal scores
// keep catalog order, except that items with no retained terms go after
// items that have some. When fewer than k other items exist, all of them are
// returned.
func (m *Model) Recommend(snap *catalog.Snapshot, referenceID, k int) ([]Recommendation, error) {
	if snap.Len() == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInvalidInput)
	}
	if m == nil || m.version != snap.Version() || m.Len() != snap.Len() {
		return nil, ErrStaleModel
	}
	if _, ok := snap.Item(referenceID); !ok {
		return nil, fmt.Errorf("%w: item %d is not in the catalog", ErrInvalidInput, referenceID)
	}
	if k < 0 {
		return nil, fmt.Errorf("%w: k must be >= 0, got %d", ErrInvalidInput, k)
	}

	scores := m.Scores(referenceID)
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		return m.hasTerms(a) && !m.hasTerms(b)
	})

	if limit := snap.Len() - 1; k > limit {
		k = limit
	}
	out := make([]Recommendation, 0, k)
	for _, id := range order {
		if len(out) == k {
			break
		}
		if id == referenceID {
			continue
		}
		item, _ := snap.Item(id)
		out = append(out, Recommendation{Item: item, Score: scores[id]})
	}
	return out, nil
}
