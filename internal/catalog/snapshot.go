package catalog

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"marquee/internal/textutil"
)

// Snapshot is an immutable, versioned view of the catalog. The version is a
// content hash, so two snapshots with equal rows share a version.
type Snapshot struct {
	items   []Item
	version string
	source  string
}

// NewSnapshot copies items into a new snapshot. IDs are reassigned to row
// positions and field defaults are applied.
func NewSnapshot(items []Item) *Snapshot {
	return newSnapshot(items, "")
}

func newSnapshot(items []Item, source string) *Snapshot {
	owned := make([]Item, len(items))
	for i, item := range items {
		item.ID = i
		owned[i] = item.normalized()
	}
	return &Snapshot{items: owned, version: contentVersion(owned), source: source}
}

// Len returns the number of items.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items returns a copy of the catalog rows in order.
func (s *Snapshot) Items() []Item {
	if s == nil {
		return nil
	}
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Item returns the row with the given identifier.
func (s *Snapshot) Item(id int) (Item, bool) {
	if s == nil || id < 0 || id >= len(s.items) {
		return Item{}, false
	}
	return s.items[id], true
}

// Version returns the content hash identifying this snapshot.
func (s *Snapshot) Version() string {
	if s == nil {
		return ""
	}
	return s.version
}

// Source returns the path the snapshot was loaded from, if any.
func (s *Snapshot) Source() string {
	if s == nil {
		return ""
	}
	return s.source
}

// FilterByCast returns the rows whose cast contains query, case-insensitively.
// Rows without cast never match.
func (s *Snapshot) FilterByCast(query string) []Item {
	if s == nil {
		return nil
	}
	var matches []Item
	for _, item := range s.items {
		if !item.HasCast() {
			continue
		}
		if textutil.ContainsFold(item.Cast, query) {
			matches = append(matches, item)
		}
	}
	return matches
}

// ResolveTitle returns the first row, in catalog order, whose title equals
// title exactly.
func (s *Snapshot) ResolveTitle(title string) (Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Item{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if s.Len() == 0 {
		return Item{}, fmt.Errorf("%w: catalog is empty", ErrInvalidInput)
	}
	for _, item := range s.items {
		if item.Title == title {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("%w: title %q not found in catalog", ErrInvalidInput, title)
}

func contentVersion(items []Item) string {
	h := sha256.New()
	var buf [8]byte
	writeField := func(value string) {
		binary.BigEndian.PutUint64(buf[:], uint64(len(value)))
		h.Write(buf[:])
		h.Write([]byte(value))
	}
	for _, item := range items {
		writeField(item.ShowID)
		writeField(item.Title)
		writeField(item.Type)
		writeField(item.Genres)
		writeField(item.Description)
		binary.BigEndian.PutUint64(buf[:], uint64(item.ReleaseYear))
		h.Write(buf[:])
		writeField(item.Cast)
		writeField(item.Director)
		writeField(item.Country)
	}
	return hex.EncodeToString(h.Sum(nil))
}
