package books

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"

	"marquee/internal/bookapi"
	"marquee/internal/textutil"
)

// DefaultMinDiscount is the discount threshold used when none is given.
const DefaultMinDiscount = 20000

// DiscountRow is the projection returned by FilterByDiscount.
type DiscountRow struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Discount  int    `json:"discount"`
	Publisher string `json:"publisher"`
	PubDate   string `json:"pubdate"`
}

// PublisherRow is the projection returned by FilterByPublisher.
type PublisherRow struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Author    string `json:"author"`
	Discount  string `json:"discount"`
	Publisher string `json:"publisher"`
	PubDate   string `json:"pubdate"`
	ISBN      string `json:"isbn"`
}

// ParseDiscount converts a wire discount to an integer amount.
// Fractional amounts are truncated and amounts beyond the int range
// saturate. NaN and infinities do not parse.
func ParseDiscount(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(value, 64)
	overflow := errors.Is(err, strconv.ErrRange)
	if err != nil && !overflow {
		return 0, false
	}
	// Literal "NaN" and "Inf" parse without error; overflowed exponents
	// come back as ±Inf with ErrRange and saturate below.
	if math.IsNaN(f) || (math.IsInf(f, 0) && !overflow) {
		return 0, false
	}
	switch {
	case f >= math.MaxInt:
		return math.MaxInt, true
	case f <= math.MinInt:
		return math.MinInt, true
	}
	return int(f), true
}

// FilterByDiscount keeps books whose discount parses and is at least min,
// ordered by discount descending. Equal discounts keep their input order.
func FilterByDiscount(list []bookapi.Book, min int) []DiscountRow {
	rows := make([]DiscountRow, 0, len(list))
	for _, book := range list {
		amount, ok := ParseDiscount(book.Discount)
		if !ok || amount < min {
			continue
		}
		rows = append(rows, DiscountRow{
			Title:     book.Title,
			Author:    book.Author,
			Discount:  amount,
			Publisher: book.Publisher,
			PubDate:   book.PubDate,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Discount > rows[j].Discount
	})
	return rows
}

// FilterByPublisher keeps books whose publisher contains name, ignoring
// case. An empty name matches nothing.
func FilterByPublisher(list []bookapi.Book, name string) []PublisherRow {
	rows := make([]PublisherRow, 0)
	if strings.TrimSpace(name) == "" {
		return rows
	}
	for _, book := range list {
		if !textutil.ContainsFold(book.Publisher, name) {
			continue
		}
		rows = append(rows, PublisherRow{
			Title:     book.Title,
			Link:      book.Link,
			Author:    book.Author,
			Discount:  book.Discount,
			Publisher: book.Publisher,
			PubDate:   book.PubDate,
			ISBN:      book.ISBN,
		})
	}
	return rows
}
