package bookapi

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup removes HTML tags from value and decodes entities, keeping
// only the text content.
func StripMarkup(value string) string {
	if !strings.ContainsAny(value, "<&") {
		return value
	}
	tokenizer := html.NewTokenizer(strings.NewReader(value))
	var b strings.Builder
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(tokenizer.Text())
		}
	}
}

func (b Book) stripped() Book {
	b.Title = StripMarkup(b.Title)
	b.Author = StripMarkup(b.Author)
	b.Publisher = StripMarkup(b.Publisher)
	b.Description = StripMarkup(b.Description)
	return b
}
