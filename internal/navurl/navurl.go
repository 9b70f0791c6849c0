// Package navurl encodes and decodes the self-referencing continuation URLs
// that carry browsing state back into the router.
package navurl

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"zee5/internal/media"
)

// Descriptor is a decoded continuation: which listing to produce and the
// session token to keep using.
type Descriptor struct {
	Action     media.Action
	ContentID  string
	Title      string
	PageNumber int
	Token      string
}

// IsRoot reports whether the descriptor asks for the top-level listing.
func (d Descriptor) IsRoot() bool {
	return d.Action == media.ActionRoot
}

// Page returns the page number, defaulting to 1.
func (d Descriptor) Page() int {
	if d.PageNumber < 1 {
		return 1
	}
	return d.PageNumber
}

// Encode renders d as base?query. Text fields are transliterated to ASCII;
// empty fields and a zero page number are omitted. Keys keep a fixed order.
func Encode(base string, d Descriptor) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteByte('?')

	sep := ""
	add := func(key, value string) {
		if value == "" {
			return
		}
		b.WriteString(sep)
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
		sep = "&"
	}

	add("action", ASCII(string(d.Action)))
	add("content_id", ASCII(d.ContentID))
	add("title", ASCII(d.Title))
	if d.PageNumber > 0 {
		add("page_number", strconv.Itoa(d.PageNumber))
	}
	add("token", d.Token)

	return b.String()
}

// Decode parses a paramstring, with or without its leading '?'. Unknown keys
// are ignored; a missing or unusable page_number becomes 1.
func Decode(raw string) (Descriptor, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return Descriptor{}, fmt.Errorf("parsing paramstring: %w", err)
	}

	d := Descriptor{
		Action:     media.Action(values.Get("action")),
		ContentID:  values.Get("content_id"),
		Title:      values.Get("title"),
		Token:      values.Get("token"),
		PageNumber: 1,
	}
	if p, err := strconv.Atoi(values.Get("page_number")); err == nil && p >= 1 {
		d.PageNumber = p
	}
	return d, nil
}

// DecodeURL decodes the query part of a full continuation URL.
func DecodeURL(rawURL string) (Descriptor, error) {
	_, query, _ := strings.Cut(rawURL, "?")
	return Decode(query)
}

// ASCII decomposes s and drops every non-ASCII rune, so "Kabir Singh – Hindi"
// keeps its letters and loses the dash.
func ASCII(s string) string {
	if s == "" {
		return s
	}
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
