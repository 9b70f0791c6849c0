// Package classify maps heterogeneous catalog records onto the rows the
// router renders: which kind of row, which genre label, which artwork.
package classify

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"zee5/internal/catalog"
	"zee5/internal/media"
)

// AllGenres is the genre label for records without genre data.
const AllGenres = "ALL"

// Kind is the closed set of row kinds an asset_subtype maps to.
type Kind int

const (
	// KindUnrecognized is any subtype not listed below. It is logged and skipped.
	KindUnrecognized Kind = iota
	// KindBucket is a nested bucket, listed with the manual action.
	KindBucket
	// KindShow is a show with seasons.
	KindShow
	// KindPlayable resolves directly to a stream.
	KindPlayable
	// KindIgnored is known and deliberately not rendered.
	KindIgnored
)

func (k Kind) String() string {
	switch k {
	case KindBucket:
		return "bucket"
	case KindShow:
		return "show"
	case KindPlayable:
		return "playable"
	case KindIgnored:
		return "ignored"
	default:
		return "unrecognized"
	}
}

var subtypeKinds = map[string]Kind{
	"Manual":        KindBucket,
	"original":      KindShow,
	"tvshow":        KindShow,
	"trailer":       KindPlayable,
	"movie":         KindPlayable,
	"video":         KindPlayable,
	"episode":       KindPlayable,
	"teaser":        KindPlayable,
	"music":         KindPlayable,
	"webisode":      KindPlayable,
	"clip":          KindPlayable,
	"preview":       KindPlayable,
	"news":          KindPlayable,
	"external_link": KindIgnored,
}

// Classify returns the row kind for an asset_subtype. Matching is exact.
func Classify(subtype string) Kind {
	if k, ok := subtypeKinds[subtype]; ok {
		return k
	}
	return KindUnrecognized
}

// Genre joins the record's genres with commas, or returns AllGenres when
// the record is nil or carries none.
func Genre(rec *catalog.ContentRecord) string {
	values := rec.GenreValues()
	if len(values) == 0 {
		return AllGenres
	}
	return strings.Join(values, ",")
}

// Images returns the list and cover images of a record. A flat image_url
// fills both; a missing one leaves both empty.
func Images(rec *catalog.ContentRecord) (list, cover string) {
	if rec == nil {
		return "", ""
	}
	switch rec.Image.Kind {
	case catalog.ImageFlat:
		return rec.Image.URL, rec.Image.URL
	case catalog.ImageSplit:
		return rec.Image.List, rec.Image.Cover
	default:
		return "", ""
	}
}

// Art prefers the list image for thumb and icon and the cover image for
// fanart, each falling back to the other.
func Art(rec *catalog.ContentRecord) media.Art {
	list, cover := Images(rec)
	return media.Art{
		Thumb:  firstNonEmpty(list, cover),
		Icon:   firstNonEmpty(list, cover),
		Fanart: firstNonEmpty(cover, list),
	}
}

// Release is a parsed release date.
type Release struct {
	Year int
	Date string // dd.mm.yyyy
}

// ReleaseDate parses the date portion of an ISO-like timestamp. Empty input
// and parse failures yield None; failures are logged, never returned.
func ReleaseDate(raw string) mo.Option[Release] {
	if raw == "" {
		return mo.None[Release]()
	}
	datePart, _, _ := strings.Cut(raw, "T")
	t, err := time.Parse("2006-01-02", strings.TrimSpace(datePart))
	if err != nil {
		logrus.WithField("release_date", raw).WithError(err).Warn("failed to parse release date")
		return mo.None[Release]()
	}
	return mo.Some(Release{Year: t.Year(), Date: t.Format("02.01.2006")})
}

// PlainText strips HTML markup that some descriptions carry.
func PlainText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
