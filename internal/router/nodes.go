package router

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"zee5/internal/catalog"
	"zee5/internal/classify"
	"zee5/internal/media"
	"zee5/internal/navurl"
)

const (
	nextPageLabel = "| Next Page >>>"
	searchLabel   = "| Search"
	searchID      = "1"
	mediaType     = "video"
)

// displayName title-cases a collection key such as "tvshows".
func displayName(name string) string {
	return cases.Title(language.English).String(name)
}

// nodeBuilder accumulates the rows of one listing. parent is the title of
// the listing being built and prefixes the titles carried by child folders.
type nodeBuilder struct {
	base   string
	token  string
	parent string
	nodes  []media.MenuNode
}

func (r *Router) builder(sess catalog.Session, parent string) *nodeBuilder {
	return &nodeBuilder{base: r.opts.Base, token: sess.Token, parent: parent}
}

func (b *nodeBuilder) url(d navurl.Descriptor) string {
	d.Token = b.token
	return navurl.Encode(b.base, d)
}

// item renders one bucket entry according to its subtype.
func (b *nodeBuilder) item(rec *catalog.ContentRecord) {
	switch classify.Classify(rec.AssetSubtype) {
	case classify.KindBucket:
		b.folder(media.ActionManual, rec.ID, rec.Title, rec.Description, rec)
	case classify.KindShow:
		b.folder(media.ActionShow, rec.ID, rec.Title, rec.Description, rec)
	case classify.KindPlayable:
		b.video(rec)
	case classify.KindIgnored:
		// external links have no in-app target
	default:
		logrus.WithFields(logrus.Fields{
			"subtype": rec.AssetSubtype,
			"id":      rec.ID,
			"title":   rec.Title,
		}).Warn("skipping unrendered sub-type")
	}
}

// folder appends a container row. rec may be nil for synthetic rows.
func (b *nodeBuilder) folder(action media.Action, id, title, description string, rec *catalog.ContentRecord) {
	continuation := title
	if b.parent != "" {
		continuation = b.parent + "/" + title
	}
	plot := classify.PlainText(description)

	b.nodes = append(b.nodes, media.MenuNode{
		Title:       title,
		Description: plot,
		Action:      action,
		ContentID:   id,
		ParentTitle: b.parent,
		URL:         b.url(navurl.Descriptor{Action: action, ContentID: id, Title: continuation}),
		Art:         classify.Art(rec),
		Info: media.Info{
			Genre:     classify.Genre(rec),
			Plot:      plot,
			MediaType: mediaType,
		},
	})
}

// video appends a playable row.
func (b *nodeBuilder) video(rec *catalog.ContentRecord) {
	plot := classify.PlainText(rec.Description)
	info := media.Info{
		Genre:     classify.Genre(rec),
		Plot:      plot,
		Episode:   int(rec.EpisodeNumber),
		Duration:  int(rec.Duration),
		MediaType: mediaType,
	}
	if release, ok := classify.ReleaseDate(rec.ReleaseDate).Get(); ok {
		info.Year = release.Year
		info.Date = release.Date
	}

	b.nodes = append(b.nodes, media.MenuNode{
		Title:       rec.Title,
		Description: plot,
		Action:      media.ActionPlay,
		ContentID:   rec.ID,
		URL:         b.url(navurl.Descriptor{Action: media.ActionPlay, ContentID: rec.ID}),
		Art:         classify.Art(rec),
		Info:        info,
	})
}

// nextPage appends a pagination row when the response has more pages. The
// row re-enters the same listing with the same title.
func (b *nodeBuilder) nextPage(action media.Action, coll *catalog.Collection) {
	if !coll.HasNext() {
		return
	}
	next := int(coll.Page.Page) + 1
	b.nodes = append(b.nodes, media.MenuNode{
		Title:      nextPageLabel,
		Action:     action,
		ContentID:  coll.ID,
		PageNumber: next,
		URL: b.url(navurl.Descriptor{
			Action:     action,
			ContentID:  coll.ID,
			Title:      b.parent,
			PageNumber: next,
		}),
		Info: media.Info{MediaType: mediaType},
	})
}

// search appends the search entry point.
func (b *nodeBuilder) search() {
	b.nodes = append(b.nodes, media.MenuNode{
		Title:       searchLabel,
		Description: "Search",
		Action:      media.ActionSearch,
		ContentID:   searchID,
		URL:         b.url(navurl.Descriptor{Action: media.ActionSearch, ContentID: searchID, Title: searchLabel}),
		Info: media.Info{
			Genre:     classify.AllGenres,
			Plot:      "Search",
			MediaType: mediaType,
		},
	})
}
