// Package router maps a decoded continuation onto one catalog listing or a
// playback resolution.
package router

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"zee5/internal/catalog"
	"zee5/internal/media"
	"zee5/internal/navurl"
	"zee5/internal/playback"
)

// ErrInvalidRoute is returned for an action the router does not know. It
// means the continuation URL was malformed or forged.
var ErrInvalidRoute = errors.New("invalid route")

// SearchHeading is shown when asking the user for a search query.
const SearchHeading = "Search for Movies/TV Shows/Trailers/Videos in all languages"

// Catalog is the subset of the catalog client the router lists from.
type Catalog interface {
	Collections(ctx context.Context, sess catalog.Session) (map[string]string, error)
	Collection(ctx context.Context, sess catalog.Session, id string, page int) (*catalog.Collection, error)
	Bucket(ctx context.Context, sess catalog.Session, id string, page int) (*catalog.Collection, error)
	Show(ctx context.Context, sess catalog.Session, id string) (*catalog.Show, error)
	Season(ctx context.Context, sess catalog.Session, id string) (*catalog.Season, error)
	AutoSuggest(ctx context.Context, sess catalog.Session, query string) (*catalog.SearchResult, error)
}

// Resolver resolves a playable content id.
type Resolver interface {
	Resolve(ctx context.Context, sess catalog.Session, id string) (*media.PlayableItem, error)
}

// Prompter obtains a line of text from the user. ok is false when the user
// cancelled.
type Prompter interface {
	Prompt(heading string) (text string, ok bool)
}

// Notifier shows a user-visible message.
type Notifier interface {
	Notify(heading, message string)
}

// Options configures a Router.
type Options struct {
	// Base is the callback URL continuations are rendered against.
	Base string
}

// Router dispatches continuations. One Router serves one host invocation.
type Router struct {
	catalog  Catalog
	resolver Resolver
	prompter Prompter
	notifier Notifier
	opts     Options
}

// New creates a Router.
func New(cat Catalog, res Resolver, p Prompter, n Notifier, opts Options) *Router {
	return &Router{catalog: cat, resolver: res, prompter: p, notifier: n, opts: opts}
}

// Route produces the listing for d. Transport failures abort the whole
// listing; unrecognised items inside a listing are skipped.
func (r *Router) Route(ctx context.Context, sess catalog.Session, d navurl.Descriptor) (media.Listing, error) {
	logrus.WithFields(logrus.Fields{
		"action":      d.Action,
		"content_id":  d.ContentID,
		"title":       d.Title,
		"page_number": d.Page(),
	}).Info("handling route")

	switch d.Action {
	case media.ActionRoot:
		return r.listCollections(ctx, sess)
	case media.ActionCollection:
		return r.listCollection(ctx, sess, d)
	case media.ActionManual:
		return r.listManual(ctx, sess, d)
	case media.ActionShow:
		return r.listShow(ctx, sess, d)
	case media.ActionSeason:
		return r.listSeason(ctx, sess, d)
	case media.ActionSearch:
		return r.listSearch(ctx, sess)
	case media.ActionPlay:
		return r.play(ctx, sess, d)
	default:
		return media.Listing{}, fmt.Errorf("%w: action %q", ErrInvalidRoute, d.Action)
	}
}

func (r *Router) listCollections(ctx context.Context, sess catalog.Session) (media.Listing, error) {
	collections, err := r.catalog.Collections(ctx, sess)
	if err != nil {
		return media.Listing{}, fmt.Errorf("listing collections: %w", err)
	}

	b := r.builder(sess, "")
	for name, id := range collections {
		label := displayName(name)
		b.folder(media.ActionCollection, id, label, label, nil)
	}
	b.search()

	nodes := b.nodes
	slices.SortStableFunc(nodes, func(a, b media.MenuNode) int {
		return strings.Compare(a.Title, b.Title)
	})
	return media.Listing{Category: "Collections", Sort: media.SortLabel, Nodes: nodes}, nil
}

func (r *Router) listCollection(ctx context.Context, sess catalog.Session, d navurl.Descriptor) (media.Listing, error) {
	coll, err := r.catalog.Collection(ctx, sess, d.ContentID, d.Page())
	if err != nil {
		return media.Listing{}, fmt.Errorf("listing collection %s: %w", d.ContentID, err)
	}

	b := r.builder(sess, d.Title)
	for i := range coll.Buckets {
		bucket := &coll.Buckets[i]
		if len(bucket.Items) == 0 {
			continue
		}
		b.folder(media.ActionManual, bucket.ID, bucket.Title, bucket.Description, &bucket.ContentRecord)
	}
	b.nextPage(media.ActionCollection, coll)
	b.search()

	return media.Listing{Category: d.Title, Sort: media.SortNone, Nodes: b.nodes}, nil
}

func (r *Router) listManual(ctx context.Context, sess catalog.Session, d navurl.Descriptor) (media.Listing, error) {
	coll, err := r.catalog.Bucket(ctx, sess, d.ContentID, d.Page())
	if err != nil {
		return media.Listing{}, fmt.Errorf("listing bucket %s: %w", d.ContentID, err)
	}

	b := r.builder(sess, d.Title)
	if len(coll.Buckets) > 0 {
		for i := range coll.Buckets[0].Items {
			b.item(&coll.Buckets[0].Items[i])
		}
	}
	b.nextPage(media.ActionManual, coll)
	b.search()

	return media.Listing{Category: d.Title, Sort: media.SortNone, Nodes: b.nodes}, nil
}

func (r *Router) listShow(ctx context.Context, sess catalog.Session, d navurl.Descriptor) (media.Listing, error) {
	show, err := r.catalog.Show(ctx, sess, d.ContentID)
	if err != nil {
		return media.Listing{}, fmt.Errorf("listing show %s: %w", d.ContentID, err)
	}

	b := r.builder(sess, d.Title)
	for i := range show.Seasons {
		season := &show.Seasons[i]
		b.folder(media.ActionSeason, season.ID, season.Title, season.Description, season)
	}
	b.search()

	return media.Listing{Category: d.Title, Sort: media.SortNone, Nodes: b.nodes}, nil
}

func (r *Router) listSeason(ctx context.Context, sess catalog.Session, d navurl.Descriptor) (media.Listing, error) {
	season, err := r.catalog.Season(ctx, sess, d.ContentID)
	if err != nil {
		return media.Listing{}, fmt.Errorf("listing season %s: %w", d.ContentID, err)
	}

	b := r.builder(sess, d.Title)
	for i := range season.Episodes {
		b.video(&season.Episodes[i])
	}
	b.search()

	return media.Listing{Category: d.Title, Sort: media.SortNone, Nodes: b.nodes}, nil
}

func (r *Router) listSearch(ctx context.Context, sess catalog.Session) (media.Listing, error) {
	query, ok := r.prompter.Prompt(SearchHeading)
	query = strings.TrimSpace(query)
	if !ok || query == "" {
		return media.Listing{Category: "Search", Sort: media.SortNone}, nil
	}

	category := "Search/" + query
	result, err := r.catalog.AutoSuggest(ctx, sess, query)
	if err != nil {
		return media.Listing{}, fmt.Errorf("searching %q: %w", query, err)
	}
	if result.NumFound == 0 {
		r.notifier.Notify("No Search Results", fmt.Sprintf("No item found for %s", query))
		return media.Listing{Category: category, Sort: media.SortNone}, nil
	}

	b := r.builder(sess, "")
	for i := range result.Docs {
		b.video(&result.Docs[i])
	}
	return media.Listing{Category: category, Sort: media.SortNone, Nodes: b.nodes}, nil
}

func (r *Router) play(ctx context.Context, sess catalog.Session, d navurl.Descriptor) (media.Listing, error) {
	item, err := r.resolver.Resolve(ctx, sess, d.ContentID)
	if errors.Is(err, playback.ErrPlaybackUnavailable) {
		logrus.WithField("content_id", d.ContentID).WithError(err).Warn("playback unavailable")
		return media.Listing{Category: d.Title, Terminal: true}, nil
	}
	if err != nil {
		return media.Listing{}, fmt.Errorf("resolving playback for %s: %w", d.ContentID, err)
	}
	return media.Listing{Category: item.Title, Terminal: true, Playable: item}, nil
}
