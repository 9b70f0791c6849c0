package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zee5/internal/media"
	"zee5/internal/navurl"
)

type navCall struct {
	d     navurl.Descriptor
	query string
}

type fakeNav struct {
	calls    []navCall
	listings map[media.Action]media.Listing
	notices  []Notice
	err      error
}

func (f *fakeNav) navigate(_ context.Context, d navurl.Descriptor, query string) (media.Listing, []Notice, error) {
	f.calls = append(f.calls, navCall{d: d, query: query})
	return f.listings[d.Action], f.notices, f.err
}

func node(title string, d navurl.Descriptor) media.MenuNode {
	d.Token = "tok"
	return media.MenuNode{Title: title, Action: d.Action, ContentID: d.ContentID, URL: navurl.Encode("base", d)}
}

func newTestBrowser(nav *fakeNav) *browser {
	return newBrowser(context.Background(), BrowserOptions{
		Navigate: nav.navigate,
		Play:     func(*media.PlayableItem) error { return nil },
		Root:     navurl.Descriptor{Token: "tok"},
	})
}

// run executes cmd and feeds its listing result back into the browser.
func run(t *testing.T, b *browser, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(listingMsg)
	require.True(t, ok, "expected a listing message")
	_, next := b.Update(msg)
	return next
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(b *browser, s string) tea.Cmd {
	_, cmd := b.Update(key(s))
	return cmd
}

func rootListing() media.Listing {
	return media.Listing{
		Category: "Collections",
		Nodes: []media.MenuNode{
			node("Home", navurl.Descriptor{Action: media.ActionCollection, ContentID: "0-8-home", Title: "Home"}),
			node("| Search", navurl.Descriptor{Action: media.ActionSearch, ContentID: "1", Title: "| Search"}),
		},
	}
}

func TestBrowserNavigation(t *testing.T) {
	nav := &fakeNav{listings: map[media.Action]media.Listing{
		media.ActionRoot: rootListing(),
		media.ActionCollection: {
			Category: "Home",
			Nodes:    []media.MenuNode{node("Trending", navurl.Descriptor{Action: media.ActionManual, ContentID: "0-8-t"})},
		},
	}}
	b := newTestBrowser(nav)

	run(t, b, b.navigate(b.opts.Root, ""))
	require.Len(t, b.pages, 1)
	assert.Equal(t, listState, b.state)
	assert.Equal(t, "Collections", b.breadcrumb())

	run(t, b, press(b, "enter"))
	require.Len(t, b.pages, 2)
	assert.Equal(t, "Home", b.breadcrumb())
	assert.Equal(t, "0-8-home", nav.calls[1].d.ContentID)
	assert.Equal(t, "tok", nav.calls[1].d.Token)

	press(b, "esc")
	assert.Len(t, b.pages, 1)
	press(b, "esc")
	assert.Len(t, b.pages, 1, "root page is never popped")
}

func TestBrowserSearch(t *testing.T) {
	nav := &fakeNav{listings: map[media.Action]media.Listing{
		media.ActionRoot: rootListing(),
		media.ActionSearch: {
			Category: "Search/kabir",
			Nodes:    []media.MenuNode{node("Kabir Singh", navurl.Descriptor{Action: media.ActionPlay, ContentID: "0-0-1"})},
		},
	}}
	b := newTestBrowser(nav)
	run(t, b, b.navigate(b.opts.Root, ""))

	press(b, "s")
	require.Equal(t, searchState, b.state)
	b.input.SetValue("  kabir ")

	run(t, b, press(b, "enter"))
	last := nav.calls[len(nav.calls)-1]
	assert.Equal(t, media.ActionSearch, last.d.Action)
	assert.Equal(t, "kabir", last.query)
	require.Len(t, b.pages, 2)
	assert.Equal(t, "Search/kabir", b.breadcrumb())
}

func TestBrowserEmptySearchKeepsPage(t *testing.T) {
	nav := &fakeNav{listings: map[media.Action]media.Listing{media.ActionRoot: rootListing()}}
	b := newTestBrowser(nav)
	run(t, b, b.navigate(b.opts.Root, ""))

	nav.notices = []Notice{{Heading: "No Search Results", Message: "No item found for zzz"}}
	press(b, "s")
	b.input.SetValue("zzz")
	run(t, b, press(b, "enter"))

	assert.Len(t, b.pages, 1)
	assert.Equal(t, "No Search Results: No item found for zzz", b.notice)
	assert.Contains(t, b.View(), "No item found for zzz")
}

func TestBrowserPlay(t *testing.T) {
	nav := &fakeNav{listings: map[media.Action]media.Listing{
		media.ActionRoot: {Nodes: []media.MenuNode{node("Movie", navurl.Descriptor{Action: media.ActionPlay, ContentID: "0-0-1"})}},
		media.ActionPlay: {Terminal: true, Playable: &media.PlayableItem{Title: "Movie", StreamURL: "https://s"}},
	}}
	b := newTestBrowser(nav)
	run(t, b, b.navigate(b.opts.Root, ""))

	next := run(t, b, press(b, "enter"))
	assert.NotNil(t, next, "playback command expected")
	assert.Len(t, b.pages, 1)

	b.Update(playedMsg{title: "Movie"})
	assert.Equal(t, "Finished Movie", b.notice)
}

func TestBrowserError(t *testing.T) {
	nav := &fakeNav{err: errors.New("status 500")}
	b := newTestBrowser(nav)

	run(t, b, b.navigate(b.opts.Root, ""))
	assert.Equal(t, errorState, b.state)
	assert.Contains(t, b.View(), "status 500")

	_, cmd := b.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestNodeItem(t *testing.T) {
	folder := nodeItem{node: media.MenuNode{Title: "Home", Action: media.ActionCollection, Description: "Home"}}
	assert.Equal(t, "Home/", folder.Title())
	assert.Equal(t, "Home", folder.Description())

	video := nodeItem{node: media.MenuNode{
		Title:  "Ep 1",
		Action: media.ActionPlay,
		Info:   media.Info{Genre: "Drama", Episode: 1, Year: 2019, Duration: 1320},
	}}
	assert.Equal(t, "Ep 1", video.Title())
	assert.Equal(t, "Drama • Ep 1 • 2019 • 22m0s", video.Description())
}
