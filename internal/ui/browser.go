package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"zee5/internal/media"
	"zee5/internal/navurl"
)

// Navigator produces the listing for a continuation. query answers the
// search prompt for search continuations. Notifications raised while
// routing are returned rather than shown.
type Navigator func(ctx context.Context, d navurl.Descriptor, query string) (media.Listing, []Notice, error)

// PlayFunc hands a resolved item to the player. It owns the terminal while
// it runs.
type PlayFunc func(item *media.PlayableItem) error

// BrowserOptions configures the interactive browser.
type BrowserOptions struct {
	Navigate Navigator
	Play     PlayFunc
	// Root is the first continuation loaded. It carries the session token.
	Root navurl.Descriptor
}

// RunBrowser runs the full-screen browser until the user quits.
func RunBrowser(ctx context.Context, opts BrowserOptions) error {
	_, err := tea.NewProgram(newBrowser(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Padding(1, 2)
	faintStyle  = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	bodyStyle   = lipgloss.NewStyle().Padding(1, 2)
)

const noticeTTL = 4 * time.Second

type browserState int

const (
	loadingState browserState = iota
	listState
	searchState
	errorState
)

type page struct {
	listing media.Listing
	list    list.Model
}

type (
	listingMsg struct {
		listing media.Listing
		notices []Notice
		err     error
	}
	playedMsg struct {
		title string
		err   error
	}
	clearNoticeMsg struct{ seq int }
)

type browser struct {
	ctx  context.Context
	opts BrowserOptions

	state   browserState
	pages   []page
	spinner spinner.Model
	input   textinput.Model

	search    navurl.Descriptor
	notice    string
	noticeSeq int
	lastErr   error

	width, height int
}

func newBrowser(ctx context.Context, opts BrowserOptions) *browser {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	in := textinput.New()
	in.Placeholder = "title, actor, genre"
	in.CharLimit = 120

	return &browser{
		ctx:     ctx,
		opts:    opts,
		state:   loadingState,
		spinner: sp,
		input:   in,
		width:   80,
		height:  24,
	}
}

func (b *browser) Init() tea.Cmd {
	return tea.Batch(b.spinner.Tick, b.navigate(b.opts.Root, ""))
}

func (b *browser) navigate(d navurl.Descriptor, query string) tea.Cmd {
	return func() tea.Msg {
		listing, notices, err := b.opts.Navigate(b.ctx, d, query)
		return listingMsg{listing: listing, notices: notices, err: err}
	}
}

func (b *browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		for i := range b.pages {
			b.pages[i].list.SetSize(b.listSize())
		}
		return b, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return b, cmd

	case listingMsg:
		return b, b.handleListing(msg)

	case playedMsg:
		b.state = listState
		if msg.err != nil {
			return b, b.setNotice(fmt.Sprintf("Playback failed: %v", msg.err))
		}
		return b, b.setNotice("Finished " + msg.title)

	case clearNoticeMsg:
		if msg.seq == b.noticeSeq {
			b.notice = ""
		}
		return b, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return b, tea.Quit
		}
		return b, b.handleKey(msg)
	}

	if b.state == listState && len(b.pages) > 0 {
		return b, b.updateList(msg)
	}
	return b, nil
}

func (b *browser) handleListing(msg listingMsg) tea.Cmd {
	if msg.err != nil {
		b.lastErr = msg.err
		b.state = errorState
		return nil
	}

	var cmds []tea.Cmd
	if len(msg.notices) > 0 {
		cmds = append(cmds, b.setNotice(msg.notices[len(msg.notices)-1].String()))
	}

	b.state = listState
	switch {
	case msg.listing.Terminal && msg.listing.Playable != nil:
		item := msg.listing.Playable
		cmds = append(cmds, tea.Exec(&playCommand{item: item, play: b.opts.Play}, func(err error) tea.Msg {
			return playedMsg{title: item.Title, err: err}
		}))
	case msg.listing.Terminal:
		// Nothing to play; the notice says why.
	case len(msg.listing.Nodes) == 0 && len(b.pages) > 0:
		// An empty search keeps the current page.
	default:
		b.pages = append(b.pages, b.newPage(msg.listing))
	}
	return tea.Batch(cmds...)
}

func (b *browser) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch b.state {
	case loadingState:
		return nil

	case errorState:
		switch msg.String() {
		case "q":
			return tea.Quit
		case "esc", "enter", "backspace":
			if len(b.pages) == 0 {
				return tea.Quit
			}
			b.state = listState
		}
		return nil

	case searchState:
		switch msg.String() {
		case "enter":
			query := strings.TrimSpace(b.input.Value())
			b.input.Blur()
			b.state = loadingState
			return b.navigate(b.search, query)
		case "esc":
			b.input.Blur()
			b.state = listState
			return nil
		}
		var cmd tea.Cmd
		b.input, cmd = b.input.Update(msg)
		return cmd
	}

	cur := b.current()
	if cur == nil || cur.list.FilterState() == list.Filtering {
		return b.updateList(msg)
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "esc", "backspace":
		if len(b.pages) > 1 {
			b.pages = b.pages[:len(b.pages)-1]
		}
		return nil
	case "s":
		search := b.opts.Root
		search.Action = media.ActionSearch
		return b.openSearch(search)
	case "enter":
		return b.selectNode()
	}
	return b.updateList(msg)
}

func (b *browser) selectNode() tea.Cmd {
	cur := b.current()
	selected, ok := cur.list.SelectedItem().(nodeItem)
	if !ok {
		return nil
	}
	d, err := navurl.DecodeURL(selected.node.URL)
	if err != nil {
		b.lastErr = err
		b.state = errorState
		return nil
	}
	if d.Action == media.ActionSearch {
		return b.openSearch(d)
	}
	b.state = loadingState
	return b.navigate(d, "")
}

func (b *browser) openSearch(d navurl.Descriptor) tea.Cmd {
	b.search = d
	b.input.SetValue("")
	b.state = searchState
	return b.input.Focus()
}

func (b *browser) updateList(msg tea.Msg) tea.Cmd {
	cur := b.current()
	if cur == nil {
		return nil
	}
	var cmd tea.Cmd
	cur.list, cmd = cur.list.Update(msg)
	return cmd
}

func (b *browser) current() *page {
	if len(b.pages) == 0 {
		return nil
	}
	return &b.pages[len(b.pages)-1]
}

func (b *browser) setNotice(text string) tea.Cmd {
	b.noticeSeq++
	seq := b.noticeSeq
	b.notice = text
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} })
}

func (b *browser) listSize() (int, int) {
	// header and notice lines
	return b.width, max(b.height-2, 3)
}

func (b *browser) newPage(listing media.Listing) page {
	items := lo.Map(listing.Nodes, func(n media.MenuNode, _ int) list.Item { return nodeItem{node: n} })
	w, h := b.listSize()
	l := list.New(items, list.NewDefaultDelegate(), w, h)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	return page{listing: listing, list: l}
}

func (b *browser) breadcrumb() string {
	crumbs := lo.FilterMap(b.pages, func(p page, _ int) (string, bool) {
		return p.listing.Category, p.listing.Category != ""
	})
	if len(crumbs) == 0 {
		return "zee5"
	}
	return crumbs[len(crumbs)-1]
}

func (b *browser) View() string {
	var body string
	switch b.state {
	case loadingState:
		body = bodyStyle.Render(b.spinner.View() + " Loading")
	case searchState:
		body = bodyStyle.Render(headerStyle.Render("Search") + "\n\n" + b.input.View())
	case errorState:
		body = errorStyle.Render(fmt.Sprintf("Error: %v\n\nesc to go back, q to quit", b.lastErr))
	default:
		if cur := b.current(); cur != nil {
			body = headerStyle.Render(b.breadcrumb()) + "\n" + cur.list.View()
		}
	}

	footer := faintStyle.Render("enter open • esc back • s search • / filter • q quit")
	if b.notice != "" {
		footer = noticeStyle.Render(b.notice)
	}
	return body + "\n" + footer
}

// nodeItem adapts a MenuNode to the list delegate.
type nodeItem struct {
	node media.MenuNode
}

func (i nodeItem) Title() string {
	if i.node.IsFolder() {
		return i.node.Title + "/"
	}
	return i.node.Title
}

func (i nodeItem) Description() string {
	info := i.node.Info
	var parts []string
	if info.Genre != "" {
		parts = append(parts, info.Genre)
	}
	if info.Episode > 0 {
		parts = append(parts, fmt.Sprintf("Ep %d", info.Episode))
	}
	if info.Year > 0 {
		parts = append(parts, fmt.Sprintf("%d", info.Year))
	}
	if info.Duration > 0 {
		parts = append(parts, (time.Duration(info.Duration) * time.Second).String())
	}
	if len(parts) == 0 {
		return i.node.Description
	}
	return strings.Join(parts, " • ")
}

func (i nodeItem) FilterValue() string { return i.node.Title }

// playCommand runs the player through tea.Exec so the terminal is released
// while it plays.
type playCommand struct {
	item *media.PlayableItem
	play PlayFunc
}

func (c *playCommand) Run() error {
	return c.play(c.item)
}

func (c *playCommand) SetStdin(io.Reader)  {}
func (c *playCommand) SetStdout(io.Writer) {}
func (c *playCommand) SetStderr(io.Writer) {}
