// Package media defines the descriptors exchanged between the navigation
// core and the host adapter.
package media

import "time"

// Action names a listing or playback operation in a continuation URL.
type Action string

const (
	ActionRoot       Action = ""
	ActionCollection Action = "collection"
	ActionManual     Action = "manual"
	ActionShow       Action = "show"
	ActionSeason     Action = "season"
	ActionPlay       Action = "play"
	ActionSearch     Action = "search"
)

// SortMethod tells the host how to order a rendered listing.
type SortMethod int

const (
	SortNone SortMethod = iota
	SortLabel
)

func (s SortMethod) String() string {
	switch s {
	case SortLabel:
		return "label"
	default:
		return "none"
	}
}

// Art holds the artwork references for a row.
type Art struct {
	Thumb  string `json:"thumb,omitempty"`
	Icon   string `json:"icon,omitempty"`
	Fanart string `json:"fanart,omitempty"`
}

// Info is the descriptive metadata shown alongside a row.
type Info struct {
	Genre     string `json:"genre,omitempty"`
	Plot      string `json:"plot,omitempty"`
	Episode   int    `json:"episode,omitempty"`
	Duration  int    `json:"duration,omitempty"` // seconds
	Year      int    `json:"year,omitempty"`
	Date      string `json:"date,omitempty"` // dd.mm.yyyy
	MediaType string `json:"mediatype,omitempty"`
}

// MenuNode is one rendered row. Container rows open a sub-listing; rows with
// ActionPlay resolve to a PlayableItem when selected.
type MenuNode struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Action      Action `json:"action"`
	ContentID   string `json:"content_id,omitempty"`
	ParentTitle string `json:"parent_title,omitempty"`
	PageNumber  int    `json:"page_number,omitempty"`

	// URL is the encoded continuation that re-enters the router for this row.
	URL  string `json:"url"`
	Art  Art    `json:"art"`
	Info Info   `json:"info"`
}

// IsFolder reports whether selecting the node opens another listing.
func (n MenuNode) IsFolder() bool {
	return n.Action != ActionPlay
}

// PlayableItem is a resolved stream ready for the player.
type PlayableItem struct {
	ContentID     string   `json:"content_id"`
	Title         string   `json:"title"`
	StreamURL     string   `json:"stream_url"`
	SubtitleFiles []string `json:"subtitle_files,omitempty"`
	CoverImage    string   `json:"cover_image,omitempty"`
	IconImage     string   `json:"icon_image,omitempty"`
}

// Listing is the result of one router invocation.
type Listing struct {
	Category string     `json:"category"`
	Sort     SortMethod `json:"-"`
	Nodes    []MenuNode `json:"nodes"`

	// Terminal is set for the play action. Playable is nil when playback was
	// unavailable and the user has already been notified.
	Terminal bool          `json:"terminal,omitempty"`
	Playable *PlayableItem `json:"playable,omitempty"`
}

// HistoryEntry is one resolved play recorded in the history store.
type HistoryEntry struct {
	ContentID string    `json:"content_id"`
	Title     string    `json:"title"`
	Position  float64   `json:"position"` // Last playback position in seconds
	PlayedAt  time.Time `json:"played_at"`
}
