package player

import (
	"fmt"

	"zee5/internal/media"
)

// Generic implements the Player interface for players like iina and celluloid
// that accept mpv-compatible arguments.
type Generic struct {
	name string
}

func (g *Generic) Name() string { return g.name }

func (g *Generic) Available() bool { return available(g.name) }

// Play launches the generic player. Position tracking is not supported.
func (g *Generic) Play(item *media.PlayableItem, startPos float64) (float64, error) {
	return 0, run(g.name, g.args(item, startPos))
}

func (g *Generic) args(item *media.PlayableItem, startPos float64) []string {
	args := []string{item.StreamURL, "--force-media-title=" + item.Title}
	if startPos > 0 {
		args = append(args, fmt.Sprintf("--start=+%.0f", startPos))
	}
	for _, sub := range item.SubtitleFiles {
		args = append(args, "--sub-file="+sub)
	}
	return args
}
