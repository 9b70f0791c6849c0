package player

import (
	"fmt"

	"zee5/internal/media"
)

// VLC implements the Player interface for VLC media player.
type VLC struct{}

func (v *VLC) Name() string { return "vlc" }

func (v *VLC) Available() bool { return available("vlc") }

// Play launches VLC. VLC has no IPC position tracking like mpv, so the
// returned position is always 0.
func (v *VLC) Play(item *media.PlayableItem, startPos float64) (float64, error) {
	return 0, run("vlc", v.args(item, startPos))
}

func (v *VLC) args(item *media.PlayableItem, startPos float64) []string {
	args := []string{
		item.StreamURL,
		"--meta-title", item.Title,
		"--play-and-exit",
	}
	if startPos > 0 {
		args = append(args, fmt.Sprintf("--start-time=%.0f", startPos))
	}
	// vlc accepts a single external subtitle file.
	if len(item.SubtitleFiles) > 0 {
		args = append(args, "--sub-file", item.SubtitleFiles[0])
	}
	return args
}
