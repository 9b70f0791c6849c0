// Package player launches external media players on a resolved stream.
// All invocations use exec.Command with explicit argument slices.
package player

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"zee5/internal/media"
)

// Player is the interface for media player implementations.
type Player interface {
	// Play starts playback of an item. Returns the last playback position.
	Play(item *media.PlayableItem, startPos float64) (float64, error)

	// Name returns the player name.
	Name() string

	// Available checks if the player binary exists in PATH.
	Available() bool
}

// New creates a player by name.
func New(name string) Player {
	switch name {
	case "mpv":
		return &MPV{}
	case "vlc":
		return &VLC{}
	case "iina", "celluloid":
		return &Generic{name: name}
	default:
		return &MPV{}
	}
}

func available(bin string) bool {
	_, err := exec.LookPath(bin)
	return err == nil
}

// run executes a player attached to the terminal. A non-zero exit is how
// most players report that the user closed them, so it is not an error.
func run(bin string, args []string) error {
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil
		}
		return fmt.Errorf("running %s: %w", bin, err)
	}
	return nil
}
