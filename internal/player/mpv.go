package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"zee5/internal/media"
)

// MPV plays through mpv. The final position is read back over mpv's JSON
// IPC socket, which lives in a private temp dir for the duration of play.
type MPV struct{}

func (m *MPV) Name() string { return "mpv" }

func (m *MPV) Available() bool { return available("mpv") }

// Play launches mpv with the given item and returns the final playback position.
func (m *MPV) Play(item *media.PlayableItem, startPos float64) (float64, error) {
	socketDir, err := os.MkdirTemp("", "zee5-mpv-*")
	if err != nil {
		return 0, fmt.Errorf("creating temp dir for mpv socket: %w", err)
	}
	defer os.RemoveAll(socketDir)

	socketPath := filepath.Join(socketDir, "socket")

	cmd := exec.Command("mpv", m.args(item, startPos, socketPath)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("starting mpv: %w", err)
	}

	pos := make(chan float64, 1)
	go func() { pos <- trackPosition(socketPath) }()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return 0, fmt.Errorf("waiting for mpv: %w", err)
		}
		logrus.WithField("code", exitErr.ExitCode()).Debug("mpv exited")
	}

	select {
	case p := <-pos:
		return p, nil
	case <-time.After(time.Second):
		return 0, nil
	}
}

func (m *MPV) args(item *media.PlayableItem, startPos float64, socketPath string) []string {
	args := []string{
		item.StreamURL,
		"--force-media-title=" + item.Title,
		"--input-ipc-server=" + socketPath,
		"--really-quiet",
	}
	if startPos > 0 {
		args = append(args, fmt.Sprintf("--start=+%.0f", startPos))
	}
	for _, sub := range item.SubtitleFiles {
		args = append(args, "--sub-file="+sub)
	}
	return args
}

const (
	timePosObserver = 1
	socketWait      = 5 * time.Second
)

// ipcCommand is one JSON line written to mpv's input socket.
type ipcCommand struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id,omitempty"`
}

// ipcEvent is the subset of mpv's event lines we read.
type ipcEvent struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Data  json.RawMessage `json:"data"`
}

// trackPosition observes time-pos over mpv's IPC socket until mpv closes it.
func trackPosition(socketPath string) float64 {
	conn, err := dialWhenReady(socketPath, socketWait)
	if err != nil {
		logrus.WithError(err).Debug("mpv ipc unavailable")
		return 0
	}
	defer conn.Close()

	observe := ipcCommand{Command: []any{"observe_property", timePosObserver, "time-pos"}}
	if err := json.NewEncoder(conn).Encode(observe); err != nil {
		return 0
	}
	return lastTimePos(conn)
}

// dialWhenReady retries the unix socket until mpv has created it.
func dialWhenReady(socketPath string, wait time.Duration) (net.Conn, error) {
	deadline := time.Now().Add(wait)
	for {
		conn, err := net.Dial("unix", socketPath)
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("dialing %s: %w", socketPath, err)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// lastTimePos reads property-change events from r and returns the last
// positive time-pos seen. Unparsable lines and null positions are skipped.
func lastTimePos(r io.Reader) float64 {
	var last float64
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		var ev ipcEvent
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			continue
		}
		if ev.Event != "property-change" || ev.ID != timePosObserver || ev.Name != "time-pos" {
			continue
		}
		var pos float64
		if err := json.Unmarshal(ev.Data, &pos); err == nil && pos > 0 {
			last = pos
		}
	}
	return last
}
