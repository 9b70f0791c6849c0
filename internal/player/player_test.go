package player

import (
	"reflect"
	"strings"
	"testing"

	"zee5/internal/media"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"mpv", "mpv"},
		{"vlc", "vlc"},
		{"iina", "iina"},
		{"celluloid", "celluloid"},
		{"unknown", "mpv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.name).Name(); got != tt.want {
				t.Errorf("New(%q).Name() = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

var item = &media.PlayableItem{
	Title:         "Kabir Singh",
	StreamURL:     "https://vodnd/hls/x/index.m3u8?hdnea=1",
	SubtitleFiles: []string{"/tmp/zee5-subtitles/Kabir Singh-en.vtt", "/tmp/zee5-subtitles/Kabir Singh-hi.vtt"},
}

func TestMPVArgs(t *testing.T) {
	got := (&MPV{}).args(item, 90, "/tmp/sock")
	want := []string{
		"https://vodnd/hls/x/index.m3u8?hdnea=1",
		"--force-media-title=Kabir Singh",
		"--input-ipc-server=/tmp/sock",
		"--really-quiet",
		"--start=+90",
		"--sub-file=/tmp/zee5-subtitles/Kabir Singh-en.vtt",
		"--sub-file=/tmp/zee5-subtitles/Kabir Singh-hi.vtt",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("args = %q, want %q", got, want)
	}
}

func TestVLCArgs(t *testing.T) {
	got := (&VLC{}).args(item, 0)
	want := []string{
		"https://vodnd/hls/x/index.m3u8?hdnea=1",
		"--meta-title", "Kabir Singh",
		"--play-and-exit",
		"--sub-file", "/tmp/zee5-subtitles/Kabir Singh-en.vtt",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("args = %q, want %q", got, want)
	}
}

func TestGenericArgsWithoutSubtitles(t *testing.T) {
	got := (&Generic{name: "iina"}).args(&media.PlayableItem{Title: "T", StreamURL: "https://s"}, 0)
	want := []string{"https://s", "--force-media-title=T"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("args = %q, want %q", got, want)
	}
}

func TestLastTimePos(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   float64
	}{
		{"empty", "", 0},
		{
			"last positive wins",
			`{"event":"property-change","id":1,"name":"time-pos","data":12.5}
{"event":"property-change","id":1,"name":"time-pos","data":47.25}
`,
			47.25,
		},
		{
			"null after stop is ignored",
			`{"event":"property-change","id":1,"name":"time-pos","data":90}
{"event":"property-change","id":1,"name":"time-pos","data":null}
{"event":"end-file"}
`,
			90,
		},
		{
			"other observers and garbage",
			`{"event":"property-change","id":2,"name":"time-pos","data":500}
not json
{"request_id":0,"error":"success"}
{"event":"property-change","id":1,"name":"time-pos","data":3}
`,
			3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lastTimePos(strings.NewReader(tt.stream)); got != tt.want {
				t.Errorf("lastTimePos() = %v, want %v", got, tt.want)
			}
		})
	}
}
