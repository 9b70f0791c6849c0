package httputil

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestRequireHTTPS(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"https://gwapi.zee5.com", false},
		{"https://zee5vodnd.akamaized.net:8443/hls", false},
		{"http://gwapi.zee5.com", true},
		{"plugin://plugin.video.zee5/", true},
		{"https://", true},
		{"", true},
		{"://bad", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := RequireHTTPS(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("RequireHTTPS(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"asset", "0-0-16460", false},
		{"manual collection", "0-8-manualcol_1053401488", false},
		{"numeric", "1", false},
		{"empty", "", true},
		{"slash", "0-2/season", true},
		{"traversal", "../tokennd", true},
		{"query smuggling", "0-0-1?limit=1000", true},
		{"leading dash", "-0-1", true},
		{"whitespace", "0-0 1", true},
		{"too long", strings.Repeat("a", maxIDLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidID) {
				t.Errorf("ValidateID(%q) error %v does not wrap ErrInvalidID", tt.id, err)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Kabir Singh-en.vtt", "Kabir Singh-en.vtt"},
		{"Kaun Banegi Shikharwati: Ep 1", "Kaun Banegi Shikharwati_ Ep 1"},
		{"AC/DC Live", "AC_DC Live"},
		{"  Spaced \t  Out  ", "Spaced Out"},
		{"bell\x07.mkv", "bell.mkv"},
		{"..", "untitled"},
		{"", "untitled"},
		{"../../etc/passwd", "_.._etc_passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSafeDownloadPath(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"Cabaret - Trailer-en.vtt", "../../etc/passwd", "..", "$(whoami).mkv"} {
		t.Run(name, func(t *testing.T) {
			path, err := SafeDownloadPath(dir, name)
			if err != nil {
				t.Fatalf("SafeDownloadPath(%q) error: %v", name, err)
			}
			if filepath.Dir(path) != dir {
				t.Errorf("SafeDownloadPath(%q) = %q, want a file directly in %q", name, path, dir)
			}
		})
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://gwapi.zee5.com", []string{"content", "season", "0-2-123"}, "https://gwapi.zee5.com/content/season/0-2-123"},
		{"https://gwapi.zee5.com/", []string{"content", "details", "a b"}, "https://gwapi.zee5.com/content/details/a%20b"},
		{"https://useraction.zee5.com", []string{"tokennd", ""}, "https://useraction.zee5.com/tokennd/"},
		{"https://b2bapi.zee5.com", nil, "https://b2bapi.zee5.com"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := BuildURL(tt.base, tt.segments...); got != tt.want {
				t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
			}
		})
	}
}
