package httputil

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// ErrInvalidID is returned for content ids that cannot be placed in a request path.
var ErrInvalidID = errors.New("invalid content id")

// contentIDPattern matches catalog ids such as "0-0-16460" or "0-8-manualcol_1053401488".
var contentIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

const maxIDLength = 128

// RequireHTTPS parses raw and rejects anything but an absolute https URL.
func RequireHTTPS(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed URL %q: %w", raw, err)
	}
	if u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("want an https URL with a host, got %q", raw)
	}
	return u, nil
}

// ValidateID checks that id is a single path segment of safe characters.
func ValidateID(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty", ErrInvalidID)
	case len(id) > maxIDLength:
		return fmt.Errorf("%w: %d characters", ErrInvalidID, len(id))
	case !contentIDPattern.MatchString(id):
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// SanitizeFilename turns a display title into a single file name. Separators
// and characters reserved on common filesystems become underscores and
// control characters are dropped.
func SanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r):
			return -1
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(strings.Join(strings.Fields(name), " "), ". ")
	if name == "" {
		return "untitled"
	}
	return name
}

// SafeDownloadPath joins the sanitized filename onto dir and guarantees the
// result stays inside dir.
func SafeDownloadPath(dir, filename string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	name := SanitizeFilename(filename)
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("file name %q escapes %q", name, absDir)
	}
	return filepath.Join(absDir, name), nil
}

// BuildURL appends escaped path segments to base.
func BuildURL(base string, pathSegments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, seg := range pathSegments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(seg))
	}
	return b.String()
}
