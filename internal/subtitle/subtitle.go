// Package subtitle materialises remote subtitle tracks as local files the
// player can load.
package subtitle

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"zee5/internal/httputil"
)

// DirName is the scoped directory under the system temp dir holding
// downloaded subtitle files.
const DirName = "zee5-subtitles"

// Store downloads subtitle files into one scoped directory. Files live until
// the next Cleanup, which hosts call before each invocation.
type Store struct {
	fs     afero.Fs
	dir    string
	client *http.Client
}

// NewStore returns a store rooted at <tmp>/zee5-subtitles on the OS filesystem.
func NewStore(client *http.Client) *Store {
	return NewStoreFs(afero.NewOsFs(), filepath.Join(os.TempDir(), DirName), client)
}

// NewStoreFs returns a store on an arbitrary filesystem.
func NewStoreFs(fs afero.Fs, dir string, client *http.Client) *Store {
	if client == nil {
		client = httputil.NewClient()
	}
	return &Store{fs: fs, dir: dir, client: client}
}

// Dir returns the directory files are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Cleanup removes every previously downloaded subtitle file.
func (s *Store) Cleanup() error {
	if err := s.fs.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("removing subtitle dir: %w", err)
	}
	return nil
}

// Download fetches url into the store under a sanitized filename and returns
// the local path.
func (s *Store) Download(ctx context.Context, url, filename string) (string, error) {
	body, err := httputil.GetBody(ctx, s.client, url, nil)
	if err != nil {
		return "", fmt.Errorf("downloading subtitle: %w", err)
	}

	if err := s.fs.MkdirAll(s.dir, 0700); err != nil {
		return "", fmt.Errorf("creating subtitle dir: %w", err)
	}

	localPath, err := httputil.SafeDownloadPath(s.dir, filename)
	if err != nil {
		return "", fmt.Errorf("invalid subtitle filename: %w", err)
	}

	if err := afero.WriteFile(s.fs, localPath, body, 0600); err != nil {
		return "", fmt.Errorf("writing subtitle file: %w", err)
	}

	logrus.WithField("path", localPath).Debug("subtitle saved")
	return localPath, nil
}
