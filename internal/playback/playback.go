// Package playback resolves a playable content id into a stream URL and
// local subtitle files.
package playback

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"zee5/internal/catalog"
	"zee5/internal/classify"
	"zee5/internal/media"
	"zee5/internal/navurl"
)

// ErrPlaybackUnavailable is returned when the asset has no stream locator.
// The user has already been notified when it is returned.
var ErrPlaybackUnavailable = errors.New("playback unavailable")

const (
	manifestSuffix = "/manifest.mpd"
	drmPrefix      = "/drm"
	hlsPrefix      = "/hls"
)

// Catalog is the subset of the catalog client the resolver needs.
type Catalog interface {
	Details(ctx context.Context, sess catalog.Session, id string) (*catalog.Details, error)
	VideoToken(ctx context.Context, sess catalog.Session) (string, error)
}

// Downloader materialises a remote file locally and returns its path.
type Downloader interface {
	Download(ctx context.Context, url, filename string) (string, error)
}

// Notifier shows a user-visible message.
type Notifier interface {
	Notify(heading, message string)
}

// Options configures stream and subtitle hosts.
type Options struct {
	// VODHost serves subtitle tracks; VODNDHost serves the HLS stream.
	VODHost   string
	VODNDHost string
	// SubtitleLanguages restricts which tracks are fetched. Empty fetches all.
	SubtitleLanguages []string
	// NoSubtitles skips subtitle resolution entirely.
	NoSubtitles bool
}

// Resolver turns a content id into a PlayableItem.
type Resolver struct {
	catalog    Catalog
	downloader Downloader
	notifier   Notifier
	opts       Options
}

// New creates a Resolver.
func New(cat Catalog, dl Downloader, n Notifier, opts Options) *Resolver {
	return &Resolver{catalog: cat, downloader: dl, notifier: n, opts: opts}
}

// Resolve fetches the asset detail, builds the tokenised stream URL and
// downloads the subtitle tracks. Individual subtitle failures are skipped.
func (r *Resolver) Resolve(ctx context.Context, sess catalog.Session, id string) (*media.PlayableItem, error) {
	details, err := r.catalog.Details(ctx, sess, id)
	if err != nil {
		return nil, fmt.Errorf("getting details for %s: %w", id, err)
	}

	hls := details.VideoDetails.HLSURL
	if hls == "" {
		r.notifier.Notify("Video URL missing!", fmt.Sprintf("Missing video URL for %s", details.Title))
		return nil, fmt.Errorf("%w: %s has no stream locator", ErrPlaybackUnavailable, id)
	}

	token, err := r.catalog.VideoToken(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("getting video token: %w", err)
	}

	art := classify.Art(&details.ContentRecord)
	item := &media.PlayableItem{
		ContentID:     id,
		Title:         details.Title,
		StreamURL:     StreamURL(r.opts.VODNDHost, hls, token),
		SubtitleFiles: r.subtitles(ctx, details),
		CoverImage:    art.Fanart,
		IconImage:     art.Icon,
	}

	logrus.WithFields(logrus.Fields{
		"id":        id,
		"stream":    item.StreamURL,
		"subtitles": item.SubtitleFiles,
	}).Debug("playing video")

	return item, nil
}

func (r *Resolver) subtitles(ctx context.Context, details *catalog.Details) []string {
	if r.opts.NoSubtitles {
		return nil
	}
	langs := lo.Filter(lo.Uniq(details.VideoDetails.Subtitles), func(lang string, _ int) bool {
		if lang == "" {
			return false
		}
		return len(r.opts.SubtitleLanguages) == 0 || lo.Contains(r.opts.SubtitleLanguages, lang)
	})

	var files []string
	for _, lang := range langs {
		log := logrus.WithFields(logrus.Fields{"id": details.ID, "lang": lang})

		subURL, err := SubtitleURL(r.opts.VODHost, details.VideoDetails.URL, lang)
		if err != nil {
			log.WithError(err).Warn("skipping subtitle")
			continue
		}

		filename := fmt.Sprintf("%s-%s.vtt", navurl.ASCII(details.Title), lang)
		path, err := r.downloader.Download(ctx, subURL, filename)
		if err != nil {
			log.WithError(err).Warn("skipping subtitle")
			continue
		}
		files = append(files, path)
	}
	return files
}

// StreamURL rewrites the DRM manifest path to its HLS twin on host and
// appends the video token as a query suffix.
func StreamURL(host, hlsPath, token string) string {
	path := strings.ReplaceAll(hlsPath, drmPrefix, hlsPrefix)
	u := joinHost(host, path)

	switch {
	case token == "":
		return u
	case strings.HasPrefix(token, "?"), strings.HasPrefix(token, "&"):
		return u + token
	case strings.Contains(u, "?"):
		return u + "&" + token
	default:
		return u + "?" + token
	}
}

// SubtitleURL derives the WebVTT track URL for lang from the DASH manifest path.
func SubtitleURL(host, manifestPath, lang string) (string, error) {
	if !strings.Contains(manifestPath, manifestSuffix) {
		return "", fmt.Errorf("manifest path %q has no %s", manifestPath, manifestSuffix)
	}
	path := strings.Replace(manifestPath, manifestSuffix, "/manifest-"+lang+".vtt", 1)
	return joinHost(host, path), nil
}

func joinHost(host, path string) string {
	return strings.TrimRight(host, "/") + "/" + strings.TrimLeft(path, "/")
}
