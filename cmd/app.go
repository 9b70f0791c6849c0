package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"zee5/internal/catalog"
	"zee5/internal/config"
	"zee5/internal/download"
	"zee5/internal/history"
	"zee5/internal/httputil"
	"zee5/internal/media"
	"zee5/internal/playback"
	"zee5/internal/player"
	"zee5/internal/router"
	"zee5/internal/subtitle"
)

// pluginBase is the callback base used when no host supplies one.
const pluginBase = "plugin://plugin.video.zee5/"

// app wires the catalog client, subtitle store and session transport for
// one process.
type app struct {
	client *catalog.Client
	http   *http.Client
	subs   *subtitle.Store
}

func newApp() *app {
	httpClient := httputil.NewClient()
	a := &app{
		client: catalog.New(catalog.OptionsFromConfig(cfg)),
		http:   httpClient,
		subs:   subtitle.NewStore(httpClient),
	}
	a.cleanup()
	return a
}

// cleanup drops subtitle files left by the previous invocation.
func (a *app) cleanup() {
	if err := a.subs.Cleanup(); err != nil {
		logrus.WithError(err).Warn("subtitle cleanup failed")
	}
}

// session returns the transport session carrying token. Without a token a
// platform token is fetched once and threaded through every continuation.
func (a *app) session(ctx context.Context, token string) (catalog.Session, error) {
	sess := catalog.Session{HTTP: a.http}
	if token != "" {
		return sess.WithToken(token), nil
	}
	tok, err := a.client.PlatformToken(ctx, sess)
	if err != nil {
		return catalog.Session{}, fmt.Errorf("getting platform token: %w", err)
	}
	logrus.WithField("platform", cfg.Platform).Debug("platform token acquired")
	return sess.WithToken(tok), nil
}

func (a *app) resolver(n playback.Notifier) *playback.Resolver {
	return playback.New(a.client, a.subs, n, playback.Options{
		VODHost:           cfg.Endpoints.VOD,
		VODNDHost:         cfg.Endpoints.VODND,
		SubtitleLanguages: cfg.SubtitleLanguages,
		NoSubtitles:       flagNoSubs,
	})
}

// router builds the router for one invocation with the host's capabilities.
func (a *app) router(p router.Prompter, n router.Notifier, base string) *router.Router {
	return router.New(a.client, a.resolver(n), p, n, router.Options{Base: base})
}

// openHistory opens the history store, or returns nil when history is off.
func openHistory() (*history.Store, error) {
	if !cfg.History {
		return nil, nil
	}
	path, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}
	return history.Open(path)
}

// playItem plays item with the configured player and records the final
// position. With resume set, playback starts at the recorded position.
func playItem(ctx context.Context, item *media.PlayableItem, resume bool) error {
	p := player.New(cfg.Player)
	if !p.Available() {
		return fmt.Errorf("player %q not found in PATH", cfg.Player)
	}

	store, err := openHistory()
	if err != nil {
		logrus.WithError(err).Warn("history unavailable")
	}
	if store != nil {
		defer store.Close()
	}

	var startPos float64
	if resume && store != nil {
		if e, ok, err := store.Get(ctx, item.ContentID); err == nil && ok {
			startPos = e.Position
			logrus.WithField("position", startPos).Debug("resuming")
		}
	}

	lastPos, err := p.Play(item, startPos)
	if err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}

	if store != nil {
		entry := media.HistoryEntry{
			ContentID: item.ContentID,
			Title:     item.Title,
			Position:  lastPos,
			PlayedAt:  time.Now(),
		}
		if err := store.Record(ctx, entry); err != nil {
			logrus.WithError(err).Warn("saving history failed")
		}
	}
	return nil
}

// downloadItem records item into dir, or the configured download dir when
// dir is empty.
func downloadItem(ctx context.Context, item *media.PlayableItem, dir string) (string, error) {
	if dir == "" {
		var err error
		dir, err = cfg.ExpandDownloadDir()
		if err != nil {
			return "", fmt.Errorf("resolving download dir: %w", err)
		}
	}
	return download.Download(ctx, item, dir)
}
