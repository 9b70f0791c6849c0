package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"zee5/internal/media"
	"zee5/internal/navurl"
	"zee5/internal/ui"
)

// browserRun starts the interactive browser at the root listing.
func browserRun(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		return errors.New("the interactive browser needs a terminal; use 'zee5 browse' for scripted access")
	}

	ctx := cmd.Context()
	a := newApp()
	sess, err := a.session(ctx, "")
	if err != nil {
		return err
	}

	navigate := func(ctx context.Context, d navurl.Descriptor, query string) (media.Listing, []ui.Notice, error) {
		a.cleanup()
		s := sess
		if d.Token != "" {
			s = s.WithToken(d.Token)
		}
		rec := &ui.Recorder{}
		listing, err := a.router(ui.Query(query), rec, pluginBase).Route(ctx, s, d)
		return listing, rec.Notices, err
	}

	return ui.RunBrowser(ctx, ui.BrowserOptions{
		Navigate: navigate,
		Play: func(item *media.PlayableItem) error {
			return playItem(ctx, item, false)
		},
		Root: navurl.Descriptor{Token: sess.Token},
	})
}
