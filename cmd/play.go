package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zee5/internal/media"
	"zee5/internal/navurl"
	"zee5/internal/ui"
)

var (
	flagDownload bool
	flagOutput   string
	flagContinue bool
)

var playCmd = &cobra.Command{
	Use:   "play <content-id>",
	Short: "Resolve and play a content id",
	Example: `  zee5 play 0-0-16460
  zee5 play 0-0-16460 --download -o ~/Videos
  zee5 play 0-0-16460 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return playID(cmd.Context(), args[0])
	},
}

func init() {
	playCmd.Flags().BoolVarP(&flagDownload, "download", "d", false, "Record with ffmpeg instead of playing")
	playCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Download directory (default: download_dir from config)")
	playCmd.Flags().BoolVarP(&flagContinue, "continue", "c", false, "Resume from the position in history")
}

// playID resolves id through the router's play action and then plays,
// downloads or prints the result.
func playID(ctx context.Context, id string) error {
	a := newApp()
	sess, err := a.session(ctx, "")
	if err != nil {
		return err
	}

	console := ui.NewConsole(os.Stdin, os.Stderr)
	d := navurl.Descriptor{Action: media.ActionPlay, ContentID: id}
	listing, err := a.router(console, console, pluginBase).Route(ctx, sess, d)
	if err != nil {
		return err
	}
	if listing.Playable == nil {
		// The user has been told why.
		return nil
	}
	return handlePlayable(ctx, listing.Playable)
}

func handlePlayable(ctx context.Context, item *media.PlayableItem) error {
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(item)
	}

	if flagDownload {
		outputPath, err := downloadItem(ctx, item, flagOutput)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Downloaded: %s\n", outputPath)
		return nil
	}

	return playItem(ctx, item, flagContinue)
}
