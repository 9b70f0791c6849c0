package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"zee5/internal/media"
	"zee5/internal/navurl"
	"zee5/internal/router"
	"zee5/internal/ui"
)

var flagQuery string

var browseCmd = &cobra.Command{
	Use:   "browse <base> <handle> <paramstring>",
	Short: "Produce one listing for a host callback",
	Long: `browse is the host entry point. It decodes the paramstring (as produced in
the url of a previous row), runs one listing or playback resolution and prints
one row per line: kind, title and continuation URL, tab separated.`,
	Example: `  zee5 browse plugin://plugin.video.zee5/ 1 ''
  zee5 browse plugin://plugin.video.zee5/ 1 '?action=search&content_id=1&token=...' --query 'kabir singh'`,
	Args: cobra.ExactArgs(3),
	RunE: browseRun,
}

func init() {
	browseCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "Answer the search prompt without reading stdin")
}

func browseRun(cmd *cobra.Command, args []string) error {
	base, rawHandle, params := args[0], args[1], args[2]

	handle, err := strconv.Atoi(rawHandle)
	if err != nil {
		return fmt.Errorf("invalid handle %q: %w", rawHandle, err)
	}

	d, err := navurl.Decode(params)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a := newApp()
	sess, err := a.session(ctx, d.Token)
	if err != nil {
		return err
	}

	console := ui.NewConsole(os.Stdin, os.Stderr)
	var prompter router.Prompter = console
	if cmd.Flags().Changed("query") {
		prompter = ui.Query(flagQuery)
	}

	logrus.WithField("handle", handle).Debug("browse invocation")
	listing, err := a.router(prompter, console, base).Route(ctx, sess, d)
	if err != nil {
		return err
	}

	if flagJSON {
		return writeListingJSON(cmd.OutOrStdout(), handle, listing)
	}
	return writeListing(cmd.OutOrStdout(), listing)
}

type listingJSON struct {
	Handle int `json:"handle"`
	media.Listing
	Sort string `json:"sort"`
}

func writeListingJSON(w io.Writer, handle int, listing media.Listing) error {
	if listing.Nodes == nil {
		listing.Nodes = []media.MenuNode{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(listingJSON{Handle: handle, Listing: listing, Sort: listing.Sort.String()})
}

// writeListing prints a header line, then "dir" or "play" rows. A resolved
// playback prints the stream and one "sub" row per subtitle file.
func writeListing(w io.Writer, listing media.Listing) error {
	if listing.Terminal {
		if listing.Playable == nil {
			return nil
		}
		if _, err := fmt.Fprintf(w, "stream\t%s\t%s\n", listing.Playable.Title, listing.Playable.StreamURL); err != nil {
			return err
		}
		for _, sub := range listing.Playable.SubtitleFiles {
			if _, err := fmt.Fprintf(w, "sub\t%s\n", sub); err != nil {
				return err
			}
		}
		return nil
	}

	if _, err := fmt.Fprintf(w, "# %s (sort: %s)\n", listing.Category, listing.Sort); err != nil {
		return err
	}
	for _, n := range listing.Nodes {
		kind := "play"
		if n.IsFolder() {
			kind = "dir"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", kind, n.Title, n.URL); err != nil {
			return err
		}
	}
	return nil
}
