package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"zee5/internal/history"
	"zee5/internal/ui"
)

var (
	flagClear bool
	flagYes   bool
	flagPick  bool
	flagLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, replay or clear play history",
	Args:  cobra.NoArgs,
	RunE:  historyRun,
}

func init() {
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Remove every history entry")
	historyCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Do not ask for confirmation")
	historyCmd.Flags().BoolVarP(&flagPick, "pick", "p", false, "Pick an entry with fzf and resume it")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 50, "Maximum entries to list")
}

func historyRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := openHistory()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	if store == nil {
		fmt.Println("History is disabled in the config.")
		return nil
	}
	defer store.Close()

	if flagClear {
		if !flagYes && isTerminal() {
			ok, err := ui.Confirm("Clear history?")
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
		if err := store.Clear(ctx); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	}

	entries, err := store.Recent(ctx, flagLimit)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No history entries found.")
		return nil
	}

	items := history.FormatForDisplay(entries, time.Now())
	if !flagPick {
		for i, item := range items {
			fmt.Printf("%s\t%s\n", entries[i].ContentID, item)
		}
		return nil
	}

	idx, err := ui.Select("History", items)
	if errors.Is(err, ui.ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	flagContinue = true
	return playID(ctx, entries[idx].ContentID)
}
