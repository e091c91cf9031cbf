package main

import (
	"fmt"
	"time"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/amonks/routine/history"
	"github.com/amonks/routine/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished tasks grouped by day",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var (
	historyDate   string
	historyCounts bool
	historyJSON   bool
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyDate, "date", "", "Only show this day (YYYY-MM-DD)")
	historyCmd.Flags().BoolVar(&historyCounts, "counts", false, "Only show the number of tasks per day")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyDate != "" {
		if _, err := time.Parse(history.DateLayout, historyDate); err != nil {
			return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", historyDate)
		}
	}

	return withApp(func(a *app) error {
		h := history.Build(a.store.List(), a.now().Location())

		groups := h.Groups()
		if historyDate != "" {
			groups = []history.Day{{Date: historyDate, Tasks: h.On(historyDate)}}
		}

		if historyJSON {
			if historyCounts {
				return encodeJSONToStdout(h.Counts())
			}
			return encodeJSONToStdout(groups)
		}

		if len(groups) == 0 || (historyDate != "" && len(groups[0].Tasks) == 0) {
			fmt.Println("No finished tasks.")
			return nil
		}

		width := ui.TerminalWidth(detailLineWidth)
		for i, day := range groups {
			if historyCounts {
				fmt.Printf("%s  %d\n", day.Date, len(day.Tasks))
				continue
			}
			if i > 0 {
				fmt.Println()
			}
			fmt.Println(ui.Paint(ui.HeadingStyle, day.Date))
			for _, item := range day.Tasks {
				line := fmt.Sprintf("%s  %s", item.CompletedAt.In(a.now().Location()).Format("15:04"), item.Text)
				fmt.Println(indent.String(wordwrap.String(line, width-2), 2))
			}
		}
		return nil
	})
}
