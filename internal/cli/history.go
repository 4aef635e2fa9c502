package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/scoremark/internal/scorelog"
	"github.com/roach88/scoremark/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Dest     string
}

// transplantJSON is the JSON form of a ledger record.
type transplantJSON struct {
	ID        string   `json:"id"`
	Seq       int64    `json:"seq"`
	Dest      string   `json:"dest"`
	Label     string   `json:"label"`
	Pattern   string   `json:"pattern"`
	Frame     int      `json:"frame"`
	Time      string   `json:"time"`
	Found     bool     `json:"found"`
	AnchorLog int      `json:"anchor_log"`
	Sources   []string `json:"sources"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List transplants recorded in a ledger",
		Long: `List the transplants recorded by copy and align with --db, in the order
they were applied.

Examples:
  scoremark history --db marks.db
  scoremark history --db marks.db --dest 1_4.txt --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite ledger (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Dest, "dest", "", "only list transplants into this destination log")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	// Open would create an empty ledger.
	if _, err := os.Stat(opts.Database); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, "ledger not found", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, "failed to open ledger", err)
	}
	defer st.Close()

	transplants, err := st.ListTransplants(cmd.Context(), opts.Dest)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStoreFailed, "failed to read ledger", err)
	}

	if formatter.Format == "json" {
		out := make([]transplantJSON, len(transplants))
		for i, t := range transplants {
			out[i] = transplantJSON{
				ID:        t.ID,
				Seq:       t.Seq,
				Dest:      t.Dest,
				Label:     t.Label,
				Pattern:   t.Pattern,
				Frame:     t.Frame,
				Time:      scorelog.FormatTime(t.Time),
				Found:     t.Found,
				AnchorLog: t.AnchorLog,
				Sources:   t.Sources,
			}
		}
		return formatter.Success(out)
	}

	if len(transplants) == 0 {
		fmt.Fprintln(formatter.Writer, "No transplants recorded")
		return nil
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tLABEL\tFRAME\tTIME\tFOUND\tDEST")
	for _, t := range transplants {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%t\t%s\n", t.Seq, t.Label, t.Frame, scorelog.FormatTime(t.Time), t.Found, t.Dest)
	}
	return tw.Flush()
}
