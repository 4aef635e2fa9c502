package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/scoremark/internal/align"
	"github.com/roach88/scoremark/internal/scorelog"
)

// MarksOptions holds flags for the marks command.
type MarksOptions struct {
	*RootOptions
	Ending bool
}

// BehaviorsOptions holds flags for the behaviors command.
type BehaviorsOptions struct {
	*RootOptions
	Ending []string
}

// markJSON is the JSON form of a mark.
type markJSON struct {
	Frame int    `json:"frame"`
	Time  string `json:"time"`
	Name  string `json:"name"`
}

// behaviorJSON is the JSON form of a FULL LOG behavior.
type behaviorJSON struct {
	Frame       int    `json:"frame"`
	Time        string `json:"time"`
	Description string `json:"description"`
	Subject     string `json:"subject,omitempty"`
}

func toMarkJSON(m scorelog.Mark) markJSON {
	return markJSON{Frame: m.Frame, Time: scorelog.FormatTime(m.Time), Name: m.Name}
}

func toBehaviorJSON(b scorelog.BehaviorFull) behaviorJSON {
	return behaviorJSON{
		Frame:       b.Frame,
		Time:        scorelog.FormatTime(b.Time),
		Description: b.Description,
		Subject:     b.Subject,
	}
}

// NewMarksCommand creates the marks command.
func NewMarksCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MarksOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "marks LOG",
		Short: "List the marks of a log",
		Long: `List the marks of a log, sorted by frame.

With --ending, print only the "video end" mark; a log without one exits
with code 1.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMarks(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Ending, "ending", false, `print only the "video end" mark`)

	return cmd
}

func runMarks(opts *MarksOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	log, err := scorelog.OpenLog(path)
	if err != nil {
		return failLoad(formatter, "log", err)
	}
	log.SortLists()

	if opts.Ending {
		end, err := align.GetEndingMark(log.Marks)
		if err != nil {
			return failLookup(formatter, path, err)
		}
		if formatter.Format == "json" {
			return formatter.Success(toMarkJSON(end))
		}
		fmt.Fprintln(formatter.Writer, end.ToLineTab())
		return nil
	}

	if formatter.Format == "json" {
		marks := make([]markJSON, len(log.Marks))
		for i, m := range log.Marks {
			marks[i] = toMarkJSON(m)
		}
		return formatter.Success(marks)
	}

	for _, m := range log.Marks {
		fmt.Fprintln(formatter.Writer, m.ToLineTab())
	}
	formatter.Logger().Debug("marks listed", "log", path, "count", len(log.Marks))
	return nil
}

// NewBehaviorsCommand creates the behaviors command.
func NewBehaviorsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BehaviorsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "behaviors LOG",
		Short: "List the FULL LOG behaviors of a log",
		Long: `List the behaviors in a log's FULL LOG section, sorted by frame.

With --ending (repeatable), print only the first behavior whose description
exactly equals one of the given descriptions; if none does, exit with code 1.

Examples:
  scoremark behaviors 1_1.txt
  scoremark behaviors 1_1.txt --ending "Lights Off" --ending "Done"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBehaviors(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Ending, "ending", nil, "description that ends the scored period (repeatable)")

	return cmd
}

func runBehaviors(opts *BehaviorsOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	log, err := scorelog.OpenLog(path)
	if err != nil {
		return failLoad(formatter, "log", err)
	}
	log.SortLists()

	if len(opts.Ending) > 0 {
		b, err := align.GetEndingBehav(log.Full, opts.Ending)
		if err != nil {
			return failLookup(formatter, path, err)
		}
		if formatter.Format == "json" {
			return formatter.Success(toBehaviorJSON(b))
		}
		fmt.Fprintln(formatter.Writer, b.ToLine())
		return nil
	}

	if formatter.Format == "json" {
		behavs := make([]behaviorJSON, len(log.Full))
		for i, b := range log.Full {
			behavs[i] = toBehaviorJSON(b)
		}
		return formatter.Success(behavs)
	}

	for _, b := range log.Full {
		fmt.Fprintln(formatter.Writer, b.ToLine())
	}
	formatter.Logger().Debug("behaviors listed", "log", path, "count", len(log.Full))
	return nil
}
