package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/scoremark/internal/align"
	"github.com/roach88/scoremark/internal/chain"
	"github.com/roach88/scoremark/internal/scorelog"
)

// CopyOptions holds flags for the copy command.
type CopyOptions struct {
	TransplantOptions
	Dest    string
	Pattern string
	Label   string
}

// NewCopyCommand creates the copy command.
func NewCopyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CopyOptions{TransplantOptions: TransplantOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "copy LOG...",
		Short: "Copy a behavior into the following video's log as a mark",
		Long: `Copy a behavior into another log as a mark, adjusting its time and frame.

The LOG arguments must be consecutive, non-overlapping recordings in order,
and the destination must begin immediately after the last one. Each log's
"video end" mark is used as the boundary to the next. The first behavior
whose description starts with a match for --pattern is copied.

Examples:
  scoremark copy --dest 1_4.txt --pattern "Lights On" 1_1.txt 1_2.txt 1_3.txt
  scoremark copy --dest 1_4.txt --pattern "Lights On" --in-place --db marks.db 1_1.txt 1_2.txt 1_3.txt`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dest, "dest", "", "destination log (required)")
	_ = cmd.MarkFlagRequired("dest")
	cmd.Flags().StringVar(&opts.Pattern, "pattern", "", "regular expression matched against the start of behavior descriptions (required)")
	_ = cmd.MarkFlagRequired("pattern")
	cmd.Flags().StringVar(&opts.Label, "label", "", "name of the inserted mark (default: the pattern)")
	addTransplantFlags(cmd, &opts.TransplantOptions)

	return cmd
}

func runCopy(opts *CopyOptions, args []string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if err := opts.validate(); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
	}
	if opts.Pattern == "" {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "--pattern must not be empty", nil)
	}
	label := opts.Label
	if label == "" {
		label = opts.Pattern
	}

	formatter.Logger().Debug("reading logs", "count", len(args))
	logs, err := chain.ReadLogs(ctx, args)
	if err != nil {
		return failLoad(formatter, "log", err)
	}

	dest, err := scorelog.OpenRawLog(opts.Dest)
	if err != nil {
		return failLoad(formatter, "destination log", err)
	}

	for i, log := range logs {
		if _, err := align.GetEndingMark(log.Marks); err != nil {
			return failLookup(formatter, args[i], err)
		}
	}
	boundaries, err := align.DisjointChain(logs)
	if err != nil {
		return failLookup(formatter, "log chain", err)
	}

	return runTransplant(ctx, &opts.TransplantOptions, formatter, transplantRequest{
		chain:    boundaries,
		sources:  args,
		dest:     dest,
		destPath: opts.Dest,
		pattern:  opts.Pattern,
		label:    label,
		strict:   opts.Strict,
	})
}
