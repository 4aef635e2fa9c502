package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/scoremark/internal/chain"
)

// AlignOptions holds flags for the align command.
type AlignOptions struct {
	TransplantOptions
}

// NewAlignCommand creates the align command.
func NewAlignCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AlignOptions{TransplantOptions: TransplantOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "align MANIFEST",
		Short: "Copy a behavior as a mark using a chain manifest",
		Long: `Copy a behavior into another log as a mark, using a manifest (YAML or CUE)
that lists the logs of the chain and, optionally, each log's boundary with
the next. Logs without an explicit boundary use their "video end" mark.

Paths in the manifest are relative to the manifest file.

Examples:
  scoremark align chain.yaml
  scoremark align chain.cue --in-place --db marks.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlign(opts, args[0], cmd)
		},
	}

	addTransplantFlags(cmd, &opts.TransplantOptions)

	return cmd
}

func runAlign(opts *AlignOptions, manifestPath string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if err := opts.validate(); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, err.Error(), nil)
	}

	manifest, err := chain.Load(manifestPath)
	if err != nil {
		return failLoad(formatter, "manifest", err)
	}
	formatter.Logger().Debug("manifest loaded", "path", manifestPath, "logs", len(manifest.Logs))

	resolved, err := manifest.Resolve(ctx)
	if err != nil {
		return failLoad(formatter, "chain", err)
	}

	return runTransplant(ctx, &opts.TransplantOptions, formatter, transplantRequest{
		chain:    resolved.Chain,
		sources:  resolved.Sources,
		dest:     resolved.Dest,
		destPath: resolved.DestPath,
		pattern:  manifest.Pattern,
		label:    manifest.Label,
		strict:   opts.Strict || manifest.Strict,
	})
}
