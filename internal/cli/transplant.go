package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/roach88/scoremark/internal/align"
	"github.com/roach88/scoremark/internal/chain"
	"github.com/roach88/scoremark/internal/metrics"
	"github.com/roach88/scoremark/internal/scorelog"
	"github.com/roach88/scoremark/internal/store"
)

// TransplantOptions holds the flags shared by copy and align.
type TransplantOptions struct {
	*RootOptions
	Output      string
	InPlace     bool
	Strict      bool
	Database    string
	MetricsFile string
}

// TransplantResult is the payload reported after a mark is inserted.
type TransplantResult struct {
	ID        string `json:"id,omitempty"` // ledger ID, set when --db is given
	Dest      string `json:"dest"`
	Output    string `json:"output,omitempty"`
	Found     bool   `json:"found"`
	AnchorLog string `json:"anchor_log,omitempty"`
	Anchor    string `json:"anchor,omitempty"`
	Frame     int    `json:"frame"`
	Time      string `json:"time"`
	Label     string `json:"label"`
	Line      string `json:"line"`
	Log       string `json:"log,omitempty"` // full log, when not written to a file
}

type transplantRequest struct {
	chain    []align.Boundary
	sources  []string
	dest     *scorelog.RawLog
	destPath string
	pattern  string
	label    string
	strict   bool
}

func addTransplantFlags(cmd *cobra.Command, opts *TransplantOptions) {
	cmd.Flags().StringVarP(&opts.Output, "out", "o", "", "write the updated log to this file (default: stdout)")
	cmd.Flags().BoolVar(&opts.InPlace, "in-place", false, "overwrite the destination log")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail when the pattern matches no behavior")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the transplant in this SQLite ledger")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
}

func (o *TransplantOptions) validate() error {
	if o.InPlace && o.Output != "" {
		return errors.New("--out and --in-place are mutually exclusive")
	}
	return nil
}

// runTransplant resolves the chain, inserts the mark and reports the result.
func runTransplant(ctx context.Context, opts *TransplantOptions, f *OutputFormatter, req transplantRequest) (err error) {
	logger := f.Logger()

	m := metrics.New()
	if opts.MetricsFile != "" {
		defer func() {
			if werr := m.WriteTextfile(opts.MetricsFile); werr != nil && err == nil {
				err = f.Fail(ExitCommandError, ErrCodeMetrics, "failed to write metrics", werr)
			}
		}()
	}

	alignment, err := align.Resolve(req.chain, req.pattern)
	if err != nil {
		if errors.Is(err, align.ErrInvalidPattern) {
			return f.Fail(ExitCommandError, ErrCodeBadPattern, "invalid pattern", err)
		}
		return f.Fail(ExitCommandError, ErrCodeGeneric, "failed to resolve chain", err)
	}
	m.ObserveTransplant(alignment.Found, len(req.chain))

	if !alignment.Found {
		if req.strict {
			return f.Fail(ExitFailure, ErrCodeBehaviorNotFound,
				fmt.Sprintf("no behavior matching %q in %d log(s)", req.pattern, len(req.chain)), nil)
		}
		logger.Warn("pattern matched no behavior, inserting zero-offset mark", "pattern", req.pattern)
	} else {
		logger.Debug("anchor found",
			"log", req.sources[alignment.LogIndex],
			"frame", alignment.Anchor.Frame,
			"time", scorelog.FormatTime(alignment.Anchor.Time),
			"description", alignment.Anchor.Description,
		)
	}

	mark := alignment.Mark(req.label)
	updated := align.AppendMark(req.dest, mark)
	logger.Debug("mark computed", "frame", mark.Frame, "time", scorelog.FormatTime(mark.Time), "label", mark.Name)

	result := TransplantResult{
		Dest:  req.destPath,
		Found: alignment.Found,
		Frame: mark.Frame,
		Time:  scorelog.FormatTime(mark.Time),
		Label: mark.Name,
		Line:  updated.Marks[len(updated.Marks)-1],
	}
	if alignment.Found {
		result.AnchorLog = req.sources[alignment.LogIndex]
		result.Anchor = alignment.Anchor.Description
	}

	// The ledger is opened and its sequence reserved before the log is
	// written, so a ledger failure leaves the destination untouched.
	var ledger *store.Store
	var seq int64
	if opts.Database != "" {
		ledger, err = store.Open(opts.Database)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStoreFailed, "failed to open ledger", err)
		}
		defer ledger.Close()

		seq, err = ledger.NextSeq(ctx)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStoreFailed, "failed to read ledger", err)
		}
	}

	target := opts.Output
	if opts.InPlace {
		target = req.destPath
	}
	if target != "" {
		if err := scorelog.WriteFile(target, updated); err != nil {
			return f.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to write log", err)
		}
		result.Output = target
		logger.Debug("log written", "path", target)
	}

	if ledger != nil {
		t := newTransplant(req, alignment, mark, seq)
		if err := ledger.WriteTransplant(ctx, t); err != nil {
			return f.Fail(ExitCommandError, ErrCodeStoreFailed, "failed to record transplant", err)
		}
		result.ID = t.ID
		logger.Debug("transplant recorded", "id", t.ID, "seq", seq, "db", opts.Database)
	}

	if f.Format == "json" {
		if target == "" {
			result.Log = updated.String()
		}
		return f.Success(result)
	}

	if target == "" {
		if _, err := updated.WriteTo(f.Writer); err != nil {
			return f.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to write log", err)
		}
		return nil
	}

	fmt.Fprintf(f.Writer, "Inserted %q at frame %d, time %s into %s\n", mark.Name, mark.Frame, result.Time, target)
	return nil
}

// newTransplant builds the ledger record for a transplant at seq.
func newTransplant(req transplantRequest, a align.Alignment, mark scorelog.Mark, seq int64) store.Transplant {
	return store.Transplant{
		ID:        store.NewTransplantID(),
		Seq:       seq,
		Dest:      req.destPath,
		Label:     mark.Name,
		Pattern:   req.pattern,
		Frame:     mark.Frame,
		Time:      mark.Time,
		Found:     a.Found,
		AnchorLog: a.LogIndex,
		Sources:   req.sources,
	}
}

// failLoad reports a failure to read or parse a log or manifest.
func failLoad(f *OutputFormatter, what string, err error) error {
	var parseErr *scorelog.ParseError
	var validationErr *chain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return f.Fail(ExitCommandError, ErrCodeInvalidInput, "invalid "+what, err)
	case errors.As(err, &parseErr):
		return f.Fail(ExitCommandError, ErrCodeParseFailed, "failed to parse "+what, err)
	case errors.Is(err, fs.ErrNotExist):
		return f.Fail(ExitCommandError, ErrCodeNotFound, what+" not found", err)
	case isLookupErr(err):
		return failLookup(f, what, err)
	}
	return f.Fail(ExitCommandError, ErrCodeParseFailed, "failed to load "+what, err)
}

// failLookup reports a missing sentinel mark or behavior.
func failLookup(f *OutputFormatter, what string, err error) error {
	switch {
	case align.IsLookupError(err, align.ErrCodeMissingEndingMark):
		return f.Fail(ExitFailure, ErrCodeMissingEndingMark, fmt.Sprintf("%s has no %q mark", what, align.VideoEnd), err)
	case align.IsLookupError(err, align.ErrCodeMissingEndingBehavior):
		return f.Fail(ExitFailure, ErrCodeMissingEndingBehavior, what+" has no ending behavior", err)
	case align.IsLookupError(err, align.ErrCodeBehaviorNotFound):
		return f.Fail(ExitFailure, ErrCodeBehaviorNotFound, what+": no behavior matched", err)
	}
	return f.Fail(ExitFailure, ErrCodeGeneric, what, err)
}

func isLookupErr(err error) bool {
	var le *align.LookupError
	return errors.As(err, &le)
}
