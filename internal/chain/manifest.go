package chain

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/roach88/scoremark/internal/align"
	"github.com/roach88/scoremark/internal/scorelog"
)

// Format identifies a manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// Manifest describes one transplant through an explicit chain.
type Manifest struct {
	// Pattern is the regular expression identifying the behavior to copy.
	Pattern string `yaml:"pattern" json:"pattern"`

	// Label names the inserted mark.
	Label string `yaml:"label" json:"label"`

	// Dest is the log the mark is inserted into.
	Dest string `yaml:"dest" json:"dest"`

	// Strict turns a pattern that matches nothing into an error.
	Strict bool `yaml:"strict,omitempty" json:"strict,omitempty"`

	// Logs lists the chain in recording order.
	Logs []LogEntry `yaml:"logs" json:"logs"`

	// dir is the directory relative paths are resolved against.
	dir string
}

// LogEntry is one log of the chain.
type LogEntry struct {
	Path string `yaml:"path" json:"path"`

	// Boundary is where the next log begins. When nil, the log's
	// "video end" mark is used.
	Boundary *BoundarySpec `yaml:"boundary,omitempty" json:"boundary,omitempty"`
}

// BoundarySpec is a boundary as written in a manifest.
type BoundarySpec struct {
	Time  string `yaml:"time" json:"time"`
	Frame int    `yaml:"frame" json:"frame"`
}

// ValidationError reports an invalid manifest field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// manifestSchema mirrors Manifest for CUE inputs. Definitions are closed,
// so unknown fields are rejected the same way yaml KnownFields does.
const manifestSchema = `
#Boundary: {
	time:  string
	frame: int
}
#Log: {
	path:      string & != ""
	boundary?: #Boundary
}
#Manifest: {
	pattern: string
	label:   string
	dest:    string & != ""
	strict?: bool
	logs: [...#Log]
}
`

// Load reads a manifest, choosing the format from the file extension.
func Load(path string) (*Manifest, error) {
	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".cue":
		format = FormatCUE
	default:
		return nil, fmt.Errorf("unsupported manifest extension %q: want .yaml, .yml or .cue", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := Parse(data, format, path)
	if err != nil {
		return nil, err
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// Parse decodes and validates a manifest. name is used in error positions.
func Parse(data []byte, format Format, name string) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatCUE:
		if err := decodeCUE(data, name, &m); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown manifest format %q", format)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func decodeCUE(data []byte, name string, m *Manifest) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(manifestSchema, cue.Filename("manifest_schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile manifest schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(name))
	if err := value.Err(); err != nil {
		return fmt.Errorf("failed to parse CUE: %s", cueerrors.Details(err, nil))
	}

	unified := schema.LookupPath(cue.ParsePath("#Manifest")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid CUE manifest: %s", cueerrors.Details(err, nil))
	}

	if err := unified.Decode(m); err != nil {
		return fmt.Errorf("failed to decode CUE manifest: %w", err)
	}
	return nil
}

// Validate checks required fields and boundary notation.
func (m *Manifest) Validate() error {
	if m.Pattern == "" {
		return &ValidationError{Field: "pattern", Message: "is required"}
	}
	if m.Label == "" {
		return &ValidationError{Field: "label", Message: "is required"}
	}
	if m.Dest == "" {
		return &ValidationError{Field: "dest", Message: "is required"}
	}
	if len(m.Logs) == 0 {
		return &ValidationError{Field: "logs", Message: "at least one log is required"}
	}
	for i, entry := range m.Logs {
		field := fmt.Sprintf("logs[%d]", i)
		if entry.Path == "" {
			return &ValidationError{Field: field + ".path", Message: "is required"}
		}
		if entry.Boundary != nil {
			if _, err := scorelog.ParseTime(entry.Boundary.Time); err != nil {
				return &ValidationError{Field: field + ".boundary.time", Message: err.Error()}
			}
		}
	}
	return nil
}

// Resolved is a manifest with its logs loaded.
type Resolved struct {
	Chain    []align.Boundary
	Dest     *scorelog.RawLog
	DestPath string
	Sources  []string
}

// Resolve loads every log named by the manifest and builds the chain.
// Logs are read concurrently.
func (m *Manifest) Resolve(ctx context.Context) (*Resolved, error) {
	sources := make([]string, len(m.Logs))
	for i, entry := range m.Logs {
		sources[i] = m.path(entry.Path)
	}
	destPath := m.path(m.Dest)

	var dest *scorelog.RawLog
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := scorelog.OpenRawLog(destPath)
		if err != nil {
			return fmt.Errorf("dest: %w", err)
		}
		dest = raw
		return nil
	})

	var logs []*scorelog.Log
	g.Go(func() error {
		var err error
		logs, err = ReadLogs(gctx, sources)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	chain := make([]align.Boundary, len(logs))
	for i, entry := range m.Logs {
		b := align.Boundary{Log: logs[i]}
		if entry.Boundary != nil {
			t, err := scorelog.ParseTime(entry.Boundary.Time)
			if err != nil {
				return nil, fmt.Errorf("logs[%d]: %w", i, err)
			}
			b.Time, b.Frame = t, entry.Boundary.Frame
		} else {
			end, err := align.GetEndingMark(logs[i].Marks)
			if err != nil {
				return nil, fmt.Errorf("logs[%d] %s: %w", i, sources[i], err)
			}
			b.Time, b.Frame = end.Time, end.Frame
		}
		chain[i] = b
	}

	return &Resolved{Chain: chain, Dest: dest, DestPath: destPath, Sources: sources}, nil
}

func (m *Manifest) path(p string) string {
	if filepath.IsAbs(p) || m.dir == "" {
		return p
	}
	return filepath.Join(m.dir, p)
}

// ReadLogs parses the log files at paths concurrently, preserving order.
// The first failure cancels the remaining reads.
func ReadLogs(ctx context.Context, paths []string) ([]*scorelog.Log, error) {
	logs := make([]*scorelog.Log, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			log, err := scorelog.OpenLog(p)
			if err != nil {
				return fmt.Errorf("logs[%d]: %w", i, err)
			}
			logs[i] = log
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return logs, nil
}
