package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/scoremark/internal/scorelog"
)

// Scenario defines an alignment conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Disjoint builds the chain from each log's "video end" mark instead of
	// explicit boundaries.
	Disjoint bool `yaml:"disjoint,omitempty"`

	// Strict fails the transplant when nothing matches.
	Strict bool `yaml:"strict,omitempty"`

	Pattern string `yaml:"pattern"`
	Label   string `yaml:"label"`

	// Logs is the chain, in recording order.
	Logs []LogSpec `yaml:"logs"`

	// Dest is the destination log. Its behaviors are irrelevant to the
	// transplant; only its marks are.
	Dest LogSpec `yaml:"dest"`

	Expect ExpectClause `yaml:"expect"`
}

// LogSpec is an inline log.
type LogSpec struct {
	// Boundary is required for every log of a non-disjoint scenario.
	Boundary  *BoundarySpec  `yaml:"boundary,omitempty"`
	Behaviors []BehaviorSpec `yaml:"behaviors,omitempty"`
	Marks     []MarkSpec     `yaml:"marks,omitempty"`
}

// BoundarySpec is the point where a log meets the next one.
type BoundarySpec struct {
	Frame int    `yaml:"frame"`
	Time  string `yaml:"time"`
}

// BehaviorSpec is one FULL LOG behavior.
type BehaviorSpec struct {
	Frame       int    `yaml:"frame"`
	Time        string `yaml:"time"`
	Description string `yaml:"description"`
}

// MarkSpec is one mark.
type MarkSpec struct {
	Frame int    `yaml:"frame"`
	Time  string `yaml:"time"`
	Name  string `yaml:"name"`
}

// ExpectClause specifies the expected transplant.
type ExpectClause struct {
	// Found is the expected match outcome. Nil skips the check.
	Found *bool `yaml:"found,omitempty"`

	// Frame and Time are the expected mark offsets. Nil/empty skips.
	Frame *int   `yaml:"frame,omitempty"`
	Time  string `yaml:"time,omitempty"`

	// Error is the expected lookup error code (e.g. "BEHAVIOR_NOT_FOUND").
	// When set, the transplant must fail with that code.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "behaviour:" vs "behaviors:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Pattern == "" {
		return fmt.Errorf("pattern is required")
	}
	if s.Label == "" {
		return fmt.Errorf("label is required")
	}
	if len(s.Logs) == 0 {
		return fmt.Errorf("logs list is required and must be non-empty")
	}

	for i, log := range s.Logs {
		if !s.Disjoint && log.Boundary == nil {
			return fmt.Errorf("logs[%d]: boundary is required unless disjoint is set", i)
		}
		if err := validateLog(fmt.Sprintf("logs[%d]", i), log); err != nil {
			return err
		}
	}
	if err := validateLog("dest", s.Dest); err != nil {
		return err
	}

	if s.Expect.Time != "" {
		if _, err := scorelog.ParseTime(s.Expect.Time); err != nil {
			return fmt.Errorf("expect.time: %w", err)
		}
	}
	if s.Expect.Error != "" && s.Expect.Found != nil && *s.Expect.Found {
		return fmt.Errorf("expect: found and error are mutually exclusive")
	}

	return nil
}

func validateLog(field string, log LogSpec) error {
	if log.Boundary != nil {
		if _, err := scorelog.ParseTime(log.Boundary.Time); err != nil {
			return fmt.Errorf("%s.boundary.time: %w", field, err)
		}
	}
	for j, b := range log.Behaviors {
		if b.Description == "" {
			return fmt.Errorf("%s.behaviors[%d]: description is required", field, j)
		}
		if _, err := scorelog.ParseTime(b.Time); err != nil {
			return fmt.Errorf("%s.behaviors[%d].time: %w", field, j, err)
		}
	}
	for j, m := range log.Marks {
		if m.Name == "" {
			return fmt.Errorf("%s.marks[%d]: name is required", field, j)
		}
		if _, err := scorelog.ParseTime(m.Time); err != nil {
			return fmt.Errorf("%s.marks[%d].time: %w", field, j, err)
		}
	}
	return nil
}
