// Package screening runs candidate tables through an ordered list of SMARTS
// stages and reports what survived.
package screening

import (
	"fmt"
	"strings"

	"github.com/turtacn/ScaffoldSieve/internal/config"
	"github.com/turtacn/ScaffoldSieve/internal/domain/molecule"
	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

// Mode selects the polarity of a stage.
type Mode string

const (
	// ModeRequire keeps records that contain the pattern.
	ModeRequire Mode = config.ModeRequire
	// ModeExclude keeps records that do not contain the pattern.
	ModeExclude Mode = config.ModeExclude
)

func (m Mode) String() string { return string(m) }

// ParseMode accepts "require" or "exclude", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeRequire:
		return ModeRequire, nil
	case ModeExclude:
		return ModeExclude, nil
	}
	return "", errors.NewValidationError("mode", fmt.Sprintf("unknown stage mode %q", s))
}

// Stage is one compiled screening step.  It is immutable and safe for
// concurrent use.
type Stage struct {
	name    string
	mode    Mode
	reason  string
	pattern *molecule.Pattern
}

// NewStage compiles smarts.  An empty reason defaults to the stage name.
func NewStage(name string, mode Mode, smarts, reason string) (*Stage, error) {
	if name == "" {
		return nil, errors.NewValidationError("name", "stage name is required")
	}
	if mode != ModeRequire && mode != ModeExclude {
		return nil, errors.NewValidationError("mode", fmt.Sprintf("unknown stage mode %q", mode))
	}
	pattern, err := molecule.CompilePattern(smarts)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePatternInvalid, "stage pattern does not compile").
			WithDetail("stage=" + name)
	}
	if reason == "" {
		reason = name
	}
	return &Stage{name: name, mode: mode, reason: reason, pattern: pattern}, nil
}

// StagesFromConfig compiles the configured stage list in order.
func StagesFromConfig(cfgs []config.StageConfig) ([]*Stage, error) {
	stages := make([]*Stage, 0, len(cfgs))
	for _, c := range cfgs {
		mode, err := ParseMode(c.Mode)
		if err != nil {
			return nil, err
		}
		s, err := NewStage(c.Name, mode, c.SMARTS, c.Reason)
		if err != nil {
			return nil, err
		}
		stages = append(stages, s)
	}
	return stages, nil
}

// DefaultStages compiles the built-in scaffold and carboxylate stages.
func DefaultStages() []*Stage {
	stages, err := StagesFromConfig(config.DefaultStages())
	if err != nil {
		panic(err)
	}
	return stages
}

func (s *Stage) Name() string               { return s.name }
func (s *Stage) Mode() Mode                 { return s.mode }
func (s *Stage) Reason() string             { return s.reason }
func (s *Stage) SMARTS() string             { return s.pattern.String() }
func (s *Stage) Pattern() *molecule.Pattern { return s.pattern }

// Keep decides whether a record with structure st survives this stage.
// Unparseable structures never survive, whatever the mode.
func (s *Stage) Keep(st molecule.Structure) bool {
	switch v := st.(type) {
	case *molecule.Parsed:
		hit := s.pattern.HasMatch(v.Mol)
		if s.mode == ModeExclude {
			return !hit
		}
		return hit
	case *molecule.Unparseable:
		return false
	default:
		return false
	}
}

// StageResult summarises one stage over one table.
type StageResult struct {
	Name        string `json:"name" yaml:"name"`
	Mode        Mode   `json:"mode" yaml:"mode"`
	Reason      string `json:"reason" yaml:"reason"`
	Pattern     string `json:"pattern" yaml:"pattern"`
	Input       int    `json:"input" yaml:"input"`
	Dropped     int    `json:"dropped" yaml:"dropped"`
	Unparseable int    `json:"unparseable" yaml:"unparseable"`
	Kept        int    `json:"kept" yaml:"kept"`
}

// DropLine renders the human-readable drop count.
func (r StageResult) DropLine() string {
	return fmt.Sprintf("dropping %d molecules due to %s", r.Dropped, r.Reason)
}

//Personal.AI order the ending
