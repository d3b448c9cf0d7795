package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/ScaffoldSieve/internal/application/screening"
	"github.com/turtacn/ScaffoldSieve/internal/domain/molecule"
	"github.com/turtacn/ScaffoldSieve/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

// MatchOptions holds flags of the match command.
type MatchOptions struct {
	SMILES string
	SMARTS []string
}

// NewMatchCmd creates the match command.
func NewMatchCmd() *cobra.Command {
	opts := &MatchOptions{}

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Test one SMILES against the screening patterns",
		Long: "Parse one SMILES and report, for each configured stage or each --smarts\n" +
			"pattern, whether it matches, how many distinct embeddings exist and the first\n" +
			"atom mapping.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.SMILES, "smiles", "", "SMILES to test (required)")
	cmd.Flags().StringArrayVar(&opts.SMARTS, "smarts", nil, "SMARTS pattern to test instead of the configured stages (repeatable)")
	_ = cmd.MarkFlagRequired("smiles")

	return cmd
}

// PatternMatch is the outcome of one pattern against one structure.
type PatternMatch struct {
	Name         string         `json:"name" yaml:"name"`
	Mode         screening.Mode `json:"mode" yaml:"mode"`
	SMARTS       string         `json:"smarts" yaml:"smarts"`
	Matched      bool           `json:"matched" yaml:"matched"`
	Count        int            `json:"count" yaml:"count"`
	FirstMapping []int          `json:"first_mapping,omitempty" yaml:"first_mapping,omitempty"`
	Keep         bool           `json:"keep" yaml:"keep"`
}

// MatchReport describes one parsed SMILES and its pattern outcomes.
type MatchReport struct {
	SMILES   string         `json:"smiles" yaml:"smiles"`
	Parsed   bool           `json:"parsed" yaml:"parsed"`
	Error    string         `json:"error,omitempty" yaml:"error,omitempty"`
	Formula  string         `json:"formula,omitempty" yaml:"formula,omitempty"`
	Atoms    int            `json:"atoms" yaml:"atoms"`
	Bonds    int            `json:"bonds" yaml:"bonds"`
	Rings    int            `json:"rings" yaml:"rings"`
	Patterns []PatternMatch `json:"patterns" yaml:"patterns"`
}

func runMatch(cmd *cobra.Command, opts *MatchOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	if strings.TrimSpace(opts.SMILES) == "" {
		return errors.NewValidationError("smiles", "--smiles must not be empty")
	}

	stages, err := matchStages(cliCtx, opts)
	if err != nil {
		return err
	}

	report := EvaluateMatch(opts.SMILES, stages)
	cliCtx.Logger.Debug("Evaluated SMILES",
		logging.String("smiles", opts.SMILES),
		logging.Bool("parsed", report.Parsed),
		logging.Int("patterns", len(report.Patterns)))
	return PrintResult(cmd, report)
}

// matchStages compiles --smarts patterns as require stages, or falls back to
// the configured stage list.
func matchStages(cliCtx *CLIContext, opts *MatchOptions) ([]*screening.Stage, error) {
	if len(opts.SMARTS) == 0 {
		return screening.StagesFromConfig(cliCtx.Config.Screening.Stages)
	}
	stages := make([]*screening.Stage, 0, len(opts.SMARTS))
	for i, s := range opts.SMARTS {
		stage, err := screening.NewStage(fmt.Sprintf("pattern%d", i+1), screening.ModeRequire, s, "")
		if err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}
	return stages, nil
}

// EvaluateMatch parses smiles and tests it against every stage.
func EvaluateMatch(smiles string, stages []*screening.Stage) *MatchReport {
	st := molecule.Parse(smiles)
	report := &MatchReport{SMILES: smiles, Patterns: make([]PatternMatch, 0, len(stages))}

	var mol *molecule.Molecule
	switch v := st.(type) {
	case *molecule.Parsed:
		mol = v.Mol
		report.Parsed = true
		report.Formula = mol.Formula()
		report.Atoms = mol.NumAtoms()
		report.Bonds = mol.NumBonds()
		report.Rings = len(mol.Rings())
	case *molecule.Unparseable:
		report.Error = v.Reason.Error()
	}

	for _, stage := range stages {
		pm := PatternMatch{
			Name:   stage.Name(),
			Mode:   stage.Mode(),
			SMARTS: stage.SMARTS(),
			Keep:   stage.Keep(st),
		}
		if mol != nil {
			all := stage.Pattern().MatchAll(mol, 0)
			pm.Count = len(all)
			pm.Matched = pm.Count > 0
			if pm.Matched {
				pm.FirstMapping = all[0]
			}
		}
		report.Patterns = append(report.Patterns, pm)
	}
	return report
}

func (r *MatchReport) String() string {
	var sb strings.Builder
	if r.Parsed {
		fmt.Fprintf(&sb, "%s: %s, %d atoms, %d bonds, %d rings\n", r.SMILES, r.Formula, r.Atoms, r.Bonds, r.Rings)
	} else {
		fmt.Fprintf(&sb, "%s: unparseable: %s\n", r.SMILES, r.Error)
	}
	for _, p := range r.Patterns {
		fmt.Fprintf(&sb, "%s (%s) matched=%t count=%d keep=%t", p.Name, p.Mode, p.Matched, p.Count, p.Keep)
		if len(p.FirstMapping) > 0 {
			fmt.Fprintf(&sb, " mapping=%s", formatMapping(p.FirstMapping))
		}
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (r *MatchReport) TableHeaders() []string {
	return []string{"PATTERN", "MODE", "MATCHED", "COUNT", "KEEP", "MAPPING"}
}

func (r *MatchReport) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Patterns))
	for _, p := range r.Patterns {
		rows = append(rows, []string{
			p.Name,
			p.Mode.String(),
			strconv.FormatBool(p.Matched),
			strconv.Itoa(p.Count),
			strconv.FormatBool(p.Keep),
			formatMapping(p.FirstMapping),
		})
	}
	return rows
}

func formatMapping(m []int) string {
	parts := make([]string, len(m))
	for i, a := range m {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts, ",")
}

//Personal.AI order the ending
