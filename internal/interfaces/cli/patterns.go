package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/ScaffoldSieve/internal/application/screening"
)

// NewPatternsCmd creates the patterns command.
func NewPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the configured screening stages",
		Long:  "Compile and list the screening stages in the order filter applies them.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			stages, err := screening.StagesFromConfig(cliCtx.Config.Screening.Stages)
			if err != nil {
				return err
			}
			return PrintResult(cmd, NewPatternList(stages))
		},
	}
}

// PatternInfo describes one compiled stage.
type PatternInfo struct {
	Name   string         `json:"name" yaml:"name"`
	Mode   screening.Mode `json:"mode" yaml:"mode"`
	Reason string         `json:"reason" yaml:"reason"`
	SMARTS string         `json:"smarts" yaml:"smarts"`
	Atoms  int            `json:"atoms" yaml:"atoms"`
}

// PatternList is the printable stage list.
type PatternList struct {
	Stages []PatternInfo `json:"stages" yaml:"stages"`
}

// NewPatternList summarises stages.
func NewPatternList(stages []*screening.Stage) *PatternList {
	out := &PatternList{Stages: make([]PatternInfo, 0, len(stages))}
	for _, s := range stages {
		out.Stages = append(out.Stages, PatternInfo{
			Name:   s.Name(),
			Mode:   s.Mode(),
			Reason: s.Reason(),
			SMARTS: s.SMARTS(),
			Atoms:  s.Pattern().NumAtoms(),
		})
	}
	return out
}

func (l *PatternList) String() string {
	lines := make([]string, 0, len(l.Stages))
	for i, s := range l.Stages {
		lines = append(lines, fmt.Sprintf("%d. %s [%s] %s (drops: %s)", i+1, s.Name, s.Mode, s.SMARTS, s.Reason))
	}
	return strings.Join(lines, "\n")
}

func (l *PatternList) TableHeaders() []string {
	return []string{"#", "NAME", "MODE", "ATOMS", "REASON", "SMARTS"}
}

func (l *PatternList) TableRows() [][]string {
	rows := make([][]string, 0, len(l.Stages))
	for i, s := range l.Stages {
		rows = append(rows, []string{strconv.Itoa(i + 1), s.Name, s.Mode.String(), strconv.Itoa(s.Atoms), s.Reason, s.SMARTS})
	}
	return rows
}

//Personal.AI order the ending
