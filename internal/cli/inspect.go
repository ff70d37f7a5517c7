package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/defkit/astgen/internal/ir"
)

// InspectSummary is the structured payload of the inspect command.
type InspectSummary struct {
	Structs     int           `json:"structs" yaml:"structs"`
	Enums       int           `json:"enums" yaml:"enums"`
	Tokens      int           `json:"tokens" yaml:"tokens"`
	Fingerprint string        `json:"fingerprint" yaml:"fingerprint"`
	Nodes       []InspectNode `json:"nodes" yaml:"nodes"`
}

// InspectNode is the per-node row of an InspectSummary.
type InspectNode struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Ident    string   `json:"ident" yaml:"ident"`
	Count    int      `json:"count" yaml:"count"` // fields for structs, variants for enums
	Features []string `json:"features,omitempty" yaml:"features,omitempty"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <definitions.json>",
		Short: "Summarize a serialized IR document",
		Long: `Summarize a serialized IR document: node kinds and sizes, feature
gates, the token table, and the content-addressed fingerprint downstream
tooling uses to detect schema changes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runInspect(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	defs, err := LoadDefinitions(path)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
			return &ExitError{Code: ExitCommandError, Message: loadErr.Error()}
		}
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: err.Error()}
	}

	summary, err := buildSummary(defs)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: err.Error()}
	}

	if formatter.Format == "text" {
		printSummaryText(formatter, summary)
		return nil
	}
	return formatter.Success(summary)
}

func buildSummary(defs *ir.Definitions) (*InspectSummary, error) {
	fingerprint, err := ir.Fingerprint(defs)
	if err != nil {
		return nil, fmt.Errorf("computing fingerprint: %w", err)
	}

	summary := &InspectSummary{
		Tokens:      len(defs.Tokens),
		Fingerprint: fingerprint,
		Nodes:       make([]InspectNode, 0, len(defs.Types)),
	}

	for _, node := range defs.Types {
		row := InspectNode{
			Ident:    node.Ident(),
			Features: node.Features().Flags(),
		}
		switch n := node.(type) {
		case *ir.Struct:
			summary.Structs++
			row.Kind = "struct"
			row.Count = len(n.Fields())
		case *ir.Enum:
			summary.Enums++
			row.Kind = "enum"
			row.Count = len(n.Variants())
		}
		summary.Nodes = append(summary.Nodes, row)
	}
	return summary, nil
}

func printSummaryText(formatter *OutputFormatter, summary *InspectSummary) {
	fmt.Fprintf(formatter.Writer, "%d struct(s), %d enum(s), %d token(s)\n",
		summary.Structs, summary.Enums, summary.Tokens)
	for _, row := range summary.Nodes {
		if len(row.Features) > 0 {
			fmt.Fprintf(formatter.Writer, "  %-6s %s (%d) features=%v\n", row.Kind, row.Ident, row.Count, row.Features)
		} else {
			fmt.Fprintf(formatter.Writer, "  %-6s %s (%d)\n", row.Kind, row.Ident, row.Count)
		}
	}
	fmt.Fprintf(formatter.Writer, "fingerprint: %s\n", summary.Fingerprint)
}
