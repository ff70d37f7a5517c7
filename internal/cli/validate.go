package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/defkit/astgen/internal/compiler"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <definitions.json>",
		Short: "Validate a serialized IR document",
		Long: `Validate a serialized IR document against the referential rules the
IR itself does not enforce: identifier uniqueness, item references that
resolve to declared nodes, and token names with a canonical spelling.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Errors get our own output, not cobra's usage dump
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
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

	formatter.VerboseLog("Loaded %d node(s), %d token(s) from %s", len(defs.Types), len(defs.Tokens), path)

	validationErrs := compiler.Validate(defs)
	if len(validationErrs) > 0 {
		if formatter.Format == "text" {
			for _, verr := range validationErrs {
				fmt.Fprintf(formatter.Writer, "✗ %s\n", verr.Error())
			}
			fmt.Fprintf(formatter.Writer, "%d error(s) found\n", len(validationErrs))
		} else {
			_ = formatter.Error(validationErrs[0].Code, "definitions are invalid", validationErrs)
		}
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d validation error(s)", len(validationErrs))}
	}

	if formatter.Format == "text" {
		fmt.Fprintln(formatter.Writer, "✓ All definitions valid")
		return nil
	}
	return formatter.Success(map[string]any{
		"nodes":  len(defs.Types),
		"tokens": len(defs.Tokens),
	})
}
