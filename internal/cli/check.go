package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qecdev/graphify/internal/verify"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
}

// CheckResult is the payload of the check command.
type CheckResult struct {
	Input      string `json:"input"`
	Graphlike  bool   `json:"graphlike"`
	Violations []int  `json:"violations,omitempty"` // instruction indices with >2 detector targets
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <model.dem>",
		Short: "Check that a model is graphlike",
		Long: `Check that every error event in a detector error model touches at most
two detectors. Exits 1 when the model contains hyper-edges.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *CheckOptions, inputPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	model, err := loadModel(formatter, inputPath)
	if err != nil {
		return err
	}

	result := &CheckResult{
		Input:      inputPath,
		Violations: verify.Violations(model),
	}
	result.Graphlike = len(result.Violations) == 0

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else if result.Graphlike {
		fmt.Fprintf(formatter.Writer, "✓ %s is graphlike\n", inputPath)
	} else {
		fmt.Fprintf(formatter.Writer, "✗ %s has %d hyper-edge(s) at instruction(s) %v\n",
			inputPath, len(result.Violations), result.Violations)
	}

	if !result.Graphlike {
		// Check failures are test-style failures (exit code 1), distinct
		// from command errors.
		return NewExitError(ExitFailure, fmt.Sprintf("%s is not graphlike", inputPath))
	}
	return nil
}
