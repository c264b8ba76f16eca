package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qecdev/graphify/internal/transform"
)

// StatsOptions holds flags for the stats command.
type StatsOptions struct {
	*RootOptions
}

// StatsResult summarizes a model's composition.
type StatsResult struct {
	Input         string `json:"input"`
	Events        int    `json:"events"`
	ErrorEvents   int    `json:"error_events"`
	HyperEdges    int    `json:"hyper_edges"`
	MaxDetectorID int    `json:"max_detector_id"` // -1 when the model references no detectors
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "stats <model.dem>",
		Short:         "Summarize a model's events and hyper-edges",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(opts, args[0], cmd)
		},
	}

	return cmd
}

func runStats(opts *StatsOptions, inputPath string, cmd *cobra.Command) error {
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

	result := &StatsResult{
		Input:         inputPath,
		Events:        len(model.Events),
		HyperEdges:    len(transform.Detect(model)),
		MaxDetectorID: model.MaxDetectorID(),
	}
	result.ErrorEvents = len(model.ErrorEvents())

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%s:\n", inputPath)
	fmt.Fprintf(formatter.Writer, "  events:          %d\n", result.Events)
	fmt.Fprintf(formatter.Writer, "  error events:    %d\n", result.ErrorEvents)
	fmt.Fprintf(formatter.Writer, "  hyper-edges:     %d\n", result.HyperEdges)
	fmt.Fprintf(formatter.Writer, "  max detector id: %s\n", formatDetectorID(result.MaxDetectorID))
	return nil
}

func formatDetectorID(id int) string {
	if id < 0 {
		return "none"
	}
	return fmt.Sprintf("D%d", id)
}
