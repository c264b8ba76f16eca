package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qecdev/graphify/internal/store"
)

// AuditOptions holds flags for the audit command.
type AuditOptions struct {
	*RootOptions
}

// AuditRunList is the payload when listing runs.
type AuditRunList struct {
	Runs []AuditRun `json:"runs"`
}

// AuditRun is one persisted transformation run.
type AuditRun struct {
	ID         string `json:"id"`
	Source     string `json:"source"`
	Detected   int    `json:"detected"`
	Decomposed int    `json:"decomposed"`
	Failed     int    `json:"failed"`
}

// AuditEntryList is the payload when dumping one run.
type AuditEntryList struct {
	RunID   string       `json:"run_id"`
	Entries []AuditEntry `json:"entries"`
}

// AuditEntry is one persisted log entry.
type AuditEntry struct {
	EntryIndex       int    `json:"entry_index"`
	Kind             string `json:"kind"`
	InstructionIndex int    `json:"instruction_index"`
	Payload          string `json:"payload"`
}

// NewAuditCommand creates the audit command.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AuditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "audit <audit.db> [run-id]",
		Short: "Inspect persisted transformation runs",
		Long: `List the transformation runs persisted in an audit database, or dump the
log entries of one run.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) == 2 {
				runID = args[1]
			}
			return runAudit(opts, args[0], runID, cmd)
		},
	}

	return cmd
}

func runAudit(opts *AuditOptions, dbPath, runID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(dbPath); err != nil {
		message := fmt.Sprintf("audit database not found: %s", dbPath)
		_ = formatter.Error(ErrCodeRead, message, nil)
		return WrapExitError(ExitCommandError, message, err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		message := fmt.Sprintf("opening audit database: %v", err)
		_ = formatter.Error(ErrCodeAudit, message, nil)
		return WrapExitError(ExitCommandError, message, err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if runID == "" {
		return outputRunList(formatter, st, ctx)
	}
	return outputRunEntries(formatter, st, ctx, runID)
}

func outputRunList(formatter *OutputFormatter, st *store.Store, ctx context.Context) error {
	runs, err := st.ListRuns(ctx)
	if err != nil {
		message := fmt.Sprintf("listing runs: %v", err)
		_ = formatter.Error(ErrCodeAudit, message, nil)
		return WrapExitError(ExitCommandError, message, err)
	}

	result := &AuditRunList{Runs: make([]AuditRun, len(runs))}
	for i, r := range runs {
		result.Runs[i] = AuditRun{
			ID:         r.ID,
			Source:     r.Source,
			Detected:   r.Detected,
			Decomposed: r.Decomposed,
			Failed:     r.Failed,
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if len(result.Runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded")
		return nil
	}
	for _, r := range result.Runs {
		fmt.Fprintf(formatter.Writer, "%s  %s  detected=%d decomposed=%d failed=%d\n",
			r.ID, r.Source, r.Detected, r.Decomposed, r.Failed)
	}
	return nil
}

func outputRunEntries(formatter *OutputFormatter, st *store.Store, ctx context.Context, runID string) error {
	entries, err := st.ReadEntries(ctx, runID)
	if err != nil {
		message := fmt.Sprintf("reading run %s: %v", runID, err)
		_ = formatter.Error(ErrCodeAudit, message, nil)
		return WrapExitError(ExitCommandError, message, err)
	}
	if len(entries) == 0 {
		message := fmt.Sprintf("no entries for run %s", runID)
		_ = formatter.Error(ErrCodeAudit, message, nil)
		return NewExitError(ExitCommandError, message)
	}

	result := &AuditEntryList{RunID: runID, Entries: make([]AuditEntry, len(entries))}
	for i, e := range entries {
		result.Entries[i] = AuditEntry{
			EntryIndex:       e.EntryIndex,
			Kind:             e.Kind,
			InstructionIndex: e.InstructionIndex,
			Payload:          e.Payload,
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, e := range result.Entries {
		fmt.Fprintf(formatter.Writer, "[%d] %s instr=%d %s\n",
			e.EntryIndex, e.Kind, e.InstructionIndex, e.Payload)
	}
	return nil
}
