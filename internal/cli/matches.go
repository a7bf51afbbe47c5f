package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Rohan-debug788/SkillSwap/internal/reports"
	"github.com/spf13/cobra"
)

// NewMatchesCommand creates the matches command.
func NewMatchesCommand(rootOpts *RootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Write every match to an .xlsx workbook",
		Long: `Write the match ledger to an Excel workbook.

One row per match with both users' ids and names, the request that
produced it and when it was created.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatches(cmd.Context(), rootOpts, out, cmd)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "matches.xlsx", "output file")

	return cmd
}

func runMatches(ctx context.Context, opts *RootOptions, out string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if filepath.Ext(out) != ".xlsx" {
		return fmt.Errorf("output file %q must end in .xlsx", out)
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, closeStore, err := opts.openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	if opts.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Reading matches from %s store\n", cfg.StoreDriver)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}

	n, err := reports.ExportMatches(ctx, store, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(out)
		return fmt.Errorf("export matches: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d matches to %s\n", n, out)
	return nil
}
