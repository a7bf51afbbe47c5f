package cli

import (
	"github.com/Rohan-debug788/SkillSwap/internal/config"
	"github.com/Rohan-debug788/SkillSwap/internal/reports"
	"github.com/Rohan-debug788/SkillSwap/internal/repositories"
	"github.com/spf13/cobra"
)

// StoreOpener returns the store to read from and a func that releases it.
type StoreOpener func(cfg *config.Config) (reports.MatchLister, func() error, error)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool

	loadConfig func() (*config.Config, error)
	openStore  StoreOpener
}

// NewRootCommand creates the root command for the export CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{
		loadConfig: config.LoadConfig,
		openStore:  openStore,
	})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export SkillSwap data",
		Long:  "Admin exports of the SkillSwap ledger. Reads the same environment as the server.",
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewMatchesCommand(opts))

	return cmd
}

func openStore(cfg *config.Config) (reports.MatchLister, func() error, error) {
	return repositories.Open(cfg)
}
