package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/depclean/internal/app"
	"go.trai.ch/depclean/internal/core/domain"
)

func (c *CLI) newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Report duplicated packages in a Cargo.lock and recommend a version for each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lockfile, _ := cmd.Flags().GetString("lockfile")
			fix, _ := cmd.Flags().GetBool("fix")
			format, _ := cmd.Flags().GetString("format")
			offline, _ := cmd.Flags().GetBool("offline")
			concurrency, _ := cmd.Flags().GetInt("concurrency")

			unitCost := app.UseConfigured
			if cmd.Flags().Changed("unit-cost") {
				unitCost, _ = cmd.Flags().GetInt("unit-cost")
			}

			_, err := c.app.Analyze(cmd.Context(), cmd.OutOrStdout(), app.AnalyzeOptions{
				Lockfile:    lockfile,
				Format:      domain.ReportFormat(format),
				Offline:     offline,
				Concurrency: concurrency,
				UnitCost:    unitCost,
				Fix:         fix,
			})
			return err
		},
	}
	cmd.Flags().StringP("lockfile", "l", domain.DefaultLockfilePath, "Path to the Cargo.lock file")
	cmd.Flags().Bool("fix", false, "Apply recommended versions (not supported, depclean is read-only)")
	cmd.Flags().StringP("format", "f", string(domain.FormatTable), "Output format: table, json or yaml")
	cmd.Flags().Bool("offline", false, "Skip registry lookups and rank versions by semantic version only")
	cmd.Flags().IntP("concurrency", "j", 0, "Maximum number of registry calls in flight (0 uses the configured value)")
	cmd.Flags().Int("unit-cost", domain.DefaultUnitCost, "Estimated size in KB of one redundant version")
	return cmd
}
