package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/storekraft/internal/adapters/outbound/config"
	"github.com/abdidvp/storekraft/internal/domain"
)

func newInitCmd(opts *globalOptions) *cobra.Command {
	var (
		force    bool
		withSeed bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .storekraft.yaml configuration file",
		Long:  "Create a .storekraft.yaml in the data directory with the default settings and, optionally, the default seed catalog.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(opts.dataDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("creating %s: %w", dir, err)
			}

			cfg := domain.DefaultConfig()
			if withSeed {
				for _, p := range domain.DefaultSeed() {
					rec := domain.RecordFromProduct(p)
					rec.ID = ""
					cfg.Seed = append(cfg.Seed, rec)
				}
			}

			if _, err := config.Write(dir, cfg, force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .storekraft.yaml")
	cmd.Flags().BoolVar(&withSeed, "seed", true, "Write the default seed catalog into the file")
	return cmd
}
