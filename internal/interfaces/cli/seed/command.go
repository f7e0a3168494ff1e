package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	packUsecases "github.com/orris-inc/memberhub/internal/application/pack/usecases"
	"github.com/orris-inc/memberhub/internal/infrastructure/database"
	"github.com/orris-inc/memberhub/internal/infrastructure/repository"
	"github.com/orris-inc/memberhub/internal/interfaces/cli/bootstrap"
)

var (
	flags    bootstrap.Flags
	packPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference data",
	}

	cmd.PersistentFlags().StringVarP(&flags.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(newPacksCommand())
	return cmd
}

func newPacksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packs",
		Short: "Create packages from a YAML catalogue",
		RunE:  runPacks,
	}

	cmd.Flags().StringVarP(&packPath, "file", "f", "", "Path to the packs YAML file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runPacks(cmd *cobra.Command, args []string) error {
	file, err := os.Open(packPath)
	if err != nil {
		return fmt.Errorf("failed to open pack file: %w", err)
	}
	defer file.Close()

	cmds, err := ParsePackFile(file)
	if err != nil {
		return err
	}

	_, log, err := bootstrap.Init(&flags, true)
	if err != nil {
		return err
	}
	defer database.Close()

	uc := packUsecases.NewCreatePackUseCase(repository.NewPackRepository(database.Get(), log), log)

	ctx := context.Background()
	for _, c := range cmds {
		result, err := uc.Execute(ctx, c)
		if err != nil {
			return fmt.Errorf("failed to create pack %q: %w", c.Name, err)
		}
		fmt.Printf("  + %s (id=%d)\n", result.Name, result.ID)
	}

	fmt.Printf("✅ Seeded %d packs\n", len(cmds))
	return nil
}
