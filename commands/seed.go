package commands

import (
	"context"
	"fmt"

	"comic_portfolio/database"
	"comic_portfolio/seed"

	"github.com/spf13/cobra"
)

var (
	seedShow       bool
	seedDir        string
	seedAdminEmail string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the reference characters, tag groups, tags and artists",
	Long: `Load the JSON fixtures from the seed directory. Records whose name is
already stored are skipped, so seeding can run on every deployment.

Examples:
  portfolio seed                              # attribute rows to the first superuser
  portfolio seed --show                       # also report skipped records
  portfolio seed --admin-email admin@site.io  # attribute rows to a given admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context(), cmd)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().BoolVar(&seedShow, "show", false, "Report records that already exist")
	seedCmd.Flags().StringVar(&seedDir, "dir", "", "Fixture directory (defaults to SEED_DIR)")
	seedCmd.Flags().StringVar(&seedAdminEmail, "admin-email", "", "Administrator the rows are attributed to")
}

func runSeed(ctx context.Context, cmd *cobra.Command) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	dir := seedDir
	if dir == "" {
		dir = e.cfg.SeedDir
	}

	db, err := e.connect(ctx)
	if err != nil {
		return err
	}
	defer database.Close(db)

	admin, err := seed.ResolveAdmin(ctx, db, seedAdminEmail)
	if err != nil {
		return fmt.Errorf("resolve administrator: %w", err)
	}

	loader := &seed.Loader{
		DB:     db,
		Out:    cmd.OutOrStdout(),
		Show:   seedShow,
		Logger: e.log,
	}
	if _, err := loader.Run(ctx, admin, seed.DefaultFixtures(dir)); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}
