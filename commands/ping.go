package commands

import (
	"fmt"

	"comic_portfolio/database"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Wait for the database and check the connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := loadEnv()
		if err != nil {
			return err
		}

		db, err := e.connect(ctx)
		if err != nil {
			return err
		}
		defer database.Close(db)

		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("get database connection: %w", err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Database connection successful!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
