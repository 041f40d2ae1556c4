package commands

import (
	"context"
	"errors"
	"fmt"

	"comic_portfolio/database"
	"comic_portfolio/services"

	"github.com/spf13/cobra"
)

var (
	superuserEmail    string
	superuserPassword string
	superuserName     string
)

var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create a staff superuser",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreateSuperuser(cmd.Context(), cmd)
	},
}

func init() {
	rootCmd.AddCommand(createSuperuserCmd)

	createSuperuserCmd.Flags().StringVar(&superuserEmail, "email", "", "Email address (required)")
	createSuperuserCmd.Flags().StringVar(&superuserPassword, "password", "", "Password (required)")
	createSuperuserCmd.Flags().StringVar(&superuserName, "name", "", "Display name")
	_ = createSuperuserCmd.MarkFlagRequired("email")
	_ = createSuperuserCmd.MarkFlagRequired("password")
}

func runCreateSuperuser(ctx context.Context, cmd *cobra.Command) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	db, err := e.connect(ctx)
	if err != nil {
		return err
	}
	defer database.Close(db)

	user, err := services.NewUserService(db).Create(ctx, services.UserInput{
		Email:    superuserEmail,
		Name:     superuserName,
		Password: superuserPassword,
	}, true)
	if errors.Is(err, services.ErrConflict) {
		return fmt.Errorf("a user with email %s already exists", superuserEmail)
	}
	if err != nil {
		return fmt.Errorf("create superuser: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s created (id %d).\n", user.Email, user.ID)
	return nil
}
