package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"blog/di"
	"blog/internal/domain"
	"blog/internal/infrastructure/password"
	"blog/internal/infrastructure/postgres"
	"blog/internal/usecase"
	"blog/utils/output"
	"blog/utils/validator"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(false)
	},
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account and its profile",
	Long: `Create a login account. The profile is created with it, using
--blog-name or the default blog name.

Examples:
  blog user create --username alice --email alice@example.com --password s3cret-pass
  blog user create --username bob --password s3cret-pass --blog-name "Bob's notes" --inactive`,
	Args: cobra.NoArgs,
	RunE: runUserCreate,
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)

	f := userCreateCmd.Flags()
	f.String("username", "", "login name (required)")
	f.String("email", "", "address that receives notifications")
	f.String("password", "", "initial password (required)")
	f.String("blog-name", "", "blog name shown on the author's pages")
	f.Bool("inactive", false, "create the account disabled")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("password")
}

func newUserInput(cmd *cobra.Command) domain.NewUserInput {
	f := cmd.Flags()
	username, _ := f.GetString("username")
	email, _ := f.GetString("email")
	pass, _ := f.GetString("password")
	blogName, _ := f.GetString("blog-name")
	inactive, _ := f.GetBool("inactive")
	return domain.NewUserInput{
		Username: username,
		Email:    email,
		Password: pass,
		BlogName: blogName,
		IsActive: !inactive,
	}
}

func runUserCreate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	db, err := postgres.NewConnection(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	store := di.NewPostgresStore(db, log)
	create := usecase.NewCreateUser(store, store, store, password.NewBcryptHasher(0), validator.New(), log)

	user, profile, err := create.Execute(ctx, newUserInput(cmd))
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr()).
		Success("created user %s (id %d), blog %q", user.Username, user.ID, profile.BlogName)
	return nil
}
