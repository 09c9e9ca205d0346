package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/accounts/internal/accounts/app"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the accounts HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	root := &cobra.Command{
		Use:           "accounts",
		Short:         "User accounts service",
		Version:       app.BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          serveCmd.RunE,
	}

	root.AddCommand(serveCmd, &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Migrate(cmd.Context(), app.LoadConfig()); err != nil {
				log.Printf("migration failed: %v", err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	})
	return root
}

func runServer(ctx context.Context) error {
	application, err := app.New(ctx, app.LoadConfig())
	if err != nil {
		log.Printf("failed to initialize application: %v", err)
		return err
	}

	if err := application.Run(); err != nil {
		log.Printf("application error: %v", err)
		return err
	}
	return nil
}
