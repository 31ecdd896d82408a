// Команда gymctl — административные операции над хранилищем клуба:
// миграции, регистрация и сброс паролей, просмотр пользователей и платежей.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "gymctl",
		Short:         "Administrative tool for the gym management backend",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default $CONFIG_PATH)")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(signupCmd())
	rootCmd.AddCommand(resetPasswordCmd())
	rootCmd.AddCommand(usersCmd())
	rootCmd.AddCommand(deleteUserCmd())
	rootCmd.AddCommand(paymentsCmd())
	rootCmd.AddCommand(eventsCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
