package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/gym-management/internal/config"
	"github.com/magabrotheeeer/gym-management/internal/migrations"
	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/storage/postgresql"
)

// roleNames перечисляет роли для справки по флагам.
func roleNames() string {
	roles := models.Roles()
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}
	return strings.Join(names, ", ")
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply storage migrations",
		Long: `Apply schema migrations for PostgreSQL. For MongoDB the command
creates the collection indexes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer e.Close()

			if e.cfg.Driver != config.DriverPostgres {
				fmt.Fprintf(cmd.OutOrStdout(), "storage %q is ready\n", e.cfg.Driver)
				return nil
			}
			pg, ok := e.store.(*postgresql.Storage)
			if !ok {
				return fmt.Errorf("unexpected storage type %T", e.store)
			}
			version, dirty, err := migrations.Version(pg.DB, e.cfg.MigrationsPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty: %t)\n", version, dirty)
			return nil
		},
	}
}

func signupCmd() *cobra.Command {
	var role, username, pass string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a user with the given role",
		Example: `  gymctl signup --role member --username alice --password secret1
  gymctl signup --role trainer --username bob`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.Close()

			if pass == "" {
				pass = e.cfg.DefaultPassword
			}
			user, err := e.identity.Signup(cmd.Context(), role, username, pass)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s %q (id %s)\n", user.Role, user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", string(models.RoleMember), "role: "+roleNames())
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&pass, "password", "p", "", "password (default from config)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func resetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password USERNAME",
		Short: "Reset the user's password to the configured default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.identity.ResetPassword(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password of %q reset to default\n", args[0])
			return nil
		},
	}
}

func usersCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.Close()

			var users []*models.User
			if role == "" {
				users, err = e.store.FindAll(cmd.Context())
			} else {
				r, perr := models.ParseRole(role)
				if perr != nil {
					return perr
				}
				users, err = e.store.FindByRole(cmd.Context(), r)
			}
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tUSERNAME\tROLE\tCREATED")
			for _, u := range users {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, u.CreatedAt.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", "", "filter by role: "+roleNames())
	return cmd
}

func deleteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-user USERNAME",
		Short: "Delete a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.Close()

			deleted, err := e.store.DeleteUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !deleted {
				return models.ErrUserNotFound
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %q deleted\n", args[0])
			return nil
		},
	}
}

func paymentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "payments MEMBER",
		Short: "Show payment history and summary of a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.Close()

			history, err := e.members.PaymentHistory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			summary, err := e.members.Summary(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PAYMENT\tAMOUNT\tMETHOD\tSTATUS\tREFERENCE\tCREATED")
			for _, p := range history {
				fmt.Fprintf(tw, "%s\t%.2f %s\t%s\t%s\t%s\t%s\n",
					p.ID, p.Amount, p.Currency, strings.ToUpper(string(p.Method)),
					p.Status, p.ReferenceNumber, p.CreatedAt.Format(time.RFC3339))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d payments, %.2f paid\n", summary.Count, summary.TotalPaid)
			return nil
		},
	}
}
