package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"dni-registry/internal/domain"
	"dni-registry/internal/usecase"
)

func newCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <username> <lastname> <dni>",
		Short: "Create (or overwrite) a user",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withUsers(cmd, func(ctx context.Context, users *usecase.Users) error {
				u, err := users.Create.Execute(ctx, args[0], args[1], args[2])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "created:", u)
				return nil
			})
		},
	}
}

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <dni>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withUsers(cmd, func(ctx context.Context, users *usecase.Users) error {
				u, err := users.Find.Execute(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), u)
				return nil
			})
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every user, ordered by DNI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withUsers(cmd, func(ctx context.Context, users *usecase.Users) error {
				all, err := users.List.Execute(ctx)
				if err != nil {
					return err
				}
				slices.SortFunc(all, func(x, y domain.User) int {
					return strings.Compare(x.DNI(), y.DNI())
				})
				for _, u := range all {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", u.Username(), u.LastName(), u.DNI())
				}
				return nil
			})
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <dni> <username> <lastname>",
		Short: "Replace the names of an existing user",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withUsers(cmd, func(ctx context.Context, users *usecase.Users) error {
				u, err := users.Update.Execute(ctx, args[0], args[1], args[2])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "updated:", u)
				return nil
			})
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <dni>",
		Short: "Delete an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withUsers(cmd, func(ctx context.Context, users *usecase.Users) error {
				if err := users.Delete.Execute(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "deleted:", args[0])
				return nil
			})
		},
	}
}

// sampleUsers are created by the seed command.
var sampleUsers = [][3]string{
	{"Agustín", "Estévez Domínguez", "76826889N"},
	{"María", "López Fernández", "12345678Z"},
	{"Juan", "Pérez Gómez", "87654321X"},
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create a few sample users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withUsers(cmd, func(ctx context.Context, users *usecase.Users) error {
				for _, s := range sampleUsers {
					u, err := users.Create.Execute(ctx, s[0], s[1], s[2])
					if err != nil {
						return fmt.Errorf("seed %s: %w", s[2], err)
					}
					fmt.Fprintln(cmd.OutOrStdout(), "created:", u)
				}
				return nil
			})
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <dni>",
		Short: "Validate a DNI without touching the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dni := args[0]
			if domain.ValidDNI(dni) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", dni)
				return nil
			}
			if len(dni) == 9 {
				if want, ok := domain.DNILetter(dni[:8]); ok {
					return fmt.Errorf("%s is not a valid DNI: expected letter %c", dni, want)
				}
			}
			return fmt.Errorf("%s is not a valid DNI: want 8 digits and a control letter", dni)
		},
	}
}
