// Package user manages accounts from the command line.
package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"stockdesk/internal/application/user/dto"
	"stockdesk/internal/application/user/usecases"
	uservo "stockdesk/internal/domain/user/valueobjects"
	"stockdesk/internal/infrastructure/auth"
	"stockdesk/internal/infrastructure/database"
	"stockdesk/internal/infrastructure/repository"
	"stockdesk/internal/interfaces/cli/bootstrap"
	"stockdesk/internal/shared/biztime"
)

var (
	username string
	role     string
	password string
)

func NewCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(
		newCreateCommand(configPath),
		newListCommand(configPath),
	)

	return cmd
}

func newCreateCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		Long:  `Create an account. The password is prompted for when --password is omitted and stdin is a terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw := password
			if pw == "" {
				var err error
				pw, err = promptPassword(os.Stdin, cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}

			cfg, log, err := bootstrap.OpenDatabase(*configPath)
			if err != nil {
				return err
			}
			defer database.Close()

			hasher := auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost)
			uc := usecases.NewCreateUserUseCase(repository.NewUserRepository(database.Get()), hasher, log)
			return createUser(contextOf(cmd), cmd.OutOrStdout(), uc, username, role, pw)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Login name (required)")
	cmd.Flags().StringVarP(&role, "role", "r", "", "Role: applicant, stockman, manager or admin (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password; prompted for when omitted")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func newListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := bootstrap.OpenDatabase(*configPath)
			if err != nil {
				return err
			}
			defer database.Close()

			uc := usecases.NewListUsersUseCase(repository.NewUserRepository(database.Get()), log)
			// The operator has shell access to the store, so the listing runs as admin.
			users, err := uc.Execute(contextOf(cmd), usecases.ListUsersQuery{Role: uservo.RoleAdmin})
			if err != nil {
				return err
			}
			return printUsers(cmd.OutOrStdout(), users)
		},
	}
}

func createUser(ctx context.Context, out io.Writer, uc usecases.CreateUserExecutor, username, role, password string) error {
	created, err := uc.Execute(ctx, usecases.CreateUserCommand{
		Username: username,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "created user %q (id %d, role %s)\n", created.Username, created.ID, created.Role)
	return nil
}

func printUsers(w io.Writer, users []dto.UserDTO) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tROLE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, biztime.Format(&u.CreatedAt, nil))
	}
	return tw.Flush()
}

// promptPassword reads a password twice without echo. It refuses to read from a non-terminal.
func promptPassword(in *os.File, prompt io.Writer) (string, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("--password is required when stdin is not a terminal")
	}

	fmt.Fprint(prompt, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(prompt, "Repeat password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return strings.TrimRight(string(first), "\r\n"), nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
