package cli

import (
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"heartrisk/internal/auth"
	internaldb "heartrisk/internal/db"
	"heartrisk/internal/db/repository"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts directly against the database",
	}

	cmd.AddCommand(newUserCreateCmd())
	cmd.AddCommand(newUserDeleteCmd())
	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var (
		dbPath   string
		name     string
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account, prompting for the password",
		Example: `  # Create a user against the default database file
  riskctl user create --name "Ada" --email ada@example.com

  # Non-interactive (password on the flag; visible in shell history)
  riskctl user create --db /srv/heartrisk.sqlite --name "Ada" --email ada@example.com --password s3cret-pass`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				pw, err := promptPassword()
				if err != nil {
					return err
				}
				password = pw
			}

			db, err := internaldb.OpenSQLite(dbPath, "write", 1)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close() //nolint:errcheck

			if err := internaldb.RunMigrations(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			// The codec is unused by Register; any non-empty secret works here.
			codec, err := auth.NewCodec("riskctl-local")
			if err != nil {
				return err
			}
			accounts := auth.NewAccountService(repository.NewUserRepo(db), codec, 24*time.Hour)

			principal, err := accounts.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(os.Stdout, "created user %s (%s)\n", principal.ID, principal.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "heartrisk.sqlite", "Path to the SQLite database file")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	return cmd
}

func newUserDeleteCmd() *cobra.Command {
	var (
		dbPath string
		email  string
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an account and its health records",
		Example: `  riskctl user delete --email ada@example.com
  riskctl user delete --db /srv/heartrisk.sqlite --email ada@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}

			db, err := internaldb.OpenSQLite(dbPath, "write", 1)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close() //nolint:errcheck

			users := repository.NewUserRepo(db)
			u, err := users.GetByEmail(cmd.Context(), email)
			if err != nil {
				return err
			}
			if err := users.Delete(cmd.Context(), u.ID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(os.Stdout, "deleted user %s (%s)\n", u.ID, u.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "heartrisk.sqlite", "Path to the SQLite database file")
	cmd.Flags().StringVar(&email, "email", "", "Email address of the account to delete")
	return cmd
}

func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal; pass --password")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}
