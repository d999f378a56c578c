package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"heartrisk/internal/auth"
)

func newTokenCmd() *cobra.Command {
	var (
		userID  string
		secret  string
		expires time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generate a dev-mode bearer token for a user ID",
		Long:  "Generate an HS256 bearer token for development and testing. The secret must match the server's JWT_SECRET.",
		Example: `  # Generate a token for a user with the server's secret
  riskctl token --user-id 6f1c... --secret my-jwt-secret

  # Custom expiry
  riskctl token --user-id 6f1c... --secret my-jwt-secret --expires 48h`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if userID == "" {
				return fmt.Errorf("--user-id is required")
			}
			codec, err := auth.NewCodec(secret)
			if err != nil {
				return err
			}
			signed, err := codec.Issue(userID, time.Now(), expires)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			_, _ = fmt.Fprintln(os.Stdout, signed)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "Subject user ID for the token")
	cmd.Flags().StringVar(&secret, "secret", "", "HS256 signing secret (must match the server)")
	cmd.Flags().DurationVar(&expires, "expires", 24*time.Hour, "Token lifetime")
	return cmd
}
