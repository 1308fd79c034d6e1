package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"supportdesk/internal/infrastructure/auth"
	"supportdesk/internal/infrastructure/config"
	"supportdesk/internal/shared/authorization"
)

var (
	configPath string
	userID     uint
	role       string
)

// NewCommand issues access tokens signed with the configured secret. Real
// deployments get tokens from the identity service; this is for local use.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token",
		Long:  `Sign an access token for a user id and role with the configured JWT secret.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().UintVarP(&userID, "user-id", "u", 0, "User id to put in the token (required)")
	cmd.Flags().StringVarP(&role, "role", "r", string(authorization.RoleUser), "Role: user or admin")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load("", configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	userRole := authorization.UserRole(role)
	if !userRole.IsValid() {
		return fmt.Errorf("invalid role %q", role)
	}

	svc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	signed, expiresAt, err := svc.Generate(userID, userRole)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), signed)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", expiresAt.Format(time.RFC3339))
	return nil
}
