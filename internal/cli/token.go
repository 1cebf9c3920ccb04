package cli

import (
	"fmt"

	"battle-royale-service/internal/auth"
	"battle-royale-service/internal/config"
	"github.com/spf13/cobra"
)

// NewTokenCmd mints a player token for local testing.
func NewTokenCmd(configPath *string) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "token <player-id>",
		Short: "Issue a player token signed with the configured secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return fmt.Errorf("auth.jwtSecret not configured")
			}
			issuer := auth.NewIssuer(cfg.Auth.JWTSecret, config.TTLDuration(cfg.Auth.TokenTTL, defaultTokenTTL))
			token, err := issuer.Issue(args[0], name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name carried in the token")
	return cmd
}
