package main

import (
	"fmt"
	"slices"
	"stay/config"
	"stay/infras/jwt"
	"stay/shared/constant"

	"github.com/spf13/cobra"
)

// Accounts live outside this service, so operators mint tokens for local use and tests.
func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue an access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, _ := cmd.Flags().GetString("role")
			email, _ := cmd.Flags().GetString("email")

			roles := []string{constant.RoleAdmin, constant.RoleTenant, constant.RoleGuest, constant.RoleSystem}
			if !slices.Contains(roles, role) {
				return fmt.Errorf("unknown role %q", role)
			}

			token, err := jwt.New(config.Get()).GenerateToken(args[0], email, role)
			if err != nil {
				return fmt.Errorf("failed to issue token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token.AccessToken)

			return nil
		},
	}

	cmd.Flags().String("role", constant.RoleGuest, "role claim: admin, tenant, guest or system")
	cmd.Flags().String("email", "", "email claim")

	return cmd
}
