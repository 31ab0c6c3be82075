package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pageza/nutriplan/backend/internal/service"
	"github.com/pageza/nutriplan/backend/internal/types"
	"github.com/spf13/cobra"
)

// newTokenCmd mints an operator token for the admin routes, signed with
// JWT_SECRET.
func newTokenCmd() *cobra.Command {
	var (
		operator string
		role     string
		ttl      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an operator token for the admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := service.NewOperatorAuthService(os.Getenv("JWT_SECRET"), ttl).IssueToken(operator, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&operator, "operator", "", "operator name stored as the token subject")
	cmd.Flags().StringVar(&role, "role", types.RoleViewer, "admin or viewer")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("operator")
	return cmd
}
