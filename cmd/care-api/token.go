package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/care-record-api/internal/models"
	"github.com/noah-isme/care-record-api/internal/service"
	"github.com/noah-isme/care-record-api/pkg/config"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed access token for local use",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")
			role, _ := cmd.Flags().GetString("role")
			name, _ := cmd.Flags().GetString("name")
			expiry, _ := cmd.Flags().GetDuration("expiry")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if expiry <= 0 {
				expiry = cfg.JWT.Expiration
			}

			tokens := service.NewTokenService(service.TokenConfig{
				Secret: cfg.JWT.Secret,
				Issuer: cfg.JWT.Issuer,
				Expiry: expiry,
			}, service.NewValidator())

			signed, expiresAt, err := tokens.Issue(service.IssueTokenRequest{
				UserID:   userID,
				Role:     models.UserRole(role),
				FullName: name,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", expiresAt.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().String("user", "", "User id placed in the token subject")
	cmd.Flags().String("role", string(models.RoleNurse), "Role: ADMIN, NURSE or CAREGIVER")
	cmd.Flags().String("name", "", "Display name of the user")
	cmd.Flags().Duration("expiry", 0, "Token lifetime (defaults to JWT_EXPIRATION)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
