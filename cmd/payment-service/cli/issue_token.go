package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/payment-service/internal/api"
	"github.com/babylonlabs-io/payment-service/internal/config"
)

func IssueTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue-token <identity>",
		Short: "Prints a bearer token authenticating the given identity",
		Args:  cobra.ExactArgs(1),
		RunE:  issueToken,
	}

	cmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")

	return cmd
}

func issueToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return err
	}

	ttl, err := cmd.Flags().GetDuration("ttl")
	if err != nil {
		return err
	}

	token, err := api.NewAuthenticator(cfg.Server.JWTSecret, cfg.Server.JWTIssuer).NewToken(args[0], ttl)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
