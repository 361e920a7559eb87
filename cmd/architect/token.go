package main

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/artem13815/architect/pkg/config"
	"github.com/artem13815/architect/pkg/security/jwt"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token [wallet-address]",
		Short: "Mint a bearer token for a wallet to call the HTTP agent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !common.IsHexAddress(args[0]) {
				return fmt.Errorf("%q is not a wallet address", args[0])
			}
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			ttl := time.Duration(cfg.Server.JWTTTLMinutes) * time.Minute
			token, err := jwt.NewGenerator(cfg.Server.JWTSecret, cfg.Server.JWTIssuer, ttl).Generate(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().Int("jwt-ttl-minutes", 60, "Token lifetime in minutes.")
	return cmd
}
