package main

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/artem13815/architect/pkg/config"
	"github.com/artem13815/architect/pkg/deploy"
)

func newNetworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List deploy networks and the RPC endpoints used for cost checks.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Alias", "Hardhat network", "RPC", "Default"})
			for _, alias := range []string{"testnet", "mainnet"} {
				def := ""
				if deploy.NetworkName(cfg.Deploy.Network) == deploy.NetworkName(alias) {
					def = "*"
				}
				table.Append([]string{alias, deploy.NetworkName(alias), cfg.Deploy.RPCURL(alias), def})
			}
			table.Render()
			return nil
		},
	}
}
