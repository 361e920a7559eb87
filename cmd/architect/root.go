package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/artem13815/architect/pkg/agent"
	"github.com/artem13815/architect/pkg/config"
	"github.com/artem13815/architect/pkg/contract"
	"github.com/artem13815/architect/pkg/deploy"
	"github.com/artem13815/architect/pkg/llm/chaingpt"
	"github.com/artem13815/architect/pkg/logger"
)

// errReported marks failures already shown to the user.
var errReported = errors.New("reported")

const (
	contractsDirF    = "contracts-dir"
	contractNameF    = "contract-name"
	solidityVersionF = "solidity-version"
	deployNetworkF   = "deploy-network"
	logLevelF        = "log-level"

	contractsDirUsage    = "Directory the generated contract is written to."
	contractNameUsage    = "Contract name the generator is told to use; also the artifact file name."
	solidityVersionUsage = "Solidity version constraint put into the prompt."
	deployNetworkUsage   = `Network to deploy to. Options:
testnet = bscTestnet
mainnet = bscMainnet
any other Hardhat network name`
	logLevelUsage = "Log level: debug, info, warn or error."
)

func NewCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "architect",
		Short: "Generate a Solidity contract from a description and deploy it with Hardhat.",
		Long: `architect asks what contract you want, has ChainGPT write it, saves it to
<contracts-dir>/<contract-name>.sol (replacing any previous file) and, if you
confirm, runs the Hardhat deploy script against the chosen network.

Configuration comes from the environment or a .env file; CHAINGPT_API_KEY is required.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	f := root.PersistentFlags()
	f.String(contractsDirF, "./contracts", contractsDirUsage)
	f.String(contractNameF, "GenContract", contractNameUsage)
	f.String(solidityVersionF, "^0.8.20", solidityVersionUsage)
	f.String(deployNetworkF, "testnet", deployNetworkUsage)
	f.String(logLevelF, "info", logLevelUsage)

	root.AddCommand(newServeCmd(), newTokenCmd(), newNetworksCmd())
	return root
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		agent.ReportConfigError(out, err)
		return errReported
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	contracts := newContractService(cfg, log)
	dispatcher := deploy.NewDispatcher(deploy.ExecRunner{Echo: out}, cfg.Deploy.Binary, cfg.Deploy.Script, "", log)

	state, err := agent.New(contracts, dispatcher, cfg.Deploy.Network, cmd.InOrStdin(), out, log).Run(cmd.Context())
	if state.Failed() {
		return errReported
	}
	return err
}

func newContractService(cfg config.Config, log *zap.SugaredLogger) contract.UseCase {
	return contract.NewService(
		chaingpt.New(cfg.ChainGPT.APIKey, cfg.ChainGPT.BaseURL),
		contract.Artifact{Dir: cfg.Contract.Dir, Filename: cfg.Contract.Filename()},
		contract.Constraints{
			ContractName:    cfg.Contract.Name,
			SolidityVersion: cfg.Contract.SolidityVersion,
			Model:           cfg.ChainGPT.Model,
			AuditModel:      cfg.ChainGPT.AuditModel,
		},
		log,
	)
}
