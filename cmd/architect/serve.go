package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"
	"github.com/spf13/cobra"

	_ "github.com/artem13815/architect/docs"

	"github.com/artem13815/architect/api/http"
	"github.com/artem13815/architect/api/http/handlers"
	"github.com/artem13815/architect/pkg/agent"
	"github.com/artem13815/architect/pkg/chain"
	"github.com/artem13815/architect/pkg/config"
	"github.com/artem13815/architect/pkg/deploy"
	"github.com/artem13815/architect/pkg/health"
	"github.com/artem13815/architect/pkg/health/checkers"
	"github.com/artem13815/architect/pkg/logger"
	"github.com/artem13815/architect/pkg/policy"
	"github.com/artem13815/architect/pkg/security/jwt"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generate/audit/deploy agent over HTTP.",
		Long: `Starts the HTTP agent on /api/v1. POST /agent takes {action, prompt, code, network}
with action generate, audit or deploy and needs a wallet token (see "architect token").
Deployments are refused when the estimated gas cost exceeds SPEND_CAP.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("port", "8080", "The port the HTTP server listens on.")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		agent.ReportConfigError(cmd.ErrOrStderr(), err)
		return errReported
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	denyList, err := policy.NewDenyList(cfg.Server.DenyList)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	oracles := make(map[string]chain.GasOracle)
	var probes []health.Checker
	for _, network := range []string{"testnet", "mainnet"} {
		url := cfg.Deploy.RPCURL(network)
		if url == "" {
			continue
		}
		client, err := chain.Dial(ctx, url)
		if err != nil {
			log.Warnw("rpc unavailable, HTTP deploys to this network are refused while the spend cap is on", "network", network, "error", err)
			continue
		}
		defer client.Close()
		name := deploy.NetworkName(network)
		oracles[name] = client
		probes = append(probes, checkers.NewRPCChecker(name, client))
	}

	contracts := newContractService(cfg, log)
	dispatcher := deploy.NewDispatcher(deploy.ExecRunner{}, cfg.Deploy.Binary, cfg.Deploy.Script, "", log)
	spendCap := chain.SpendCap{Limit: cfg.Deploy.SpendCap, GasLimit: cfg.Deploy.GasLimit}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	http.Register(app,
		handlers.NewHealthHandler(health.NewService(probes...)),
		handlers.NewAgentHandler(contracts, dispatcher, denyList, oracles, spendCap, cfg.Deploy.Network, log),
		jwt.NewAuthMiddleware(cfg.Server.JWTSecret, cfg.Server.JWTIssuer),
	)
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		_ = app.ShutdownWithTimeout(5 * time.Second)
	}()

	log.Infow("HTTP server listening", "port", cfg.Server.Port, "denyList", denyList.Len(), "spendCap", cfg.Deploy.SpendCap)
	return app.Listen(":" + cfg.Server.Port)
}
