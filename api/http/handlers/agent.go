package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/architect/api/http/presenter"
	"github.com/artem13815/architect/pkg/agent"
	"github.com/artem13815/architect/pkg/chain"
	"github.com/artem13815/architect/pkg/contract"
	"github.com/artem13815/architect/pkg/deploy"
	"github.com/artem13815/architect/pkg/policy"
	"github.com/artem13815/architect/pkg/security/jwt"
)

// AgentHandler exposes generate, audit and deploy over HTTP.
type AgentHandler struct {
	contracts contract.UseCase
	deployer  agent.Deployer
	denyList  *policy.DenyList
	oracles   map[string]chain.GasOracle // keyed by Hardhat network name
	spendCap  chain.SpendCap
	network   string
	log       *zap.SugaredLogger

	// one artifact on disk; generate and deploy take turns
	mu sync.Mutex
}

func NewAgentHandler(
	contracts contract.UseCase,
	deployer agent.Deployer,
	denyList *policy.DenyList,
	oracles map[string]chain.GasOracle,
	spendCap chain.SpendCap,
	defaultNetwork string,
	log *zap.SugaredLogger,
) *AgentHandler {
	return &AgentHandler{
		contracts: contracts,
		deployer:  deployer,
		denyList:  denyList,
		oracles:   oracles,
		spendCap:  spendCap,
		network:   defaultNetwork,
		log:       log,
	}
}

type agentRequest struct {
	Action  string `json:"action"`
	Prompt  string `json:"prompt"`
	Code    string `json:"code"`
	Network string `json:"network"`
}

// Handle dispatches one agent action for the authenticated wallet.
// @Summary Generate, audit or deploy a contract
// @Tags    agent
// @Accept  json
// @Produce json
// @Param   input body agentRequest true "action payload (action = generate | audit | deploy)"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /agent [post]
func (h *AgentHandler) Handle(c *fiber.Ctx) error {
	var req agentRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	wallet, _ := c.Locals(jwt.WalletKey).(string)
	if err := h.denyList.Check(wallet); err != nil {
		h.log.Warnw("request blocked", "wallet", wallet, "reason", err)
		return presenter.Error(c, http.StatusForbidden, "Policy Violation: "+err.Error())
	}

	switch req.Action {
	case "generate":
		return h.generate(c, req)
	case "audit":
		return h.audit(c, req)
	case "deploy":
		return h.deploy(c, req)
	default:
		return presenter.Error(c, http.StatusBadRequest, "Invalid action")
	}
}

func (h *AgentHandler) generate(c *fiber.Ctx, req agentRequest) error {
	h.mu.Lock()
	gen, err := h.contracts.Generate(c.Context(), req.Prompt)
	h.mu.Unlock()
	if err != nil {
		return h.serviceError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"success": true,
		"id":      gen.ID.String(),
		"code":    gen.Source,
		"path":    gen.Path,
	})
}

func (h *AgentHandler) audit(c *fiber.Ctx, req agentRequest) error {
	if strings.TrimSpace(req.Code) == "" {
		return presenter.Error(c, http.StatusBadRequest, "code is required")
	}
	report, err := h.contracts.Audit(c.Context(), req.Code)
	if err != nil {
		return h.serviceError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"success": true, "report": report})
}

func (h *AgentHandler) deploy(c *fiber.Ctx, req agentRequest) error {
	network := req.Network
	if network == "" {
		network = h.network
	}
	name := deploy.NetworkName(network)

	oracle, ok := h.oracles[name]
	if !ok && h.spendCap.Limit > 0 {
		return presenter.Error(c, http.StatusBadRequest,
			fmt.Sprintf("unsupported network %q: no RPC configured to check the spend cap", network))
	}
	if ok {
		estimate, err := h.spendCap.Check(c.Context(), oracle)
		var capErr *chain.SpendCapError
		switch {
		case errors.As(err, &capErr):
			return presenter.Error(c, http.StatusForbidden, "Policy Violation: "+capErr.Error())
		case err != nil:
			return presenter.Error(c, http.StatusBadGateway, fmt.Sprintf("gas price lookup failed: %v", err))
		}
		h.log.Infow("estimated deploy cost", "network", name, "estimate", estimate.Text('f', 5), "cap", h.spendCap.Limit)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if req.Code != "" {
		if _, err := h.contracts.Artifact().Write(req.Code); err != nil {
			return presenter.Error(c, http.StatusInternalServerError, err.Error())
		}
	}
	res, err := h.deployer.Deploy(c.Context(), name)
	if err != nil {
		var failed *deploy.FailedError
		if errors.As(err, &failed) {
			return presenter.JSON(c, http.StatusInternalServerError, fiber.Map{
				"success": false,
				"error":   failed.Error(),
				"logs":    failed.Outcome.Stdout + failed.Outcome.Stderr,
			})
		}
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
	address := res.AddressHex()
	if address == "" {
		address = "Error: Address not found in logs"
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"success": true,
		"address": address,
		"logs":    res.Outcome.Stdout,
	})
}

func (h *AgentHandler) serviceError(c *fiber.Ctx, err error) error {
	var apiErr *contract.APIError
	if errors.As(err, &apiErr) {
		return presenter.Error(c, http.StatusBadGateway, "ChainGPT Error: "+apiErr.Message)
	}
	var transportErr *contract.TransportError
	if errors.As(err, &transportErr) {
		return presenter.Error(c, http.StatusBadGateway, "API Error: "+transportErr.Error())
	}
	h.log.Errorw("agent action failed", "error", err)
	return presenter.Error(c, http.StatusInternalServerError, err.Error())
}
