// Package agent drives the interactive generate-then-deploy session.
package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/artem13815/architect/pkg/contract"
	"github.com/artem13815/architect/pkg/deploy"
)

// State is a terminal state of one session.
type State string

const (
	StateConfigError  State = "REPORT_CONFIG_ERROR"
	StateInputError   State = "REPORT_INPUT_ERROR"
	StateAPIError     State = "REPORT_API_ERROR"
	StateDeployError  State = "REPORT_DEPLOY_ERROR"
	StateDoneNoDeploy State = "DONE_NO_DEPLOY"
	StateDone         State = "DONE"
)

// Failed reports whether the session ended on an error path.
func (s State) Failed() bool {
	switch s {
	case StateConfigError, StateInputError, StateAPIError, StateDeployError:
		return true
	}
	return false
}

const previewLen = 200

// Deployer is the dispatcher seen from the session.
type Deployer interface {
	Deploy(ctx context.Context, network string) (deploy.Result, error)
}

// Agent runs one session: ask, generate, save, then deploy on confirmation.
type Agent struct {
	contracts contract.UseCase
	deployer  Deployer
	network   string
	in        *bufio.Reader
	out       io.Writer
	log       *zap.SugaredLogger
}

func New(contracts contract.UseCase, deployer Deployer, network string, in io.Reader, out io.Writer, log *zap.SugaredLogger) *Agent {
	return &Agent{
		contracts: contracts,
		deployer:  deployer,
		network:   network,
		in:        bufio.NewReader(in),
		out:       out,
		log:       log,
	}
}

// ReportConfigError prints the configuration failure. Nothing else happens
// in a session that ends here.
func ReportConfigError(out io.Writer, err error) State {
	fmt.Fprintf(out, "Error: %v\n", err)
	return StateConfigError
}

// Run blocks on the console and the external calls in turn and returns the
// terminal state reached. The returned error is non-nil for failure states.
func (a *Agent) Run(ctx context.Context) (State, error) {
	fmt.Fprintln(a.out, "\nWEB3 ARCHITECT AGENT (ChainGPT + Hardhat)")
	fmt.Fprintln(a.out, "-----------------------------------------")
	prompt, err := a.ask(">> What contract do you want? (e.g. 'A token named PizzaCoin'): ")
	if err != nil {
		fmt.Fprintf(a.out, "\nError: %v\n", err)
		return StateInputError, err
	}

	fmt.Fprintln(a.out, "\nGenerating smart contract code...")
	gen, err := a.contracts.Generate(ctx, prompt)
	if err != nil {
		var apiErr *contract.APIError
		var transportErr *contract.TransportError
		switch {
		case errors.As(err, &apiErr):
			fmt.Fprintf(a.out, "ChainGPT Error: %s\n", apiErr.Message)
		case errors.As(err, &transportErr):
			fmt.Fprintf(a.out, "API Error: %v\n", transportErr.Err)
		default:
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
		return StateAPIError, err
	}

	fmt.Fprintf(a.out, "Code saved to: %s\n", gen.Path)
	fmt.Fprintln(a.out, "\n--- PREVIEW ---")
	fmt.Fprintf(a.out, "%s\n\n", contract.Preview(gen.Source, previewLen))

	answer, err := a.ask(fmt.Sprintf(">> Deploy to %s now? (y/n): ", deploy.NetworkName(a.network)))
	if err != nil {
		fmt.Fprintf(a.out, "\nError: %v\n", err)
		return StateInputError, err
	}
	if !strings.EqualFold(answer, "y") {
		fmt.Fprintln(a.out, "Creating contract only. Done.")
		return StateDoneNoDeploy, nil
	}

	fmt.Fprintln(a.out, "\nTriggering Hardhat deployment...")
	res, err := a.deployer.Deploy(ctx, a.network)
	if err != nil {
		fmt.Fprintf(a.out, "Deployment Failed: %v\n", err)
		return StateDeployError, err
	}
	if addr := res.AddressHex(); addr != "" {
		fmt.Fprintf(a.out, "Contract deployed to: %s\n", addr)
	}
	a.log.Debugw("session finished", "id", gen.ID, "network", res.Network)
	return StateDone, nil
}

// ask prints a prompt and reads one line. End of input counts as an empty answer.
func (a *Agent) ask(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read console: %w", err)
	}
	return strings.TrimSpace(line), nil
}
