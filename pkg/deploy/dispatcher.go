package deploy

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

var deployedTo = regexp.MustCompile(`deployed to: (0x[a-fA-F0-9]{40})`)

var networkAliases = map[string]string{
	"testnet":    "bscTestnet",
	"mainnet":    "bscMainnet",
	"bsctestnet": "bscTestnet",
	"bscmainnet": "bscMainnet",
}

// NetworkName maps the short aliases and any casing of the BSC network names
// onto Hardhat network names. Anything else is passed through.
func NetworkName(network string) string {
	if n, ok := networkAliases[strings.ToLower(network)]; ok {
		return n
	}
	return network
}

// Result of a successful deployment.
type Result struct {
	Network string
	Address *common.Address
	Outcome Outcome
}

// AddressHex returns the checksummed address, or "" if the logs had none.
func (r Result) AddressHex() string {
	if r.Address == nil {
		return ""
	}
	return r.Address.Hex()
}

// FailedError is returned when the deploy process exits non-zero.
type FailedError struct {
	Command Command
	Outcome Outcome
}

func (e *FailedError) Error() string {
	detail := strings.TrimSpace(e.Outcome.Stderr)
	if detail == "" {
		detail = strings.TrimSpace(e.Outcome.Stdout)
	}
	msg := fmt.Sprintf("%q exited with status %d", e.Command.String(), e.Outcome.ExitCode)
	if detail != "" {
		msg += ": " + lastLine(detail)
	}
	return msg
}

// Dispatcher runs the Hardhat deployment script against a network.
type Dispatcher struct {
	runner Runner
	binary string
	script string
	dir    string
	log    *zap.SugaredLogger
}

func NewDispatcher(runner Runner, binary, script, dir string, log *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{runner: runner, binary: binary, script: script, dir: dir, log: log}
}

// Command returns the invocation used for network.
func (d *Dispatcher) Command(network string) Command {
	return Command{
		Binary: d.binary,
		Args:   []string{"hardhat", "run", d.script, "--network", NetworkName(network)},
		Dir:    d.dir,
	}
}

// Deploy blocks until the deploy process finishes. There is no retry and
// the artifact on disk is never touched.
func (d *Dispatcher) Deploy(ctx context.Context, network string) (Result, error) {
	cmd := d.Command(network)
	d.log.Infow("running deployment", "command", cmd.String())

	out, err := d.runner.Run(ctx, cmd)
	if err != nil {
		return Result{}, err
	}
	if !out.Success() {
		d.log.Warnw("deployment failed", "exitCode", out.ExitCode, "duration", out.Duration)
		return Result{}, &FailedError{Command: cmd, Outcome: out}
	}

	res := Result{Network: NetworkName(network), Outcome: out, Address: ParseAddress(out.Stdout)}
	d.log.Infow("deployment finished", "address", res.AddressHex(), "duration", out.Duration)
	return res, nil
}

// ParseAddress finds the "deployed to: 0x..." line printed by the deploy script.
func ParseAddress(logs string) *common.Address {
	m := deployedTo.FindStringSubmatch(logs)
	if m == nil {
		return nil
	}
	addr := common.HexToAddress(m[1])
	return &addr
}

func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
