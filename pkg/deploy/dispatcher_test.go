package deploy_test

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/architect/pkg/deploy"
	"github.com/artem13815/architect/pkg/logger"
)

type stubRunner struct {
	out   deploy.Outcome
	err   error
	calls []deploy.Command
}

func (s *stubRunner) Run(_ context.Context, cmd deploy.Command) (deploy.Outcome, error) {
	s.calls = append(s.calls, cmd)
	return s.out, s.err
}

func TestNetworkName(t *testing.T) {
	assert.Equal(t, "bscTestnet", deploy.NetworkName("testnet"))
	assert.Equal(t, "bscMainnet", deploy.NetworkName("MAINNET"))
	assert.Equal(t, "bscTestnet", deploy.NetworkName("BSCTESTNET"))
	assert.Equal(t, "bscTestnet", deploy.NetworkName("bscTestnet"))
	assert.Equal(t, "sepolia", deploy.NetworkName("sepolia"))
}

func TestDeploy(t *testing.T) {
	t.Run("success parses the address", func(t *testing.T) {
		runner := &stubRunner{out: deploy.Outcome{
			Stdout: "Hardhat: Deploying GenContract...\nSUCCESS! Contract deployed to: 0x3afad2accbb4825a428c84f27a64d061660c0104\n",
		}}
		d := deploy.NewDispatcher(runner, "npx", "scripts/deploy.cjs", "", logger.Nop())

		res, err := d.Deploy(context.Background(), "testnet")
		require.NoError(t, err)
		assert.Equal(t, "bscTestnet", res.Network)
		assert.True(t, strings.EqualFold("0x3afad2accbb4825a428c84f27a64d061660c0104", res.AddressHex()))

		require.Len(t, runner.calls, 1)
		assert.Equal(t, "npx", runner.calls[0].Binary)
		assert.Equal(t, []string{"hardhat", "run", "scripts/deploy.cjs", "--network", "bscTestnet"}, runner.calls[0].Args)
	})

	t.Run("non-zero exit is a failure", func(t *testing.T) {
		runner := &stubRunner{out: deploy.Outcome{ExitCode: 1, Stderr: "Error: insufficient funds\nHH110: Invalid JSON-RPC response"}}
		d := deploy.NewDispatcher(runner, "npx", "scripts/deploy.cjs", "", logger.Nop())

		_, err := d.Deploy(context.Background(), "mainnet")
		var failed *deploy.FailedError
		require.ErrorAs(t, err, &failed)
		assert.Equal(t, 1, failed.Outcome.ExitCode)
		assert.Contains(t, err.Error(), "HH110: Invalid JSON-RPC response")
	})

	t.Run("start failure is returned as is", func(t *testing.T) {
		runner := &stubRunner{err: errors.New("start npx: executable file not found")}
		d := deploy.NewDispatcher(runner, "npx", "scripts/deploy.cjs", "", logger.Nop())

		_, err := d.Deploy(context.Background(), "testnet")
		require.EqualError(t, err, "start npx: executable file not found")
	})
}

func TestParseAddress(t *testing.T) {
	assert.Nil(t, deploy.ParseAddress("nothing here"))
	addr := deploy.ParseAddress("deployed to: 0x0000000000000000000000000000000000000001")
	require.NotNil(t, addr)
	assert.Equal(t, "0x0000000000000000000000000000000000000001", addr.Hex())
}

func TestExecRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	r := deploy.ExecRunner{}

	out, err := r.Run(context.Background(), deploy.Command{Binary: "sh", Args: []string{"-c", "echo ok; echo bad >&2; exit 3"}})
	require.NoError(t, err)
	assert.Equal(t, 3, out.ExitCode)
	assert.False(t, out.Success())
	assert.Equal(t, "ok\n", out.Stdout)
	assert.Equal(t, "bad\n", out.Stderr)

	_, err = r.Run(context.Background(), deploy.Command{Binary: "definitely-not-a-real-binary-42"})
	require.Error(t, err)
}
