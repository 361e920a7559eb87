package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/architect/pkg/security/jwt"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	cmd := NewCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(out)
	cmd.SetErr(out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMissingCredential(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "contracts")
	t.Setenv("CHAINGPT_API_KEY", "")
	t.Setenv("CHAINGPT_BASE_URL", "http://127.0.0.1:1")

	out, err := execute(t, "A token named PizzaCoin\ny\n", "--contracts-dir", dir)
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "Error: missing CHAINGPT_API_KEY")
	assert.NotContains(t, out, "What contract do you want")

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "no artifact directory may be created")
}

func TestInvalidSolidityVersion(t *testing.T) {
	t.Setenv("CHAINGPT_API_KEY", "key")

	out, err := execute(t, "", "--solidity-version", "not a version", "--contracts-dir", t.TempDir())
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "invalid SOLIDITY_VERSION")
}

func TestNetworks(t *testing.T) {
	t.Setenv("RPC_TESTNET", "http://localhost:8545")

	out, err := execute(t, "", "networks", "--deploy-network", "mainnet")
	require.NoError(t, err)
	assert.Contains(t, out, "bscTestnet")
	assert.Contains(t, out, "http://localhost:8545")
	assert.Contains(t, out, "bscMainnet")
}

func TestToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	const wallet = "0x9df95d6b0fa0f09c6a90b60d1b7f79167195edb1"

	out, err := execute(t, "", "token", wallet)
	require.NoError(t, err)
	token := strings.TrimSpace(out)
	assert.NotEmpty(t, token)

	claims := &jwt.Claims{}
	parsed, err := jwtlib.ParseWithClaims(token, claims, func(*jwtlib.Token) (any, error) {
		return []byte("cli-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, wallet, claims.Subject)
	assert.Equal(t, "architect", claims.Issuer)

	_, err = execute(t, "", "token", "nope")
	require.Error(t, err)
}
