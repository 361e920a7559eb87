package health_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/architect/pkg/health"
	"github.com/artem13815/architect/pkg/health/checkers"
)

type node struct{ err error }

func (n node) ChainID(context.Context) (*big.Int, error) { return big.NewInt(97), n.err }

func TestReady(t *testing.T) {
	svc := health.NewService(
		checkers.NewRPCChecker("testnet", node{}),
		checkers.NewRPCChecker("mainnet", node{err: errors.New("connection refused")}),
	)

	statuses, err := svc.Ready(context.Background())
	require.EqualError(t, err, "rpc:mainnet: connection refused")
	require.Len(t, statuses, 2)
	assert.True(t, statuses[0].Ready)
	assert.False(t, statuses[1].Ready)
	assert.Equal(t, "connection refused", statuses[1].Error)
}

func TestReadyWithoutCheckers(t *testing.T) {
	statuses, err := health.NewService().Ready(context.Background())
	require.NoError(t, err)
	assert.Empty(t, statuses)
}
