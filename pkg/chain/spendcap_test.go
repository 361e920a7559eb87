package chain_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/architect/pkg/chain"
)

type fixedOracle struct {
	price *big.Int
	err   error
}

func (o fixedOracle) SuggestGasPrice(context.Context) (*big.Int, error) { return o.price, o.err }

func gwei(n int64) *big.Int { return new(big.Int).Mul(big.NewInt(n), big.NewInt(1_000_000_000)) }

func TestEstimateDeployCost(t *testing.T) {
	// 3M gas at 5 gwei = 0.015
	cost := chain.EstimateDeployCost(gwei(5), 3_000_000)
	f, _ := cost.Float64()
	assert.InDelta(t, 0.015, f, 1e-12)
}

func TestSpendCapCheck(t *testing.T) {
	limit := chain.SpendCap{Limit: 0.05, GasLimit: 3_000_000}

	t.Run("under the cap", func(t *testing.T) {
		est, err := limit.Check(context.Background(), fixedOracle{price: gwei(5)})
		require.NoError(t, err)
		f, _ := est.Float64()
		assert.InDelta(t, 0.015, f, 1e-12)
	})

	t.Run("over the cap", func(t *testing.T) {
		_, err := limit.Check(context.Background(), fixedOracle{price: gwei(20)})
		var capErr *chain.SpendCapError
		require.ErrorAs(t, err, &capErr)
		assert.Contains(t, err.Error(), "0.06000")
	})

	t.Run("zero limit disables the cap", func(t *testing.T) {
		_, err := chain.SpendCap{GasLimit: 3_000_000}.Check(context.Background(), fixedOracle{price: gwei(1000)})
		require.NoError(t, err)
	})

	t.Run("oracle error", func(t *testing.T) {
		_, err := limit.Check(context.Background(), fixedOracle{err: errors.New("rpc down")})
		require.EqualError(t, err, "rpc down")
	})
}
