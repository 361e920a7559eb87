package chain

import (
	"context"
	"fmt"
	"math/big"
)

// SpendCap refuses deployments whose worst-case gas cost exceeds Limit.
// GasLimit is a conservative budget for a contract creation.
type SpendCap struct {
	Limit    float64
	GasLimit uint64
}

type SpendCapError struct {
	Estimated *big.Float
	Limit     float64
}

func (e *SpendCapError) Error() string {
	return fmt.Sprintf("spend cap exceeded: estimated %s > cap %g", e.Estimated.Text('f', 5), e.Limit)
}

// Check asks the oracle for the current gas price and returns the estimate.
// A zero Limit disables the cap.
func (s SpendCap) Check(ctx context.Context, oracle GasOracle) (*big.Float, error) {
	price, err := oracle.SuggestGasPrice(ctx)
	if err != nil {
		return nil, err
	}
	estimate := EstimateDeployCost(price, s.GasLimit)
	if s.Limit > 0 && estimate.Cmp(big.NewFloat(s.Limit)) > 0 {
		return estimate, &SpendCapError{Estimated: estimate, Limit: s.Limit}
	}
	return estimate, nil
}
