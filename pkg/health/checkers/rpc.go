package checkers

import (
	"context"
	"math/big"
	"time"
)

// ChainIDer is satisfied by chain.Client.
type ChainIDer interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// RPCChecker probes an EVM JSON-RPC node used for deploy cost estimates.
type RPCChecker struct {
	network string
	node    ChainIDer
}

func NewRPCChecker(network string, node ChainIDer) *RPCChecker {
	return &RPCChecker{network: network, node: node}
}

func (c *RPCChecker) Name() string { return "rpc:" + c.network }

func (c *RPCChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	_, err := c.node.ChainID(ctx)
	return err
}
