package chain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/params"
	"github.com/ethereum/go-ethereum/rpc"
)

// GasOracle is the part of an EVM node the spend cap needs.
type GasOracle interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
}

// Client is a thin JSON-RPC client for one EVM network.
type Client struct {
	eth *ethclient.Client
	rpc *rpc.Client
}

var _ GasOracle = (*Client)(nil)

func Dial(ctx context.Context, url string) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial rpc %s: %w", url, err)
	}
	return &Client{eth: ethclient.NewClient(client), rpc: client}, nil
}

func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	price, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("eth_gasPrice: %w", err)
	}
	return price, nil
}

func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	return c.eth.ChainID(ctx)
}

func (c *Client) Close() { c.rpc.Close() }

// ToEther converts wei into whole native units (BNB on BSC).
func ToEther(wei *big.Int) *big.Float {
	return new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(params.Ether))
}

// EstimateDeployCost is gasPrice * gasLimit expressed in native units.
func EstimateDeployCost(gasPrice *big.Int, gasLimit uint64) *big.Float {
	wei := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(gasLimit))
	return ToEther(wei)
}
