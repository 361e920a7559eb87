package policy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrNoWallet      = errors.New("no authenticated wallet found")
	ErrInvalidWallet = errors.New("wallet address is not a valid hex address")
	ErrDenied        = errors.New("wallet address is denylisted")
)

// DenyList blocks wallet addresses from using the agent endpoint.
type DenyList struct {
	denied map[common.Address]struct{}
}

func NewDenyList(addresses []string) (*DenyList, error) {
	d := &DenyList{denied: make(map[common.Address]struct{}, len(addresses))}
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if !common.IsHexAddress(a) {
			return nil, fmt.Errorf("deny list entry %q: %w", a, ErrInvalidWallet)
		}
		d.denied[common.HexToAddress(a)] = struct{}{}
	}
	return d, nil
}

// Check lets a wallet through unless it is missing, malformed or denied.
// Comparison ignores hex case.
func (d *DenyList) Check(wallet string) error {
	wallet = strings.TrimSpace(wallet)
	if wallet == "" {
		return ErrNoWallet
	}
	if !common.IsHexAddress(wallet) {
		return ErrInvalidWallet
	}
	if _, ok := d.denied[common.HexToAddress(wallet)]; ok {
		return ErrDenied
	}
	return nil
}

func (d *DenyList) Len() int { return len(d.denied) }
