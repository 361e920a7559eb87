package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/architect/pkg/policy"
)

func TestDenyList(t *testing.T) {
	d, err := policy.NewDenyList([]string{"0xdead00000000000000000000000000000000beef"})
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())

	assert.ErrorIs(t, d.Check(""), policy.ErrNoWallet)
	assert.ErrorIs(t, d.Check("not-a-wallet"), policy.ErrInvalidWallet)
	assert.ErrorIs(t, d.Check("0xDEAD00000000000000000000000000000000BEEF"), policy.ErrDenied)
	assert.NoError(t, d.Check("0x9df95d6b0fa0f09c6a90b60d1b7f79167195edb1"))
}

func TestNewDenyListRejectsGarbage(t *testing.T) {
	_, err := policy.NewDenyList([]string{"0x123"})
	assert.ErrorIs(t, err, policy.ErrInvalidWallet)
}
