package domain_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
)

var (
	initiator    = common.HexToAddress("0x3333333333333333333333333333333333333333")
	counterparty = common.HexToAddress("0x4444444444444444444444444444444444444444")
	tokenA       = common.HexToAddress("0x5555555555555555555555555555555555555555")
	tokenB       = common.HexToAddress("0x6666666666666666666666666666666666666666")
)

func TestNewSwap(t *testing.T) {
	t.Parallel()

	swap := domain.NewSwap(initiator, counterparty, tokenA, tokenB, 100, 200, 1)
	require.NotNil(t, swap)
	require.True(t, swap.IsPending())
	require.Equal(t,
		domain.SwapId(initiator, counterparty, tokenA, tokenB, 100, 200, 1),
		swap.Id,
	)
}

func TestSwapIdDerivation(t *testing.T) {
	t.Parallel()

	id := domain.SwapId(initiator, counterparty, tokenA, tokenB, 100, 200, 1)

	// identical parameters always map to the same slot
	require.Equal(t, id, domain.SwapId(initiator, counterparty, tokenA, tokenB, 100, 200, 1))

	others := []common.Hash{
		domain.SwapId(counterparty, initiator, tokenA, tokenB, 100, 200, 1),
		domain.SwapId(initiator, counterparty, tokenB, tokenA, 100, 200, 1),
		domain.SwapId(initiator, counterparty, tokenA, tokenB, 200, 100, 1),
		domain.SwapId(initiator, counterparty, tokenA, tokenB, 100, 200, 2),
	}
	for _, other := range others {
		require.NotEqual(t, id, other)
	}
}

func TestAcceptSwap(t *testing.T) {
	t.Parallel()

	swap := domain.NewSwap(initiator, counterparty, tokenA, tokenB, 100, 200, 1)

	err := swap.Accept()
	require.NoError(t, err)
	require.True(t, swap.Accepted)
	require.False(t, swap.IsPending())

	err = swap.Accept()
	require.EqualError(t, err, domain.ErrSwapAlreadyAccepted.Error())
}
