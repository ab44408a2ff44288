package swap_test

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/bazaar-network/bazaar-daemon/internal/core/application/swap"
	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
	localcustody "github.com/bazaar-network/bazaar-daemon/internal/infrastructure/custody/local"
	webhookpubsub "github.com/bazaar-network/bazaar-daemon/internal/infrastructure/pubsub/webhook"
	"github.com/bazaar-network/bazaar-daemon/internal/infrastructure/storage/db/inmemory"
)

var (
	registry     = common.HexToAddress("0xbBbBBBBbbBBBbbbbBbbBbbbbBBbBbbbbBbBbBBb1")
	initiator    = common.HexToAddress("0xBbbbbbBbbbBBBbBbBBBbBbbBBbBBBBbbBbbbBBb2")
	counterparty = common.HexToAddress("0xBbBBbbbbbBbbbbBBbBBbbbBbBBbbBbBBBbBbbbB3")
	tokenA       = common.HexToAddress("0xbBBBbbBBbBbbbbbbbBbBbbbBbBbbbbBBbBBBBBb4")
	tokenB       = common.HexToAddress("0xBBbbbBbbbbBbbBbbbbbBBbbBBbbBbbbBbBBbBbB5")

	amountA = uint64(100)
	amountB = uint64(200)
	salt    = uint64(1)
)

func newTestService(t *testing.T) (*swap.Service, *localcustody.Ledger) {
	t.Helper()

	repoManager, err := inmemory.NewRepoManager(0)
	require.NoError(t, err)

	ledger := localcustody.NewLedger(registry)
	svc, err := swap.NewService(
		repoManager, ledger, webhookpubsub.NewWebhookPubSubService(time.Second),
	)
	require.NoError(t, err)
	return svc, ledger
}

func fundBothLegs(ledger *localcustody.Ledger) {
	ledger.MintTokens(tokenA, initiator, amountA)
	ledger.IncreaseAllowance(tokenA, initiator, amountA)
	ledger.MintTokens(tokenB, counterparty, amountB)
	ledger.IncreaseAllowance(tokenB, counterparty, amountB)
}

func initiateTestSwap(
	t *testing.T, svc *swap.Service, ctx context.Context,
) common.Hash {
	t.Helper()

	id, err := svc.InitiateSwap(
		ctx, initiator, counterparty, tokenA, tokenB, amountA, amountB, salt,
	)
	require.NoError(t, err)
	return id
}

func TestInitiateSwap(t *testing.T) {
	t.Parallel()

	svc, ledger := newTestService(t)
	fundBothLegs(ledger)
	ctx := context.Background()

	id := initiateTestSwap(t, svc, ctx)
	require.Equal(t,
		domain.SwapId(initiator, counterparty, tokenA, tokenB, amountA, amountB, salt),
		id,
	)

	stored, err := svc.GetSwap(ctx, id)
	require.NoError(t, err)
	require.True(t, stored.IsPending())

	// no custody moves on initiation
	balance, err := ledger.BalanceOf(ctx, tokenA, initiator)
	require.NoError(t, err)
	require.Equal(t, amountA, balance)
}

func TestFailingInitiateSwap(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	initiateTestSwap(t, svc, ctx)

	// identical parameters map to the same occupied slot
	_, err := svc.InitiateSwap(
		ctx, initiator, counterparty, tokenA, tokenB, amountA, amountB, salt,
	)
	require.EqualError(t, err, domain.ErrSwapSlotOccupied.Error())

	// a different salt opens a fresh slot
	_, err = svc.InitiateSwap(
		ctx, initiator, counterparty, tokenA, tokenB, amountA, amountB, salt+1,
	)
	require.NoError(t, err)
}

func TestAcceptSwap(t *testing.T) {
	t.Parallel()

	svc, ledger := newTestService(t)
	fundBothLegs(ledger)
	ctx := context.Background()

	id := initiateTestSwap(t, svc, ctx)

	err := svc.AcceptSwap(ctx, counterparty, id)
	require.NoError(t, err)

	// both legs settled together
	balance, err := ledger.BalanceOf(ctx, tokenA, counterparty)
	require.NoError(t, err)
	require.Equal(t, amountA, balance)
	balance, err = ledger.BalanceOf(ctx, tokenB, initiator)
	require.NoError(t, err)
	require.Equal(t, amountB, balance)
	balance, err = ledger.BalanceOf(ctx, tokenA, initiator)
	require.NoError(t, err)
	require.Zero(t, balance)

	stored, err := svc.GetSwap(ctx, id)
	require.NoError(t, err)
	require.True(t, stored.Accepted)
}

func TestFailingAcceptSwap(t *testing.T) {
	t.Parallel()

	t.Run("caller_not_counterparty", func(t *testing.T) {
		t.Parallel()

		svc, ledger := newTestService(t)
		fundBothLegs(ledger)
		ctx := context.Background()

		id := initiateTestSwap(t, svc, ctx)

		err := svc.AcceptSwap(ctx, initiator, id)
		require.EqualError(t, err, domain.ErrNotCounterparty.Error())
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("already_accepted", func(t *testing.T) {
		t.Parallel()

		svc, ledger := newTestService(t)
		fundBothLegs(ledger)
		ctx := context.Background()

		id := initiateTestSwap(t, svc, ctx)
		err := svc.AcceptSwap(ctx, counterparty, id)
		require.NoError(t, err)

		err = svc.AcceptSwap(ctx, counterparty, id)
		require.EqualError(t, err, domain.ErrSwapAlreadyAccepted.Error())
	})

	t.Run("unknown_slot", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)

		err := svc.AcceptSwap(context.Background(), counterparty, common.Hash{})
		require.EqualError(t, err, domain.ErrSwapNotFound.Error())
	})

	t.Run("missing_allowance_rolls_back", func(t *testing.T) {
		t.Parallel()

		svc, ledger := newTestService(t)
		ledger.MintTokens(tokenA, initiator, amountA)
		ledger.IncreaseAllowance(tokenA, initiator, amountA)
		ledger.MintTokens(tokenB, counterparty, amountB)
		ctx := context.Background()

		id := initiateTestSwap(t, svc, ctx)

		err := svc.AcceptSwap(ctx, counterparty, id)
		require.ErrorIs(t, err, domain.ErrTransferRejected)

		// no balance moved, the swap is pending again
		balance, err := ledger.BalanceOf(ctx, tokenA, initiator)
		require.NoError(t, err)
		require.Equal(t, amountA, balance)
		balance, err = ledger.BalanceOf(ctx, tokenA, counterparty)
		require.NoError(t, err)
		require.Zero(t, balance)

		stored, err := svc.GetSwap(ctx, id)
		require.NoError(t, err)
		require.True(t, stored.IsPending())
	})
}

func TestCancelSwap(t *testing.T) {
	t.Parallel()

	svc, ledger := newTestService(t)
	fundBothLegs(ledger)
	ctx := context.Background()

	id := initiateTestSwap(t, svc, ctx)

	err := svc.CancelSwap(ctx, initiator, id)
	require.NoError(t, err)

	_, err = svc.GetSwap(ctx, id)
	require.EqualError(t, err, domain.ErrSwapNotFound.Error())
	err = svc.AcceptSwap(ctx, counterparty, id)
	require.EqualError(t, err, domain.ErrSwapNotFound.Error())

	// cancellation frees the slot for the same parameters
	reused := initiateTestSwap(t, svc, ctx)
	require.Equal(t, id, reused)
}

func TestFailingCancelSwap(t *testing.T) {
	t.Parallel()

	t.Run("caller_not_initiator", func(t *testing.T) {
		t.Parallel()

		svc, ledger := newTestService(t)
		fundBothLegs(ledger)
		ctx := context.Background()

		id := initiateTestSwap(t, svc, ctx)

		err := svc.CancelSwap(ctx, counterparty, id)
		require.EqualError(t, err, domain.ErrNotInitiator.Error())
		require.ErrorIs(t, err, domain.ErrUnauthorized)

		// the swap is still there and can be accepted
		err = svc.AcceptSwap(ctx, counterparty, id)
		require.NoError(t, err)
	})

	t.Run("already_accepted", func(t *testing.T) {
		t.Parallel()

		svc, ledger := newTestService(t)
		fundBothLegs(ledger)
		ctx := context.Background()

		id := initiateTestSwap(t, svc, ctx)
		err := svc.AcceptSwap(ctx, counterparty, id)
		require.NoError(t, err)

		err = svc.CancelSwap(ctx, initiator, id)
		require.EqualError(t, err, domain.ErrSwapAlreadyAccepted.Error())
	})

	t.Run("unknown_slot", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)

		err := svc.CancelSwap(context.Background(), initiator, common.Hash{})
		require.EqualError(t, err, domain.ErrSwapNotFound.Error())
	})
}
