package marketplace_test

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/bazaar-network/bazaar-daemon/internal/core/application/marketplace"
	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
	localcustody "github.com/bazaar-network/bazaar-daemon/internal/infrastructure/custody/local"
	"github.com/bazaar-network/bazaar-daemon/internal/infrastructure/guard"
	webhookpubsub "github.com/bazaar-network/bazaar-daemon/internal/infrastructure/pubsub/webhook"
	"github.com/bazaar-network/bazaar-daemon/internal/infrastructure/storage/db/inmemory"
)

var (
	registry      = common.HexToAddress("0xaaaAAAaAaAAAAaAaaAAAAaaaAAaAaaaaAAAAaAa1")
	feeOwner      = common.HexToAddress("0xaaaAAAAAAAaAaaaaaAaaAaAAaaaaaAaAaAAaAAa2")
	seller        = common.HexToAddress("0xAaAaaAaAAAaaAAaaAaaAAAaaaAAAAAAAAAAAAAa3")
	buyer         = common.HexToAddress("0xAaaaAaaaAAaAAaAaaaAaaAAAaAaaAaAAAAaAAAa4")
	assetContract = common.HexToAddress("0xaaAAAaaAAAAAaaAAAaaaaaAaAAaaAaaAAaAAAaa5")

	assetId = uint64(7)
	price   = uint64(1000)
)

func newTestService(t *testing.T) (*marketplace.Service, *localcustody.Ledger) {
	t.Helper()

	repoManager, err := inmemory.NewRepoManager(5)
	require.NoError(t, err)

	ledger := localcustody.NewLedger(registry)
	svc, err := marketplace.NewService(
		repoManager,
		ledger,
		guard.NewSingleOwnerGuard(feeOwner),
		webhookpubsub.NewWebhookPubSubService(time.Second),
		registry,
	)
	require.NoError(t, err)
	return svc, ledger
}

func mintAndApprove(ledger *localcustody.Ledger, owner common.Address) {
	ledger.MintAsset(assetContract, assetId, owner)
	ledger.ApproveAsset(assetContract, assetId)
}

func TestListAsset(t *testing.T) {
	t.Parallel()

	svc, ledger := newTestService(t)
	mintAndApprove(ledger, seller)
	ctx := context.Background()

	id, err := svc.ListAsset(ctx, seller, assetContract, assetId, price)
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)

	// the registry escrows the asset while it is for sale
	owner, err := ledger.OwnerOf(ctx, assetContract, assetId)
	require.NoError(t, err)
	require.Equal(t, registry, owner)

	listing, err := svc.GetListing(ctx, id)
	require.NoError(t, err)
	require.True(t, listing.IsForSale)
	require.Equal(t, seller, listing.Seller)
	require.Equal(t, price, listing.Price)
}

func TestFailingListAsset(t *testing.T) {
	t.Parallel()

	t.Run("zero_price", func(t *testing.T) {
		t.Parallel()

		svc, ledger := newTestService(t)
		mintAndApprove(ledger, seller)

		_, err := svc.ListAsset(context.Background(), seller, assetContract, assetId, 0)
		require.EqualError(t, err, domain.ErrZeroPrice.Error())
	})

	t.Run("caller_not_owner", func(t *testing.T) {
		t.Parallel()

		svc, ledger := newTestService(t)
		mintAndApprove(ledger, seller)

		_, err := svc.ListAsset(context.Background(), buyer, assetContract, assetId, price)
		require.EqualError(t, err, domain.ErrNotAssetOwner.Error())
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("missing_approval_rolls_back", func(t *testing.T) {
		t.Parallel()

		svc, ledger := newTestService(t)
		ledger.MintAsset(assetContract, assetId, seller)
		ctx := context.Background()

		_, err := svc.ListAsset(ctx, seller, assetContract, assetId, price)
		require.ErrorIs(t, err, domain.ErrTransferRejected)

		// the rejected escrow leaves no listing behind and the seller in custody
		_, err = svc.GetListing(ctx, 1)
		require.ErrorIs(t, err, domain.ErrListingNotFound)
		owner, err := ledger.OwnerOf(ctx, assetContract, assetId)
		require.NoError(t, err)
		require.Equal(t, seller, owner)

		// the reclaimed id is handed out again once the listing succeeds
		ledger.ApproveAsset(assetContract, assetId)
		id, err := svc.ListAsset(ctx, seller, assetContract, assetId, price)
		require.NoError(t, err)
		require.Equal(t, uint64(1), id)
	})
}

func TestDelistAsset(t *testing.T) {
	t.Parallel()

	svc, ledger := newTestService(t)
	mintAndApprove(ledger, seller)
	ctx := context.Background()

	id, err := svc.ListAsset(ctx, seller, assetContract, assetId, price)
	require.NoError(t, err)

	err = svc.DelistAsset(ctx, seller, id)
	require.NoError(t, err)

	owner, err := ledger.OwnerOf(ctx, assetContract, assetId)
	require.NoError(t, err)
	require.Equal(t, seller, owner)

	listing, err := svc.GetListing(ctx, id)
	require.NoError(t, err)
	require.False(t, listing.IsForSale)
}

func TestFailingDelistAsset(t *testing.T) {
	t.Parallel()

	svc, ledger := newTestService(t)
	mintAndApprove(ledger, seller)
	ctx := context.Background()

	id, err := svc.ListAsset(ctx, seller, assetContract, assetId, price)
	require.NoError(t, err)

	err = svc.DelistAsset(ctx, buyer, id)
	require.EqualError(t, err, domain.ErrNotSeller.Error())

	err = svc.DelistAsset(ctx, seller, id)
	require.NoError(t, err)

	// a closed listing cannot be delisted again
	err = svc.DelistAsset(ctx, seller, id)
	require.EqualError(t, err, domain.ErrListingClosed.Error())

	err = svc.DelistAsset(ctx, seller, 42)
	require.EqualError(t, err, domain.ErrListingNotFound.Error())
}

func TestFulfillListing(t *testing.T) {
	t.Parallel()

	svc, ledger := newTestService(t)
	mintAndApprove(ledger, seller)
	ledger.FundValue(buyer, price)
	ctx := context.Background()

	id, err := svc.ListAsset(ctx, seller, assetContract, assetId, price)
	require.NoError(t, err)

	err = svc.FulfillListing(ctx, buyer, id, price)
	require.NoError(t, err)

	// custody to the buyer, proceeds minus the 5% fee to the seller
	owner, err := ledger.OwnerOf(ctx, assetContract, assetId)
	require.NoError(t, err)
	require.Equal(t, buyer, owner)
	require.Equal(t, uint64(950), ledger.ValueBalance(seller))
	require.Equal(t, uint64(50), ledger.ValueBalance(registry))
	require.Zero(t, ledger.ValueBalance(buyer))

	listing, err := svc.GetListing(ctx, id)
	require.NoError(t, err)
	require.False(t, listing.IsForSale)

	// the sale shows up in both parties' history
	for _, account := range []common.Address{buyer, seller} {
		trades, err := svc.GetUserTrades(ctx, account)
		require.NoError(t, err)
		require.Equal(t, []uint64{id}, trades)
	}
}

func TestFailingFulfillListing(t *testing.T) {
	t.Parallel()

	t.Run("price_mismatch", func(t *testing.T) {
		t.Parallel()

		svc, ledger := newTestService(t)
		mintAndApprove(ledger, seller)
		ledger.FundValue(buyer, 2*price)
		ctx := context.Background()

		id, err := svc.ListAsset(ctx, seller, assetContract, assetId, price)
		require.NoError(t, err)

		err = svc.FulfillListing(ctx, buyer, id, price-1)
		require.EqualError(t, err, domain.ErrPriceMismatch.Error())
		err = svc.FulfillListing(ctx, buyer, id, price+1)
		require.EqualError(t, err, domain.ErrPriceMismatch.Error())

		listing, err := svc.GetListing(ctx, id)
		require.NoError(t, err)
		require.True(t, listing.IsForSale)
	})

	t.Run("already_fulfilled", func(t *testing.T) {
		t.Parallel()

		svc, ledger := newTestService(t)
		mintAndApprove(ledger, seller)
		ledger.FundValue(buyer, 2*price)
		ctx := context.Background()

		id, err := svc.ListAsset(ctx, seller, assetContract, assetId, price)
		require.NoError(t, err)
		err = svc.FulfillListing(ctx, buyer, id, price)
		require.NoError(t, err)

		err = svc.FulfillListing(ctx, buyer, id, price)
		require.EqualError(t, err, domain.ErrListingClosed.Error())
	})

	t.Run("rejected_payout_rolls_back", func(t *testing.T) {
		t.Parallel()

		svc, ledger := newTestService(t)
		mintAndApprove(ledger, seller)
		ledger.FundValue(buyer, price)
		ledger.RejectValue(seller)
		ctx := context.Background()

		id, err := svc.ListAsset(ctx, seller, assetContract, assetId, price)
		require.NoError(t, err)

		err = svc.FulfillListing(ctx, buyer, id, price)
		require.ErrorIs(t, err, domain.ErrTransferRejected)

		// nothing moved and the listing is back for sale
		listing, err := svc.GetListing(ctx, id)
		require.NoError(t, err)
		require.True(t, listing.IsForSale)
		owner, err := ledger.OwnerOf(ctx, assetContract, assetId)
		require.NoError(t, err)
		require.Equal(t, registry, owner)
		require.Equal(t, price, ledger.ValueBalance(buyer))
		require.Zero(t, ledger.ValueBalance(seller))

		trades, err := svc.GetUserTrades(ctx, buyer)
		require.NoError(t, err)
		require.Empty(t, trades)
	})

	t.Run("insufficient_attached_funds", func(t *testing.T) {
		t.Parallel()

		svc, ledger := newTestService(t)
		mintAndApprove(ledger, seller)
		ledger.FundValue(buyer, price-1)
		ctx := context.Background()

		id, err := svc.ListAsset(ctx, seller, assetContract, assetId, price)
		require.NoError(t, err)

		err = svc.FulfillListing(ctx, buyer, id, price)
		require.ErrorIs(t, err, domain.ErrTransferRejected)

		listing, err := svc.GetListing(ctx, id)
		require.NoError(t, err)
		require.True(t, listing.IsForSale)
	})
}

func TestSetPercentageFee(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	err := svc.SetPercentageFee(ctx, feeOwner, 10)
	require.NoError(t, err)

	err = svc.SetPercentageFee(ctx, seller, 10)
	require.EqualError(t, err, domain.ErrNotGuardOwner.Error())

	err = svc.SetPercentageFee(ctx, feeOwner, 101)
	require.EqualError(t, err, domain.ErrFeeOutOfRange.Error())
}

func TestWithdrawFees(t *testing.T) {
	t.Parallel()

	svc, ledger := newTestService(t)
	mintAndApprove(ledger, seller)
	ledger.FundValue(buyer, price)
	ctx := context.Background()

	id, err := svc.ListAsset(ctx, seller, assetContract, assetId, price)
	require.NoError(t, err)
	err = svc.FulfillListing(ctx, buyer, id, price)
	require.NoError(t, err)

	amount, err := svc.WithdrawFees(ctx, feeOwner)
	require.NoError(t, err)
	require.Equal(t, uint64(50), amount)
	require.Equal(t, uint64(50), ledger.ValueBalance(feeOwner))
	require.Zero(t, ledger.ValueBalance(registry))

	// the vault is empty after a full withdrawal
	amount, err = svc.WithdrawFees(ctx, feeOwner)
	require.NoError(t, err)
	require.Zero(t, amount)
}

func TestFailingWithdrawFees(t *testing.T) {
	t.Parallel()

	svc, ledger := newTestService(t)
	mintAndApprove(ledger, seller)
	ledger.FundValue(buyer, price)
	ledger.RejectValue(feeOwner)
	ctx := context.Background()

	id, err := svc.ListAsset(ctx, seller, assetContract, assetId, price)
	require.NoError(t, err)
	err = svc.FulfillListing(ctx, buyer, id, price)
	require.NoError(t, err)

	_, err = svc.WithdrawFees(ctx, seller)
	require.EqualError(t, err, domain.ErrNotGuardOwner.Error())

	_, err = svc.WithdrawFees(ctx, feeOwner)
	require.ErrorIs(t, err, domain.ErrTransferRejected)
	require.Equal(t, uint64(50), ledger.ValueBalance(registry))
}
