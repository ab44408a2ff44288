package dbbadger_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
	"github.com/bazaar-network/bazaar-daemon/internal/core/ports"
	dbbadger "github.com/bazaar-network/bazaar-daemon/internal/infrastructure/storage/db/badger"
)

var (
	assetContract = common.HexToAddress("0xEeeEeEEEeEeeEEeeeEEeEEEEeeEEeeeEeeEEEEe1")
	seller        = common.HexToAddress("0xeEEeEeeEeeEEEeEeEEEeEeeEEeEEEEeeEeeeEEe2")
	buyer         = common.HexToAddress("0xEeEEeeeeEeeeeEEEeEEeeeeEEeEeEeeeeEeEEeE3")
)

// the empty datadir keeps the whole store in memory
func newTestRepoManager(t *testing.T) ports.RepoManager {
	t.Helper()

	repoManager, err := dbbadger.NewRepoManager("", nil, 5)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)
	return repoManager
}

func TestListingRepository(t *testing.T) {
	t.Parallel()

	repo := newTestRepoManager(t).ListingRepository()
	ctx := context.Background()

	listing, err := domain.NewListing(assetContract, 7, 1000, seller)
	require.NoError(t, err)

	id, err := repo.AddListing(ctx, listing)
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)

	err = repo.UpdateListing(ctx, id, func(l *domain.Listing) (*domain.Listing, error) {
		return l, l.Close()
	})
	require.NoError(t, err)

	stored, err := repo.GetListing(ctx, id)
	require.NoError(t, err)
	require.False(t, stored.IsForSale)
	require.Equal(t, seller, stored.Seller)

	all, err := repo.GetAllListings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	_, err = repo.GetListing(ctx, 42)
	require.EqualError(t, err, domain.ErrListingNotFound.Error())

	err = repo.RemoveListing(ctx, id)
	require.NoError(t, err)

	// the reclaimed id is handed out again
	next, err := domain.NewListing(assetContract, 8, 1000, seller)
	require.NoError(t, err)
	id, err = repo.AddListing(ctx, next)
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)
}

func TestSwapRepository(t *testing.T) {
	t.Parallel()

	repo := newTestRepoManager(t).SwapRepository()
	ctx := context.Background()

	swap := domain.NewSwap(seller, buyer, assetContract, assetContract, 100, 200, 1)

	err := repo.AddSwap(ctx, swap)
	require.NoError(t, err)
	err = repo.AddSwap(ctx, swap)
	require.EqualError(t, err, domain.ErrSwapSlotOccupied.Error())

	err = repo.UpdateSwap(ctx, swap.Id, func(s *domain.Swap) (*domain.Swap, error) {
		return s, s.Accept()
	})
	require.NoError(t, err)

	stored, err := repo.GetSwap(ctx, swap.Id)
	require.NoError(t, err)
	require.True(t, stored.Accepted)

	stored, err = repo.GetSwap(ctx, common.Hash{})
	require.NoError(t, err)
	require.Nil(t, stored)

	err = repo.RemoveSwap(ctx, swap.Id)
	require.NoError(t, err)
	err = repo.AddSwap(ctx, swap)
	require.NoError(t, err)
}

func TestFeeVaultRepository(t *testing.T) {
	t.Parallel()

	repo := newTestRepoManager(t).FeeVaultRepository()
	ctx := context.Background()

	// the vault is created with the configured fee on first open
	vault, err := repo.GetFeeVault(ctx)
	require.NoError(t, err)
	require.Equal(t, uint32(5), vault.PercentageFee)
	require.Zero(t, vault.CollectedFees)

	err = repo.UpdateFeeVault(ctx, func(v *domain.FeeVault) (*domain.FeeVault, error) {
		v.Collect(50)
		return v, nil
	})
	require.NoError(t, err)

	vault, err = repo.GetFeeVault(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(50), vault.CollectedFees)
}

func TestTradeHistoryRepository(t *testing.T) {
	t.Parallel()

	repo := newTestRepoManager(t).TradeHistoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.AddTrade(ctx, 1, buyer, seller))
	require.NoError(t, repo.AddTrade(ctx, 2, buyer, seller))

	for _, account := range []common.Address{buyer, seller} {
		history, err := repo.GetTradeHistory(ctx, account)
		require.NoError(t, err)
		require.Equal(t, []uint64{1, 2}, history)
	}

	history, err := repo.GetTradeHistory(ctx, assetContract)
	require.NoError(t, err)
	require.Empty(t, history)
}
