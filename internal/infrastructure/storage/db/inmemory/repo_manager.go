package inmemory

import (
	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
	"github.com/bazaar-network/bazaar-daemon/internal/core/ports"
)

type repoManager struct {
	listingRepository      domain.ListingRepository
	swapRepository         domain.SwapRepository
	feeVaultRepository     domain.FeeVaultRepository
	tradeHistoryRepository domain.TradeHistoryRepository
}

// NewRepoManager returns a map-backed ports.RepoManager. The fee vault starts
// at the given percentage fee.
func NewRepoManager(percentageFee uint32) (ports.RepoManager, error) {
	feeVaultRepo, err := NewFeeVaultRepositoryImpl(percentageFee)
	if err != nil {
		return nil, err
	}
	return &repoManager{
		listingRepository:      NewListingRepositoryImpl(),
		swapRepository:         NewSwapRepositoryImpl(),
		feeVaultRepository:     feeVaultRepo,
		tradeHistoryRepository: NewTradeHistoryRepositoryImpl(),
	}, nil
}

func (d *repoManager) ListingRepository() domain.ListingRepository {
	return d.listingRepository
}

func (d *repoManager) SwapRepository() domain.SwapRepository {
	return d.swapRepository
}

func (d *repoManager) FeeVaultRepository() domain.FeeVaultRepository {
	return d.feeVaultRepository
}

func (d *repoManager) TradeHistoryRepository() domain.TradeHistoryRepository {
	return d.tradeHistoryRepository
}

func (d *repoManager) Close() {}
