package ports

import "github.com/bazaar-network/bazaar-daemon/internal/core/domain"

// RepoManager gives access to all the repositories of the daemon and manages
// the lifecycle of the underlying storage.
type RepoManager interface {
	ListingRepository() domain.ListingRepository
	SwapRepository() domain.SwapRepository
	FeeVaultRepository() domain.FeeVaultRepository
	TradeHistoryRepository() domain.TradeHistoryRepository

	Close()
}
