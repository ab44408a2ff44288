package dbbadger

import (
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/timshannon/badgerhold/v4"

	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
	"github.com/bazaar-network/bazaar-daemon/internal/core/ports"
)

type repoManager struct {
	store *badgerhold.Store

	listingRepository      domain.ListingRepository
	swapRepository         domain.SwapRepository
	feeVaultRepository     domain.FeeVaultRepository
	tradeHistoryRepository domain.TradeHistoryRepository
}

// NewRepoManager opens a badger-backed ports.RepoManager under the given data
// directory. With an empty directory the store is kept in memory, which is
// useful for testing. The fee vault starts at the given percentage fee the
// first time the store is created.
func NewRepoManager(
	baseDbDir string, logger badger.Logger, percentageFee uint32,
) (ports.RepoManager, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, "registry")
	}

	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening main db: %w", err)
	}

	listingRepo, err := NewListingRepositoryImpl(store)
	if err != nil {
		store.Close()
		return nil, err
	}
	feeVaultRepo, err := NewFeeVaultRepositoryImpl(store, percentageFee)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &repoManager{
		store:                  store,
		listingRepository:      listingRepo,
		swapRepository:         NewSwapRepositoryImpl(store),
		feeVaultRepository:     feeVaultRepo,
		tradeHistoryRepository: NewTradeHistoryRepositoryImpl(store),
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

func (d *repoManager) Close() {
	d.store.Close()
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
