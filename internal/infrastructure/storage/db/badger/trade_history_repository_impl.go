package dbbadger

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/timshannon/badgerhold/v4"

	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
)

type tradeHistory struct {
	Account  string
	Listings []uint64
}

type tradeHistoryRepositoryImpl struct {
	store  *badgerhold.Store
	locker *sync.Mutex
}

// NewTradeHistoryRepositoryImpl returns a new badger TradeHistoryRepository
// implementation keyed by account in hex form.
func NewTradeHistoryRepositoryImpl(store *badgerhold.Store) domain.TradeHistoryRepository {
	return &tradeHistoryRepositoryImpl{
		store:  store,
		locker: &sync.Mutex{},
	}
}

func (r *tradeHistoryRepositoryImpl) AddTrade(
	_ context.Context, listingId uint64, buyer, seller common.Address,
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if err := r.appendForAccount(buyer, listingId); err != nil {
		return err
	}
	return r.appendForAccount(seller, listingId)
}

func (r *tradeHistoryRepositoryImpl) GetTradeHistory(
	_ context.Context, account common.Address,
) ([]uint64, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	var history tradeHistory
	if err := r.store.Get(account.Hex(), &history); err != nil {
		if err == badgerhold.ErrNotFound {
			return []uint64{}, nil
		}
		return nil, err
	}
	return history.Listings, nil
}

func (r *tradeHistoryRepositoryImpl) appendForAccount(
	account common.Address, listingId uint64,
) error {
	key := account.Hex()

	var history tradeHistory
	if err := r.store.Get(key, &history); err != nil {
		if err != badgerhold.ErrNotFound {
			return err
		}
		history = tradeHistory{Account: key}
	}
	history.Listings = append(history.Listings, listingId)
	return r.store.Upsert(key, &history)
}
