package inmemory

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
)

type tradeHistoryInmemoryStore struct {
	historyByAccount map[common.Address][]uint64
	locker           *sync.Mutex
}

type tradeHistoryRepositoryImpl struct {
	store *tradeHistoryInmemoryStore
}

// NewTradeHistoryRepositoryImpl returns a new inmemory TradeHistoryRepository
// implementation.
func NewTradeHistoryRepositoryImpl() domain.TradeHistoryRepository {
	return &tradeHistoryRepositoryImpl{
		store: &tradeHistoryInmemoryStore{
			historyByAccount: make(map[common.Address][]uint64),
			locker:           &sync.Mutex{},
		},
	}
}

func (r tradeHistoryRepositoryImpl) AddTrade(
	_ context.Context, listingId uint64, buyer, seller common.Address,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	r.store.historyByAccount[buyer] = append(r.store.historyByAccount[buyer], listingId)
	r.store.historyByAccount[seller] = append(r.store.historyByAccount[seller], listingId)
	return nil
}

func (r tradeHistoryRepositoryImpl) GetTradeHistory(
	_ context.Context, account common.Address,
) ([]uint64, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	history := r.store.historyByAccount[account]
	out := make([]uint64, len(history))
	copy(out, history)
	return out, nil
}
