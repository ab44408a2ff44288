package inmemory

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
)

type swapInmemoryStore struct {
	swaps  map[common.Hash]domain.Swap
	locker *sync.Mutex
}

type swapRepositoryImpl struct {
	store *swapInmemoryStore
}

// NewSwapRepositoryImpl returns a new inmemory SwapRepository implementation.
func NewSwapRepositoryImpl() domain.SwapRepository {
	return &swapRepositoryImpl{
		store: &swapInmemoryStore{
			swaps:  make(map[common.Hash]domain.Swap),
			locker: &sync.Mutex{},
		},
	}
}

func (r swapRepositoryImpl) AddSwap(_ context.Context, swap *domain.Swap) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.swaps[swap.Id]; ok {
		return domain.ErrSwapSlotOccupied
	}
	r.store.swaps[swap.Id] = *swap
	return nil
}

func (r swapRepositoryImpl) GetSwap(
	_ context.Context, id common.Hash,
) (*domain.Swap, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	swap, ok := r.store.swaps[id]
	if !ok {
		return nil, nil
	}
	return &swap, nil
}

func (r swapRepositoryImpl) UpdateSwap(
	_ context.Context,
	id common.Hash, updateFn func(s *domain.Swap) (*domain.Swap, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentSwap, ok := r.store.swaps[id]
	if !ok {
		return domain.ErrSwapNotFound
	}

	updatedSwap, err := updateFn(&currentSwap)
	if err != nil {
		return err
	}

	r.store.swaps[id] = *updatedSwap
	return nil
}

func (r swapRepositoryImpl) RemoveSwap(_ context.Context, id common.Hash) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.swaps[id]; !ok {
		return domain.ErrSwapNotFound
	}
	delete(r.store.swaps, id)
	return nil
}
