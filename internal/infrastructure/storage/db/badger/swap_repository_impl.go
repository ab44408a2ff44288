package dbbadger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/timshannon/badgerhold/v4"

	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
)

type swapRepositoryImpl struct {
	store *badgerhold.Store
}

// NewSwapRepositoryImpl returns a new badger SwapRepository implementation.
// Swaps are keyed by their derived identifier in hex form.
func NewSwapRepositoryImpl(store *badgerhold.Store) domain.SwapRepository {
	return swapRepositoryImpl{store}
}

func (r swapRepositoryImpl) AddSwap(_ context.Context, swap *domain.Swap) error {
	if err := r.store.Insert(swap.Id.Hex(), swap); err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrSwapSlotOccupied
		}
		return err
	}
	return nil
}

func (r swapRepositoryImpl) GetSwap(
	_ context.Context, id common.Hash,
) (*domain.Swap, error) {
	var swap domain.Swap
	if err := r.store.Get(id.Hex(), &swap); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &swap, nil
}

func (r swapRepositoryImpl) UpdateSwap(
	ctx context.Context,
	id common.Hash, updateFn func(s *domain.Swap) (*domain.Swap, error),
) error {
	currentSwap, err := r.GetSwap(ctx, id)
	if err != nil {
		return err
	}
	if currentSwap == nil {
		return domain.ErrSwapNotFound
	}

	updatedSwap, err := updateFn(currentSwap)
	if err != nil {
		return err
	}

	return r.store.Update(id.Hex(), updatedSwap)
}

func (r swapRepositoryImpl) RemoveSwap(_ context.Context, id common.Hash) error {
	if err := r.store.Delete(id.Hex(), domain.Swap{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrSwapNotFound
		}
		return err
	}
	return nil
}
