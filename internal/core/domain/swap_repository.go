package domain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// SwapRepository is the abstraction for any kind of database intended to
// persist Swaps. A slot identified by a swap id is either empty or holds
// exactly one pending or accepted swap.
type SwapRepository interface {
	// AddSwap stores a new swap, or returns ErrSwapSlotOccupied if its slot is
	// not empty.
	AddSwap(ctx context.Context, swap *Swap) error
	// GetSwap returns the swap with the given id, or nil if the slot is empty.
	GetSwap(ctx context.Context, id common.Hash) (*Swap, error)
	// UpdateSwap allows to commit multiple changes to the same swap in a
	// transactional way. ErrSwapNotFound is returned for an empty slot.
	UpdateSwap(
		ctx context.Context,
		id common.Hash, updateFn func(s *Swap) (*Swap, error),
	) error
	// RemoveSwap resets the slot to empty, permitting a future swap with
	// identical parameters to reuse the same identifier.
	RemoveSwap(ctx context.Context, id common.Hash) error
}
