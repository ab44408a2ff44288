package swap

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
	"github.com/bazaar-network/bazaar-daemon/internal/core/ports"
)

// Service implements the swap registry: a table of proposed fixed-amount
// exchanges of two fungible-asset balances, keyed by an identifier derived
// from the swap parameters. Custody moves only on acceptance, and both legs
// settle together or not at all.
type Service struct {
	repoManager ports.RepoManager
	custody     ports.CustodyAdapter
	pubsub      ports.SecurePubSub

	mtx sync.Mutex
}

// NewService returns a swap registry.
func NewService(
	repoManager ports.RepoManager,
	custody ports.CustodyAdapter,
	pubsub ports.SecurePubSub,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if custody == nil {
		return nil, fmt.Errorf("missing custody adapter")
	}
	if pubsub == nil {
		return nil, fmt.Errorf("missing pubsub service")
	}
	return &Service{
		repoManager: repoManager,
		custody:     custody,
		pubsub:      pubsub,
	}, nil
}

// InitiateSwap registers a pending swap proposed by the caller and returns
// its derived identifier. The slot for the identifier must be empty. No
// custody is moved: both parties grant the registry a transfer allowance
// independently of this call.
func (s *Service) InitiateSwap(
	ctx context.Context,
	caller, counterparty, assetA, assetB common.Address,
	amountA, amountB, salt uint64,
) (common.Hash, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	swap := domain.NewSwap(caller, counterparty, assetA, assetB, amountA, amountB, salt)
	if err := s.repoManager.SwapRepository().AddSwap(ctx, swap); err != nil {
		return common.Hash{}, err
	}

	log.WithFields(log.Fields{
		"id":           swap.Id.Hex(),
		"initiator":    caller.Hex(),
		"counterparty": counterparty.Hex(),
	}).Debug("swap initiated")
	s.publish(ports.TopicSwapInitiated, swapEvent{
		SwapId:       swap.Id,
		Initiator:    swap.Initiator,
		Counterparty: swap.Counterparty,
	})
	return swap.Id, nil
}

// AcceptSwap executes a pending swap. Only the named counterparty can call
// it, exactly once. The accepted flag is committed before the two custody
// legs settle as one atomic unit; a rejected settlement restores the pending
// state and fails the whole operation.
func (s *Service) AcceptSwap(ctx context.Context, caller common.Address, id common.Hash) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	swapRepo := s.repoManager.SwapRepository()

	var prev domain.Swap
	if err := swapRepo.UpdateSwap(
		ctx, id, func(sw *domain.Swap) (*domain.Swap, error) {
			if sw.Accepted {
				return nil, domain.ErrSwapAlreadyAccepted
			}
			if sw.Counterparty != caller {
				return nil, domain.ErrNotCounterparty
			}
			prev = *sw
			if err := sw.Accept(); err != nil {
				return nil, err
			}
			return sw, nil
		},
	); err != nil {
		return err
	}

	settlement := s.custody.NewSettlement()
	settlement.TransferTokens(prev.AssetA, prev.Initiator, prev.Counterparty, prev.AmountA)
	settlement.TransferTokens(prev.AssetB, prev.Counterparty, prev.Initiator, prev.AmountB)
	if err := settlement.Commit(ctx); err != nil {
		if rbErr := swapRepo.UpdateSwap(
			ctx, id, func(sw *domain.Swap) (*domain.Swap, error) {
				*sw = prev
				return sw, nil
			},
		); rbErr != nil {
			log.WithError(rbErr).Error("failed to restore swap after rejected settlement")
		}
		return fmt.Errorf("%w: %s", domain.ErrTransferRejected, err)
	}

	log.WithField("id", id.Hex()).Debug("swap accepted")
	s.publish(ports.TopicSwapAccepted, swapEvent{
		SwapId:       id,
		Initiator:    prev.Initiator,
		Counterparty: prev.Counterparty,
	})
	return nil
}

// CancelSwap resets a pending swap's slot to empty. Only the initiator can
// call it, and only before acceptance. A future InitiateSwap with identical
// parameters reuses the same identifier.
func (s *Service) CancelSwap(ctx context.Context, caller common.Address, id common.Hash) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	swapRepo := s.repoManager.SwapRepository()

	swap, err := swapRepo.GetSwap(ctx, id)
	if err != nil {
		return err
	}
	if swap == nil {
		return domain.ErrSwapNotFound
	}
	if swap.Initiator != caller {
		return domain.ErrNotInitiator
	}
	if swap.Accepted {
		return domain.ErrSwapAlreadyAccepted
	}

	if err := swapRepo.RemoveSwap(ctx, id); err != nil {
		return err
	}

	log.WithField("id", id.Hex()).Debug("swap cancelled")
	s.publish(ports.TopicSwapCancelled, swapEvent{
		SwapId:       id,
		Initiator:    swap.Initiator,
		Counterparty: swap.Counterparty,
	})
	return nil
}

// GetSwap returns the swap stored in the given slot, or ErrSwapNotFound if
// the slot is empty.
func (s *Service) GetSwap(ctx context.Context, id common.Hash) (*domain.Swap, error) {
	swap, err := s.repoManager.SwapRepository().GetSwap(ctx, id)
	if err != nil {
		return nil, err
	}
	if swap == nil {
		return nil, domain.ErrSwapNotFound
	}
	return swap, nil
}
