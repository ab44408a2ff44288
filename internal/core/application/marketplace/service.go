package marketplace

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
	"github.com/bazaar-network/bazaar-daemon/internal/core/ports"
)

// Service implements the listing registry: it escrows a non-fungible asset
// while it is for sale and pays out the proceeds minus the percentage fee
// when the listing is fulfilled.
//
// Every mutating operation runs under an exclusive lock and follows the same
// discipline: validate, commit the internal state to its post-condition,
// settle the external custody moves, update the auxiliary ledgers, notify.
// If the settlement is rejected, the committed state is restored and the
// operation fails as a whole.
type Service struct {
	repoManager ports.RepoManager
	custody     ports.CustodyAdapter
	guard       ports.AccessGuard
	pubsub      ports.SecurePubSub
	registry    common.Address

	mtx sync.Mutex
}

// NewService returns a listing registry holding escrowed assets under the
// given registry identity.
func NewService(
	repoManager ports.RepoManager,
	custody ports.CustodyAdapter,
	guard ports.AccessGuard,
	pubsub ports.SecurePubSub,
	registry common.Address,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if custody == nil {
		return nil, fmt.Errorf("missing custody adapter")
	}
	if guard == nil {
		return nil, fmt.Errorf("missing access guard")
	}
	if pubsub == nil {
		return nil, fmt.Errorf("missing pubsub service")
	}
	return &Service{
		repoManager: repoManager,
		custody:     custody,
		guard:       guard,
		pubsub:      pubsub,
		registry:    registry,
	}, nil
}

// ListAsset stores a new active listing for the given asset and moves its
// custody from the caller to the registry. The caller must be the current
// owner of the asset and must have approved the registry beforehand.
func (s *Service) ListAsset(
	ctx context.Context,
	caller, assetContract common.Address, assetId, price uint64,
) (uint64, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	listing, err := domain.NewListing(assetContract, assetId, price, caller)
	if err != nil {
		return 0, err
	}

	owner, err := s.custody.OwnerOf(ctx, assetContract, assetId)
	if err != nil {
		return 0, fmt.Errorf("querying asset owner: %w", err)
	}
	if owner != caller {
		return 0, domain.ErrNotAssetOwner
	}

	listingRepo := s.repoManager.ListingRepository()
	id, err := listingRepo.AddListing(ctx, listing)
	if err != nil {
		return 0, err
	}

	settlement := s.custody.NewSettlement()
	settlement.TransferAsset(assetContract, assetId, caller, s.registry)
	if err := settlement.Commit(ctx); err != nil {
		if rbErr := listingRepo.RemoveListing(ctx, id); rbErr != nil {
			log.WithError(rbErr).Error("failed to roll back listing after rejected escrow transfer")
		}
		return 0, fmt.Errorf("%w: %s", domain.ErrTransferRejected, err)
	}

	log.WithFields(log.Fields{
		"id":     id,
		"seller": caller.Hex(),
		"price":  price,
	}).Debug("listing created")
	s.publish(ports.TopicListingCreated, listingCreatedEvent{
		ListingId:     id,
		AssetContract: assetContract,
		AssetId:       assetId,
		Price:         price,
		Seller:        caller,
	})
	return id, nil
}

// DelistAsset closes an active listing and returns custody of the asset to
// the seller. No fee is taken. The listing is flipped inactive before the
// custody move so that a reentrant call observes it as already closed.
func (s *Service) DelistAsset(ctx context.Context, caller common.Address, listingId uint64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	listingRepo := s.repoManager.ListingRepository()

	var prev domain.Listing
	if err := listingRepo.UpdateListing(
		ctx, listingId, func(l *domain.Listing) (*domain.Listing, error) {
			if !l.IsForSale {
				return nil, domain.ErrListingClosed
			}
			if l.Seller != caller {
				return nil, domain.ErrNotSeller
			}
			prev = *l
			if err := l.Close(); err != nil {
				return nil, err
			}
			return l, nil
		},
	); err != nil {
		return err
	}

	settlement := s.custody.NewSettlement()
	settlement.TransferAsset(prev.AssetContract, prev.AssetId, s.registry, prev.Seller)
	if err := settlement.Commit(ctx); err != nil {
		s.restoreListing(ctx, listingId, prev)
		return fmt.Errorf("%w: %s", domain.ErrTransferRejected, err)
	}

	log.WithField("id", listingId).Debug("listing removed")
	s.publish(ports.TopicListingRemoved, listingRemovedEvent{
		ListingId: listingId,
		Seller:    prev.Seller,
	})
	return nil
}

// FulfillListing sells an active listing to the buyer. The attached value
// must equal the listing price exactly. The listing is flipped inactive
// first; then the asset moves from registry custody to the buyer and the
// proceeds minus the fee cut are pushed to the seller as one atomic
// settlement. The fee cut is credited to the vault and the sale is appended
// to both parties' trade history.
func (s *Service) FulfillListing(
	ctx context.Context, buyer common.Address, listingId, attachedValue uint64,
) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	listingRepo := s.repoManager.ListingRepository()
	feeRepo := s.repoManager.FeeVaultRepository()

	var prev domain.Listing
	if err := listingRepo.UpdateListing(
		ctx, listingId, func(l *domain.Listing) (*domain.Listing, error) {
			if !l.IsForSale {
				return nil, domain.ErrListingClosed
			}
			if attachedValue != l.Price {
				return nil, domain.ErrPriceMismatch
			}
			prev = *l
			if err := l.Close(); err != nil {
				return nil, err
			}
			return l, nil
		},
	); err != nil {
		return err
	}

	vault, err := feeRepo.GetFeeVault(ctx)
	if err != nil {
		s.restoreListing(ctx, listingId, prev)
		return err
	}
	fee, proceeds := vault.SplitPrice(prev.Price)

	settlement := s.custody.NewSettlement()
	settlement.TransferAsset(prev.AssetContract, prev.AssetId, s.registry, buyer)
	settlement.TransferValue(buyer, prev.Seller, proceeds)
	if fee > 0 {
		settlement.TransferValue(buyer, s.registry, fee)
	}
	if err := settlement.Commit(ctx); err != nil {
		s.restoreListing(ctx, listingId, prev)
		return fmt.Errorf("%w: %s", domain.ErrTransferRejected, err)
	}

	if err := feeRepo.UpdateFeeVault(
		ctx, func(v *domain.FeeVault) (*domain.FeeVault, error) {
			v.Collect(fee)
			return v, nil
		},
	); err != nil {
		log.WithError(err).Error("failed to credit fee vault after settled sale")
	}
	if err := s.repoManager.TradeHistoryRepository().AddTrade(
		ctx, listingId, buyer, prev.Seller,
	); err != nil {
		log.WithError(err).Error("failed to index settled sale")
	}

	log.WithFields(log.Fields{
		"id":    listingId,
		"buyer": buyer.Hex(),
		"fee":   fee,
	}).Debug("listing fulfilled")
	s.publish(ports.TopicPurchaseCompleted, purchaseCompletedEvent{
		ListingId: listingId,
		Buyer:     buyer,
		Seller:    prev.Seller,
		Price:     prev.Price,
	})
	return nil
}

// SetPercentageFee updates the fee applied to future sales. Only the guard
// owner can call it.
func (s *Service) SetPercentageFee(ctx context.Context, caller common.Address, pct uint32) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.guard.IsOwner(caller) {
		return domain.ErrNotGuardOwner
	}

	return s.repoManager.FeeVaultRepository().UpdateFeeVault(
		ctx, func(v *domain.FeeVault) (*domain.FeeVault, error) {
			if err := v.SetPercentageFee(pct); err != nil {
				return nil, err
			}
			return v, nil
		},
	)
}

// WithdrawFees pushes the whole accumulated-fees balance to the guard owner
// and returns the amount paid out. The counter is zeroed before the push and
// restored in full if the push is rejected.
func (s *Service) WithdrawFees(ctx context.Context, caller common.Address) (uint64, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.guard.IsOwner(caller) {
		return 0, domain.ErrNotGuardOwner
	}

	feeRepo := s.repoManager.FeeVaultRepository()

	var amount uint64
	if err := feeRepo.UpdateFeeVault(
		ctx, func(v *domain.FeeVault) (*domain.FeeVault, error) {
			amount = v.Drain()
			return v, nil
		},
	); err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, nil
	}

	settlement := s.custody.NewSettlement()
	settlement.TransferValue(s.registry, s.guard.Owner(), amount)
	if err := settlement.Commit(ctx); err != nil {
		if rbErr := feeRepo.UpdateFeeVault(
			ctx, func(v *domain.FeeVault) (*domain.FeeVault, error) {
				v.Collect(amount)
				return v, nil
			},
		); rbErr != nil {
			log.WithError(rbErr).Error("failed to restore fee vault after rejected payout")
		}
		return 0, fmt.Errorf("%w: %s", domain.ErrTransferRejected, err)
	}

	log.WithField("amount", amount).Debug("fees withdrawn")
	return amount, nil
}

// GetListing returns the listing with the given id.
func (s *Service) GetListing(ctx context.Context, listingId uint64) (*domain.Listing, error) {
	return s.repoManager.ListingRepository().GetListing(ctx, listingId)
}

// GetUserTrades returns the ordered list of listing ids the given identity
// participated in as buyer or seller, possibly empty.
func (s *Service) GetUserTrades(ctx context.Context, account common.Address) ([]uint64, error) {
	return s.repoManager.TradeHistoryRepository().GetTradeHistory(ctx, account)
}

func (s *Service) restoreListing(ctx context.Context, listingId uint64, prev domain.Listing) {
	if err := s.repoManager.ListingRepository().UpdateListing(
		ctx, listingId, func(l *domain.Listing) (*domain.Listing, error) {
			*l = prev
			return l, nil
		},
	); err != nil {
		log.WithError(err).Error("failed to restore listing after rejected settlement")
	}
}
