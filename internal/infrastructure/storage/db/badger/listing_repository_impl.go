package dbbadger

import (
	"context"
	"sync"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
)

type listingRepositoryImpl struct {
	store *badgerhold.Store

	// next sequential id, recovered from the store at startup.
	nextId uint64
	locker *sync.Mutex
}

// NewListingRepositoryImpl returns a new badger ListingRepository
// implementation.
func NewListingRepositoryImpl(store *badgerhold.Store) (domain.ListingRepository, error) {
	var listings []domain.Listing
	if err := store.Find(&listings, nil); err != nil {
		return nil, err
	}

	nextId := uint64(1)
	for _, l := range listings {
		if l.Id >= nextId {
			nextId = l.Id + 1
		}
	}

	return &listingRepositoryImpl{
		store:  store,
		nextId: nextId,
		locker: &sync.Mutex{},
	}, nil
}

func (r *listingRepositoryImpl) AddListing(
	_ context.Context, listing *domain.Listing,
) (uint64, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	id := r.nextId
	listing.Id = id
	if err := r.store.Insert(id, listing); err != nil {
		return 0, err
	}
	r.nextId++
	return id, nil
}

func (r *listingRepositoryImpl) GetListing(
	_ context.Context, id uint64,
) (*domain.Listing, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	return r.getListing(id)
}

func (r *listingRepositoryImpl) GetAllListings(
	_ context.Context,
) ([]domain.Listing, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	var listings []domain.Listing
	if err := r.store.Find(
		&listings, new(badgerhold.Query).SortBy("Id"),
	); err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepositoryImpl) UpdateListing(
	_ context.Context,
	id uint64, updateFn func(l *domain.Listing) (*domain.Listing, error),
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	currentListing, err := r.getListing(id)
	if err != nil {
		return err
	}

	updatedListing, err := updateFn(currentListing)
	if err != nil {
		return err
	}

	return r.store.Update(id, updatedListing)
}

func (r *listingRepositoryImpl) RemoveListing(_ context.Context, id uint64) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	if err := r.store.Delete(id, domain.Listing{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrListingNotFound
		}
		return err
	}
	if id == r.nextId-1 {
		r.nextId--
	}
	return nil
}

func (r *listingRepositoryImpl) getListing(id uint64) (*domain.Listing, error) {
	var listing domain.Listing
	if err := r.store.Get(id, &listing); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}
