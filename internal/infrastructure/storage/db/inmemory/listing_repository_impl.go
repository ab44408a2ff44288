package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
)

type listingInmemoryStore struct {
	listings map[uint64]domain.Listing
	nextId   uint64
	locker   *sync.Mutex
}

type listingRepositoryImpl struct {
	store *listingInmemoryStore
}

// NewListingRepositoryImpl returns a new inmemory ListingRepository
// implementation. Ids are assigned sequentially starting from 1.
func NewListingRepositoryImpl() domain.ListingRepository {
	return &listingRepositoryImpl{
		store: &listingInmemoryStore{
			listings: make(map[uint64]domain.Listing),
			nextId:   1,
			locker:   &sync.Mutex{},
		},
	}
}

func (r listingRepositoryImpl) AddListing(
	_ context.Context, listing *domain.Listing,
) (uint64, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	id := r.store.nextId
	r.store.nextId++

	listing.Id = id
	r.store.listings[id] = *listing
	return id, nil
}

func (r listingRepositoryImpl) GetListing(
	_ context.Context, id uint64,
) (*domain.Listing, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getListing(id)
}

func (r listingRepositoryImpl) GetAllListings(
	_ context.Context,
) ([]domain.Listing, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	listings := make([]domain.Listing, 0, len(r.store.listings))
	for _, l := range r.store.listings {
		listings = append(listings, l)
	}
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].Id < listings[j].Id
	})
	return listings, nil
}

func (r listingRepositoryImpl) UpdateListing(
	_ context.Context,
	id uint64, updateFn func(l *domain.Listing) (*domain.Listing, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentListing, err := r.getListing(id)
	if err != nil {
		return err
	}

	updatedListing, err := updateFn(currentListing)
	if err != nil {
		return err
	}

	r.store.listings[id] = *updatedListing
	return nil
}

func (r listingRepositoryImpl) RemoveListing(_ context.Context, id uint64) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.listings[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(r.store.listings, id)
	// reclaim the id if it was the last one assigned, as if the listing had
	// never been stored.
	if id == r.store.nextId-1 {
		r.store.nextId--
	}
	return nil
}

func (r listingRepositoryImpl) getListing(id uint64) (*domain.Listing, error) {
	listing, ok := r.store.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return &listing, nil
}
