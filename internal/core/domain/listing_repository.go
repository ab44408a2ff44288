package domain

import "context"

// ListingRepository is the abstraction for any kind of database intended to
// persist Listings. Ids are assigned sequentially and never reassigned;
// records are updated in place and survive the closing of the listing.
type ListingRepository interface {
	// AddListing stores a new listing, assigning it the next sequential id.
	AddListing(ctx context.Context, listing *Listing) (uint64, error)
	// GetListing returns the listing with the given id, or ErrListingNotFound.
	GetListing(ctx context.Context, id uint64) (*Listing, error)
	// GetAllListings returns all stored listings, open and closed.
	GetAllListings(ctx context.Context) ([]Listing, error)
	// UpdateListing allows to commit multiple changes to the same listing in a
	// transactional way.
	UpdateListing(
		ctx context.Context,
		id uint64, updateFn func(l *Listing) (*Listing, error),
	) error
	// RemoveListing deletes the listing with the given id. It exists only to
	// undo an AddListing whose escrow transfer was rejected, restoring the id
	// allocator as if the listing had never been stored.
	RemoveListing(ctx context.Context, id uint64) error
}
