package domain

import "github.com/ethereum/go-ethereum/common"

// Listing is the data structure representing a fixed-price offer for one
// specific non-fungible asset. While the listing is for sale, custody of the
// asset is held by the registry identity.
type Listing struct {
	Id            uint64
	AssetContract common.Address
	AssetId       uint64
	Price         uint64
	Seller        common.Address
	IsForSale     bool
}

// NewListing returns an active listing with the given immutable attributes.
// The id is assigned by the repository when the listing is stored.
func NewListing(
	assetContract common.Address, assetId, price uint64, seller common.Address,
) (*Listing, error) {
	if price == 0 {
		return nil, ErrZeroPrice
	}
	return &Listing{
		AssetContract: assetContract,
		AssetId:       assetId,
		Price:         price,
		Seller:        seller,
		IsForSale:     true,
	}, nil
}

// Close brings the listing out of the for-sale state. The transition happens
// exactly once, either on fulfillment or on delisting, and must be committed
// before any external custody call is made.
func (l *Listing) Close() error {
	if !l.IsForSale {
		return ErrListingClosed
	}
	l.IsForSale = false
	return nil
}
