package domain_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
)

var (
	assetContract = common.HexToAddress("0x1111111111111111111111111111111111111111")
	seller        = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func TestNewListing(t *testing.T) {
	t.Parallel()

	listing, err := domain.NewListing(assetContract, 7, 1000, seller)
	require.NoError(t, err)
	require.NotNil(t, listing)
	require.True(t, listing.IsForSale)
	require.Equal(t, seller, listing.Seller)
	require.Zero(t, listing.Id)
}

func TestFailingNewListing(t *testing.T) {
	t.Parallel()

	listing, err := domain.NewListing(assetContract, 7, 0, seller)
	require.EqualError(t, err, domain.ErrZeroPrice.Error())
	require.ErrorIs(t, err, domain.ErrInvalidRequest)
	require.Nil(t, listing)
}

func TestCloseListing(t *testing.T) {
	t.Parallel()

	listing, err := domain.NewListing(assetContract, 7, 1000, seller)
	require.NoError(t, err)

	err = listing.Close()
	require.NoError(t, err)
	require.False(t, listing.IsForSale)

	// closed listings never come back for sale
	err = listing.Close()
	require.EqualError(t, err, domain.ErrListingClosed.Error())
	require.False(t, listing.IsForSale)
}
