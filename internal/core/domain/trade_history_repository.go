package domain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// TradeHistoryRepository is the abstraction for any kind of database intended
// to persist the per-identity index of completed sales. The index is
// append-only and updated only on successful fulfillments, for both sides of
// the sale.
type TradeHistoryRepository interface {
	// AddTrade appends the listing id to both the buyer's and the seller's
	// history.
	AddTrade(ctx context.Context, listingId uint64, buyer, seller common.Address) error
	// GetTradeHistory returns the ordered list of listing ids the given
	// identity participated in, possibly empty.
	GetTradeHistory(ctx context.Context, account common.Address) ([]uint64, error)
}
