package ports

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// CustodyAdapter is the interface the registries use to query ownership and
// balances and to move custody of assets, tokens and value. Implementations
// wrap whatever actually holds the balances: an in-process ledger in sandbox
// deployments, asset contracts on a chain otherwise.
type CustodyAdapter interface {
	// OwnerOf returns the current owner of the given non-fungible asset.
	OwnerOf(ctx context.Context, assetContract common.Address, assetId uint64) (common.Address, error)
	// BalanceOf returns the fungible-asset balance of the given holder.
	BalanceOf(ctx context.Context, assetContract, holder common.Address) (uint64, error)
	// NewSettlement returns an empty settlement to queue custody moves on.
	NewSettlement() Settlement
}

// Settlement batches the custody moves of one registry operation into a
// single synchronous call-and-result boundary. Commit applies every queued
// move or none of them; the registries mutate their gating state strictly
// before committing, and undo it if Commit reports a rejection.
type Settlement interface {
	// TransferAsset queues a custody move of a non-fungible asset.
	TransferAsset(assetContract common.Address, assetId uint64, from, to common.Address)
	// TransferTokens queues a fungible-asset balance move. Unless the sender
	// is the registry itself, it must have pre-granted the registry a
	// sufficient allowance.
	TransferTokens(assetContract common.Address, from, to common.Address, amount uint64)
	// TransferValue queues a payment push over the value channel.
	TransferValue(from, to common.Address, amount uint64)

	// Commit applies all queued moves atomically.
	Commit(ctx context.Context) error
	// Discard drops the settlement without applying anything.
	Discard()
}
