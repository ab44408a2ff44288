package domain

import "context"

// FeeVaultRepository is the abstraction for any kind of database intended to
// persist the fee ledger of the marketplace.
type FeeVaultRepository interface {
	// GetFeeVault returns the current fee configuration and balance.
	GetFeeVault(ctx context.Context) (*FeeVault, error)
	// UpdateFeeVault allows to commit multiple changes to the vault in a
	// transactional way.
	UpdateFeeVault(
		ctx context.Context, updateFn func(v *FeeVault) (*FeeVault, error),
	) error
}
