package ports

import "github.com/ethereum/go-ethereum/common"

// AccessGuard is the single-owner access-control primitive gating the fee
// configuration and fee withdrawal operations.
type AccessGuard interface {
	// Owner returns the owner identity.
	Owner() common.Address
	// IsOwner returns whether the given identity is the owner.
	IsOwner(identity common.Address) bool
}
