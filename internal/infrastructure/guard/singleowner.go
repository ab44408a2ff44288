package guard

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/bazaar-network/bazaar-daemon/internal/core/ports"
)

type singleOwnerGuard struct {
	owner common.Address
}

// NewSingleOwnerGuard returns an AccessGuard recognizing exactly one owner
// identity, fixed at construction.
func NewSingleOwnerGuard(owner common.Address) ports.AccessGuard {
	return singleOwnerGuard{owner}
}

func (g singleOwnerGuard) Owner() common.Address {
	return g.owner
}

func (g singleOwnerGuard) IsOwner(identity common.Address) bool {
	return identity == g.owner
}
