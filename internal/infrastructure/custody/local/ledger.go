package localcustody

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bazaar-network/bazaar-daemon/internal/core/ports"
)

type assetKey struct {
	contract common.Address
	id       uint64
}

type holdingKey struct {
	contract common.Address
	holder   common.Address
}

// Ledger is an in-process implementation of ports.CustodyAdapter holding all
// balances itself. It enforces the same holder and allowance rules an asset
// contract would: the registry identity (the operator) can move an asset or a
// token balance it does not hold only if the holder approved it beforehand.
//
// It backs sandbox deployments and integration tests; mint, approval and
// funding methods take the place of the out-of-scope asset contracts.
type Ledger struct {
	operator common.Address

	locker          *sync.Mutex
	assetOwners     map[assetKey]common.Address
	assetApprovals  map[assetKey]common.Address
	tokenBalances   map[holdingKey]uint64
	tokenAllowances map[holdingKey]uint64
	valueBalances   map[common.Address]uint64
	valueRejecting  map[common.Address]bool
}

// NewLedger returns an empty ledger operated by the given registry identity.
func NewLedger(operator common.Address) *Ledger {
	return &Ledger{
		operator:        operator,
		locker:          &sync.Mutex{},
		assetOwners:     make(map[assetKey]common.Address),
		assetApprovals:  make(map[assetKey]common.Address),
		tokenBalances:   make(map[holdingKey]uint64),
		tokenAllowances: make(map[holdingKey]uint64),
		valueBalances:   make(map[common.Address]uint64),
		valueRejecting:  make(map[common.Address]bool),
	}
}

func (l *Ledger) OwnerOf(
	_ context.Context, assetContract common.Address, assetId uint64,
) (common.Address, error) {
	l.locker.Lock()
	defer l.locker.Unlock()

	owner, ok := l.assetOwners[assetKey{assetContract, assetId}]
	if !ok {
		return common.Address{}, ErrAssetNotFound
	}
	return owner, nil
}

func (l *Ledger) BalanceOf(
	_ context.Context, assetContract, holder common.Address,
) (uint64, error) {
	l.locker.Lock()
	defer l.locker.Unlock()

	return l.tokenBalances[holdingKey{assetContract, holder}], nil
}

func (l *Ledger) NewSettlement() ports.Settlement {
	return &settlement{ledger: l}
}

// ValueBalance returns the value-channel balance of the given identity.
func (l *Ledger) ValueBalance(identity common.Address) uint64 {
	l.locker.Lock()
	defer l.locker.Unlock()

	return l.valueBalances[identity]
}

// MintAsset creates a non-fungible asset owned by the given identity.
func (l *Ledger) MintAsset(assetContract common.Address, assetId uint64, owner common.Address) {
	l.locker.Lock()
	defer l.locker.Unlock()

	l.assetOwners[assetKey{assetContract, assetId}] = owner
}

// ApproveAsset lets the registry move the given asset on behalf of its
// current owner. The approval is consumed by the next transfer.
func (l *Ledger) ApproveAsset(assetContract common.Address, assetId uint64) {
	l.locker.Lock()
	defer l.locker.Unlock()

	l.assetApprovals[assetKey{assetContract, assetId}] = l.operator
}

// MintTokens credits the given fungible-asset balance.
func (l *Ledger) MintTokens(assetContract, holder common.Address, amount uint64) {
	l.locker.Lock()
	defer l.locker.Unlock()

	l.tokenBalances[holdingKey{assetContract, holder}] += amount
}

// IncreaseAllowance raises the amount of the holder's balance the registry is
// allowed to move.
func (l *Ledger) IncreaseAllowance(assetContract, holder common.Address, amount uint64) {
	l.locker.Lock()
	defer l.locker.Unlock()

	l.tokenAllowances[holdingKey{assetContract, holder}] += amount
}

// Allowance returns the amount the registry may still move on behalf of the
// holder.
func (l *Ledger) Allowance(assetContract, holder common.Address) uint64 {
	l.locker.Lock()
	defer l.locker.Unlock()

	return l.tokenAllowances[holdingKey{assetContract, holder}]
}

// FundValue credits the value-channel balance of the given identity.
func (l *Ledger) FundValue(identity common.Address, amount uint64) {
	l.locker.Lock()
	defer l.locker.Unlock()

	l.valueBalances[identity] += amount
}

// RejectValue makes the given identity refuse every future value push, the
// way a contract without a payable receiver would.
func (l *Ledger) RejectValue(identity common.Address) {
	l.locker.Lock()
	defer l.locker.Unlock()

	l.valueRejecting[identity] = true
}
