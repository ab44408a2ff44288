package domain

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Swap is the data structure representing a proposed fixed-amount exchange of
// two fungible-asset balances between two identities. No custody is moved
// until the counterparty accepts: both parties are expected to have granted
// the registry a transfer allowance beforehand.
type Swap struct {
	Id           common.Hash
	Initiator    common.Address
	Counterparty common.Address
	AssetA       common.Address
	AssetB       common.Address
	AmountA      uint64
	AmountB      uint64
	Salt         uint64
	Accepted     bool
}

// NewSwap returns a pending swap whose identifier is derived from all of its
// parameters.
func NewSwap(
	initiator, counterparty, assetA, assetB common.Address,
	amountA, amountB, salt uint64,
) *Swap {
	return &Swap{
		Id:           SwapId(initiator, counterparty, assetA, assetB, amountA, amountB, salt),
		Initiator:    initiator,
		Counterparty: counterparty,
		AssetA:       assetA,
		AssetB:       assetB,
		AmountA:      amountA,
		AmountB:      amountB,
		Salt:         salt,
	}
}

// SwapId derives the deterministic swap identifier as the keccak256 digest of
// the tightly packed swap parameters. Identical parameters always map to the
// same slot, which is what guards against double initiation and permits reuse
// after a cancellation.
func SwapId(
	initiator, counterparty, assetA, assetB common.Address,
	amountA, amountB, salt uint64,
) common.Hash {
	buf := make([]byte, 0, 4*common.AddressLength+3*8)
	buf = append(buf, initiator.Bytes()...)
	buf = append(buf, counterparty.Bytes()...)
	buf = append(buf, assetA.Bytes()...)
	buf = append(buf, assetB.Bytes()...)
	buf = binary.BigEndian.AppendUint64(buf, amountA)
	buf = binary.BigEndian.AppendUint64(buf, amountB)
	buf = binary.BigEndian.AppendUint64(buf, salt)
	return crypto.Keccak256Hash(buf)
}

// Accept marks the swap as accepted. The transition happens at most once and
// must be committed before the two custody legs are settled.
func (s *Swap) Accept() error {
	if s.Accepted {
		return ErrSwapAlreadyAccepted
	}
	s.Accepted = true
	return nil
}

// IsPending returns whether the swap is still waiting for the counterparty.
func (s *Swap) IsPending() bool {
	return !s.Accepted
}
