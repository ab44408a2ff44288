package localcustody

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

type moveKind int

const (
	moveAsset moveKind = iota
	moveTokens
	moveValue
)

type move struct {
	kind     moveKind
	contract common.Address
	assetId  uint64
	from     common.Address
	to       common.Address
	amount   uint64
}

// settlement implements ports.Settlement against the ledger. Queued moves are
// applied under the ledger lock against a snapshot of the touched state, so a
// rejection of any move leaves every balance untouched.
type settlement struct {
	ledger *Ledger
	moves  []move
	done   bool
}

func (s *settlement) TransferAsset(
	assetContract common.Address, assetId uint64, from, to common.Address,
) {
	s.moves = append(s.moves, move{
		kind: moveAsset, contract: assetContract, assetId: assetId, from: from, to: to,
	})
}

func (s *settlement) TransferTokens(
	assetContract common.Address, from, to common.Address, amount uint64,
) {
	s.moves = append(s.moves, move{
		kind: moveTokens, contract: assetContract, from: from, to: to, amount: amount,
	})
}

func (s *settlement) TransferValue(from, to common.Address, amount uint64) {
	s.moves = append(s.moves, move{kind: moveValue, from: from, to: to, amount: amount})
}

func (s *settlement) Commit(_ context.Context) error {
	if s.done {
		return ErrSettlementDone
	}
	s.done = true

	l := s.ledger
	l.locker.Lock()
	defer l.locker.Unlock()

	snapshot := l.snapshot()
	for _, m := range s.moves {
		var err error
		switch m.kind {
		case moveAsset:
			err = l.applyAssetMove(m)
		case moveTokens:
			err = l.applyTokenMove(m)
		case moveValue:
			err = l.applyValueMove(m)
		}
		if err != nil {
			l.restore(snapshot)
			return err
		}
	}
	return nil
}

func (s *settlement) Discard() {
	s.done = true
	s.moves = nil
}

type ledgerState struct {
	assetOwners     map[assetKey]common.Address
	assetApprovals  map[assetKey]common.Address
	tokenBalances   map[holdingKey]uint64
	tokenAllowances map[holdingKey]uint64
	valueBalances   map[common.Address]uint64
}

func (l *Ledger) snapshot() ledgerState {
	return ledgerState{
		assetOwners:     copyMap(l.assetOwners),
		assetApprovals:  copyMap(l.assetApprovals),
		tokenBalances:   copyMap(l.tokenBalances),
		tokenAllowances: copyMap(l.tokenAllowances),
		valueBalances:   copyMap(l.valueBalances),
	}
}

func (l *Ledger) restore(s ledgerState) {
	l.assetOwners = s.assetOwners
	l.assetApprovals = s.assetApprovals
	l.tokenBalances = s.tokenBalances
	l.tokenAllowances = s.tokenAllowances
	l.valueBalances = s.valueBalances
}

func (l *Ledger) applyAssetMove(m move) error {
	key := assetKey{m.contract, m.assetId}
	owner, ok := l.assetOwners[key]
	if !ok {
		return ErrAssetNotFound
	}
	if owner != m.from {
		return ErrNotAssetHolder
	}
	if m.from != l.operator && l.assetApprovals[key] != l.operator {
		return ErrNoAssetApproval
	}
	l.assetOwners[key] = m.to
	delete(l.assetApprovals, key)
	return nil
}

func (l *Ledger) applyTokenMove(m move) error {
	fromKey := holdingKey{m.contract, m.from}
	if l.tokenBalances[fromKey] < m.amount {
		return ErrInsufficientBalance
	}
	if m.from != l.operator {
		if l.tokenAllowances[fromKey] < m.amount {
			return ErrInsufficientAllowance
		}
		l.tokenAllowances[fromKey] -= m.amount
	}
	l.tokenBalances[fromKey] -= m.amount
	l.tokenBalances[holdingKey{m.contract, m.to}] += m.amount
	return nil
}

func (l *Ledger) applyValueMove(m move) error {
	if l.valueBalances[m.from] < m.amount {
		return ErrInsufficientValue
	}
	if l.valueRejecting[m.to] {
		return ErrValueRefused
	}
	l.valueBalances[m.from] -= m.amount
	l.valueBalances[m.to] += m.amount
	return nil
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
