package dbbadger

import (
	"context"
	"sync"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
)

const feeVaultKey = "fee_vault"

type feeVaultRepositoryImpl struct {
	store  *badgerhold.Store
	locker *sync.Mutex
}

// NewFeeVaultRepositoryImpl returns a new badger FeeVaultRepository
// implementation. The vault record is created at the given percentage fee if
// the store does not hold one yet.
func NewFeeVaultRepositoryImpl(
	store *badgerhold.Store, percentageFee uint32,
) (domain.FeeVaultRepository, error) {
	var vault domain.FeeVault
	if err := store.Get(feeVaultKey, &vault); err != nil {
		if err != badgerhold.ErrNotFound {
			return nil, err
		}
		newVault, err := domain.NewFeeVault(percentageFee)
		if err != nil {
			return nil, err
		}
		if err := store.Insert(feeVaultKey, newVault); err != nil {
			return nil, err
		}
	}

	return &feeVaultRepositoryImpl{
		store:  store,
		locker: &sync.Mutex{},
	}, nil
}

func (r *feeVaultRepositoryImpl) GetFeeVault(_ context.Context) (*domain.FeeVault, error) {
	r.locker.Lock()
	defer r.locker.Unlock()

	return r.getFeeVault()
}

func (r *feeVaultRepositoryImpl) UpdateFeeVault(
	_ context.Context, updateFn func(v *domain.FeeVault) (*domain.FeeVault, error),
) error {
	r.locker.Lock()
	defer r.locker.Unlock()

	currentVault, err := r.getFeeVault()
	if err != nil {
		return err
	}

	updatedVault, err := updateFn(currentVault)
	if err != nil {
		return err
	}

	return r.store.Update(feeVaultKey, updatedVault)
}

func (r *feeVaultRepositoryImpl) getFeeVault() (*domain.FeeVault, error) {
	var vault domain.FeeVault
	if err := r.store.Get(feeVaultKey, &vault); err != nil {
		return nil, err
	}
	return &vault, nil
}
