package inmemory

import (
	"context"
	"sync"

	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
)

type feeVaultInmemoryStore struct {
	vault  domain.FeeVault
	locker *sync.Mutex
}

type feeVaultRepositoryImpl struct {
	store *feeVaultInmemoryStore
}

// NewFeeVaultRepositoryImpl returns a new inmemory FeeVaultRepository
// implementation starting at the given percentage fee.
func NewFeeVaultRepositoryImpl(percentageFee uint32) (domain.FeeVaultRepository, error) {
	vault, err := domain.NewFeeVault(percentageFee)
	if err != nil {
		return nil, err
	}
	return &feeVaultRepositoryImpl{
		store: &feeVaultInmemoryStore{
			vault:  *vault,
			locker: &sync.Mutex{},
		},
	}, nil
}

func (r feeVaultRepositoryImpl) GetFeeVault(_ context.Context) (*domain.FeeVault, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	vault := r.store.vault
	return &vault, nil
}

func (r feeVaultRepositoryImpl) UpdateFeeVault(
	_ context.Context, updateFn func(v *domain.FeeVault) (*domain.FeeVault, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentVault := r.store.vault
	updatedVault, err := updateFn(&currentVault)
	if err != nil {
		return err
	}

	r.store.vault = *updatedVault
	return nil
}
