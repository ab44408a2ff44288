package domain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
)

func TestNewFeeVault(t *testing.T) {
	t.Parallel()

	vault, err := domain.NewFeeVault(5)
	require.NoError(t, err)
	require.Equal(t, uint32(5), vault.PercentageFee)
	require.Zero(t, vault.CollectedFees)

	vault, err = domain.NewFeeVault(101)
	require.EqualError(t, err, domain.ErrFeeOutOfRange.Error())
	require.Nil(t, vault)
}

func TestSetPercentageFee(t *testing.T) {
	t.Parallel()

	vault, err := domain.NewFeeVault(5)
	require.NoError(t, err)

	err = vault.SetPercentageFee(100)
	require.NoError(t, err)
	require.Equal(t, uint32(100), vault.PercentageFee)

	err = vault.SetPercentageFee(101)
	require.EqualError(t, err, domain.ErrFeeOutOfRange.Error())
	require.Equal(t, uint32(100), vault.PercentageFee)
}

func TestSplitPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pct              uint32
		price            uint64
		expectedFee      uint64
		expectedProceeds uint64
	}{
		{pct: 5, price: 1000, expectedFee: 50, expectedProceeds: 950},
		{pct: 5, price: 99, expectedFee: 4, expectedProceeds: 95},
		{pct: 5, price: 19, expectedFee: 0, expectedProceeds: 19},
		{pct: 0, price: 1000, expectedFee: 0, expectedProceeds: 1000},
		{pct: 100, price: 1000, expectedFee: 1000, expectedProceeds: 0},
		{pct: 33, price: 10, expectedFee: 3, expectedProceeds: 7},
		{pct: 1, price: 1, expectedFee: 0, expectedProceeds: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("%d_pct_of_%d", tt.pct, tt.price), func(t *testing.T) {
			t.Parallel()

			vault, err := domain.NewFeeVault(tt.pct)
			require.NoError(t, err)

			fee, proceeds := vault.SplitPrice(tt.price)
			require.Equal(t, tt.expectedFee, fee)
			require.Equal(t, tt.expectedProceeds, proceeds)
			require.Equal(t, tt.price, fee+proceeds)
		})
	}
}

func TestCollectAndDrain(t *testing.T) {
	t.Parallel()

	vault, err := domain.NewFeeVault(5)
	require.NoError(t, err)

	vault.Collect(50)
	vault.Collect(25)
	require.Equal(t, uint64(75), vault.CollectedFees)

	collected := vault.Drain()
	require.Equal(t, uint64(75), collected)
	require.Zero(t, vault.CollectedFees)

	// draining an empty vault pays out nothing
	require.Zero(t, vault.Drain())
}
