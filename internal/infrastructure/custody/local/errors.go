package localcustody

import "errors"

var (
	// ErrAssetNotFound is returned when querying an asset the ledger never
	// minted.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrNotAssetHolder is returned when moving an asset from an identity that
	// does not hold it.
	ErrNotAssetHolder = errors.New("sender does not hold the asset")
	// ErrNoAssetApproval is returned when the registry moves an asset it was
	// not approved for.
	ErrNoAssetApproval = errors.New("registry is not approved for the asset")
	// ErrInsufficientBalance ...
	ErrInsufficientBalance = errors.New("insufficient token balance")
	// ErrInsufficientAllowance is returned when a token move exceeds the
	// allowance the holder granted to the registry.
	ErrInsufficientAllowance = errors.New("insufficient token allowance")
	// ErrInsufficientValue ...
	ErrInsufficientValue = errors.New("insufficient value balance")
	// ErrValueRefused is returned when pushing value to a recipient that
	// refuses payments.
	ErrValueRefused = errors.New("recipient refused the value push")
	// ErrSettlementDone is returned when committing a settlement twice.
	ErrSettlementDone = errors.New("settlement already committed or discarded")
)
