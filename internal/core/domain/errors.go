package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every concrete error below wraps exactly one of these so
// that callers can select the class with errors.Is.
var (
	// ErrUnauthorized is returned when the caller is not the identity allowed
	// to perform the requested operation.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidRequest is returned when the request is malformed or targets a
	// record in a state that does not admit the operation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrTransferRejected is returned when a custody move or a value push is
	// rejected by the external collaborator. The whole operation is aborted
	// and no partial effects persist.
	ErrTransferRejected = errors.New("transfer rejected by custody collaborator")
)

var (
	// ErrZeroPrice ...
	ErrZeroPrice = fmt.Errorf("%w: price must be strictly positive", ErrInvalidRequest)
	// ErrListingNotFound ...
	ErrListingNotFound = fmt.Errorf("%w: listing not found", ErrInvalidRequest)
	// ErrListingClosed is returned when operating on a listing that already
	// left the for-sale state. Closed listings are never resurrected.
	ErrListingClosed = fmt.Errorf("%w: listing is no longer for sale", ErrInvalidRequest)
	// ErrPriceMismatch is returned when the attached value does not match the
	// listing price exactly. Partial and excess payments are both refused.
	ErrPriceMismatch = fmt.Errorf("%w: attached value must equal the listing price", ErrInvalidRequest)
	// ErrNotAssetOwner ...
	ErrNotAssetOwner = fmt.Errorf("%w: caller does not own the asset", ErrUnauthorized)
	// ErrNotSeller ...
	ErrNotSeller = fmt.Errorf("%w: only the seller can delist", ErrUnauthorized)

	// ErrNotGuardOwner gates the fee configuration and withdrawal operations.
	ErrNotGuardOwner = fmt.Errorf("%w: only the registry owner can perform this operation", ErrUnauthorized)
	// ErrFeeOutOfRange ...
	ErrFeeOutOfRange = fmt.Errorf("%w: percentage fee must be in range [0, 100]", ErrInvalidRequest)

	// ErrSwapSlotOccupied is returned when initiating a swap whose derived
	// identifier collides with a pending or accepted one.
	ErrSwapSlotOccupied = fmt.Errorf("%w: a swap with the same parameters is already registered", ErrInvalidRequest)
	// ErrSwapNotFound ...
	ErrSwapNotFound = fmt.Errorf("%w: swap not found", ErrInvalidRequest)
	// ErrSwapAlreadyAccepted ...
	ErrSwapAlreadyAccepted = fmt.Errorf("%w: swap is already accepted", ErrInvalidRequest)
	// ErrNotCounterparty ...
	ErrNotCounterparty = fmt.Errorf("%w: only the designated counterparty can accept", ErrUnauthorized)
	// ErrNotInitiator ...
	ErrNotInitiator = fmt.Errorf("%w: only the initiator can cancel", ErrUnauthorized)
)
