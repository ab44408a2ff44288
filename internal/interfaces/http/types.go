package httpinterface

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
)

type listAssetRequest struct {
	Caller        string `json:"caller"`
	AssetContract string `json:"asset_contract"`
	AssetId       uint64 `json:"asset_id"`
	Price         uint64 `json:"price"`
}

type callerRequest struct {
	Caller string `json:"caller"`
}

type fulfillRequest struct {
	Caller        string `json:"caller"`
	AttachedValue uint64 `json:"attached_value"`
}

type setFeeRequest struct {
	Caller        string `json:"caller"`
	PercentageFee uint32 `json:"percentage_fee"`
}

type initiateSwapRequest struct {
	Caller       string `json:"caller"`
	Counterparty string `json:"counterparty"`
	AssetA       string `json:"asset_a"`
	AssetB       string `json:"asset_b"`
	AmountA      uint64 `json:"amount_a"`
	AmountB      uint64 `json:"amount_b"`
	Salt         uint64 `json:"salt"`
}

type subscribeRequest struct {
	Topic    string `json:"topic"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret"`
}

type listingResponse struct {
	Id            uint64 `json:"id"`
	AssetContract string `json:"asset_contract"`
	AssetId       uint64 `json:"asset_id"`
	Price         uint64 `json:"price"`
	Seller        string `json:"seller"`
	IsForSale     bool   `json:"is_for_sale"`
}

func toListingResponse(l *domain.Listing) listingResponse {
	return listingResponse{
		Id:            l.Id,
		AssetContract: l.AssetContract.Hex(),
		AssetId:       l.AssetId,
		Price:         l.Price,
		Seller:        l.Seller.Hex(),
		IsForSale:     l.IsForSale,
	}
}

type swapResponse struct {
	Id           string `json:"id"`
	Initiator    string `json:"initiator"`
	Counterparty string `json:"counterparty"`
	AssetA       string `json:"asset_a"`
	AssetB       string `json:"asset_b"`
	AmountA      uint64 `json:"amount_a"`
	AmountB      uint64 `json:"amount_b"`
	Salt         uint64 `json:"salt"`
	Accepted     bool   `json:"accepted"`
}

func toSwapResponse(s *domain.Swap) swapResponse {
	return swapResponse{
		Id:           s.Id.Hex(),
		Initiator:    s.Initiator.Hex(),
		Counterparty: s.Counterparty.Hex(),
		AssetA:       s.AssetA.Hex(),
		AssetB:       s.AssetB.Hex(),
		AmountA:      s.AmountA,
		AmountB:      s.AmountB,
		Salt:         s.Salt,
		Accepted:     s.Accepted,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: invalid identity address %q", domain.ErrInvalidRequest, s)
	}
	return common.HexToAddress(s), nil
}
