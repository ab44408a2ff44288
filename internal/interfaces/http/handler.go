package httpinterface

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"

	"github.com/bazaar-network/bazaar-daemon/internal/core/domain"
	"github.com/bazaar-network/bazaar-daemon/internal/core/ports"
)

func (s *Server) listAsset(w http.ResponseWriter, r *http.Request) {
	var req listAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	caller, err := parseAddress(req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}
	assetContract, err := parseAddress(req.AssetContract)
	if err != nil {
		writeError(w, err)
		return
	}

	id, err := s.marketplace.ListAsset(r.Context(), caller, assetContract, req.AssetId, req.Price)
	countOperation("list_asset", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]uint64{"id": id})
}

func (s *Server) getListing(w http.ResponseWriter, r *http.Request) {
	id, err := listingId(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	listing, err := s.marketplace.GetListing(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toListingResponse(listing))
}

func (s *Server) delistAsset(w http.ResponseWriter, r *http.Request) {
	id, err := listingId(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	var req callerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	caller, err := parseAddress(req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}

	err = s.marketplace.DelistAsset(r.Context(), caller, id)
	countOperation("delist_asset", err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) fulfillListing(w http.ResponseWriter, r *http.Request) {
	id, err := listingId(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	var req fulfillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	buyer, err := parseAddress(req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}

	err = s.marketplace.FulfillListing(r.Context(), buyer, id, req.AttachedValue)
	countOperation("fulfill_listing", err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getUserTrades(w http.ResponseWriter, r *http.Request) {
	account, err := parseAddress(mux.Vars(r)["account"])
	if err != nil {
		writeError(w, err)
		return
	}
	history, err := s.marketplace.GetUserTrades(r.Context(), account)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]uint64{"listing_ids": history})
}

func (s *Server) setPercentageFee(w http.ResponseWriter, r *http.Request) {
	var req setFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	caller, err := parseAddress(req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}

	err = s.marketplace.SetPercentageFee(r.Context(), caller, req.PercentageFee)
	countOperation("set_percentage_fee", err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) withdrawFees(w http.ResponseWriter, r *http.Request) {
	var req callerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	caller, err := parseAddress(req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}

	amount, err := s.marketplace.WithdrawFees(r.Context(), caller)
	countOperation("withdraw_fees", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"amount": amount})
}

func (s *Server) initiateSwap(w http.ResponseWriter, r *http.Request) {
	var req initiateSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	addresses := make([]common.Address, 0, 4)
	for _, raw := range []string{req.Caller, req.Counterparty, req.AssetA, req.AssetB} {
		addr, err := parseAddress(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		addresses = append(addresses, addr)
	}

	id, err := s.swap.InitiateSwap(
		r.Context(),
		addresses[0], addresses[1], addresses[2], addresses[3],
		req.AmountA, req.AmountB, req.Salt,
	)
	countOperation("initiate_swap", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.Hex()})
}

func (s *Server) getSwap(w http.ResponseWriter, r *http.Request) {
	swap, err := s.swap.GetSwap(r.Context(), swapId(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSwapResponse(swap))
}

func (s *Server) acceptSwap(w http.ResponseWriter, r *http.Request) {
	var req callerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	caller, err := parseAddress(req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}

	err = s.swap.AcceptSwap(r.Context(), caller, swapId(r))
	countOperation("accept_swap", err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) cancelSwap(w http.ResponseWriter, r *http.Request) {
	var req callerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	caller, err := parseAddress(req.Caller)
	if err != nil {
		writeError(w, err)
		return
	}

	err = s.swap.CancelSwap(r.Context(), caller, swapId(r))
	countOperation("cancel_swap", err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) subscribeWebhook(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	id, err := s.pubsub.Subscribe(ports.Topic(req.Topic), req.Endpoint, req.Secret)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) unsubscribeWebhook(w http.ResponseWriter, r *http.Request) {
	topic := ports.Topic(r.URL.Query().Get("topic"))
	if err := s.pubsub.Unsubscribe(topic, mux.Vars(r)["id"]); err != nil {
		writeBadRequest(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listWebhooks(w http.ResponseWriter, r *http.Request) {
	topic := ports.Topic(r.URL.Query().Get("topic"))
	if topic == "" {
		topic = ports.AnyTopic
	}
	subs := s.pubsub.ListSubscriptionsForTopic(topic)
	out := make([]map[string]string, 0, len(subs))
	for _, sub := range subs {
		out = append(out, map[string]string{
			"id":       sub.Id(),
			"topic":    sub.Topic().String(),
			"endpoint": sub.NotifyAt(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func listingId(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
}

func swapId(r *http.Request) common.Hash {
	return common.HexToHash(mux.Vars(r)["id"])
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrListingNotFound), errors.Is(err, domain.ErrSwapNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrTransferRejected):
		status = http.StatusConflict
	}
	writeJSON(w, status, errorResponse{err.Error()})
}
