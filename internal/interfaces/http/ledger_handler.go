package httpinterface

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// Sandbox custody endpoints, registered only when the daemon runs with the
// in-process ledger. They take the place of the asset contracts that would
// hold balances and manage approvals in a real deployment.

type mintAssetRequest struct {
	AssetContract string `json:"asset_contract"`
	AssetId       uint64 `json:"asset_id"`
	Owner         string `json:"owner"`
}

type approveAssetRequest struct {
	AssetContract string `json:"asset_contract"`
	AssetId       uint64 `json:"asset_id"`
}

type mintTokensRequest struct {
	AssetContract string `json:"asset_contract"`
	Holder        string `json:"holder"`
	Amount        uint64 `json:"amount"`
}

type fundValueRequest struct {
	Identity string `json:"identity"`
	Amount   uint64 `json:"amount"`
}

func (s *Server) registerLedgerRoutes(v1 *mux.Router) {
	v1.HandleFunc("/ledger/assets", s.mintAsset).Methods(http.MethodPost)
	v1.HandleFunc("/ledger/assets/approve", s.approveAsset).Methods(http.MethodPost)
	v1.HandleFunc("/ledger/tokens", s.mintTokens).Methods(http.MethodPost)
	v1.HandleFunc("/ledger/tokens/allowance", s.increaseAllowance).Methods(http.MethodPost)
	v1.HandleFunc("/ledger/value", s.fundValue).Methods(http.MethodPost)
	v1.HandleFunc("/ledger/value/{identity}", s.getValueBalance).Methods(http.MethodGet)
}

func (s *Server) mintAsset(w http.ResponseWriter, r *http.Request) {
	var req mintAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	contract, err := parseAddress(req.AssetContract)
	if err != nil {
		writeError(w, err)
		return
	}
	owner, err := parseAddress(req.Owner)
	if err != nil {
		writeError(w, err)
		return
	}
	s.ledger.MintAsset(contract, req.AssetId, owner)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) approveAsset(w http.ResponseWriter, r *http.Request) {
	var req approveAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	contract, err := parseAddress(req.AssetContract)
	if err != nil {
		writeError(w, err)
		return
	}
	s.ledger.ApproveAsset(contract, req.AssetId)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) mintTokens(w http.ResponseWriter, r *http.Request) {
	var req mintTokensRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	contract, err := parseAddress(req.AssetContract)
	if err != nil {
		writeError(w, err)
		return
	}
	holder, err := parseAddress(req.Holder)
	if err != nil {
		writeError(w, err)
		return
	}
	s.ledger.MintTokens(contract, holder, req.Amount)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) increaseAllowance(w http.ResponseWriter, r *http.Request) {
	var req mintTokensRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	contract, err := parseAddress(req.AssetContract)
	if err != nil {
		writeError(w, err)
		return
	}
	holder, err := parseAddress(req.Holder)
	if err != nil {
		writeError(w, err)
		return
	}
	s.ledger.IncreaseAllowance(contract, holder, req.Amount)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) fundValue(w http.ResponseWriter, r *http.Request) {
	var req fundValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}
	identity, err := parseAddress(req.Identity)
	if err != nil {
		writeError(w, err)
		return
	}
	s.ledger.FundValue(identity, req.Amount)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getValueBalance(w http.ResponseWriter, r *http.Request) {
	identity, err := parseAddress(mux.Vars(r)["identity"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"balance": s.ledger.ValueBalance(identity)})
}
