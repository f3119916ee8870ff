package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tzar-nft-registry/internal/domain"
	"tzar-nft-registry/internal/feed"
	"tzar-nft-registry/internal/ledger"
	"tzar-nft-registry/internal/registry"
	"tzar-nft-registry/internal/storage"
)

// apiServer exposes the registry transitions and reads over HTTP.
type apiServer struct {
	reg    *registry.Registry
	hub    *feed.Hub
	logger *log.Logger
}

func newAPIServer(reg *registry.Registry, hub *feed.Hub, logger *log.Logger) *apiServer {
	return &apiServer{reg: reg, hub: hub, logger: logger}
}

func (s *apiServer) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/collections", s.handleCreateCollection)
	mux.HandleFunc("POST /v1/mint", s.handleMint)
	mux.HandleFunc("POST /v1/batch-mint", s.handleBatchMint)
	mux.HandleFunc("POST /v1/transfer", s.handleTransfer)
	mux.HandleFunc("POST /v1/burn", s.handleBurn)
	mux.HandleFunc("POST /v1/metadata", s.handleUpdateMetadata)
	mux.HandleFunc("POST /v1/cap-transfer", s.handleCapTransfer)

	mux.HandleFunc("GET /v1/collections/{id}", s.handleGetCollection)
	mux.HandleFunc("GET /v1/collections/{id}/info", s.handleCollectionInfo)
	mux.HandleFunc("GET /v1/collections/{id}/tokens", s.handleCollectionTokens)
	mux.HandleFunc("GET /v1/tokens/{id}", s.handleGetToken)
	mux.HandleFunc("GET /v1/tokens/{id}/holder", s.handleTokenHolder)
	mux.HandleFunc("GET /v1/caps/{id}", s.handleGetCap)

	mux.Handle("GET /ws", s.hub)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return mux
}

// Wire shapes for the JSON API. Domain records carry no JSON tags, so every
// response maps through one of these.

type collectionJSON struct {
	CollectionID string `json:"collection_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Creator      string `json:"creator"`
	TotalSupply  int64  `json:"total_supply"`
	MaxSupply    int64  `json:"max_supply"`
	CreatedAt    int64  `json:"created_at"`
}

func toCollectionJSON(c *domain.Collection) collectionJSON {
	return collectionJSON{
		CollectionID: c.CollectionID,
		Name:         c.Name,
		Description:  c.Description,
		Creator:      c.Creator.String(),
		TotalSupply:  c.TotalSupply,
		MaxSupply:    c.MaxSupply,
		CreatedAt:    c.CreatedAt,
	}
}

type collectionInfoJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Creator     string `json:"creator"`
	TotalSupply int64  `json:"total_supply"`
	MaxSupply   int64  `json:"max_supply"`
}

type mintCapJSON struct {
	CapID        string `json:"cap_id"`
	CollectionID string `json:"collection_id"`
	Holder       string `json:"holder"`
	CreatedAt    int64  `json:"created_at"`
}

func toMintCapJSON(mc *domain.MintCap) mintCapJSON {
	return mintCapJSON{
		CapID:        mc.CapID,
		CollectionID: mc.CollectionID,
		Holder:       mc.Holder.String(),
		CreatedAt:    mc.CreatedAt,
	}
}

type tokenJSON struct {
	NFTID        string `json:"nft_id"`
	CollectionID string `json:"collection_id"`
	TokenID      int64  `json:"token_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURI     string `json:"image_uri"`
	Creator      string `json:"creator"`
	Holder       string `json:"holder"`
	MintedAt     int64  `json:"minted_at"`
}

func toTokenJSON(t *domain.Token) tokenJSON {
	return tokenJSON{
		NFTID:        t.NFTID,
		CollectionID: t.CollectionID,
		TokenID:      t.TokenID,
		Name:         t.Name,
		Description:  t.Description,
		ImageURI:     t.ImageURI,
		Creator:      t.Creator.String(),
		Holder:       t.Holder.String(),
		MintedAt:     t.MintedAt,
	}
}

func toTokenListJSON(tokens []*domain.Token) []tokenJSON {
	out := make([]tokenJSON, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, toTokenJSON(t))
	}
	return out
}

type createCollectionRequest struct {
	Sender      string `json:"sender"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxSupply   int64  `json:"max_supply"`
}

type createCollectionResponse struct {
	Collection collectionJSON `json:"collection"`
	MintCap    mintCapJSON    `json:"mint_cap"`
	TxID       string         `json:"tx_id"`
}

func (s *apiServer) handleCreateCollection(w http.ResponseWriter, r *http.Request) {
	var req createCollectionRequest
	if !s.decode(w, r, &req) {
		return
	}
	tx, ok := s.newTx(w, req.Sender)
	if !ok {
		return
	}

	coll, mintCap, err := s.reg.CreateCollection(r.Context(), tx, req.Name, req.Description, req.MaxSupply)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, createCollectionResponse{
		Collection: toCollectionJSON(coll),
		MintCap:    toMintCapJSON(mintCap),
		TxID:       tx.TxID,
	})
}

type mintRequest struct {
	Sender       string `json:"sender"`
	CollectionID string `json:"collection_id"`
	CapID        string `json:"cap_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURI     string `json:"image_uri"`
	Recipient    string `json:"recipient"`
}

type mintResponse struct {
	Token tokenJSON `json:"token"`
	TxID  string    `json:"tx_id"`
}

func (s *apiServer) handleMint(w http.ResponseWriter, r *http.Request) {
	var req mintRequest
	if !s.decode(w, r, &req) {
		return
	}
	tx, ok := s.newTx(w, req.Sender)
	if !ok {
		return
	}
	recipient, err := domain.ParseAddress(req.Recipient)
	if err != nil {
		s.writeError(w, err)
		return
	}

	token, err := s.reg.MintNFT(r.Context(), tx, req.CollectionID, req.CapID,
		req.Name, req.Description, req.ImageURI, recipient)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, mintResponse{Token: toTokenJSON(token), TxID: tx.TxID})
}

type batchMintRequest struct {
	Sender       string   `json:"sender"`
	CollectionID string   `json:"collection_id"`
	CapID        string   `json:"cap_id"`
	Names        []string `json:"names"`
	Descriptions []string `json:"descriptions"`
	ImageURIs    []string `json:"image_uris"`
	Recipients   []string `json:"recipients"`
}

type batchMintResponse struct {
	Tokens []tokenJSON `json:"tokens"`
	TxID   string      `json:"tx_id"`
}

func (s *apiServer) handleBatchMint(w http.ResponseWriter, r *http.Request) {
	var req batchMintRequest
	if !s.decode(w, r, &req) {
		return
	}
	tx, ok := s.newTx(w, req.Sender)
	if !ok {
		return
	}

	recipients := make([]domain.Address, len(req.Recipients))
	for i, raw := range req.Recipients {
		addr, err := domain.ParseAddress(raw)
		if err != nil {
			s.writeError(w, err)
			return
		}
		recipients[i] = addr
	}

	tokens, err := s.reg.BatchMint(r.Context(), tx, req.CollectionID, req.CapID,
		req.Names, req.Descriptions, req.ImageURIs, recipients)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, batchMintResponse{Tokens: toTokenListJSON(tokens), TxID: tx.TxID})
}

type transferRequest struct {
	Sender    string `json:"sender"`
	NFTID     string `json:"nft_id"`
	Recipient string `json:"recipient"`
}

func (s *apiServer) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !s.decode(w, r, &req) {
		return
	}
	tx, ok := s.newTx(w, req.Sender)
	if !ok {
		return
	}
	recipient, err := domain.ParseAddress(req.Recipient)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.reg.TransferNFT(r.Context(), tx, req.NFTID, recipient); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"tx_id": tx.TxID})
}

type burnRequest struct {
	Sender string `json:"sender"`
	NFTID  string `json:"nft_id"`
}

func (s *apiServer) handleBurn(w http.ResponseWriter, r *http.Request) {
	var req burnRequest
	if !s.decode(w, r, &req) {
		return
	}
	tx, ok := s.newTx(w, req.Sender)
	if !ok {
		return
	}

	if err := s.reg.BurnNFT(r.Context(), tx, req.NFTID); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"tx_id": tx.TxID})
}

type updateMetadataRequest struct {
	Sender      string `json:"sender"`
	NFTID       string `json:"nft_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURI    string `json:"image_uri"`
}

func (s *apiServer) handleUpdateMetadata(w http.ResponseWriter, r *http.Request) {
	var req updateMetadataRequest
	if !s.decode(w, r, &req) {
		return
	}
	tx, ok := s.newTx(w, req.Sender)
	if !ok {
		return
	}

	if err := s.reg.UpdateNFTMetadata(r.Context(), tx, req.NFTID, req.Name, req.Description, req.ImageURI); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"tx_id": tx.TxID})
}

type capTransferRequest struct {
	Sender    string `json:"sender"`
	CapID     string `json:"cap_id"`
	Recipient string `json:"recipient"`
}

func (s *apiServer) handleCapTransfer(w http.ResponseWriter, r *http.Request) {
	var req capTransferRequest
	if !s.decode(w, r, &req) {
		return
	}
	tx, ok := s.newTx(w, req.Sender)
	if !ok {
		return
	}
	recipient, err := domain.ParseAddress(req.Recipient)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.reg.TransferMintCap(r.Context(), tx, req.CapID, recipient); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"tx_id": tx.TxID})
}

func (s *apiServer) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	coll, err := s.reg.GetCollection(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toCollectionJSON(coll))
}

func (s *apiServer) handleCollectionInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.reg.CollectionInfo(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, collectionInfoJSON{
		Name:        info.Name,
		Description: info.Description,
		Creator:     info.Creator.String(),
		TotalSupply: info.TotalSupply,
		MaxSupply:   info.MaxSupply,
	})
}

func (s *apiServer) handleCollectionTokens(w http.ResponseWriter, r *http.Request) {
	tokens, err := s.reg.TokensOf(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toTokenListJSON(tokens))
}

func (s *apiServer) handleGetToken(w http.ResponseWriter, r *http.Request) {
	token, err := s.reg.GetToken(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toTokenJSON(token))
}

func (s *apiServer) handleTokenHolder(w http.ResponseWriter, r *http.Request) {
	holder, err := s.reg.HolderOf(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"holder": holder.String()})
}

func (s *apiServer) handleGetCap(w http.ResponseWriter, r *http.Request) {
	mintCap, err := s.reg.GetMintCap(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toMintCapJSON(mintCap))
}

// newTx parses the sender and opens a transaction context for one transition.
func (s *apiServer) newTx(w http.ResponseWriter, sender string) (*ledger.TxContext, bool) {
	addr, err := domain.ParseAddress(sender)
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return ledger.NewTxContext(addr), true
}

func (s *apiServer) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return false
	}
	return true
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("write response: %v", err)
	}
}

// writeError maps transition and storage errors onto HTTP statuses.
func (s *apiServer) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, registry.ErrCapacityExceeded),
		errors.Is(err, storage.ErrDuplicateKey):
		status = http.StatusConflict
	case errors.Is(err, registry.ErrLengthMismatch),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, storage.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, registry.ErrNotOwner),
		errors.Is(err, registry.ErrNotHolder),
		errors.Is(err, registry.ErrCapabilityMismatch):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		s.logger.Printf("internal error: %v", err)
		s.writeJSON(w, status, map[string]string{"error": "internal error"})
		return
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
