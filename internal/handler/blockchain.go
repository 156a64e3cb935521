package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/datavault/datavault-go/internal/middleware"
	"github.com/datavault/datavault-go/internal/model"
	"github.com/datavault/datavault-go/internal/service"
)

// BlockchainHandler handles HTTP requests for simulated blockchain
// verification of vault items.
type BlockchainHandler struct {
	service *service.BlockchainService
}

// NewBlockchainHandler creates a new BlockchainHandler.
func NewBlockchainHandler(svc *service.BlockchainService) *BlockchainHandler {
	return &BlockchainHandler{service: svc}
}

func writeBlockchainError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrNotVerified) {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	writeItemError(w, err)
}

// decodeVerifyRequest reads and validates the shared verify/validate body.
func decodeVerifyRequest(w http.ResponseWriter, r *http.Request) (model.VerifyRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if isBodyTooLarge(err) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return req, false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return req, false
	}

	if req.DataID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("data id is required"))
		return req, false
	}

	return req, true
}

// HandleVerify handles POST /api/blockchain/verify requests.
func (h *BlockchainHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	req, ok := decodeVerifyRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Verify(r.Context(), userID, req.DataID)
	if err != nil {
		writeBlockchainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"msg":       "data verified on blockchain",
		"data_item": resp,
	})
}

// HandleStatus handles GET /api/blockchain/status/{id} requests.
func (h *BlockchainHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	itemID := chi.URLParam(r, "id")
	if itemID == "" || len(itemID) > 36 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid item id"))
		return
	}

	resp, err := h.service.Status(r.Context(), userID, itemID)
	if err != nil {
		writeBlockchainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleValidate handles POST /api/blockchain/validate requests.
func (h *BlockchainHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	req, ok := decodeVerifyRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Validate(r.Context(), userID, req.DataID)
	if err != nil {
		writeBlockchainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
