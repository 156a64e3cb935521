package service

import (
	"context"
	"errors"
	"time"

	"github.com/datavault/datavault-go/internal/access"
	"github.com/datavault/datavault-go/internal/crypto"
	"github.com/datavault/datavault-go/internal/model"
)

var ErrNotVerified = errors.New("data has not been verified on blockchain yet")

// BlockchainService simulates blockchain attestation of vault items. A
// stamp is a SHA-256 digest of the item's data plus a synthetic transaction
// id; no real chain is involved anywhere.
type BlockchainService struct {
	items ItemRepository
}

// NewBlockchainService creates a new BlockchainService.
func NewBlockchainService(items ItemRepository) *BlockchainService {
	return &BlockchainService{items: items}
}

// Verify stamps an item with the digest of its current data. Owner-only.
// Re-stamping recomputes from current data and overwrites the prior stamp.
func (s *BlockchainService) Verify(ctx context.Context, ownerID int64, itemID string) (model.ItemResponse, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return model.ItemResponse{}, mapItemErr(err)
	}
	if item.OwnerID != ownerID {
		return model.ItemResponse{}, ErrNotOwner
	}

	txID, err := crypto.NewTxID()
	if err != nil {
		return model.ItemResponse{}, err
	}

	item.BlockchainHash = crypto.ContentHash(item.Data)
	item.BlockchainTxID = txID
	item.BlockchainVerified = true
	item.LastUpdated = time.Now().UTC()

	if err := s.items.Update(ctx, item); err != nil {
		return model.ItemResponse{}, mapItemErr(err)
	}

	return itemToResponse(item), nil
}

// Status returns the stamp fields of an item. Non-owners need a read grant.
func (s *BlockchainService) Status(ctx context.Context, requesterID int64, itemID string) (model.StatusResponse, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return model.StatusResponse{}, mapItemErr(err)
	}

	if !access.CanAccess(item, requesterID, model.AccessRead) {
		return model.StatusResponse{}, ErrNotAuthorized
	}

	return model.StatusResponse{
		Verified: item.BlockchainVerified,
		Hash:     item.BlockchainHash,
		TxID:     item.BlockchainTxID,
	}, nil
}

// Validate recomputes the digest of the item's current data and compares it
// to the stored stamp. It never mutates state, so a data edit after
// stamping shows up as is_valid=false until the owner re-stamps.
func (s *BlockchainService) Validate(ctx context.Context, requesterID int64, itemID string) (model.ValidateResponse, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return model.ValidateResponse{}, mapItemErr(err)
	}

	if !access.CanAccess(item, requesterID, model.AccessRead) {
		return model.ValidateResponse{}, ErrNotAuthorized
	}

	if !item.BlockchainVerified {
		return model.ValidateResponse{}, ErrNotVerified
	}

	currentHash := crypto.ContentHash(item.Data)

	return model.ValidateResponse{
		IsValid:     currentHash == item.BlockchainHash,
		StoredHash:  item.BlockchainHash,
		CurrentHash: currentHash,
	}, nil
}
