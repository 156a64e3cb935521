package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/datavault/datavault-go/internal/access"
	"github.com/datavault/datavault-go/internal/model"
	"github.com/datavault/datavault-go/internal/repository"
)

var (
	ErrTitleRequired      = errors.New("title is required")
	ErrDataRequired       = errors.New("data content is required")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidAccessLevel = errors.New("invalid access level")
	ErrItemNotFound       = errors.New("data item not found")
	ErrNotAuthorized      = errors.New("not authorized to access this data")
	ErrNotOwner           = errors.New("only the owner may modify this data")
	ErrGranteeNotFound    = errors.New("target user not found")
)

// mapItemErr translates repository sentinels into service-level errors.
func mapItemErr(err error) error {
	if errors.Is(err, repository.ErrItemNotFound) {
		return ErrItemNotFound
	}
	return err
}

// ItemRepository is the persistence contract consumed by the item and
// blockchain services.
type ItemRepository interface {
	Insert(ctx context.Context, item *model.VaultItem) error
	GetByID(ctx context.Context, id string) (*model.VaultItem, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.VaultItem, error)
	Update(ctx context.Context, item *model.VaultItem) error
	Delete(ctx context.Context, id string) error
}

// UserRepository is the identity lookup contract consumed by the services.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// ItemService handles vault item business logic: CRUD plus sharing.
// Reads are gated by the access evaluator; all mutation is owner-only.
type ItemService struct {
	items ItemRepository
	users UserRepository
}

// NewItemService creates a new ItemService.
func NewItemService(items ItemRepository, users UserRepository) *ItemService {
	return &ItemService{items: items, users: users}
}

// Create stores a new vault item for the owner.
func (s *ItemService) Create(ctx context.Context, ownerID int64, req model.CreateItemRequest) (model.ItemResponse, error) {
	if req.Title == "" {
		return model.ItemResponse{}, ErrTitleRequired
	}
	if req.Data == "" {
		return model.ItemResponse{}, ErrDataRequired
	}

	category := model.CategoryPersonal
	if req.Category != "" {
		category = model.Category(req.Category)
		if !category.IsValid() {
			return model.ItemResponse{}, ErrInvalidCategory
		}
	}

	// The flag is informational only: no cipher is applied to the data.
	isEncrypted := true
	if req.IsEncrypted != nil {
		isEncrypted = *req.IsEncrypted
	}

	now := time.Now().UTC()
	item := model.VaultItem{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		Data:        req.Data,
		IsEncrypted: isEncrypted,
		Tags:        req.Tags,
		DateCreated: now,
		LastUpdated: now,
	}

	if err := s.items.Insert(ctx, &item); err != nil {
		return model.ItemResponse{}, err
	}

	return itemToResponse(&item), nil
}

// Get returns a single item. Non-owners need an active read grant.
func (s *ItemService) Get(ctx context.Context, requesterID int64, itemID string) (model.ItemResponse, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return model.ItemResponse{}, mapItemErr(err)
	}

	if !access.CanAccess(item, requesterID, model.AccessRead) {
		return model.ItemResponse{}, ErrNotAuthorized
	}

	return itemToResponse(item), nil
}

// List returns all items owned by the user, newest first.
func (s *ItemService) List(ctx context.Context, ownerID int64) ([]model.ItemResponse, error) {
	items, err := s.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := make([]model.ItemResponse, len(items))
	for i := range items {
		result[i] = itemToResponse(&items[i])
	}
	return result, nil
}

// Update applies the supplied fields to an item. Only the owner may update.
// Editing data does not clear an existing stamp; the drift is surfaced by
// the integrity check instead.
func (s *ItemService) Update(ctx context.Context, ownerID int64, itemID string, req model.UpdateItemRequest) (model.ItemResponse, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return model.ItemResponse{}, mapItemErr(err)
	}
	if item.OwnerID != ownerID {
		return model.ItemResponse{}, ErrNotOwner
	}

	if req.Title != nil {
		if *req.Title == "" {
			return model.ItemResponse{}, ErrTitleRequired
		}
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		category := model.Category(*req.Category)
		if !category.IsValid() {
			return model.ItemResponse{}, ErrInvalidCategory
		}
		item.Category = category
	}
	if req.Data != nil {
		if *req.Data == "" {
			return model.ItemResponse{}, ErrDataRequired
		}
		item.Data = *req.Data
	}
	if req.Tags != nil {
		item.Tags = *req.Tags
	}
	if req.IsEncrypted != nil {
		item.IsEncrypted = *req.IsEncrypted
	}

	item.LastUpdated = time.Now().UTC()

	if err := s.items.Update(ctx, item); err != nil {
		return model.ItemResponse{}, mapItemErr(err)
	}

	return itemToResponse(item), nil
}

// Delete permanently removes an item. Only the owner may delete.
func (s *ItemService) Delete(ctx context.Context, ownerID int64, itemID string) error {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return mapItemErr(err)
	}
	if item.OwnerID != ownerID {
		return ErrNotOwner
	}

	return mapItemErr(s.items.Delete(ctx, itemID))
}

// Share grants another user access to an item, looked up by email.
// Granting twice to the same user replaces the existing grant; an omitted
// expiry keeps the prior one.
func (s *ItemService) Share(ctx context.Context, ownerID int64, itemID string, req model.ShareRequest) (model.ItemResponse, error) {
	level, ok := access.ParseLevel(req.AccessLevel)
	if !ok {
		return model.ItemResponse{}, ErrInvalidAccessLevel
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return model.ItemResponse{}, mapItemErr(err)
	}
	if item.OwnerID != ownerID {
		return model.ItemResponse{}, ErrNotOwner
	}

	grantee, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.ItemResponse{}, ErrGranteeNotFound
		}
		return model.ItemResponse{}, err
	}

	replaced := false
	for i, grant := range item.AccessControl {
		if grant.UserID != grantee.ID {
			continue
		}
		expiresAt := grant.ExpiresAt
		if req.ExpiresAt != nil {
			expiresAt = req.ExpiresAt
		}
		item.AccessControl[i] = model.AccessGrant{
			UserID:    grantee.ID,
			Level:     level,
			ExpiresAt: expiresAt,
		}
		replaced = true
		break
	}
	if !replaced {
		item.AccessControl = append(item.AccessControl, model.AccessGrant{
			UserID:    grantee.ID,
			Level:     level,
			ExpiresAt: req.ExpiresAt,
		})
	}

	item.LastUpdated = time.Now().UTC()

	if err := s.items.Update(ctx, item); err != nil {
		return model.ItemResponse{}, mapItemErr(err)
	}

	return itemToResponse(item), nil
}

// Revoke removes any grant for the given user. Revoking an absent grant is
// not an error.
func (s *ItemService) Revoke(ctx context.Context, ownerID int64, itemID string, granteeID int64) (model.ItemResponse, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return model.ItemResponse{}, mapItemErr(err)
	}
	if item.OwnerID != ownerID {
		return model.ItemResponse{}, ErrNotOwner
	}

	kept := item.AccessControl[:0]
	for _, grant := range item.AccessControl {
		if grant.UserID != granteeID {
			kept = append(kept, grant)
		}
	}
	item.AccessControl = kept

	item.LastUpdated = time.Now().UTC()

	if err := s.items.Update(ctx, item); err != nil {
		return model.ItemResponse{}, mapItemErr(err)
	}

	return itemToResponse(item), nil
}

// itemToResponse converts a VaultItem to its API representation.
func itemToResponse(item *model.VaultItem) model.ItemResponse {
	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}
	grants := item.AccessControl
	if grants == nil {
		grants = []model.AccessGrant{}
	}

	return model.ItemResponse{
		ID:                 item.ID,
		OwnerID:            item.OwnerID,
		Title:              item.Title,
		Description:        item.Description,
		Category:           item.Category,
		Data:               item.Data,
		IsEncrypted:        item.IsEncrypted,
		Tags:               tags,
		AccessControl:      grants,
		BlockchainVerified: item.BlockchainVerified,
		BlockchainHash:     item.BlockchainHash,
		BlockchainTxID:     item.BlockchainTxID,
		DateCreated:        item.DateCreated,
		LastUpdated:        item.LastUpdated,
	}
}
