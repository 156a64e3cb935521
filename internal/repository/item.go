package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/datavault/datavault-go/internal/model"
)

var ErrItemNotFound = errors.New("data item not found")

// ItemRepository handles vault item persistence operations. Each item is a
// single row; tags and the access-control list are JSON columns so every
// operation touches exactly one row and inherits the store's per-row
// atomicity.
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new ItemRepository.
func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `id, owner_id, title, description, category, data, is_encrypted,
	tags, access_control, blockchain_verified, blockchain_hash, blockchain_tx_id,
	date_created, last_updated`

// Insert stores a new vault item.
func (r *ItemRepository) Insert(ctx context.Context, item *model.VaultItem) error {
	tags, grants, err := marshalItemJSON(item)
	if err != nil {
		return err
	}

	query := `INSERT INTO vault_items (` + itemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		item.ID, item.OwnerID, item.Title, item.Description, item.Category,
		item.Data, item.IsEncrypted, tags, grants,
		item.BlockchainVerified, item.BlockchainHash, item.BlockchainTxID,
		item.DateCreated, item.LastUpdated,
	)
	return err
}

// GetByID retrieves a vault item by its ID.
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*model.VaultItem, error) {
	query := `SELECT ` + itemColumns + ` FROM vault_items WHERE id = ?`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return item, nil
}

// ListByOwner retrieves all items owned by a user, newest first.
func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.VaultItem, error) {
	query := `SELECT ` + itemColumns + ` FROM vault_items
		WHERE owner_id = ? ORDER BY date_created DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.VaultItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

// Update rewrites all mutable columns of an item. Owner and creation time
// are never written after insert.
func (r *ItemRepository) Update(ctx context.Context, item *model.VaultItem) error {
	tags, grants, err := marshalItemJSON(item)
	if err != nil {
		return err
	}

	query := `UPDATE vault_items SET
		title = ?, description = ?, category = ?, data = ?, is_encrypted = ?,
		tags = ?, access_control = ?,
		blockchain_verified = ?, blockchain_hash = ?, blockchain_tx_id = ?,
		last_updated = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		item.Title, item.Description, item.Category, item.Data, item.IsEncrypted,
		tags, grants,
		item.BlockchainVerified, item.BlockchainHash, item.BlockchainTxID,
		item.LastUpdated, item.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// Delete permanently removes a vault item. There is no tombstone.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vault_items WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanItem.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*model.VaultItem, error) {
	var (
		item   model.VaultItem
		tags   []byte
		grants []byte
	)

	err := s.Scan(
		&item.ID, &item.OwnerID, &item.Title, &item.Description, &item.Category,
		&item.Data, &item.IsEncrypted, &tags, &grants,
		&item.BlockchainVerified, &item.BlockchainHash, &item.BlockchainTxID,
		&item.DateCreated, &item.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tags, &item.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags for item %s: %w", item.ID, err)
	}
	if err := json.Unmarshal(grants, &item.AccessControl); err != nil {
		return nil, fmt.Errorf("decoding access control for item %s: %w", item.ID, err)
	}

	return &item, nil
}

func marshalItemJSON(item *model.VaultItem) (tags, grants []byte, err error) {
	t := item.Tags
	if t == nil {
		t = []string{}
	}
	g := item.AccessControl
	if g == nil {
		g = []model.AccessGrant{}
	}

	tags, err = json.Marshal(t)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding tags: %w", err)
	}
	grants, err = json.Marshal(g)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding access control: %w", err)
	}

	return tags, grants, nil
}
