package model

import "time"

// Category classifies a vault item.
type Category string

const (
	CategoryPersonal     Category = "personal"
	CategoryFinancial    Category = "financial"
	CategoryMedical      Category = "medical"
	CategoryProfessional Category = "professional"
	CategoryOther        Category = "other"
)

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryPersonal, CategoryFinancial, CategoryMedical, CategoryProfessional, CategoryOther:
		return true
	}
	return false
}

// AccessLevel is the capability granted by an access-control entry.
// Levels are ordered: read < write < admin.
type AccessLevel string

const (
	AccessRead  AccessLevel = "read"
	AccessWrite AccessLevel = "write"
	AccessAdmin AccessLevel = "admin"
)

// AccessGrant gives one user a capability on a vault item, optionally
// time-limited. At most one grant per user exists on an item.
type AccessGrant struct {
	UserID    int64       `json:"user_id"`
	Level     AccessLevel `json:"access_level"`
	ExpiresAt *time.Time  `json:"expires_at,omitempty"`
}

// VaultItem represents a stored data record in the database.
// OwnerID and DateCreated never change after creation.
type VaultItem struct {
	ID                 string
	OwnerID            int64
	Title              string
	Description        string
	Category           Category
	Data               string
	IsEncrypted        bool
	Tags               []string
	AccessControl      []AccessGrant
	BlockchainVerified bool
	BlockchainHash     string
	BlockchainTxID     string
	DateCreated        time.Time
	LastUpdated        time.Time
}

// CreateItemRequest represents a vault item creation request.
// IsEncrypted is a pointer so an explicit false survives decoding; nil
// defaults to true.
type CreateItemRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Data        string   `json:"data"`
	Tags        []string `json:"tags"`
	IsEncrypted *bool    `json:"is_encrypted"`
}

// UpdateItemRequest represents a partial update. Nil fields are left
// untouched; set fields replace the stored value.
type UpdateItemRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Data        *string   `json:"data"`
	Tags        *[]string `json:"tags"`
	IsEncrypted *bool     `json:"is_encrypted"`
}

// ShareRequest grants another user access to a vault item by email.
type ShareRequest struct {
	Email       string     `json:"email"`
	AccessLevel string     `json:"access_level"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// VerifyRequest identifies the vault item to stamp or validate.
type VerifyRequest struct {
	DataID string `json:"data_id"`
}

// ItemResponse represents a vault item in API responses.
type ItemResponse struct {
	ID                 string        `json:"id"`
	OwnerID            int64         `json:"owner_id"`
	Title              string        `json:"title"`
	Description        string        `json:"description,omitempty"`
	Category           Category      `json:"category"`
	Data               string        `json:"data"`
	IsEncrypted        bool          `json:"is_encrypted"`
	Tags               []string      `json:"tags"`
	AccessControl      []AccessGrant `json:"access_control"`
	BlockchainVerified bool          `json:"blockchain_verified"`
	BlockchainHash     string        `json:"blockchain_hash,omitempty"`
	BlockchainTxID     string        `json:"blockchain_tx_id,omitempty"`
	DateCreated        time.Time     `json:"date_created"`
	LastUpdated        time.Time     `json:"last_updated"`
}

// StatusResponse reports the stamp fields of a vault item.
type StatusResponse struct {
	Verified bool   `json:"verified"`
	Hash     string `json:"hash,omitempty"`
	TxID     string `json:"tx_id,omitempty"`
}

// ValidateResponse reports whether the current data still matches the
// stamped digest.
type ValidateResponse struct {
	IsValid     bool   `json:"is_valid"`
	StoredHash  string `json:"stored_hash"`
	CurrentHash string `json:"current_hash"`
}
