package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/datavault/datavault-go/internal/model"
)

func TestMarshalItemJSONNilSlices(t *testing.T) {
	item := &model.VaultItem{ID: "item-1"}

	tags, grants, err := marshalItemJSON(item)
	if err != nil {
		t.Fatalf("marshalItemJSON() unexpected error: %v", err)
	}

	// Nil slices must round-trip as empty JSON arrays, not null, so the
	// JSON columns always hold valid arrays.
	if string(tags) != "[]" {
		t.Errorf("tags = %s, want []", tags)
	}
	if string(grants) != "[]" {
		t.Errorf("grants = %s, want []", grants)
	}
}

func TestMarshalItemJSONGrants(t *testing.T) {
	expiry := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	item := &model.VaultItem{
		ID:   "item-1",
		Tags: []string{"travel", "id"},
		AccessControl: []model.AccessGrant{
			{UserID: 7, Level: model.AccessWrite, ExpiresAt: &expiry},
		},
	}

	_, grants, err := marshalItemJSON(item)
	if err != nil {
		t.Fatalf("marshalItemJSON() unexpected error: %v", err)
	}

	var decoded []model.AccessGrant
	if err := json.Unmarshal(grants, &decoded); err != nil {
		t.Fatalf("unmarshal grants: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("decoded %d grants, want 1", len(decoded))
	}
	if decoded[0].UserID != 7 || decoded[0].Level != model.AccessWrite {
		t.Errorf("decoded grant = %+v", decoded[0])
	}
	if decoded[0].ExpiresAt == nil || !decoded[0].ExpiresAt.Equal(expiry) {
		t.Error("grant expiry did not survive the round trip")
	}
}

func TestNewItemRepository(t *testing.T) {
	repo := NewItemRepository(nil)
	if repo == nil {
		t.Fatal("expected non-nil ItemRepository")
	}
	if repo.db != nil {
		t.Fatal("expected nil db when constructed with nil")
	}
}
