// Package access decides whether a user may act on a vault item.
package access

import (
	"time"

	"github.com/datavault/datavault-go/internal/model"
)

// levelRank orders access levels: read < write < admin. Unknown levels
// rank below read and never satisfy a requirement.
func levelRank(level model.AccessLevel) int {
	switch level {
	case model.AccessRead:
		return 1
	case model.AccessWrite:
		return 2
	case model.AccessAdmin:
		return 3
	}
	return 0
}

// ParseLevel converts a request string into an AccessLevel.
func ParseLevel(s string) (model.AccessLevel, bool) {
	switch model.AccessLevel(s) {
	case model.AccessRead, model.AccessWrite, model.AccessAdmin:
		return model.AccessLevel(s), true
	}
	return "", false
}

// CanAccess reports whether requesterID may act on the item at the required
// level. The owner always passes. A non-owner passes only with an unexpired
// grant of equal or higher level. It never errors; callers translate false
// into an authorization failure.
func CanAccess(item *model.VaultItem, requesterID int64, required model.AccessLevel) bool {
	if item.OwnerID == requesterID {
		return true
	}

	now := time.Now()
	for _, grant := range item.AccessControl {
		if grant.UserID != requesterID {
			continue
		}
		if grant.ExpiresAt != nil && !grant.ExpiresAt.After(now) {
			continue
		}
		if levelRank(grant.Level) >= levelRank(required) {
			return true
		}
	}

	return false
}
