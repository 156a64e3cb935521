package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// ContentHash computes the hex-encoded SHA-256 digest of a vault item's
// data payload. The digest binds a stamp to the exact bytes present at
// stamping time.
func ContentHash(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// NewTxID synthesizes a transaction identifier for a simulated blockchain
// stamp: "tx_" followed by a random lowercase base36 token.
func NewTxID() (string, error) {
	limit := new(big.Int).Lsh(big.NewInt(1), 64)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generating tx id: %w", err)
	}
	return "tx_" + n.Text(36), nil
}
