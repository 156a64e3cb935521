package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// WalletAddressLength is the byte length of an Ethereum-style address.
const WalletAddressLength = 20

// NewWalletAddress generates a random Ethereum-style wallet address
// ("0x" followed by 40 hex characters). The address is cosmetic — no key
// pair backs it and nothing is ever signed with it.
func NewWalletAddress() (string, error) {
	b := make([]byte, WalletAddressLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating wallet address: %w", err)
	}
	return "0x" + hex.EncodeToString(b), nil
}
