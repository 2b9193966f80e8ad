package svm

import (
	"errors"
	"fmt"
	"strings"

	solana "github.com/gagliardetto/solana-go"
)

var ErrEmptyAddress = errors.New("empty address")

// ParseAddress decodes a wallet address: base58 without checksum, exactly 32
// bytes once decoded. Surrounding whitespace is ignored.
func ParseAddress(s string) (solana.PublicKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return solana.PublicKey{}, ErrEmptyAddress
	}
	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return pk, nil
}

// IsValidAddress reports whether s parses as a wallet address.
func IsValidAddress(s string) bool {
	_, err := ParseAddress(s)
	return err == nil
}
