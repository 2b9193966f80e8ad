package svm

import (
	"context"
	"errors"
	"time"

	solana "github.com/gagliardetto/solana-go"
)

// ErrAccountNotFound is returned by Provider.AccountInfo when the endpoint
// reports no account at the address.
var ErrAccountNotFound = errors.New("account not found")

// Provider defines the minimal RPC surface the checker needs. Every call uses
// "confirmed" commitment. A Provider owns its connection and must be closed.
type Provider interface {
	// AccountInfo probes account existence.
	AccountInfo(ctx context.Context, addr solana.PublicKey) (*AccountInfo, error)

	// Signatures returns up to limit most-recent signatures touching addr,
	// in the endpoint's native newest-first order.
	Signatures(ctx context.Context, addr solana.PublicKey, limit int) ([]Signature, error)

	// Slot returns the current chain height.
	Slot(ctx context.Context) (uint64, error)

	Close() error
}

// AccountInfo is the subset of getAccountInfo the checker surfaces.
type AccountInfo struct {
	Lamports   uint64
	Owner      string
	Executable bool
	Slot       uint64 // context slot of the response
}

// Signature is one entry of getSignaturesForAddress.
type Signature struct {
	Signature string
	Slot      uint64 // 0 = unknown
	BlockTime *time.Time
	Failed    bool
	Memo      *string
}
