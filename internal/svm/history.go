package svm

import (
	"context"
	"errors"
	"slices"

	solana "github.com/gagliardetto/solana-go"

	"github.com/AIAleph/fogo_early_checker/internal/logging"
)

// MaxHistoryLimit is the largest page getSignaturesForAddress serves.
const MaxHistoryLimit = 1000

// History adapts a Provider to absence semantics: every fetch returns a zero
// value instead of an error, logging what it swallowed.
type History struct {
	prov Provider
}

func NewHistory(p Provider) *History { return &History{prov: p} }

func (h *History) warn(op string, addr *solana.PublicKey, err error) {
	logger := logging.Logger()
	if logger == nil {
		return
	}
	fields := []any{"component", "svm.history", "op", op, "error", err.Error()}
	if addr != nil {
		fields = append(fields, "address", addr.String())
	}
	logger.Warn("rpc_fetch_failed", fields...)
}

// FetchAccountInfo returns nil when the account does not exist or the call fails.
func (h *History) FetchAccountInfo(ctx context.Context, addr solana.PublicKey) *AccountInfo {
	info, err := h.prov.AccountInfo(ctx, addr)
	if err != nil {
		if !errors.Is(err, ErrAccountNotFound) {
			h.warn("account_info", &addr, err)
		}
		return nil
	}
	return info
}

// FetchTransactionHistory returns at most limit of the wallet's most recent
// signatures, earliest first. Wallets with more than one page of history get
// the earliest signature of that page, not their true first transaction.
func (h *History) FetchTransactionHistory(ctx context.Context, addr solana.PublicKey, limit int) []Signature {
	if limit <= 0 || limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	sigs, err := h.prov.Signatures(ctx, addr, limit)
	if err != nil {
		h.warn("signatures", &addr, err)
		return nil
	}
	SortBySlot(sigs)
	return sigs
}

// FetchLatestSlot reports the current confirmed slot, or false on failure.
func (h *History) FetchLatestSlot(ctx context.Context) (uint64, bool) {
	slot, err := h.prov.Slot(ctx)
	if err != nil {
		h.warn("slot", nil, err)
		return 0, false
	}
	return slot, true
}

// SortBySlot orders signatures ascending by slot with unknown slots last.
// Equal slots keep their relative order.
func SortBySlot(sigs []Signature) {
	slices.SortStableFunc(sigs, func(a, b Signature) int {
		switch {
		case a.Slot == b.Slot:
			return 0
		case a.Slot == 0:
			return 1
		case b.Slot == 0:
			return -1
		case a.Slot < b.Slot:
			return -1
		default:
			return 1
		}
	})
}
