package svm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"

	"github.com/AIAleph/fogo_early_checker/internal/logging"
)

// rpcProvider is a JSON-RPC client for SVM endpoints backed by solana-go.
// Calls are single-shot; there is no retry or caching layer.
type rpcProvider struct {
	providerLbl string
	client      *rpc.Client
}

// NewRPCProvider constructs a Provider talking to endpoint through hc (or a
// default client if nil).
func NewRPCProvider(endpoint string, hc *http.Client) (Provider, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("empty endpoint")
	}
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	jc := jsonrpc.NewClientWithOpts(endpoint, &jsonrpc.RPCClientOpts{HTTPClient: hc})
	return &rpcProvider{
		providerLbl: deriveProviderLabel(endpoint),
		client:      rpc.NewWithCustomRPCClient(jc),
	}, nil
}

func deriveProviderLabel(endpoint string) string {
	if endpoint == "" {
		return ""
	}
	if u, err := url.Parse(endpoint); err == nil {
		u.User = nil
		if u.Host != "" {
			return u.Host
		}
		if u.Scheme == "" {
			return endpoint
		}
		return u.String()
	}
	return endpoint
}

// trace logs one RPC round trip at debug level.
func (p *rpcProvider) trace(method string, start time.Time, err error) {
	logger := logging.Logger()
	if logger == nil {
		return
	}
	fields := []any{
		"component", "svm.rpc_provider",
		"provider", p.providerLbl,
		"method", method,
		"elapsed_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields = append(fields, "error", err.Error())
	}
	logger.Debug("rpc_call", fields...)
}

func (p *rpcProvider) AccountInfo(ctx context.Context, addr solana.PublicKey) (info *AccountInfo, err error) {
	start := time.Now()
	defer func() { p.trace("getAccountInfo", start, err) }()
	res, err := p.client.GetAccountInfoWithOpts(ctx, addr, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("getAccountInfo: %w", err)
	}
	if res == nil || res.Value == nil {
		return nil, ErrAccountNotFound
	}
	return &AccountInfo{
		Lamports:   res.Value.Lamports,
		Owner:      res.Value.Owner.String(),
		Executable: res.Value.Executable,
		Slot:       res.Context.Slot,
	}, nil
}

func (p *rpcProvider) Signatures(ctx context.Context, addr solana.PublicKey, limit int) (out []Signature, err error) {
	start := time.Now()
	defer func() { p.trace("getSignaturesForAddress", start, err) }()
	opts := &rpc.GetSignaturesForAddressOpts{Commitment: rpc.CommitmentConfirmed}
	if limit > 0 {
		opts.Limit = &limit
	}
	raw, err := p.client.GetSignaturesForAddressWithOpts(ctx, addr, opts)
	if err != nil {
		return nil, fmt.Errorf("getSignaturesForAddress: %w", err)
	}
	out = make([]Signature, 0, len(raw))
	for _, s := range raw {
		if s == nil {
			continue
		}
		sig := Signature{
			Signature: s.Signature.String(),
			Slot:      s.Slot,
			Failed:    s.Err != nil,
			Memo:      s.Memo,
		}
		if s.BlockTime != nil {
			bt := s.BlockTime.Time().UTC()
			sig.BlockTime = &bt
		}
		out = append(out, sig)
	}
	return out, nil
}

func (p *rpcProvider) Slot(ctx context.Context) (slot uint64, err error) {
	start := time.Now()
	defer func() { p.trace("getSlot", start, err) }()
	slot, err = p.client.GetSlot(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("getSlot: %w", err)
	}
	return slot, nil
}

// Close releases the provider's idle connections.
func (p *rpcProvider) Close() error {
	return p.client.Close()
}
