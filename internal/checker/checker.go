package checker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	solana "github.com/gagliardetto/solana-go"
	"github.com/google/uuid"

	"github.com/AIAleph/fogo_early_checker/internal/config"
	"github.com/AIAleph/fogo_early_checker/internal/logging"
	"github.com/AIAleph/fogo_early_checker/internal/score"
	"github.com/AIAleph/fogo_early_checker/internal/svm"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultHistoryLimit = svm.MaxHistoryLimit
)

// DialFunc opens a provider owned by a single check.
type DialFunc func(endpoint string, timeout time.Duration) (svm.Provider, error)

// Options configure a Checker.
type Options struct {
	Endpoint     string
	Timeout      time.Duration // bounded wait for one check
	HistoryLimit int           // signatures page size, at most 1000
	Dial         DialFunc
}

// Checker runs wallet checks. It holds no per-check state and is safe for
// concurrent use; every check dials and closes its own provider.
type Checker struct {
	opts Options
}

func New(opts Options) *Checker {
	if opts.Endpoint == "" {
		opts.Endpoint = config.DefaultRPCURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.HistoryLimit <= 0 || opts.HistoryLimit > svm.MaxHistoryLimit {
		opts.HistoryLimit = defaultHistoryLimit
	}
	if opts.Dial == nil {
		opts.Dial = svm.NewProvider
	}
	return &Checker{opts: opts}
}

// Check validates raw, queries the endpoint and scores the wallet. It never
// panics and returns within the configured timeout (or when ctx ends);
// failures are reported on the Result.
func (c *Checker) Check(ctx context.Context, raw string) Result {
	checkID := uuid.NewString()
	start := time.Now()
	addr, err := svm.ParseAddress(raw)
	if err != nil {
		var res Result
		res.fail(ErrInvalidAddress, MsgInvalidAddress)
		c.logResult(checkID, strings.TrimSpace(raw), res, start)
		return res
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	done := make(chan Result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				res := Result{Valid: true}
				res.fail(ErrUnexpected, fmt.Sprintf("System error: %v", r))
				done <- res
			}
		}()
		done <- c.run(ctx, addr)
	}()

	var res Result
	select {
	case res = <-done:
		// Absence caused by the deadline is a timeout, not a missing wallet.
		if res.Err != nil && ctx.Err() != nil {
			res = c.interrupted(ctx.Err())
		}
	case <-ctx.Done():
		res = c.interrupted(ctx.Err())
	}
	c.logResult(checkID, addr.String(), res, start)
	return res
}

func (c *Checker) interrupted(cause error) Result {
	res := Result{Valid: true}
	if errors.Is(cause, context.DeadlineExceeded) {
		res.fail(ErrTimeout, fmt.Sprintf("System error: check timed out after %s", c.opts.Timeout))
		return res
	}
	res.fail(ErrUnexpected, fmt.Sprintf("System error: %v", cause))
	return res
}

// run is the linear pipeline: account, history, latest slot.
func (c *Checker) run(ctx context.Context, addr solana.PublicKey) Result {
	res := Result{Valid: true}
	prov, err := c.opts.Dial(c.opts.Endpoint, c.opts.Timeout)
	if err != nil {
		res.fail(ErrUnexpected, fmt.Sprintf("System error: %v", err))
		return res
	}
	defer func() {
		if cerr := prov.Close(); cerr != nil {
			logging.Logger().Debug("provider_close_failed", "component", "checker", "error", cerr.Error())
		}
	}()
	h := svm.NewHistory(prov)

	if h.FetchAccountInfo(ctx, addr) == nil {
		res.fail(ErrAccountNotFound, MsgAccountNotFound)
		return res
	}
	res.Exists = true

	sigs := h.FetchTransactionHistory(ctx, addr, c.opts.HistoryLimit)
	if len(sigs) == 0 || sigs[0].Slot == 0 {
		res.fail(ErrNoHistory, MsgNoHistory)
		return res
	}
	first := sigs[0]
	firstSlot := first.Slot
	joined := score.JoinDate(firstSlot, first.BlockTime)
	res.FirstSlot = &firstSlot
	res.JoinDate = &joined

	latest, ok := h.FetchLatestSlot(ctx)
	if !ok {
		res.fail(ErrScoreUnavailable, MsgScoreUnavailable)
		return res
	}
	s := score.Score(firstSlot, latest)
	tier := score.TierFor(firstSlot)
	res.Score = &s
	res.Tier = &tier
	return res
}

func (c *Checker) logResult(checkID, address string, res Result, start time.Time) {
	logger := logging.Logger()
	if logger == nil {
		return
	}
	fields := []any{
		"component", "checker",
		"check_id", checkID,
		"address", address,
		"valid", res.Valid,
		"exists", res.Exists,
		"elapsed_ms", time.Since(start).Milliseconds(),
	}
	if res.FirstSlot != nil {
		fields = append(fields, "first_slot", *res.FirstSlot)
	}
	if res.Score != nil {
		fields = append(fields, "score", *res.Score)
	}
	if res.Err != nil {
		logger.Warn("wallet_check_incomplete", append(fields, "error", res.Error)...)
		return
	}
	logger.Info("wallet_check", fields...)
}
