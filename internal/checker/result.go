package checker

import (
	"encoding/json"
	"errors"
	"time"
)

// Failure kinds carried on Result.Err. None of them is fatal; each degrades
// to a populated Result.Error.
var (
	ErrInvalidAddress   = errors.New("invalid address")
	ErrAccountNotFound  = errors.New("account not found")
	ErrNoHistory        = errors.New("no transaction history")
	ErrScoreUnavailable = errors.New("score unavailable")
	ErrTimeout          = errors.New("check timed out")
	ErrUnexpected       = errors.New("unexpected failure")
)

// User-facing messages for the fixed failure kinds.
const (
	MsgInvalidAddress   = "Invalid wallet address format"
	MsgAccountNotFound  = "Wallet not found on Fogo testnet"
	MsgNoHistory        = "No transaction history found"
	MsgScoreUnavailable = "Could not calculate score"
)

// Result is the outcome of one wallet check. Any combination of present and
// absent fields is possible: e.g. Exists with no Score when the latest slot
// could not be fetched.
type Result struct {
	Valid     bool
	Exists    bool
	FirstSlot *uint64
	JoinDate  *time.Time // UTC midnight
	Score     *float64   // [0, 100]
	Tier      *string
	Error     string // empty when the check fully succeeded
	Err       error  // one of the Err* kinds above, nil on success
}

func (r *Result) fail(kind error, msg string) {
	r.Err = kind
	r.Error = msg
}

// MarshalJSON renders absent fields as null and JoinDate as YYYY-MM-DD.
func (r Result) MarshalJSON() ([]byte, error) {
	type wire struct {
		Valid     bool     `json:"valid"`
		Exists    bool     `json:"exists"`
		FirstSlot *uint64  `json:"first_slot"`
		JoinDate  *string  `json:"join_date"`
		Score     *float64 `json:"score"`
		Tier      *string  `json:"tier"`
		Error     *string  `json:"error"`
	}
	w := wire{
		Valid:     r.Valid,
		Exists:    r.Exists,
		FirstSlot: r.FirstSlot,
		Score:     r.Score,
		Tier:      r.Tier,
	}
	if r.JoinDate != nil {
		d := r.JoinDate.Format(time.DateOnly)
		w.JoinDate = &d
	}
	if r.Error != "" {
		e := r.Error
		w.Error = &e
	}
	return json.Marshal(w)
}
