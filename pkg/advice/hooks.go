package advice

import (
	"context"
	"time"
)

// Outcome reports how a gateway call ended.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFallback Outcome = "fallback"
)

// CallEvent describes one gateway invocation.
type CallEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id"`
	Kind      Kind          `json:"kind"`
	Model     string        `json:"model"`
	Outcome   Outcome       `json:"outcome,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Err       error         `json:"-"`
}

// Hooks defines callbacks for gateway observability.
type Hooks struct {
	OnCall   func(context.Context, *CallEvent)
	OnResult func(context.Context, *CallEvent)
}

// MergeHooks chains several hook sets; each callback runs in order.
func MergeHooks(all ...Hooks) Hooks {
	return Hooks{
		OnCall: func(ctx context.Context, e *CallEvent) {
			for _, h := range all {
				if h.OnCall != nil {
					h.OnCall(ctx, e)
				}
			}
		},
		OnResult: func(ctx context.Context, e *CallEvent) {
			for _, h := range all {
				if h.OnResult != nil {
					h.OnResult(ctx, e)
				}
			}
		},
	}
}
