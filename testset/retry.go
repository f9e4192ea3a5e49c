// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package testset

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/poiesic/qagen/core"
)

// ErrInvalidMaxAttempts is returned when MaxAttempts is <= 0.
var ErrInvalidMaxAttempts = errors.New("MaxAttempts must be greater than 0")

// RetryPolicy controls the retry behavior of a remote call.
//
// Backoff is jittered doubling: the wait before retrying attempt k
// (0-indexed) is BaseDelay * 2^k plus a uniform random jitter in
// [0, BaseDelay). The jitter keeps concurrent clients from retrying in
// lockstep after a shared rate-limit window.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first
	// (must be > 0).
	MaxAttempts int

	// BaseDelay is the wait before the first retry; it doubles on each
	// subsequent retry.
	BaseDelay time.Duration

	// Retryable decides whether an error is worth another attempt.
	// If nil, only errors matching core.ErrRateLimited are retried:
	// rate limiting is the designated transient failure, everything
	// else fails the call immediately.
	Retryable func(error) bool
}

// DefaultRetryPolicy mirrors the historical generation scripts: five
// attempts, one-second base delay, retry only on rate limiting.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   time.Second,
	}
}

// Do runs operation under the policy. Non-retryable errors are returned
// as-is after the first failing attempt. When every attempt fails with a
// retryable error, Do returns *core.RetriesExhaustedError wrapping the
// last one. The backoff wait honors ctx cancellation.
func (p RetryPolicy) Do(ctx context.Context, operation func() error) error {
	if p.MaxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}

	retryable := p.Retryable
	if retryable == nil {
		retryable = func(err error) bool {
			return errors.Is(err, core.ErrRateLimited)
		}
	}

	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		// Check context before attempting
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = operation()
		if lastErr == nil {
			if attempt > 0 {
				slog.Debug("operation succeeded after retry", "attempt", attempt+1)
			}
			return nil
		}

		if !retryable(lastErr) {
			slog.Debug("operation failed with permanent error", "attempt", attempt+1, "error", lastErr)
			return lastErr
		}

		// Don't sleep after the last attempt
		if attempt == p.MaxAttempts-1 {
			break
		}

		delay := p.BaseDelay << attempt
		if p.BaseDelay > 0 {
			delay += time.Duration(rand.Int63n(int64(p.BaseDelay)))
		}

		slog.Debug("transient failure, will retry",
			"attempt", attempt+1,
			"maxAttempts", p.MaxAttempts,
			"wait", delay,
			"error", lastErr)

		// Sleep with context awareness
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return &core.RetriesExhaustedError{Attempts: p.MaxAttempts, Last: lastErr}
}
