// Copyright 2026 The Enterprise MCP Gateway Authors
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

// Package breaker implements a per-upstream circuit breaker sitting
// outside the HTTP client's retry loop: a trip short-circuits a call
// before any retry is spent, and a retry never reopens a tripped
// breaker.
package breaker

import (
	"sync"
	"time"
)

// State is one of the three circuit breaker states.
type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "CLOSED"
	case Open:
		return "OPEN"
	case HalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// Config parameterizes a single breaker.
type Config struct {
	// FailureThreshold is the number of consecutive failures in CLOSED
	// that trips the breaker to OPEN.
	FailureThreshold int
	// ResetTimeout is how long OPEN holds before allowing a HALF_OPEN probe.
	ResetTimeout time.Duration
	// SuccessThreshold is the number of consecutive successes in
	// HALF_OPEN needed to return to CLOSED.
	SuccessThreshold int
}

// DefaultConfig returns the breaker defaults used for a generic upstream.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		ResetTimeout:     30 * time.Second,
		SuccessThreshold: 2,
	}
}

// Status is a point-in-time snapshot of a breaker, used for metrics and
// the admin reset endpoint.
type Status struct {
	State               State
	ConsecutiveFailures int
	ConsecutiveSuccess  int
	NextAttempt         time.Time
	// TotalFailures is the all-time failure count, for the Prometheus
	// failure counter. It is monotonic and survives Reset, unlike
	// ConsecutiveFailures.
	TotalFailures int64
}

// ErrOpen is returned by Allow when the breaker is OPEN and the reset
// timeout has not yet elapsed.
type ErrOpen struct {
	Upstream    string
	NextAttempt time.Time
}

func (e *ErrOpen) Error() string {
	return "circuit breaker open for " + e.Upstream
}

// Breaker is a single upstream's state machine. Zero value is not usable;
// build with New.
type Breaker struct {
	mu            sync.Mutex
	cfg           Config
	state         State
	failures      int
	successes     int
	nextAttempt   time.Time
	now           func() time.Time
	totalFailures int64
}

// New builds a Breaker with cfg, using time.Now as its clock.
func New(cfg Config) *Breaker {
	return &Breaker{cfg: cfg, state: Closed, now: time.Now}
}

// Allow reports whether a call may proceed. When it returns a non-nil
// error the caller must not invoke the upstream and should surface the
// error's next-attempt time to the caller.
func (b *Breaker) Allow(upstream string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Open:
		if b.now().Before(b.nextAttempt) {
			return &ErrOpen{Upstream: upstream, NextAttempt: b.nextAttempt}
		}
		b.state = HalfOpen
		b.successes = 0
		return nil
	default:
		return nil
	}
}

// RecordSuccess reports a successful call outcome.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Closed:
		b.failures = 0
	case HalfOpen:
		b.successes++
		if b.successes >= b.cfg.SuccessThreshold {
			b.state = Closed
			b.failures = 0
			b.successes = 0
		}
	}
}

// RecordFailure reports a failed call outcome.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.totalFailures++
	switch b.state {
	case Closed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	case HalfOpen:
		b.trip()
	}
}

// trip must be called with mu held.
func (b *Breaker) trip() {
	b.state = Open
	b.nextAttempt = b.now().Add(b.cfg.ResetTimeout)
	b.successes = 0
}

// Status returns a snapshot of the breaker's current state.
func (b *Breaker) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Status{
		State:               b.state,
		ConsecutiveFailures: b.failures,
		ConsecutiveSuccess:  b.successes,
		NextAttempt:         b.nextAttempt,
		TotalFailures:       b.totalFailures,
	}
}

// Reset forces the breaker back to CLOSED, clearing the consecutive
// failure/success counters and the next-attempt time; the all-time
// TotalFailures count is kept. Used by the administrative reset-all
// primitive.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = Closed
	b.failures = 0
	b.successes = 0
	b.nextAttempt = time.Time{}
}
