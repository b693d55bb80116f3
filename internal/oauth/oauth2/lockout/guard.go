/*
 * Copyright (c) 2025, the Signet project.
 *
 * The Signet project licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package lockout tracks consecutive login failures per client and username
// pair and enforces a temporary lockout once the threshold is breached.
package lockout

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/signet-id/signet/internal/system/config"
)

// Defaults applied when the lockout configuration leaves values unset.
const (
	DefaultThreshold     = 3
	DefaultWindowSeconds = 600
)

// failureScript atomically increments the counter and refreshes the lockout
// window, then reports the new count together with the remaining TTL. The
// window restarts on every failure.
var failureScript = goredis.NewScript(`
local count = redis.call("INCR", KEYS[1])
redis.call("EXPIRE", KEYS[1], ARGV[1])
local ttl = redis.call("TTL", KEYS[1])
return {count, ttl}
`)

// statusScript reads the counter and its TTL without mutating either.
var statusScript = goredis.NewScript(`
local count = tonumber(redis.call("GET", KEYS[1]) or "0")
local ttl = redis.call("TTL", KEYS[1])
return {count, ttl}
`)

// Status describes the lockout state of one client and username pair.
type Status struct {
	Locked            bool
	FailureCount      int64
	RetryAfterSeconds int64
}

// FailureGuardInterface defines the contract of the login failure guard.
type FailureGuardInterface interface {
	// CheckLockout reports whether the pair is currently locked out.
	CheckLockout(ctx context.Context, clientID, username string) (*Status, error)
	// RecordFailure counts one failed attempt and reports the resulting state.
	RecordFailure(ctx context.Context, clientID, username string) (*Status, error)
	// Reset deletes the failure counter after a successful authentication.
	Reset(ctx context.Context, clientID, username string) error
}

// FailureGuard is the shared TTL store backed implementation of FailureGuardInterface.
type FailureGuard struct {
	client    goredis.UniversalClient
	namespace string
	threshold int64
	window    time.Duration
}

// NewFailureGuard creates a failure guard over the given store client.
func NewFailureGuard(client goredis.UniversalClient, namespace string, cfg config.LockoutConfig) *FailureGuard {
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	windowSeconds := cfg.WindowSeconds
	if windowSeconds <= 0 {
		windowSeconds = DefaultWindowSeconds
	}

	return &FailureGuard{
		client:    client,
		namespace: namespace,
		threshold: threshold,
		window:    time.Duration(windowSeconds) * time.Second,
	}
}

// CheckLockout reports whether the pair is currently locked out. The counter
// is not touched; only actual credential failures advance it.
func (fg *FailureGuard) CheckLockout(ctx context.Context, clientID, username string) (*Status, error) {
	count, ttl, err := fg.runScript(ctx, statusScript, clientID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to read failure counter: %w", err)
	}
	return fg.statusOf(count, ttl, count >= fg.threshold), nil
}

// RecordFailure counts one failed attempt, refreshing the lockout window.
// The returned status is locked once the count exceeds the threshold.
func (fg *FailureGuard) RecordFailure(ctx context.Context, clientID, username string) (*Status, error) {
	count, ttl, err := fg.runScript(ctx, failureScript, clientID, username, int64(fg.window.Seconds()))
	if err != nil {
		return nil, fmt.Errorf("failed to record login failure: %w", err)
	}
	return fg.statusOf(count, ttl, count > fg.threshold), nil
}

// Reset deletes the failure counter after a successful authentication.
func (fg *FailureGuard) Reset(ctx context.Context, clientID, username string) error {
	if err := fg.client.Del(ctx, fg.key(clientID, username)).Err(); err != nil {
		return fmt.Errorf("failed to reset failure counter: %w", err)
	}
	return nil
}

func (fg *FailureGuard) runScript(ctx context.Context, script *goredis.Script,
	clientID, username string, args ...interface{}) (int64, int64, error) {
	result, err := script.Run(ctx, fg.client, []string{fg.key(clientID, username)}, args...).Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(result) != 2 {
		return 0, 0, fmt.Errorf("unexpected script result length: %d", len(result))
	}

	count, ok := result[0].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected count type: %T", result[0])
	}
	ttl, ok := result[1].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected ttl type: %T", result[1])
	}
	return count, ttl, nil
}

func (fg *FailureGuard) statusOf(count, ttl int64, locked bool) *Status {
	status := &Status{
		Locked:       locked,
		FailureCount: count,
	}
	if locked {
		if ttl > 0 {
			status.RetryAfterSeconds = ttl
		} else {
			status.RetryAfterSeconds = int64(fg.window.Seconds())
		}
	}
	return status
}

func (fg *FailureGuard) key(clientID, username string) string {
	return fmt.Sprintf("%s:login-fail:%s:%s", fg.namespace, clientID, username)
}
