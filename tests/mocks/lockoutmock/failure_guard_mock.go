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

// Package lockoutmock provides a mock implementation of the failure guard for testing.
package lockoutmock

import (
	"context"

	"github.com/signet-id/signet/internal/oauth/oauth2/lockout"
)

// FailureGuardMock is a configurable mock implementation of the failure guard interface.
// The call counters let tests assert exactly one guard interaction per outcome.
type FailureGuardMock struct {
	CheckLockoutFunc  func(ctx context.Context, clientID, username string) (*lockout.Status, error)
	RecordFailureFunc func(ctx context.Context, clientID, username string) (*lockout.Status, error)
	ResetFunc         func(ctx context.Context, clientID, username string) error

	CheckLockoutCalls  int
	RecordFailureCalls int
	ResetCalls         int
}

// CheckLockout calls the configured mock function.
func (m *FailureGuardMock) CheckLockout(ctx context.Context, clientID, username string) (
	*lockout.Status, error) {
	m.CheckLockoutCalls++
	if m.CheckLockoutFunc == nil {
		return &lockout.Status{}, nil
	}
	return m.CheckLockoutFunc(ctx, clientID, username)
}

// RecordFailure calls the configured mock function.
func (m *FailureGuardMock) RecordFailure(ctx context.Context, clientID, username string) (
	*lockout.Status, error) {
	m.RecordFailureCalls++
	if m.RecordFailureFunc == nil {
		return &lockout.Status{FailureCount: 1}, nil
	}
	return m.RecordFailureFunc(ctx, clientID, username)
}

// Reset calls the configured mock function.
func (m *FailureGuardMock) Reset(ctx context.Context, clientID, username string) error {
	m.ResetCalls++
	if m.ResetFunc == nil {
		return nil
	}
	return m.ResetFunc(ctx, clientID, username)
}
