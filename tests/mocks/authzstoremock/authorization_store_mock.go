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

// Package authzstoremock provides a mock implementation of the authorization store for testing.
package authzstoremock

import (
	"context"

	"github.com/signet-id/signet/internal/oauth/oauth2/model"
)

// AuthorizationStoreMock is a configurable mock implementation of the
// authorization store interface.
type AuthorizationStoreMock struct {
	SaveFunc         func(ctx context.Context, auth *model.Authorization) error
	FindByTokenFunc  func(ctx context.Context, kind model.TokenKind, value string) (*model.Authorization, bool, error)
	FindByValueFunc  func(ctx context.Context, value string, hint model.TokenKind) (*model.Authorization, bool, error)
	ConsumeTokenFunc func(ctx context.Context, kind model.TokenKind, value string) (*model.Authorization, bool, error)
	RemoveFunc       func(ctx context.Context, auth *model.Authorization) error

	SaveCalls   int
	RemoveCalls int
}

// Save calls the configured mock function.
func (m *AuthorizationStoreMock) Save(ctx context.Context, auth *model.Authorization) error {
	m.SaveCalls++
	if m.SaveFunc == nil {
		return nil
	}
	return m.SaveFunc(ctx, auth)
}

// FindByToken calls the configured mock function.
func (m *AuthorizationStoreMock) FindByToken(ctx context.Context, kind model.TokenKind,
	value string) (*model.Authorization, bool, error) {
	return m.FindByTokenFunc(ctx, kind, value)
}

// FindByValue calls the configured mock function.
func (m *AuthorizationStoreMock) FindByValue(ctx context.Context, value string,
	hint model.TokenKind) (*model.Authorization, bool, error) {
	return m.FindByValueFunc(ctx, value, hint)
}

// ConsumeToken calls the configured mock function.
func (m *AuthorizationStoreMock) ConsumeToken(ctx context.Context, kind model.TokenKind,
	value string) (*model.Authorization, bool, error) {
	return m.ConsumeTokenFunc(ctx, kind, value)
}

// Remove calls the configured mock function.
func (m *AuthorizationStoreMock) Remove(ctx context.Context, auth *model.Authorization) error {
	m.RemoveCalls++
	if m.RemoveFunc == nil {
		return nil
	}
	return m.RemoveFunc(ctx, auth)
}
