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

// Package tokengenmock provides a mock implementation of the token generator for testing.
package tokengenmock

import (
	"github.com/signet-id/signet/internal/oauth/oauth2/model"
	"github.com/signet-id/signet/internal/oauth/oauth2/tokengen"
)

// TokenGeneratorMock is a configurable mock implementation of the token generator interface.
type TokenGeneratorMock struct {
	GenerateAccessTokenFunc  func(tokenCtx *tokengen.Context) (*model.AccessTokenData, error)
	GenerateRefreshTokenFunc func(tokenCtx *tokengen.Context) (*model.SubToken, error)
}

// GenerateAccessToken calls the configured mock function.
func (m *TokenGeneratorMock) GenerateAccessToken(tokenCtx *tokengen.Context) (
	*model.AccessTokenData, error) {
	return m.GenerateAccessTokenFunc(tokenCtx)
}

// GenerateRefreshToken calls the configured mock function.
func (m *TokenGeneratorMock) GenerateRefreshToken(tokenCtx *tokengen.Context) (
	*model.SubToken, error) {
	return m.GenerateRefreshTokenFunc(tokenCtx)
}
