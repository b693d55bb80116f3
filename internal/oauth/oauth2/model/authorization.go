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

package model

import (
	"time"

	usermodel "github.com/signet-id/signet/internal/user/model"
)

// TokenKind identifies a sub-token slot of an authorization.
type TokenKind string

const (
	// TokenKindState keys the pre-authentication state handle.
	TokenKindState TokenKind = "state"
	// TokenKindCode keys the single-use authorization code.
	TokenKindCode TokenKind = "code"
	// TokenKindAccessToken keys the issued access token.
	TokenKindAccessToken TokenKind = "access_token"
	// TokenKindRefreshToken keys the issued refresh token.
	TokenKindRefreshToken TokenKind = "refresh_token"
)

// SubToken is a single credential value attached to an authorization,
// bounded by its own lifetime.
type SubToken struct {
	Value     string    `json:"value"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the sub-token lifetime has passed at the given instant.
func (t *SubToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// RemainingTTL returns the time left until expiry at the given instant.
// The result is zero or negative for an expired sub-token.
func (t *SubToken) RemainingTTL(now time.Time) time.Duration {
	return t.ExpiresAt.Sub(now)
}

// AccessTokenData is the access token sub-token with its authorization scope
// and the claims carried into introspection responses.
type AccessTokenData struct {
	SubToken
	Scopes []string               `json:"scopes,omitempty"`
	Claims map[string]interface{} `json:"claims,omitempty"`
}

// TokenRef points at one live sub-token of an authorization. The store
// persists the aggregate once per ref.
type TokenRef struct {
	Kind      TokenKind
	Value     string
	ExpiresAt time.Time
}

// Authorization is the aggregate tracking one grant through its whole life,
// from the initial state handle to the issued token pair. All sub-token
// slots are optional; only the ones the grant has reached are set.
type Authorization struct {
	ID            string           `json:"id"`
	ClientID      string           `json:"client_id"`
	GrantType     string           `json:"grant_type"`
	PrincipalName string           `json:"principal_name"`
	Authorities   []string         `json:"authorities,omitempty"`
	User          *usermodel.User  `json:"user,omitempty"`
	State         *SubToken        `json:"state,omitempty"`
	Code          *SubToken        `json:"code,omitempty"`
	AccessToken   *AccessTokenData `json:"access_token,omitempty"`
	RefreshToken  *SubToken        `json:"refresh_token,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// TokenRefs returns a ref for every sub-token still alive at the given
// instant. Expired slots produce no ref and therefore no store key.
func (a *Authorization) TokenRefs(now time.Time) []TokenRef {
	refs := make([]TokenRef, 0, 4)
	if a.State != nil && !a.State.Expired(now) {
		refs = append(refs, TokenRef{Kind: TokenKindState, Value: a.State.Value, ExpiresAt: a.State.ExpiresAt})
	}
	if a.Code != nil && !a.Code.Expired(now) {
		refs = append(refs, TokenRef{Kind: TokenKindCode, Value: a.Code.Value, ExpiresAt: a.Code.ExpiresAt})
	}
	if a.AccessToken != nil && !a.AccessToken.Expired(now) {
		refs = append(refs, TokenRef{
			Kind:      TokenKindAccessToken,
			Value:     a.AccessToken.Value,
			ExpiresAt: a.AccessToken.ExpiresAt,
		})
	}
	if a.RefreshToken != nil && !a.RefreshToken.Expired(now) {
		refs = append(refs, TokenRef{
			Kind:      TokenKindRefreshToken,
			Value:     a.RefreshToken.Value,
			ExpiresAt: a.RefreshToken.ExpiresAt,
		})
	}
	return refs
}

// SubTokenOf returns the sub-token stored in the given slot, or nil when the
// slot is empty.
func (a *Authorization) SubTokenOf(kind TokenKind) *SubToken {
	switch kind {
	case TokenKindState:
		return a.State
	case TokenKindCode:
		return a.Code
	case TokenKindAccessToken:
		if a.AccessToken == nil {
			return nil
		}
		return &a.AccessToken.SubToken
	case TokenKindRefreshToken:
		return a.RefreshToken
	default:
		return nil
	}
}
