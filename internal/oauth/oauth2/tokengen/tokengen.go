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

// Package tokengen mints access and refresh tokens. Access token generation
// runs as an ordered chain; the first generator that applies to the client's
// token format produces the token.
package tokengen

import (
	"errors"
	"strings"
	"time"

	appmodel "github.com/signet-id/signet/internal/application/model"
	"github.com/signet-id/signet/internal/oauth/oauth2/constants"
	"github.com/signet-id/signet/internal/oauth/oauth2/model"
	"github.com/signet-id/signet/internal/system/crypto/hash"
	usermodel "github.com/signet-id/signet/internal/user/model"
)

// Default lifetimes applied when neither the client nor the server
// configuration sets one.
const (
	DefaultAccessTokenValidity  int64 = 3600
	DefaultRefreshTokenValidity int64 = 86400
)

// randomTokenBytes gives 256 bits of entropy per opaque token.
const randomTokenBytes = 32

// ProductClaim marks every self-contained token with the issuing product.
const (
	ProductClaim      = "product"
	ProductClaimValue = "signet"
)

// ErrNoGenerator is returned when no generator in the chain produced a token.
var ErrNoGenerator = errors.New("no token generator produced a token")

// Context carries the inputs of one token issuance.
type Context struct {
	Client    *appmodel.OAuthClient
	GrantType string
	Subject   string
	Scopes    []string
	User      *usermodel.User
}

// AccessTokenGenerator mints an access token for a context it applies to.
// A nil token without an error means the generator does not apply.
type AccessTokenGenerator interface {
	Generate(tokenCtx *Context) (*model.AccessTokenData, error)
}

// TokenGeneratorInterface defines the contract of the token minting chain.
type TokenGeneratorInterface interface {
	// GenerateAccessToken mints an access token via the generator chain.
	GenerateAccessToken(tokenCtx *Context) (*model.AccessTokenData, error)
	// GenerateRefreshToken mints an opaque refresh token.
	GenerateRefreshToken(tokenCtx *Context) (*model.SubToken, error)
}

// TokenGenerator evaluates the access token chain and mints refresh tokens.
// Refresh tokens are always opaque, independent of the access token format.
type TokenGenerator struct {
	chain                  []AccessTokenGenerator
	defaultRefreshValidity int64
}

// NewTokenGenerator creates a token generator with the given access token
// chain, in evaluation order.
func NewTokenGenerator(defaultRefreshValidity int64, chain ...AccessTokenGenerator) *TokenGenerator {
	if defaultRefreshValidity <= 0 {
		defaultRefreshValidity = DefaultRefreshTokenValidity
	}
	return &TokenGenerator{
		chain:                  chain,
		defaultRefreshValidity: defaultRefreshValidity,
	}
}

// GenerateAccessToken mints an access token via the generator chain. When no
// generator applies the issuance is a fatal server error for the request.
func (tg *TokenGenerator) GenerateAccessToken(tokenCtx *Context) (*model.AccessTokenData, error) {
	for _, generator := range tg.chain {
		token, err := generator.Generate(tokenCtx)
		if err != nil {
			return nil, err
		}
		if token != nil {
			return token, nil
		}
	}
	return nil, ErrNoGenerator
}

// GenerateRefreshToken mints an opaque refresh token with the client's
// configured refresh lifetime.
func (tg *TokenGenerator) GenerateRefreshToken(tokenCtx *Context) (*model.SubToken, error) {
	value, err := hash.GenerateRandomString(randomTokenBytes)
	if err != nil {
		return nil, err
	}

	validity := tokenCtx.Client.RefreshTokenValidity
	if validity <= 0 {
		validity = tg.defaultRefreshValidity
	}

	now := time.Now()
	return &model.SubToken{
		Value:     value,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Duration(validity) * time.Second),
	}, nil
}

// accessTokenValidity resolves the lifetime for an access token.
func accessTokenValidity(client *appmodel.OAuthClient, fallback int64) int64 {
	if client.AccessTokenValidity > 0 {
		return client.AccessTokenValidity
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultAccessTokenValidity
}

// buildClaims assembles the claims attached to an issued access token.
// Tokens issued to the client itself never carry user-identifying claims.
func buildClaims(tokenCtx *Context) map[string]interface{} {
	claims := map[string]interface{}{
		ProductClaim: ProductClaimValue,
		"client_id":  tokenCtx.Client.ClientID,
	}
	if len(tokenCtx.Scopes) > 0 {
		claims["scope"] = strings.Join(tokenCtx.Scopes, " ")
	}
	if tokenCtx.GrantType != constants.GrantTypeClientCredentials && tokenCtx.User != nil {
		claims["user_id"] = tokenCtx.User.UserID
	}
	return claims
}
