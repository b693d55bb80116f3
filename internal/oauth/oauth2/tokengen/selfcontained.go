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

package tokengen

import (
	"time"

	appmodel "github.com/signet-id/signet/internal/application/model"
	"github.com/signet-id/signet/internal/oauth/jwt"
	"github.com/signet-id/signet/internal/oauth/oauth2/model"
)

// SelfContainedTokenGenerator mints signed tokens whose claims are readable
// without a server-side lookup. Only stable identifiers go into the token;
// fresh role and permission data is resolved at introspection time.
type SelfContainedTokenGenerator struct {
	jwtService      jwt.JWTServiceInterface
	defaultValidity int64
}

// NewSelfContainedTokenGenerator creates a self-contained token generator
// signing with the given JWT service.
func NewSelfContainedTokenGenerator(jwtService jwt.JWTServiceInterface,
	defaultValidity int64) *SelfContainedTokenGenerator {
	return &SelfContainedTokenGenerator{
		jwtService:      jwtService,
		defaultValidity: defaultValidity,
	}
}

// Generate mints a signed access token when the client uses the
// self-contained token format.
func (g *SelfContainedTokenGenerator) Generate(tokenCtx *Context) (*model.AccessTokenData, error) {
	if tokenCtx.Client.TokenFormat != appmodel.TokenFormatJWT {
		return nil, nil
	}

	validity := accessTokenValidity(tokenCtx.Client, g.defaultValidity)
	claims := buildClaims(tokenCtx)

	token, iat, err := g.jwtService.GenerateJWT(tokenCtx.Subject, tokenCtx.Client.ClientID, validity, claims)
	if err != nil {
		return nil, err
	}

	issuedAt := time.Unix(iat, 0)
	return &model.AccessTokenData{
		SubToken: model.SubToken{
			Value:     token,
			IssuedAt:  issuedAt,
			ExpiresAt: issuedAt.Add(time.Duration(validity) * time.Second),
		},
		Scopes: tokenCtx.Scopes,
		Claims: claims,
	}, nil
}
