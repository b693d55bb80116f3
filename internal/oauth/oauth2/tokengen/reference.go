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
	"github.com/signet-id/signet/internal/oauth/oauth2/model"
	"github.com/signet-id/signet/internal/system/crypto/hash"
)

// ReferenceTokenGenerator mints opaque random access tokens that carry no
// structure and must be resolved through the authorization store.
type ReferenceTokenGenerator struct {
	defaultValidity int64
}

// NewReferenceTokenGenerator creates a reference token generator with the
// given fallback lifetime in seconds.
func NewReferenceTokenGenerator(defaultValidity int64) *ReferenceTokenGenerator {
	return &ReferenceTokenGenerator{defaultValidity: defaultValidity}
}

// Generate mints an opaque access token when the client uses the reference
// token format.
func (g *ReferenceTokenGenerator) Generate(tokenCtx *Context) (*model.AccessTokenData, error) {
	if tokenCtx.Client.TokenFormat != appmodel.TokenFormatReference {
		return nil, nil
	}

	value, err := hash.GenerateRandomString(randomTokenBytes)
	if err != nil {
		return nil, err
	}

	validity := accessTokenValidity(tokenCtx.Client, g.defaultValidity)
	now := time.Now()
	return &model.AccessTokenData{
		SubToken: model.SubToken{
			Value:     value,
			IssuedAt:  now,
			ExpiresAt: now.Add(time.Duration(validity) * time.Second),
		},
		Scopes: tokenCtx.Scopes,
		Claims: buildClaims(tokenCtx),
	}, nil
}
