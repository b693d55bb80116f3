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

// Package model defines the data structures of the OAuth client directory.
package model

// TokenFormat defines the format of the access tokens issued for a client.
type TokenFormat string

const (
	// TokenFormatReference denotes opaque reference tokens resolved server side.
	TokenFormatReference TokenFormat = "reference"
	// TokenFormatJWT denotes self-contained signed tokens.
	TokenFormatJWT TokenFormat = "jwt"
)

// TokenAuthMethod defines a client authentication method at the token endpoint.
type TokenAuthMethod string

const (
	// TokenAuthMethodClientSecretBasic authenticates with HTTP Basic credentials.
	TokenAuthMethodClientSecretBasic TokenAuthMethod = "client_secret_basic"
	// TokenAuthMethodClientSecretPost authenticates with a body-embedded secret.
	TokenAuthMethodClientSecretPost TokenAuthMethod = "client_secret_post"
	// TokenAuthMethodPrivateKeyJWT authenticates with a signed client assertion.
	TokenAuthMethodPrivateKeyJWT TokenAuthMethod = "private_key_jwt"
	// TokenAuthMethodNone marks a public client with no credentials.
	TokenAuthMethodNone TokenAuthMethod = "none"
)

// OAuthClient represents a registered OAuth client and its token settings.
// Instances are immutable per request; the directory returns a fresh copy
// for each authentication.
type OAuthClient struct {
	ClientID              string
	HashedClientSecret    string
	TokenAuthMethods      []TokenAuthMethod
	GrantTypes            []string
	RedirectURIs          []string
	Scopes                []string
	TokenFormat           TokenFormat
	AccessTokenValidity   int64
	RefreshTokenValidity  int64
	ReuseRefreshTokens    bool
	SigningAlgorithm      string
	AssertionPublicKeyPEM string
}

// IsAllowedGrantType checks if the provided grant type is allowed for the client.
func (c *OAuthClient) IsAllowedGrantType(grantType string) bool {
	for _, allowed := range c.GrantTypes {
		if grantType == allowed {
			return true
		}
	}
	return false
}

// IsAllowedAuthMethod checks if the provided authentication method is allowed for the client.
func (c *OAuthClient) IsAllowedAuthMethod(method TokenAuthMethod) bool {
	for _, allowed := range c.TokenAuthMethods {
		if method == allowed {
			return true
		}
	}
	return false
}

// IsPublicClient reports whether the client authenticates without credentials.
func (c *OAuthClient) IsPublicClient() bool {
	return len(c.TokenAuthMethods) == 1 && c.TokenAuthMethods[0] == TokenAuthMethodNone
}

// IsAllowedScope checks if the provided scope is registered for the client.
func (c *OAuthClient) IsAllowedScope(scope string) bool {
	for _, allowed := range c.Scopes {
		if scope == allowed {
			return true
		}
	}
	return false
}
