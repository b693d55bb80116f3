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

// Package constants defines constants used across the OAuth2 module.
package constants

// OAuth2 request parameters.
const (
	GrantType           = "grant_type"
	ClientID            = "client_id"
	ClientSecret        = "client_secret"
	Username            = "username"
	Password            = "password"
	Scope               = "scope"
	RefreshToken        = "refresh_token"
	Token               = "token"
	TokenTypeHint       = "token_type_hint"
	ClientAssertion     = "client_assertion"
	ClientAssertionType = "client_assertion_type"
	Error               = "error"
	ErrorDescription    = "error_description"
)

// ClientAssertionTypeJWTBearer is the assertion type for signed client assertions.
const ClientAssertionTypeJWTBearer = "urn:ietf:params:oauth:client-assertion-type:jwt-bearer"

// OAuth2 endpoints.
const (
	OAuth2TokenEndpoint         = "/oauth2/token" // #nosec G101
	OAuth2IntrospectionEndpoint = "/oauth2/introspect"
	OAuth2RevokeEndpoint        = "/oauth2/revoke"
	OAuth2JWKSEndpoint          = "/oauth2/jwks"
)

// OAuth2 grant types.
const (
	GrantTypePassword          = "password"
	GrantTypeClientCredentials = "client_credentials"
	GrantTypeRefreshToken      = "refresh_token"
)

// OAuth2 token types.
const (
	TokenTypeBearer = "Bearer"
)

// Token type hints accepted at the introspection and revocation endpoints.
const (
	TokenHintAccessToken  = "access_token"
	TokenHintRefreshToken = "refresh_token"
	TokenHintCode         = "code"
	TokenHintState        = "state"
)

// OAuth2 error codes.
const (
	ErrorInvalidRequest       = "invalid_request"
	ErrorInvalidClient        = "invalid_client"
	ErrorInvalidGrant         = "invalid_grant"
	ErrorUnauthorizedClient   = "unauthorized_client"
	ErrorUnsupportedGrantType = "unsupported_grant_type"
	ErrorInvalidScope         = "invalid_scope"
	ErrorServerError          = "server_error"
	ErrorTooManyAttempts      = "too_many_attempts"
)
