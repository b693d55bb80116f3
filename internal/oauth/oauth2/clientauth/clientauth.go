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

// Package clientauth authenticates OAuth clients at the token endpoint.
package clientauth

import (
	"net/http"

	appmodel "github.com/signet-id/signet/internal/application/model"
	appservice "github.com/signet-id/signet/internal/application/service"
	"github.com/signet-id/signet/internal/oauth/jwt"
	"github.com/signet-id/signet/internal/oauth/oauth2/constants"
	"github.com/signet-id/signet/internal/oauth/oauth2/model"
	"github.com/signet-id/signet/internal/system/crypto/hash"
	"github.com/signet-id/signet/internal/system/log"
	"github.com/signet-id/signet/internal/system/utils"
)

const loggerComponentName = "ClientAuthenticator"

// Result carries the authenticated client and the method that succeeded.
type Result struct {
	Client *appmodel.OAuthClient
	Method appmodel.TokenAuthMethod
}

// ClientAuthenticatorInterface defines the contract for token endpoint client authentication.
type ClientAuthenticatorInterface interface {
	// Authenticate resolves and authenticates the client presented in the request.
	Authenticate(r *http.Request) (*Result, *model.ErrorResponse)
}

// ClientAuthenticator is the default implementation of ClientAuthenticatorInterface.
//
// Authentication methods are tried in a fixed priority order: signed client
// assertion, HTTP Basic credentials, body-embedded secret, then public client.
// The first method with material present in the request decides the outcome;
// there is no fallthrough on failure.
type ClientAuthenticator struct {
	appService       appservice.ApplicationServiceInterface
	expectedAudience string
}

// NewClientAuthenticator creates a client authenticator. Client assertions
// must be addressed to the given audience.
func NewClientAuthenticator(appService appservice.ApplicationServiceInterface,
	expectedAudience string) *ClientAuthenticator {
	return &ClientAuthenticator{
		appService:       appService,
		expectedAudience: expectedAudience,
	}
}

// Authenticate resolves and authenticates the client presented in the request.
// The request form must already be parsed.
func (ca *ClientAuthenticator) Authenticate(r *http.Request) (*Result, *model.ErrorResponse) {
	if r.FormValue(constants.ClientAssertion) != "" {
		return ca.authenticateWithAssertion(r)
	}
	if basicID, basicSecret, err := utils.ExtractBasicAuthCredentials(r); err == nil {
		return ca.authenticateWithSecret(basicID, basicSecret, appmodel.TokenAuthMethodClientSecretBasic)
	}
	if r.FormValue(constants.ClientSecret) != "" {
		return ca.authenticateWithSecret(r.FormValue(constants.ClientID), r.FormValue(constants.ClientSecret),
			appmodel.TokenAuthMethodClientSecretPost)
	}
	return ca.authenticatePublic(r.FormValue(constants.ClientID))
}

func (ca *ClientAuthenticator) authenticateWithAssertion(r *http.Request) (*Result, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if r.FormValue(constants.ClientAssertionType) != constants.ClientAssertionTypeJWTBearer {
		return nil, invalidClient("Unsupported client assertion type")
	}

	assertion := r.FormValue(constants.ClientAssertion)
	clientID := r.FormValue(constants.ClientID)
	if clientID == "" {
		// Fall back to the unverified subject to locate the registration.
		// The signature check below still decides the outcome.
		payload, err := jwt.DecodeJWTPayload(assertion)
		if err != nil {
			return nil, invalidClient("Malformed client assertion")
		}
		clientID, _ = payload["sub"].(string)
	}

	client, errResp := ca.resolveClient(clientID)
	if errResp != nil {
		return nil, errResp
	}
	if !client.IsAllowedAuthMethod(appmodel.TokenAuthMethodPrivateKeyJWT) {
		return nil, invalidClient("Client authentication method not allowed")
	}
	if client.AssertionPublicKeyPEM == "" {
		return nil, invalidClient("No assertion key registered for the client")
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(client.AssertionPublicKeyPEM)
	if err != nil {
		logger.Error("Failed to parse registered assertion key",
			log.String(log.LoggerKeyClientID, log.MaskString(clientID)), log.Error(err))
		return nil, &model.ErrorResponse{
			Error:            constants.ErrorServerError,
			ErrorDescription: "Failed to verify client assertion",
		}
	}

	claims, err := jwt.VerifyJWTWithKey(assertion, publicKey)
	if err != nil {
		logger.Debug("Client assertion verification failed",
			log.String(log.LoggerKeyClientID, log.MaskString(clientID)))
		return nil, invalidClient("Invalid client assertion")
	}

	if sub, _ := claims["sub"].(string); sub != client.ClientID {
		return nil, invalidClient("Client assertion subject mismatch")
	}
	if iss, _ := claims["iss"].(string); iss != client.ClientID {
		return nil, invalidClient("Client assertion issuer mismatch")
	}
	if !audienceMatches(claims["aud"], ca.expectedAudience) {
		return nil, invalidClient("Client assertion audience mismatch")
	}

	return &Result{Client: client, Method: appmodel.TokenAuthMethodPrivateKeyJWT}, nil
}

func (ca *ClientAuthenticator) authenticateWithSecret(clientID, clientSecret string,
	method appmodel.TokenAuthMethod) (*Result, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	client, errResp := ca.resolveClient(clientID)
	if errResp != nil {
		return nil, errResp
	}
	if !client.IsAllowedAuthMethod(method) {
		return nil, invalidClient("Client authentication method not allowed")
	}
	if !hash.VerifyCredential(client.HashedClientSecret, clientSecret) {
		logger.Debug("Client secret verification failed",
			log.String(log.LoggerKeyClientID, log.MaskString(clientID)))
		return nil, invalidClient("Invalid client credentials")
	}

	return &Result{Client: client, Method: method}, nil
}

func (ca *ClientAuthenticator) authenticatePublic(clientID string) (*Result, *model.ErrorResponse) {
	client, errResp := ca.resolveClient(clientID)
	if errResp != nil {
		return nil, errResp
	}
	if !client.IsAllowedAuthMethod(appmodel.TokenAuthMethodNone) {
		return nil, invalidClient("Client credentials required")
	}

	return &Result{Client: client, Method: appmodel.TokenAuthMethodNone}, nil
}

func (ca *ClientAuthenticator) resolveClient(clientID string) (*appmodel.OAuthClient, *model.ErrorResponse) {
	if clientID == "" {
		return nil, invalidClient("Client identification missing")
	}
	client, err := ca.appService.GetOAuthApplication(clientID)
	if err != nil {
		return nil, invalidClient("Invalid client credentials")
	}
	return client, nil
}

func invalidClient(description string) *model.ErrorResponse {
	return &model.ErrorResponse{
		Error:            constants.ErrorInvalidClient,
		ErrorDescription: description,
	}
}

// audienceMatches accepts both the string and list forms of the aud claim.
func audienceMatches(aud interface{}, expected string) bool {
	switch v := aud.(type) {
	case string:
		return v == expected
	case []interface{}:
		for _, entry := range v {
			if s, ok := entry.(string); ok && s == expected {
				return true
			}
		}
	}
	return false
}
