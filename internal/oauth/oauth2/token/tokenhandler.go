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

// Package token implements the OAuth2 token endpoint.
package token

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/signet-id/signet/internal/oauth/oauth2/clientauth"
	"github.com/signet-id/signet/internal/oauth/oauth2/constants"
	"github.com/signet-id/signet/internal/oauth/oauth2/granthandlers"
	"github.com/signet-id/signet/internal/oauth/oauth2/model"
	"github.com/signet-id/signet/internal/system/log"
)

const loggerComponentName = "TokenHandler"

// TokenHandler serves the OAuth2 token endpoint.
type TokenHandler struct {
	clientAuthenticator clientauth.ClientAuthenticatorInterface
	grantProvider       *granthandlers.GrantHandlerProvider
}

// NewTokenHandler creates a token endpoint handler.
func NewTokenHandler(clientAuthenticator clientauth.ClientAuthenticatorInterface,
	grantProvider *granthandlers.GrantHandlerProvider) *TokenHandler {
	return &TokenHandler{
		clientAuthenticator: clientAuthenticator,
		grantProvider:       grantProvider,
	}
}

// HandleTokenRequest handles the OAuth2 token request.
func (th *TokenHandler) HandleTokenRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if err := r.ParseForm(); err != nil {
		writeErrorResponse(w, &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Failed to parse the request form",
		})
		return
	}

	grantType := r.FormValue(constants.GrantType)
	if grantType == "" {
		writeErrorResponse(w, &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Missing grant_type parameter",
		})
		return
	}

	result, errResp := th.clientAuthenticator.Authenticate(r)
	if errResp != nil {
		writeErrorResponse(w, errResp)
		return
	}
	client := result.Client

	logger = logger.With(
		log.String(log.LoggerKeyClientID, log.MaskString(client.ClientID)),
		log.String(log.LoggerKeyGrantType, grantType))

	// A grant type outside the client registration is a configuration
	// error, not a credential attempt.
	if !client.IsAllowedGrantType(grantType) {
		writeErrorResponse(w, &model.ErrorResponse{
			Error:            constants.ErrorUnauthorizedClient,
			ErrorDescription: "Grant type is not allowed for the client",
		})
		return
	}

	grantHandler, ok := th.grantProvider.GetGrantHandler(grantType)
	if !ok {
		writeErrorResponse(w, &model.ErrorResponse{
			Error:            constants.ErrorUnsupportedGrantType,
			ErrorDescription: "Unsupported grant type",
		})
		return
	}

	tokenRequest := &model.TokenRequest{
		GrantType:    grantType,
		ClientID:     client.ClientID,
		Scope:        r.FormValue(constants.Scope),
		Username:     r.FormValue(constants.Username),
		Password:     r.FormValue(constants.Password),
		RefreshToken: r.FormValue(constants.RefreshToken),
	}

	if errResp := grantHandler.ValidateGrant(tokenRequest, client); errResp != nil {
		writeErrorResponse(w, errResp)
		return
	}

	responseDTO, errResp := grantHandler.HandleGrant(r.Context(), tokenRequest, client)
	if errResp != nil {
		writeErrorResponse(w, errResp)
		return
	}

	logger.Info("Token issued")
	writeTokenResponse(w, responseDTO)
}

// writeTokenResponse serializes a successful token response. Token responses
// must never be cached.
func writeTokenResponse(w http.ResponseWriter, responseDTO *model.TokenResponseDTO) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	response := model.TokenResponse{
		AccessToken: responseDTO.AccessToken.Token,
		TokenType:   responseDTO.AccessToken.TokenType,
		ExpiresIn:   responseDTO.AccessToken.ExpiresIn,
		Scope:       strings.Join(responseDTO.AccessToken.Scopes, " "),
	}
	if responseDTO.RefreshToken != nil {
		response.RefreshToken = responseDTO.RefreshToken.Token
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Failed to write token response", log.Error(err))
	}
}

// writeErrorResponse maps an OAuth2 error to its HTTP surface and writes it.
func writeErrorResponse(w http.ResponseWriter, errResp *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Debug("Token request failed",
		log.String("error", errResp.Error), log.String("description", errResp.ErrorDescription))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")

	statusCode := http.StatusBadRequest
	switch errResp.Error {
	case constants.ErrorInvalidClient:
		w.Header().Set("WWW-Authenticate", `Basic realm="signet"`)
		statusCode = http.StatusUnauthorized
	case constants.ErrorServerError:
		statusCode = http.StatusInternalServerError
	}

	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		logger.Error("Failed to write error response", log.Error(err))
	}
}
