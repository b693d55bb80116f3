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

package granthandlers

import (
	"context"
	"time"

	appmodel "github.com/signet-id/signet/internal/application/model"
	authzstore "github.com/signet-id/signet/internal/oauth/oauth2/authz/store"
	"github.com/signet-id/signet/internal/oauth/oauth2/constants"
	"github.com/signet-id/signet/internal/oauth/oauth2/model"
	"github.com/signet-id/signet/internal/oauth/oauth2/tokengen"
	"github.com/signet-id/signet/internal/system/log"
)

// refreshTokenGrantHandler handles the refresh token grant type.
type refreshTokenGrantHandler struct {
	tokenGenerator tokengen.TokenGeneratorInterface
	authzStore     authzstore.AuthorizationStoreInterface
}

// NewRefreshTokenGrantHandler creates a handler for the refresh token grant.
func NewRefreshTokenGrantHandler(tokenGenerator tokengen.TokenGeneratorInterface,
	authzStore authzstore.AuthorizationStoreInterface) GrantHandlerInterface {
	return &refreshTokenGrantHandler{
		tokenGenerator: tokenGenerator,
		authzStore:     authzStore,
	}
}

// ValidateGrant validates the refresh token grant request shape.
func (h *refreshTokenGrantHandler) ValidateGrant(tokenRequest *model.TokenRequest,
	client *appmodel.OAuthClient) *model.ErrorResponse {
	if tokenRequest.GrantType != constants.GrantTypeRefreshToken {
		return &model.ErrorResponse{
			Error:            constants.ErrorUnsupportedGrantType,
			ErrorDescription: "Unsupported grant type",
		}
	}
	if tokenRequest.RefreshToken == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Refresh token is required",
		}
	}
	return nil
}

// HandleGrant handles the refresh token grant type. The whole aggregate is
// replaced: the old keys are removed and the rotated aggregate is saved, so
// the superseded access token stops resolving immediately.
func (h *refreshTokenGrantHandler) HandleGrant(ctx context.Context, tokenRequest *model.TokenRequest,
	client *appmodel.OAuthClient) (*model.TokenResponseDTO, *model.ErrorResponse) {
	logger := log.GetLogger().With(
		log.String(log.LoggerKeyComponentName, "RefreshTokenGrantHandler"),
		log.String(log.LoggerKeyClientID, log.MaskString(client.ClientID)))

	authorization, found, err := h.authzStore.FindByToken(ctx, model.TokenKindRefreshToken,
		tokenRequest.RefreshToken)
	if err != nil {
		logger.Error("Failed to look up refresh token", log.Error(err))
		return nil, serverError("Failed to validate the refresh token")
	}
	if !found || authorization.RefreshToken == nil ||
		authorization.RefreshToken.Expired(time.Now()) {
		return nil, invalidRefreshToken()
	}
	if authorization.ClientID != client.ClientID {
		logger.Debug("Refresh token presented by a different client")
		return nil, invalidRefreshToken()
	}

	scopes, errResp := h.resolveScopes(tokenRequest.Scope, authorization)
	if errResp != nil {
		return nil, errResp
	}

	tokenCtx := &tokengen.Context{
		Client:    client,
		GrantType: authorization.GrantType,
		Subject:   authorization.PrincipalName,
		Scopes:    scopes,
		User:      authorization.User,
	}

	accessToken, err := h.tokenGenerator.GenerateAccessToken(tokenCtx)
	if err != nil {
		logger.Error("Failed to generate access token", log.Error(err))
		return nil, serverError("Failed to generate token")
	}

	rotated := *authorization
	rotated.AccessToken = accessToken
	if !client.ReuseRefreshTokens {
		refreshToken, err := h.tokenGenerator.GenerateRefreshToken(tokenCtx)
		if err != nil {
			logger.Error("Failed to generate refresh token", log.Error(err))
			return nil, serverError("Failed to generate token")
		}
		rotated.RefreshToken = refreshToken
	}

	if err := h.authzStore.Remove(ctx, authorization); err != nil {
		logger.Error("Failed to remove superseded authorization", log.Error(err))
		return nil, serverError("Failed to rotate the authorization")
	}
	if err := h.authzStore.Save(ctx, &rotated); err != nil {
		logger.Error("Failed to persist rotated authorization", log.Error(err))
		return nil, serverError("Failed to persist the authorization")
	}

	return buildTokenResponse(&rotated, scopes), nil
}

// resolveScopes defaults to the originally granted scopes and allows
// narrowing only.
func (h *refreshTokenGrantHandler) resolveScopes(scope string,
	authorization *model.Authorization) ([]string, *model.ErrorResponse) {
	granted := []string{}
	if authorization.AccessToken != nil {
		granted = authorization.AccessToken.Scopes
	}
	if scope == "" {
		return granted, nil
	}

	requested := parseScopes(scope)
	for _, s := range requested {
		if !containsScope(granted, s) {
			return nil, &model.ErrorResponse{
				Error:            constants.ErrorInvalidScope,
				ErrorDescription: "Requested scope exceeds the originally granted scope",
			}
		}
	}
	return requested, nil
}

func containsScope(scopes []string, scope string) bool {
	for _, s := range scopes {
		if s == scope {
			return true
		}
	}
	return false
}

func invalidRefreshToken() *model.ErrorResponse {
	return &model.ErrorResponse{
		Error:            constants.ErrorInvalidGrant,
		ErrorDescription: "Invalid or expired refresh token",
	}
}
