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

	"github.com/google/uuid"

	appmodel "github.com/signet-id/signet/internal/application/model"
	authzstore "github.com/signet-id/signet/internal/oauth/oauth2/authz/store"
	"github.com/signet-id/signet/internal/oauth/oauth2/constants"
	"github.com/signet-id/signet/internal/oauth/oauth2/model"
	"github.com/signet-id/signet/internal/oauth/oauth2/tokengen"
	"github.com/signet-id/signet/internal/system/log"
)

// clientCredentialsGrantHandler handles the client credentials grant type.
type clientCredentialsGrantHandler struct {
	tokenGenerator tokengen.TokenGeneratorInterface
	authzStore     authzstore.AuthorizationStoreInterface
}

// NewClientCredentialsGrantHandler creates a handler for the client credentials grant.
func NewClientCredentialsGrantHandler(tokenGenerator tokengen.TokenGeneratorInterface,
	authzStore authzstore.AuthorizationStoreInterface) GrantHandlerInterface {
	return &clientCredentialsGrantHandler{
		tokenGenerator: tokenGenerator,
		authzStore:     authzStore,
	}
}

// ValidateGrant validates the client credentials grant request shape.
func (h *clientCredentialsGrantHandler) ValidateGrant(tokenRequest *model.TokenRequest,
	client *appmodel.OAuthClient) *model.ErrorResponse {
	if tokenRequest.GrantType != constants.GrantTypeClientCredentials {
		return &model.ErrorResponse{
			Error:            constants.ErrorUnsupportedGrantType,
			ErrorDescription: "Unsupported grant type",
		}
	}
	if client.IsPublicClient() {
		return &model.ErrorResponse{
			Error:            constants.ErrorUnauthorizedClient,
			ErrorDescription: "Public clients cannot use the client credentials grant",
		}
	}
	return nil
}

// HandleGrant handles the client credentials grant type. The issued
// authorization represents the client itself: the principal is the client id
// and the authority set is empty.
func (h *clientCredentialsGrantHandler) HandleGrant(ctx context.Context, tokenRequest *model.TokenRequest,
	client *appmodel.OAuthClient) (*model.TokenResponseDTO, *model.ErrorResponse) {
	logger := log.GetLogger().With(
		log.String(log.LoggerKeyComponentName, "ClientCredentialsGrantHandler"),
		log.String(log.LoggerKeyClientID, log.MaskString(client.ClientID)))

	scopes, errResp := validateScopes(tokenRequest.Scope, client)
	if errResp != nil {
		return nil, errResp
	}

	tokenCtx := &tokengen.Context{
		Client:    client,
		GrantType: constants.GrantTypeClientCredentials,
		Subject:   client.ClientID,
		Scopes:    scopes,
	}

	accessToken, err := h.tokenGenerator.GenerateAccessToken(tokenCtx)
	if err != nil {
		logger.Error("Failed to generate access token", log.Error(err))
		return nil, serverError("Failed to generate token")
	}

	authorization := &model.Authorization{
		ID:            uuid.NewString(),
		ClientID:      client.ClientID,
		GrantType:     constants.GrantTypeClientCredentials,
		PrincipalName: client.ClientID,
		Authorities:   []string{},
		AccessToken:   accessToken,
		CreatedAt:     time.Now(),
	}

	if err := h.authzStore.Save(ctx, authorization); err != nil {
		logger.Error("Failed to persist authorization", log.Error(err))
		return nil, serverError("Failed to persist the authorization")
	}

	return buildTokenResponse(authorization, scopes), nil
}
