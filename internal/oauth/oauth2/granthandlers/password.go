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
	"github.com/signet-id/signet/internal/oauth/oauth2/lockout"
	"github.com/signet-id/signet/internal/oauth/oauth2/model"
	"github.com/signet-id/signet/internal/oauth/oauth2/tokengen"
	"github.com/signet-id/signet/internal/system/error/serviceerror"
	"github.com/signet-id/signet/internal/system/log"
	userconstants "github.com/signet-id/signet/internal/user/constants"
	userservice "github.com/signet-id/signet/internal/user/service"
)

// passwordGrantHandler handles the resource owner password grant type.
//
// The flow runs as a per-request state machine: lockout pre-check, resource
// owner authentication, failure accounting, token minting, session
// persistence. Exactly one guard call happens per terminal outcome and
// exactly one store save on success.
type passwordGrantHandler struct {
	userService    userservice.UserServiceInterface
	failureGuard   lockout.FailureGuardInterface
	tokenGenerator tokengen.TokenGeneratorInterface
	authzStore     authzstore.AuthorizationStoreInterface
}

// NewPasswordGrantHandler creates a handler for the resource owner password grant.
func NewPasswordGrantHandler(userService userservice.UserServiceInterface,
	failureGuard lockout.FailureGuardInterface, tokenGenerator tokengen.TokenGeneratorInterface,
	authzStore authzstore.AuthorizationStoreInterface) GrantHandlerInterface {
	return &passwordGrantHandler{
		userService:    userService,
		failureGuard:   failureGuard,
		tokenGenerator: tokenGenerator,
		authzStore:     authzStore,
	}
}

// ValidateGrant validates the password grant request shape.
func (h *passwordGrantHandler) ValidateGrant(tokenRequest *model.TokenRequest,
	client *appmodel.OAuthClient) *model.ErrorResponse {
	if tokenRequest.GrantType != constants.GrantTypePassword {
		return &model.ErrorResponse{
			Error:            constants.ErrorUnsupportedGrantType,
			ErrorDescription: "Unsupported grant type",
		}
	}
	if tokenRequest.Username == "" || tokenRequest.Password == "" {
		return &model.ErrorResponse{
			Error:            constants.ErrorInvalidRequest,
			ErrorDescription: "Username and password are required",
		}
	}
	return nil
}

// HandleGrant handles the password grant type.
func (h *passwordGrantHandler) HandleGrant(ctx context.Context, tokenRequest *model.TokenRequest,
	client *appmodel.OAuthClient) (*model.TokenResponseDTO, *model.ErrorResponse) {
	logger := log.GetLogger().With(
		log.String(log.LoggerKeyComponentName, "PasswordGrantHandler"),
		log.String(log.LoggerKeyClientID, log.MaskString(client.ClientID)))

	// The guard runs before the directory is consulted so a locked pair is
	// rejected even when the presented credentials are correct.
	status, err := h.failureGuard.CheckLockout(ctx, client.ClientID, tokenRequest.Username)
	if err != nil {
		logger.Error("Lockout check failed, rejecting request", log.Error(err))
		return nil, serverError("Authentication is temporarily unavailable")
	}
	if status.Locked {
		return nil, tooManyAttempts(status)
	}

	user, svcErr := h.userService.AuthenticateUser(tokenRequest.Username, tokenRequest.Password)
	if svcErr != nil {
		return nil, h.handleAuthenticationFailure(ctx, client.ClientID, tokenRequest.Username, svcErr, logger)
	}

	if err := h.failureGuard.Reset(ctx, client.ClientID, tokenRequest.Username); err != nil {
		logger.Error("Failed to reset failure counter, rejecting request", log.Error(err))
		return nil, serverError("Authentication is temporarily unavailable")
	}

	scopes, errResp := validateScopes(tokenRequest.Scope, client)
	if errResp != nil {
		return nil, errResp
	}

	tokenCtx := &tokengen.Context{
		Client:    client,
		GrantType: constants.GrantTypePassword,
		Subject:   user.Username,
		Scopes:    scopes,
		User:      user,
	}

	accessToken, err := h.tokenGenerator.GenerateAccessToken(tokenCtx)
	if err != nil {
		logger.Error("Failed to generate access token", log.Error(err))
		return nil, serverError("Failed to generate token")
	}

	authorization := &model.Authorization{
		ID:            uuid.NewString(),
		ClientID:      client.ClientID,
		GrantType:     constants.GrantTypePassword,
		PrincipalName: user.Username,
		Authorities:   user.Authorities,
		User:          user,
		AccessToken:   accessToken,
		CreatedAt:     time.Now(),
	}

	// Public clients get no refresh token even when the grant type would
	// otherwise allow one.
	if client.IsAllowedGrantType(constants.GrantTypeRefreshToken) && !client.IsPublicClient() {
		refreshToken, err := h.tokenGenerator.GenerateRefreshToken(tokenCtx)
		if err != nil {
			logger.Error("Failed to generate refresh token", log.Error(err))
			return nil, serverError("Failed to generate token")
		}
		authorization.RefreshToken = refreshToken
	}

	if err := h.authzStore.Save(ctx, authorization); err != nil {
		logger.Error("Failed to persist authorization", log.Error(err))
		return nil, serverError("Failed to persist the authorization")
	}

	return buildTokenResponse(authorization, scopes), nil
}

// handleAuthenticationFailure accounts one failed credential attempt and maps
// the cause to the response taxonomy. Server side failures of the directory
// are not credential attempts and bypass the guard.
func (h *passwordGrantHandler) handleAuthenticationFailure(ctx context.Context, clientID, username string,
	svcErr *serviceerror.ServiceError, logger *log.Logger) *model.ErrorResponse {
	if svcErr.Type == serviceerror.ServerErrorType {
		logger.Error("User directory failure during authentication",
			log.String("code", svcErr.Code))
		return serverError("Authentication is temporarily unavailable")
	}

	logger.Debug("Resource owner authentication failed",
		log.String("code", svcErr.Code), log.String("username", log.MaskString(username)))

	status, err := h.failureGuard.RecordFailure(ctx, clientID, username)
	if err != nil {
		logger.Error("Failed to record login failure, rejecting request", log.Error(err))
		return serverError("Authentication is temporarily unavailable")
	}
	if status.Locked {
		return tooManyAttempts(status)
	}

	return &model.ErrorResponse{
		Error:            constants.ErrorInvalidGrant,
		ErrorDescription: invalidGrantDescription(svcErr),
	}
}

// invalidGrantDescription keeps unknown-user and bad-password failures
// indistinguishable to the caller while preserving distinct account state
// causes.
func invalidGrantDescription(svcErr *serviceerror.ServiceError) string {
	switch svcErr.Code {
	case userconstants.ErrorAccountDisabled.Code:
		return "Account disabled"
	case userconstants.ErrorAccountLocked.Code:
		return "Account locked"
	case userconstants.ErrorCredentialsExpired.Code:
		return "Credentials expired"
	default:
		return "Invalid username or password"
	}
}

func tooManyAttempts(status *lockout.Status) *model.ErrorResponse {
	return &model.ErrorResponse{
		Error:             constants.ErrorTooManyAttempts,
		ErrorDescription:  "Too many failed login attempts",
		RetryAfterSeconds: status.RetryAfterSeconds,
	}
}

func serverError(description string) *model.ErrorResponse {
	return &model.ErrorResponse{
		Error:            constants.ErrorServerError,
		ErrorDescription: description,
	}
}

// buildTokenResponse maps a persisted authorization to the response DTO.
func buildTokenResponse(authorization *model.Authorization, scopes []string) *model.TokenResponseDTO {
	accessToken := authorization.AccessToken
	response := &model.TokenResponseDTO{
		AccessToken: model.TokenDTO{
			Token:     accessToken.Value,
			TokenType: constants.TokenTypeBearer,
			IssuedAt:  accessToken.IssuedAt.Unix(),
			ExpiresIn: int64(accessToken.ExpiresAt.Sub(accessToken.IssuedAt).Seconds()),
			Scopes:    scopes,
			ClientID:  authorization.ClientID,
		},
	}

	if refreshToken := authorization.RefreshToken; refreshToken != nil {
		response.RefreshToken = &model.TokenDTO{
			Token:     refreshToken.Value,
			TokenType: constants.TokenTypeBearer,
			IssuedAt:  refreshToken.IssuedAt.Unix(),
			ExpiresIn: int64(refreshToken.ExpiresAt.Sub(refreshToken.IssuedAt).Seconds()),
			Scopes:    scopes,
			ClientID:  authorization.ClientID,
		}
	}
	return response
}
