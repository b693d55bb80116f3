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

// Package granthandlers provides an interface and implementations for handling OAuth 2.0 grant types.
package granthandlers

import (
	"context"
	"strings"

	appmodel "github.com/signet-id/signet/internal/application/model"
	"github.com/signet-id/signet/internal/oauth/oauth2/constants"
	"github.com/signet-id/signet/internal/oauth/oauth2/model"
)

// GrantHandlerInterface defines the interface for handling OAuth 2.0 grants.
type GrantHandlerInterface interface {
	// ValidateGrant checks the shape of the token request for this grant type.
	ValidateGrant(tokenRequest *model.TokenRequest, client *appmodel.OAuthClient) *model.ErrorResponse
	// HandleGrant runs the grant flow and issues tokens.
	HandleGrant(ctx context.Context, tokenRequest *model.TokenRequest,
		client *appmodel.OAuthClient) (*model.TokenResponseDTO, *model.ErrorResponse)
}

// GrantHandlerProvider maps grant types to their handlers. Adding a grant
// type is a table entry, registered at startup.
type GrantHandlerProvider struct {
	handlers map[string]GrantHandlerInterface
}

// NewGrantHandlerProvider creates an empty grant handler provider.
func NewGrantHandlerProvider() *GrantHandlerProvider {
	return &GrantHandlerProvider{
		handlers: make(map[string]GrantHandlerInterface),
	}
}

// Register binds a handler to a grant type.
func (p *GrantHandlerProvider) Register(grantType string, handler GrantHandlerInterface) {
	p.handlers[grantType] = handler
}

// GetGrantHandler returns the handler registered for the grant type.
func (p *GrantHandlerProvider) GetGrantHandler(grantType string) (GrantHandlerInterface, bool) {
	handler, ok := p.handlers[grantType]
	return handler, ok
}

// parseScopes splits a space-delimited scope parameter.
func parseScopes(scope string) []string {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return []string{}
	}
	return strings.Split(scope, " ")
}

// validateScopes checks every requested scope against the client registration.
func validateScopes(scope string, client *appmodel.OAuthClient) ([]string, *model.ErrorResponse) {
	scopes := parseScopes(scope)
	for _, requested := range scopes {
		if !client.IsAllowedScope(requested) {
			return nil, &model.ErrorResponse{
				Error:            constants.ErrorInvalidScope,
				ErrorDescription: "Requested scope is not authorized for the client",
			}
		}
	}
	return scopes, nil
}
