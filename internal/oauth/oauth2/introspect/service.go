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

// Package introspect resolves bearer tokens back to their authorization for
// resource server use.
package introspect

import (
	"context"
	"strings"
	"time"

	authzstore "github.com/signet-id/signet/internal/oauth/oauth2/authz/store"
	"github.com/signet-id/signet/internal/oauth/oauth2/constants"
	"github.com/signet-id/signet/internal/oauth/oauth2/model"
)

// IntrospectionResponse is the result of resolving one token value.
// An inactive token carries no other fields.
type IntrospectionResponse struct {
	Active      bool     `json:"active"`
	TokenKind   string   `json:"token_kind,omitempty"`
	ClientID    string   `json:"client_id,omitempty"`
	Username    string   `json:"username,omitempty"`
	GrantType   string   `json:"grant_type,omitempty"`
	Scope       string   `json:"scope,omitempty"`
	Authorities []string `json:"authorities,omitempty"`
	IssuedAt    int64    `json:"iat,omitempty"`
	ExpiresAt   int64    `json:"exp,omitempty"`
}

// IntrospectionServiceInterface defines the contract for token introspection.
type IntrospectionServiceInterface interface {
	// IntrospectToken resolves a token value to its authorization.
	IntrospectToken(ctx context.Context, token, hint string) (*IntrospectionResponse, error)
}

// IntrospectionService is the default implementation of IntrospectionServiceInterface.
// Authorities are returned from the stored authorization snapshot; a
// deployment wanting fresh role data can re-resolve against the user
// directory at its own cost.
type IntrospectionService struct {
	authzStore authzstore.AuthorizationStoreInterface
}

// NewIntrospectionService creates an introspection service.
func NewIntrospectionService(authzStore authzstore.AuthorizationStoreInterface) *IntrospectionService {
	return &IntrospectionService{authzStore: authzStore}
}

// IntrospectToken resolves a token value to its authorization. A store
// failure is returned as an error so callers reject the token instead of
// treating it as merely inactive.
func (is *IntrospectionService) IntrospectToken(ctx context.Context, token,
	hint string) (*IntrospectionResponse, error) {
	authorization, found, err := is.authzStore.FindByValue(ctx, token, kindFromHint(hint))
	if err != nil {
		return nil, err
	}
	if !found {
		return &IntrospectionResponse{Active: false}, nil
	}

	kind, subToken := matchSubToken(authorization, token)
	if subToken == nil || subToken.Expired(time.Now()) {
		return &IntrospectionResponse{Active: false}, nil
	}

	response := &IntrospectionResponse{
		Active:      true,
		TokenKind:   string(kind),
		ClientID:    authorization.ClientID,
		Username:    authorization.PrincipalName,
		GrantType:   authorization.GrantType,
		Authorities: authorization.Authorities,
		IssuedAt:    subToken.IssuedAt.Unix(),
		ExpiresAt:   subToken.ExpiresAt.Unix(),
	}
	if authorization.AccessToken != nil && len(authorization.AccessToken.Scopes) > 0 {
		response.Scope = strings.Join(authorization.AccessToken.Scopes, " ")
	}

	return response, nil
}

// matchSubToken finds which slot of the aggregate holds the given value.
func matchSubToken(authorization *model.Authorization, token string) (model.TokenKind, *model.SubToken) {
	for _, kind := range []model.TokenKind{
		model.TokenKindAccessToken,
		model.TokenKindRefreshToken,
		model.TokenKindCode,
		model.TokenKindState,
	} {
		if subToken := authorization.SubTokenOf(kind); subToken != nil && subToken.Value == token {
			return kind, subToken
		}
	}
	return "", nil
}

func kindFromHint(hint string) model.TokenKind {
	switch hint {
	case constants.TokenHintAccessToken:
		return model.TokenKindAccessToken
	case constants.TokenHintRefreshToken:
		return model.TokenKindRefreshToken
	case constants.TokenHintCode:
		return model.TokenKindCode
	case constants.TokenHintState:
		return model.TokenKindState
	default:
		return ""
	}
}
