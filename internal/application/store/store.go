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

// Package store provides the registered OAuth client directory.
package store

import (
	"errors"

	appmodel "github.com/signet-id/signet/internal/application/model"
	"github.com/signet-id/signet/internal/system/config"
)

// ErrClientNotFound is returned when no client is registered for the given id.
var ErrClientNotFound = errors.New("client not found")

// ClientStoreInterface defines the lookup contract of the client directory.
type ClientStoreInterface interface {
	// GetOAuthClient retrieves the registered client for the given client id.
	GetOAuthClient(clientID string) (*appmodel.OAuthClient, error)
}

// ClientStore is the configuration backed implementation of ClientStoreInterface.
// Registrations are loaded once at startup and are read-only afterwards.
type ClientStore struct {
	clients map[string]appmodel.OAuthClient
}

// NewClientStore builds the client directory from the configured registrations.
func NewClientStore(cfgs []config.OAuthClientConfig) *ClientStore {
	clients := make(map[string]appmodel.OAuthClient, len(cfgs))
	for _, cfg := range cfgs {
		clients[cfg.ClientID] = toOAuthClient(cfg)
	}
	return &ClientStore{clients: clients}
}

// GetOAuthClient retrieves the registered client for the given client id.
func (s *ClientStore) GetOAuthClient(clientID string) (*appmodel.OAuthClient, error) {
	client, ok := s.clients[clientID]
	if !ok {
		return nil, ErrClientNotFound
	}
	// Return a copy so callers cannot mutate the registration.
	return &client, nil
}

func toOAuthClient(cfg config.OAuthClientConfig) appmodel.OAuthClient {
	authMethods := make([]appmodel.TokenAuthMethod, 0, len(cfg.TokenAuthMethods))
	for _, method := range cfg.TokenAuthMethods {
		authMethods = append(authMethods, appmodel.TokenAuthMethod(method))
	}

	tokenFormat := appmodel.TokenFormat(cfg.TokenFormat)
	if tokenFormat == "" {
		tokenFormat = appmodel.TokenFormatReference
	}

	return appmodel.OAuthClient{
		ClientID:              cfg.ClientID,
		HashedClientSecret:    cfg.HashedClientSecret,
		TokenAuthMethods:      authMethods,
		GrantTypes:            cfg.GrantTypes,
		RedirectURIs:          cfg.RedirectURIs,
		Scopes:                cfg.Scopes,
		TokenFormat:           tokenFormat,
		AccessTokenValidity:   cfg.AccessTokenValidity,
		RefreshTokenValidity:  cfg.RefreshTokenValidity,
		ReuseRefreshTokens:    cfg.ReuseRefreshTokens,
		SigningAlgorithm:      cfg.SigningAlgorithm,
		AssertionPublicKeyPEM: cfg.AssertionPublicKeyPEM,
	}
}
