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

// Package service provides the application management service.
package service

import (
	appmodel "github.com/signet-id/signet/internal/application/model"
	"github.com/signet-id/signet/internal/application/store"
	"github.com/signet-id/signet/internal/system/log"
)

const loggerComponentName = "ApplicationService"

// ApplicationServiceInterface defines the contract for OAuth client lookups.
type ApplicationServiceInterface interface {
	// GetOAuthApplication retrieves the registered OAuth client for the given client id.
	GetOAuthApplication(clientID string) (*appmodel.OAuthClient, error)
}

// ApplicationService is the default implementation of ApplicationServiceInterface.
type ApplicationService struct {
	clientStore store.ClientStoreInterface
}

// NewApplicationService creates a new application service backed by the given client directory.
func NewApplicationService(clientStore store.ClientStoreInterface) *ApplicationService {
	return &ApplicationService{clientStore: clientStore}
}

// GetOAuthApplication retrieves the registered OAuth client for the given client id.
func (as *ApplicationService) GetOAuthApplication(clientID string) (*appmodel.OAuthClient, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	client, err := as.clientStore.GetOAuthClient(clientID)
	if err != nil {
		logger.Debug("Failed to resolve OAuth client", log.String(log.LoggerKeyClientID, log.MaskString(clientID)))
		return nil, err
	}
	return client, nil
}
