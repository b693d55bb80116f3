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

// Package appservicemock provides a mock implementation of the application service for testing.
package appservicemock

import (
	appmodel "github.com/signet-id/signet/internal/application/model"
)

// ApplicationServiceMock is a configurable mock implementation of the application service interface.
type ApplicationServiceMock struct {
	GetOAuthApplicationFunc func(clientID string) (*appmodel.OAuthClient, error)
}

// GetOAuthApplication calls the configured mock function.
func (m *ApplicationServiceMock) GetOAuthApplication(clientID string) (*appmodel.OAuthClient, error) {
	return m.GetOAuthApplicationFunc(clientID)
}
