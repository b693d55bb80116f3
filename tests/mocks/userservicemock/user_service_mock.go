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

// Package userservicemock provides a mock implementation of the user service for testing.
package userservicemock

import (
	"github.com/signet-id/signet/internal/system/error/serviceerror"
	usermodel "github.com/signet-id/signet/internal/user/model"
)

// UserServiceMock is a configurable mock implementation of the user service interface.
type UserServiceMock struct {
	AuthenticateUserFunc func(username, password string) (*usermodel.User, *serviceerror.ServiceError)
	GetUserFunc          func(userID string) (*usermodel.User, *serviceerror.ServiceError)
}

// AuthenticateUser calls the configured mock function.
func (m *UserServiceMock) AuthenticateUser(username, password string) (
	*usermodel.User, *serviceerror.ServiceError) {
	return m.AuthenticateUserFunc(username, password)
}

// GetUser calls the configured mock function.
func (m *UserServiceMock) GetUser(userID string) (*usermodel.User, *serviceerror.ServiceError) {
	return m.GetUserFunc(userID)
}
