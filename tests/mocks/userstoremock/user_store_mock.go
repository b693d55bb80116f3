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

// Package userstoremock provides a mock implementation of the user store for testing.
package userstoremock

import (
	usermodel "github.com/signet-id/signet/internal/user/model"
)

// UserStoreMock is a configurable mock implementation of the user store interface.
type UserStoreMock struct {
	GetUserByUsernameFunc func(username string) (*usermodel.User, error)
	GetUserByUserIDFunc   func(userID string) (*usermodel.User, error)
}

// GetUserByUsername calls the configured mock function.
func (m *UserStoreMock) GetUserByUsername(username string) (*usermodel.User, error) {
	return m.GetUserByUsernameFunc(username)
}

// GetUserByUserID calls the configured mock function.
func (m *UserStoreMock) GetUserByUserID(userID string) (*usermodel.User, error) {
	return m.GetUserByUserIDFunc(userID)
}
