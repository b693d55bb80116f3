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

// Package service provides the user authentication and lookup service.
package service

import (
	"errors"

	"github.com/signet-id/signet/internal/system/crypto/hash"
	"github.com/signet-id/signet/internal/system/error/serviceerror"
	"github.com/signet-id/signet/internal/system/log"
	"github.com/signet-id/signet/internal/user/constants"
	usermodel "github.com/signet-id/signet/internal/user/model"
	"github.com/signet-id/signet/internal/user/store"
)

const loggerComponentName = "UserService"

// UserServiceInterface defines the contract for user authentication and lookups.
type UserServiceInterface interface {
	// AuthenticateUser verifies the given credentials and returns the matched user.
	AuthenticateUser(username, password string) (*usermodel.User, *serviceerror.ServiceError)
	// GetUser retrieves the user with the given user id.
	GetUser(userID string) (*usermodel.User, *serviceerror.ServiceError)
}

// UserService is the default implementation of UserServiceInterface.
type UserService struct {
	userStore store.UserStoreInterface
}

// NewUserService creates a new user service backed by the given user store.
func NewUserService(userStore store.UserStoreInterface) *UserService {
	return &UserService{userStore: userStore}
}

// AuthenticateUser verifies the given credentials and returns the matched user.
//
// Credential verification runs before the account state checks so that a
// caller holding the wrong password learns nothing about the account state.
func (us *UserService) AuthenticateUser(username, password string) (
	*usermodel.User, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	user, err := us.userStore.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			logger.Debug("User not found for authentication",
				log.String("username", log.MaskString(username)))
			return nil, &constants.ErrorUserNotFound
		}
		logger.Error("Failed to retrieve user for authentication", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}

	if !hash.VerifyCredential(user.CredentialHash, password) {
		logger.Debug("Credential verification failed",
			log.String("username", log.MaskString(username)))
		return nil, &constants.ErrorAuthenticationFailed
	}

	if svcErr := checkAccountState(user); svcErr != nil {
		return nil, svcErr
	}

	return user, nil
}

// GetUser retrieves the user with the given user id.
func (us *UserService) GetUser(userID string) (*usermodel.User, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	user, err := us.userStore.GetUserByUserID(userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, &constants.ErrorUserNotFound
		}
		logger.Error("Failed to retrieve user", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}
	return user, nil
}

func checkAccountState(user *usermodel.User) *serviceerror.ServiceError {
	if !user.Enabled {
		return &constants.ErrorAccountDisabled
	}
	if user.AccountLocked {
		return &constants.ErrorAccountLocked
	}
	if user.CredentialsExpired {
		return &constants.ErrorCredentialsExpired
	}
	return nil
}
