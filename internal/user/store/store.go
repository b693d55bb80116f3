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

// Package store provides the implementation for user persistence operations.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/signet-id/signet/internal/system/database"
	usermodel "github.com/signet-id/signet/internal/user/model"
)

// ErrUserNotFound is returned when no user row matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserStoreInterface defines the persistence contract of the user directory.
type UserStoreInterface interface {
	// GetUserByUsername retrieves the user with the given username.
	GetUserByUsername(username string) (*usermodel.User, error)
	// GetUserByUserID retrieves the user with the given user id.
	GetUserByUserID(userID string) (*usermodel.User, error)
}

// UserStore is the identity database backed implementation of UserStoreInterface.
type UserStore struct {
	dbClient database.DBClientInterface
}

// NewUserStore creates a new user store backed by the given database client.
func NewUserStore(dbClient database.DBClientInterface) *UserStore {
	return &UserStore{dbClient: dbClient}
}

// GetUserByUsername retrieves the user with the given username.
func (us *UserStore) GetUserByUsername(username string) (*usermodel.User, error) {
	return us.getUser(queryGetUserByUsername, username)
}

// GetUserByUserID retrieves the user with the given user id.
func (us *UserStore) GetUserByUserID(userID string) (*usermodel.User, error) {
	return us.getUser(queryGetUserByUserID, userID)
}

func (us *UserStore) getUser(query string, arg string) (*usermodel.User, error) {
	results, err := us.dbClient.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrUserNotFound
	}

	user, err := buildUserFromResultRow(results[0])
	if err != nil {
		return nil, fmt.Errorf("failed to build user from result row: %w", err)
	}
	return user, nil
}

func buildUserFromResultRow(row map[string]interface{}) (*usermodel.User, error) {
	userID, ok := row["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse user_id as string")
	}
	username, ok := row["username"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse username as string")
	}
	credentialHash, ok := row["credential_hash"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse credential_hash as string")
	}

	authorities, err := parseAuthorities(row["authorities"])
	if err != nil {
		return nil, err
	}

	user := &usermodel.User{
		UserID:             userID,
		TenantID:           parseStringColumn(row["tenant_id"]),
		Username:           username,
		CredentialHash:     credentialHash,
		Authorities:        authorities,
		Enabled:            parseBoolColumn(row["enabled"]),
		AccountLocked:      parseBoolColumn(row["account_locked"]),
		CredentialsExpired: parseBoolColumn(row["credentials_expired"]),
	}

	if attributes := parseStringColumn(row["attributes"]); attributes != "" {
		user.Attributes = json.RawMessage(attributes)
	}

	return user, nil
}

func parseAuthorities(value interface{}) ([]string, error) {
	raw := parseStringColumn(value)
	if raw == "" {
		return []string{}, nil
	}

	var authorities []string
	if err := json.Unmarshal([]byte(raw), &authorities); err != nil {
		return nil, fmt.Errorf("failed to parse authorities: %w", err)
	}
	return authorities, nil
}

func parseStringColumn(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

// parseBoolColumn tolerates the integer booleans returned by the sqlite driver.
func parseBoolColumn(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	default:
		return false
	}
}
