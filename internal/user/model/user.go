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

// Package model defines the data structures of the user directory.
package model

import "encoding/json"

// User represents a user account in the identity database.
//
// CredentialHash never leaves the service layer; it is excluded from every
// serialized form of the user.
type User struct {
	UserID             string          `json:"user_id"`
	TenantID           string          `json:"tenant_id,omitempty"`
	Username           string          `json:"username"`
	CredentialHash     string          `json:"-"`
	Authorities        []string        `json:"authorities"`
	Enabled            bool            `json:"enabled"`
	AccountLocked      bool            `json:"account_locked"`
	CredentialsExpired bool            `json:"credentials_expired"`
	Attributes         json.RawMessage `json:"attributes,omitempty"`
}
