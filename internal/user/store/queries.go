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

package store

const (
	// queryGetUserByUsername is the query to get a user by username.
	queryGetUserByUsername = `SELECT USER_ID, TENANT_ID, USERNAME, CREDENTIAL_HASH, AUTHORITIES, ENABLED,
 ACCOUNT_LOCKED, CREDENTIALS_EXPIRED, ATTRIBUTES FROM "USER" WHERE USERNAME = $1`

	// queryGetUserByUserID is the query to get a user by user id.
	queryGetUserByUserID = `SELECT USER_ID, TENANT_ID, USERNAME, CREDENTIAL_HASH, AUTHORITIES, ENABLED,
 ACCOUNT_LOCKED, CREDENTIALS_EXPIRED, ATTRIBUTES FROM "USER" WHERE USER_ID = $1`
)
