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

// Package constants defines the error constants of the user service.
package constants

import "github.com/signet-id/signet/internal/system/error/serviceerror"

// Client errors for user service operations.
var (
	// ErrorUserNotFound is returned when no user exists for the given identifier.
	ErrorUserNotFound = serviceerror.ServiceError{
		Code:             "USR-1001",
		Type:             serviceerror.ClientErrorType,
		Error:            "User not found",
		ErrorDescription: "No user found for the given identifier",
	}
	// ErrorAuthenticationFailed is returned when the supplied credentials do not match.
	ErrorAuthenticationFailed = serviceerror.ServiceError{
		Code:             "USR-1002",
		Type:             serviceerror.ClientErrorType,
		Error:            "Authentication failed",
		ErrorDescription: "The provided credentials are invalid",
	}
	// ErrorAccountDisabled is returned when the account is administratively disabled.
	ErrorAccountDisabled = serviceerror.ServiceError{
		Code:             "USR-1003",
		Type:             serviceerror.ClientErrorType,
		Error:            "Account disabled",
		ErrorDescription: "The user account is disabled",
	}
	// ErrorAccountLocked is returned when the account is administratively locked.
	ErrorAccountLocked = serviceerror.ServiceError{
		Code:             "USR-1004",
		Type:             serviceerror.ClientErrorType,
		Error:            "Account locked",
		ErrorDescription: "The user account is locked",
	}
	// ErrorCredentialsExpired is returned when the stored credentials have expired.
	ErrorCredentialsExpired = serviceerror.ServiceError{
		Code:             "USR-1005",
		Type:             serviceerror.ClientErrorType,
		Error:            "Credentials expired",
		ErrorDescription: "The user credentials have expired",
	}
)

// Server errors for user service operations.
var (
	// ErrorInternalServerError is returned for unexpected failures in the user service.
	ErrorInternalServerError = serviceerror.ServiceError{
		Code:             "USR-5001",
		Type:             serviceerror.ServerErrorType,
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
