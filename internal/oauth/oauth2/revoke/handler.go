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

// Package revoke implements the token revocation endpoint.
package revoke

import (
	"net/http"

	authzstore "github.com/signet-id/signet/internal/oauth/oauth2/authz/store"
	"github.com/signet-id/signet/internal/oauth/oauth2/constants"
	"github.com/signet-id/signet/internal/oauth/oauth2/model"
	"github.com/signet-id/signet/internal/system/log"
	"github.com/signet-id/signet/internal/system/utils"
)

// RevocationHandler serves the admin-only token revocation endpoint.
// Revoking any sub-token value destroys the whole authorization, so every
// token issued for that grant stops working at once.
type RevocationHandler struct {
	authzStore authzstore.AuthorizationStoreInterface
}

// NewRevocationHandler creates a revocation endpoint handler.
func NewRevocationHandler(authzStore authzstore.AuthorizationStoreInterface) *RevocationHandler {
	return &RevocationHandler{authzStore: authzStore}
}

// HandleRevokeRequest handles a token revocation request. Revocation is
// idempotent; revoking an unknown token succeeds.
func (rh *RevocationHandler) HandleRevokeRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RevocationHandler"))

	token := r.URL.Query().Get(constants.Token)
	if token == "" {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Missing token parameter",
			http.StatusBadRequest, nil)
		return
	}
	hint := model.TokenKind(r.URL.Query().Get(constants.TokenTypeHint))

	authorization, found, err := rh.authzStore.FindByValue(r.Context(), token, hint)
	if err != nil {
		logger.Error("Failed to resolve token for revocation", log.Error(err))
		utils.WriteJSONError(w, constants.ErrorServerError, "Failed to revoke the token",
			http.StatusInternalServerError, nil)
		return
	}
	if found {
		if err := rh.authzStore.Remove(r.Context(), authorization); err != nil {
			logger.Error("Failed to remove authorization", log.Error(err))
			utils.WriteJSONError(w, constants.ErrorServerError, "Failed to revoke the token",
				http.StatusInternalServerError, nil)
			return
		}
		logger.Info("Authorization revoked", log.String("authorization_id", authorization.ID))
	}

	w.WriteHeader(http.StatusNoContent)
}
