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

package introspect

import (
	"encoding/json"
	"net/http"

	"github.com/signet-id/signet/internal/oauth/oauth2/constants"
	"github.com/signet-id/signet/internal/system/log"
	"github.com/signet-id/signet/internal/system/utils"
)

// IntrospectionHandler serves the token introspection endpoint. The endpoint
// is internal; resource servers call it to validate opaque tokens.
type IntrospectionHandler struct {
	service IntrospectionServiceInterface
}

// NewIntrospectionHandler creates an introspection endpoint handler.
func NewIntrospectionHandler(service IntrospectionServiceInterface) *IntrospectionHandler {
	return &IntrospectionHandler{service: service}
}

// HandleIntrospectRequest handles a token introspection request.
func (ih *IntrospectionHandler) HandleIntrospectRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "IntrospectionHandler"))

	if err := r.ParseForm(); err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Failed to parse the request form",
			http.StatusBadRequest, nil)
		return
	}

	token := r.FormValue(constants.Token)
	if token == "" {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Missing token parameter",
			http.StatusBadRequest, nil)
		return
	}

	response, err := ih.service.IntrospectToken(r.Context(), token, r.FormValue(constants.TokenTypeHint))
	if err != nil {
		// A store outage must reject the token, never default to active.
		logger.Error("Introspection failed", log.Error(err))
		utils.WriteJSONError(w, constants.ErrorServerError, "Failed to introspect the token",
			http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Failed to write introspection response", log.Error(err))
	}
}
