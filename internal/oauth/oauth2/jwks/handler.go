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

// Package jwks publishes the server signing key as a JSON Web Key Set so
// resource servers can verify self-contained tokens offline.
package jwks

import (
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"

	"github.com/signet-id/signet/internal/oauth/jwt"
	"github.com/signet-id/signet/internal/system/log"
)

// JWK is a single RSA signing key in JWK form.
type JWK struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// JWKSResponse is the key set document served at the JWKS endpoint.
type JWKSResponse struct {
	Keys []JWK `json:"keys"`
}

// JWKSHandler serves the JSON Web Key Set for the server signing key.
type JWKSHandler struct {
	jwtService jwt.JWTServiceInterface
}

// NewJWKSHandler creates a JWKS endpoint handler.
func NewJWKSHandler(jwtService jwt.JWTServiceInterface) *JWKSHandler {
	return &JWKSHandler{jwtService: jwtService}
}

// HandleJWKSRequest handles the HTTP request to retrieve the JSON Web Key Set.
func (h *JWKSHandler) HandleJWKSRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "JWKSHandler"))

	publicKey := h.jwtService.GetPublicKey()
	if publicKey == nil {
		http.Error(w, "No signing key available", http.StatusInternalServerError)
		return
	}

	response := JWKSResponse{
		Keys: []JWK{
			{
				Kid: h.jwtService.GetKid(),
				Kty: "RSA",
				Use: "sig",
				Alg: "RS256",
				N:   base64.RawURLEncoding.EncodeToString(publicKey.N.Bytes()),
				E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(publicKey.E)).Bytes()),
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Error encoding JWKS response", log.Error(err))
	}
}
