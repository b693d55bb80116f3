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

package jwks

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/signet-id/signet/internal/oauth/jwt"
	"github.com/signet-id/signet/internal/system/config"
)

type JWKSHandlerTestSuite struct {
	suite.Suite
	jwtService *jwt.JWTService
	handler    *JWKSHandler
}

func TestJWKSHandlerSuite(t *testing.T) {
	suite.Run(t, new(JWKSHandlerTestSuite))
}

func (suite *JWKSHandlerTestSuite) SetupSuite() {
	jwtService, err := jwt.NewJWTService(suite.T().TempDir(), config.JWTConfig{
		Issuer: "https://signet.test",
	})
	suite.Require().NoError(err)
	suite.jwtService = jwtService
	suite.handler = NewJWKSHandler(jwtService)
}

func (suite *JWKSHandlerTestSuite) TestHandleJWKSRequest() {
	r := httptest.NewRequest(http.MethodGet, "/oauth2/jwks", nil)
	w := httptest.NewRecorder()
	suite.handler.HandleJWKSRequest(w, r)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/json", w.Header().Get("Content-Type"))

	var response JWKSResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Keys, 1)

	key := response.Keys[0]
	suite.Equal("RSA", key.Kty)
	suite.Equal("sig", key.Use)
	suite.Equal("RS256", key.Alg)
	suite.Equal(suite.jwtService.GetKid(), key.Kid)

	modulus, err := base64.RawURLEncoding.DecodeString(key.N)
	suite.Require().NoError(err)
	suite.Equal(suite.jwtService.GetPublicKey().N.Bytes(), modulus)
}
