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

package tokengen

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	appmodel "github.com/signet-id/signet/internal/application/model"
	"github.com/signet-id/signet/internal/oauth/jwt"
	"github.com/signet-id/signet/internal/oauth/oauth2/constants"
	"github.com/signet-id/signet/internal/system/config"
	usermodel "github.com/signet-id/signet/internal/user/model"
)

type TokenGeneratorTestSuite struct {
	suite.Suite
	jwtService *jwt.JWTService
	generator  *TokenGenerator
}

func TestTokenGeneratorSuite(t *testing.T) {
	suite.Run(t, new(TokenGeneratorTestSuite))
}

func (suite *TokenGeneratorTestSuite) SetupSuite() {
	jwtService, err := jwt.NewJWTService("", config.JWTConfig{Issuer: "https://signet.test"})
	suite.Require().NoError(err)
	suite.jwtService = jwtService
}

func (suite *TokenGeneratorTestSuite) SetupTest() {
	suite.generator = NewTokenGenerator(86400,
		NewReferenceTokenGenerator(3600),
		NewSelfContainedTokenGenerator(suite.jwtService, 3600),
	)
}

func referenceContext() *Context {
	return &Context{
		Client: &appmodel.OAuthClient{
			ClientID:            "app1",
			TokenFormat:         appmodel.TokenFormatReference,
			AccessTokenValidity: 1800,
		},
		GrantType: constants.GrantTypePassword,
		Subject:   "alice",
		Scopes:    []string{"read", "write"},
		User:      &usermodel.User{UserID: "user-123", Username: "alice"},
	}
}

func jwtContext() *Context {
	ctx := referenceContext()
	ctx.Client.TokenFormat = appmodel.TokenFormatJWT
	return ctx
}

func (suite *TokenGeneratorTestSuite) TestReferenceTokenGeneration() {
	token, err := suite.generator.GenerateAccessToken(referenceContext())
	suite.Require().NoError(err)
	suite.NotEmpty(token.Value)
	suite.InDelta(1800, token.RemainingTTL(time.Now()).Seconds(), 2)
	suite.Equal([]string{"read", "write"}, token.Scopes)
	suite.Equal("user-123", token.Claims["user_id"])
	suite.Equal("app1", token.Claims["client_id"])
	suite.Equal(ProductClaimValue, token.Claims[ProductClaim])

	// Opaque tokens carry no verifiable structure.
	suite.NotContains(token.Value, ".")
	_, err = suite.jwtService.VerifyJWT(token.Value)
	suite.Error(err)
}

func (suite *TokenGeneratorTestSuite) TestReferenceTokensAreUnique() {
	first, err := suite.generator.GenerateAccessToken(referenceContext())
	suite.Require().NoError(err)
	second, err := suite.generator.GenerateAccessToken(referenceContext())
	suite.Require().NoError(err)
	suite.NotEqual(first.Value, second.Value)
}

func (suite *TokenGeneratorTestSuite) TestSelfContainedTokenGeneration() {
	token, err := suite.generator.GenerateAccessToken(jwtContext())
	suite.Require().NoError(err)
	suite.Equal(3, len(strings.Split(token.Value, ".")))

	claims, err := suite.jwtService.VerifyJWT(token.Value)
	suite.Require().NoError(err)
	suite.Equal("alice", claims["sub"])
	suite.Equal("app1", claims["aud"])
	suite.Equal("app1", claims["client_id"])
	suite.Equal("user-123", claims["user_id"])
	suite.Equal("read write", claims["scope"])
	suite.Equal(ProductClaimValue, claims[ProductClaim])
	suite.NotEmpty(claims["jti"])
}

func (suite *TokenGeneratorTestSuite) TestClientCredentialsTokenCarriesNoUserClaims() {
	ctx := jwtContext()
	ctx.GrantType = constants.GrantTypeClientCredentials
	ctx.Subject = "app1"
	ctx.User = nil

	token, err := suite.generator.GenerateAccessToken(ctx)
	suite.Require().NoError(err)

	claims, err := suite.jwtService.VerifyJWT(token.Value)
	suite.Require().NoError(err)
	suite.Equal("app1", claims["sub"])
	suite.NotContains(claims, "user_id")
}

func (suite *TokenGeneratorTestSuite) TestClientCredentialsGrantNeverLeaksUserClaims() {
	// Even with a user present in the context, the grant type decides.
	ctx := jwtContext()
	ctx.GrantType = constants.GrantTypeClientCredentials

	token, err := suite.generator.GenerateAccessToken(ctx)
	suite.Require().NoError(err)
	suite.NotContains(token.Claims, "user_id")
}

func (suite *TokenGeneratorTestSuite) TestEmptyChainIsServerError() {
	generator := NewTokenGenerator(86400)

	token, err := generator.GenerateAccessToken(referenceContext())
	suite.Nil(token)
	suite.ErrorIs(err, ErrNoGenerator)
}

func (suite *TokenGeneratorTestSuite) TestGenerateRefreshToken() {
	ctx := referenceContext()
	ctx.Client.RefreshTokenValidity = 7200

	token, err := suite.generator.GenerateRefreshToken(ctx)
	suite.Require().NoError(err)
	suite.NotEmpty(token.Value)
	suite.NotContains(token.Value, ".")
	suite.InDelta(7200, token.RemainingTTL(time.Now()).Seconds(), 2)
}

func (suite *TokenGeneratorTestSuite) TestGenerateRefreshTokenDefaultValidity() {
	token, err := suite.generator.GenerateRefreshToken(referenceContext())
	suite.Require().NoError(err)
	suite.InDelta(86400, token.RemainingTTL(time.Now()).Seconds(), 2)
}
