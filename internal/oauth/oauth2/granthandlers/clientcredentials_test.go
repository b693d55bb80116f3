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

package granthandlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	appmodel "github.com/signet-id/signet/internal/application/model"
	"github.com/signet-id/signet/internal/oauth/oauth2/constants"
	"github.com/signet-id/signet/internal/oauth/oauth2/model"
	"github.com/signet-id/signet/internal/oauth/oauth2/tokengen"
	"github.com/signet-id/signet/tests/mocks/authzstoremock"
	"github.com/signet-id/signet/tests/mocks/tokengenmock"
)

type ClientCredentialsGrantTestSuite struct {
	suite.Suite
	genMock   *tokengenmock.TokenGeneratorMock
	storeMock *authzstoremock.AuthorizationStoreMock
	handler   GrantHandlerInterface
	ctx       context.Context
}

func TestClientCredentialsGrantSuite(t *testing.T) {
	suite.Run(t, new(ClientCredentialsGrantTestSuite))
}

func (suite *ClientCredentialsGrantTestSuite) SetupTest() {
	suite.genMock = &tokengenmock.TokenGeneratorMock{
		GenerateAccessTokenFunc: func(tokenCtx *tokengen.Context) (*model.AccessTokenData, error) {
			now := time.Now()
			return &model.AccessTokenData{
				SubToken: model.SubToken{
					Value:     "issued-access-token",
					IssuedAt:  now,
					ExpiresAt: now.Add(time.Hour),
				},
				Scopes: tokenCtx.Scopes,
			}, nil
		},
	}
	suite.storeMock = &authzstoremock.AuthorizationStoreMock{}
	suite.handler = NewClientCredentialsGrantHandler(suite.genMock, suite.storeMock)
	suite.ctx = context.Background()
}

func machineClient() *appmodel.OAuthClient {
	return &appmodel.OAuthClient{
		ClientID: "machine-client",
		TokenAuthMethods: []appmodel.TokenAuthMethod{
			appmodel.TokenAuthMethodClientSecretBasic,
		},
		GrantTypes: []string{constants.GrantTypeClientCredentials},
		Scopes:     []string{"read"},
	}
}

func clientCredentialsRequest() *model.TokenRequest {
	return &model.TokenRequest{
		GrantType: constants.GrantTypeClientCredentials,
		ClientID:  "machine-client",
		Scope:     "read",
	}
}

func (suite *ClientCredentialsGrantTestSuite) TestValidateGrantRejectsPublicClient() {
	client := machineClient()
	client.TokenAuthMethods = []appmodel.TokenAuthMethod{appmodel.TokenAuthMethodNone}

	errResp := suite.handler.ValidateGrant(clientCredentialsRequest(), client)
	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorUnauthorizedClient, errResp.Error)
}

func (suite *ClientCredentialsGrantTestSuite) TestHandleGrant() {
	var saved *model.Authorization
	suite.storeMock.SaveFunc = func(ctx context.Context, auth *model.Authorization) error {
		saved = auth
		return nil
	}

	response, errResp := suite.handler.HandleGrant(suite.ctx, clientCredentialsRequest(), machineClient())
	suite.Require().Nil(errResp)
	suite.Equal("issued-access-token", response.AccessToken.Token)
	suite.Nil(response.RefreshToken)

	// The principal is the client itself with no user authorities.
	suite.Require().NotNil(saved)
	suite.Equal("machine-client", saved.PrincipalName)
	suite.Empty(saved.Authorities)
	suite.Nil(saved.User)
	suite.Equal(constants.GrantTypeClientCredentials, saved.GrantType)
}

func (suite *ClientCredentialsGrantTestSuite) TestHandleGrantNoUserInTokenContext() {
	suite.genMock.GenerateAccessTokenFunc = func(tokenCtx *tokengen.Context) (
		*model.AccessTokenData, error) {
		suite.Nil(tokenCtx.User)
		suite.Equal("machine-client", tokenCtx.Subject)
		now := time.Now()
		return &model.AccessTokenData{
			SubToken: model.SubToken{Value: "t", IssuedAt: now, ExpiresAt: now.Add(time.Hour)},
		}, nil
	}

	_, errResp := suite.handler.HandleGrant(suite.ctx, clientCredentialsRequest(), machineClient())
	suite.Nil(errResp)
}

func (suite *ClientCredentialsGrantTestSuite) TestHandleGrantInvalidScope() {
	request := clientCredentialsRequest()
	request.Scope = "admin"

	_, errResp := suite.handler.HandleGrant(suite.ctx, request, machineClient())
	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorInvalidScope, errResp.Error)
	suite.Equal(0, suite.storeMock.SaveCalls)
}

func (suite *ClientCredentialsGrantTestSuite) TestHandleGrantGenerationFailure() {
	suite.genMock.GenerateAccessTokenFunc = func(tokenCtx *tokengen.Context) (
		*model.AccessTokenData, error) {
		return nil, tokengen.ErrNoGenerator
	}

	_, errResp := suite.handler.HandleGrant(suite.ctx, clientCredentialsRequest(), machineClient())
	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorServerError, errResp.Error)
}
