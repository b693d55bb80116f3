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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	appmodel "github.com/signet-id/signet/internal/application/model"
	"github.com/signet-id/signet/internal/oauth/oauth2/constants"
	"github.com/signet-id/signet/internal/oauth/oauth2/lockout"
	"github.com/signet-id/signet/internal/oauth/oauth2/model"
	"github.com/signet-id/signet/internal/oauth/oauth2/tokengen"
	"github.com/signet-id/signet/internal/system/error/serviceerror"
	userconstants "github.com/signet-id/signet/internal/user/constants"
	usermodel "github.com/signet-id/signet/internal/user/model"
	"github.com/signet-id/signet/tests/mocks/authzstoremock"
	"github.com/signet-id/signet/tests/mocks/lockoutmock"
	"github.com/signet-id/signet/tests/mocks/tokengenmock"
	"github.com/signet-id/signet/tests/mocks/userservicemock"
)

type PasswordGrantTestSuite struct {
	suite.Suite
	userMock  *userservicemock.UserServiceMock
	guardMock *lockoutmock.FailureGuardMock
	genMock   *tokengenmock.TokenGeneratorMock
	storeMock *authzstoremock.AuthorizationStoreMock
	handler   GrantHandlerInterface
	ctx       context.Context
}

func TestPasswordGrantSuite(t *testing.T) {
	suite.Run(t, new(PasswordGrantTestSuite))
}

func (suite *PasswordGrantTestSuite) SetupTest() {
	suite.userMock = &userservicemock.UserServiceMock{
		AuthenticateUserFunc: func(username, password string) (*usermodel.User, *serviceerror.ServiceError) {
			suite.FailNow("unexpected AuthenticateUser call")
			return nil, nil
		},
	}
	suite.guardMock = &lockoutmock.FailureGuardMock{}
	suite.genMock = &tokengenmock.TokenGeneratorMock{
		GenerateAccessTokenFunc: func(tokenCtx *tokengen.Context) (*model.AccessTokenData, error) {
			now := time.Now()
			return &model.AccessTokenData{
				SubToken: model.SubToken{
					Value:     "issued-access-token",
					IssuedAt:  now,
					ExpiresAt: now.Add(1800 * time.Second),
				},
				Scopes: tokenCtx.Scopes,
			}, nil
		},
		GenerateRefreshTokenFunc: func(tokenCtx *tokengen.Context) (*model.SubToken, error) {
			now := time.Now()
			return &model.SubToken{
				Value:     "issued-refresh-token",
				IssuedAt:  now,
				ExpiresAt: now.Add(86400 * time.Second),
			}, nil
		},
	}
	suite.storeMock = &authzstoremock.AuthorizationStoreMock{}
	suite.handler = NewPasswordGrantHandler(suite.userMock, suite.guardMock, suite.genMock, suite.storeMock)
	suite.ctx = context.Background()
}

func passwordClient() *appmodel.OAuthClient {
	return &appmodel.OAuthClient{
		ClientID: "app1",
		TokenAuthMethods: []appmodel.TokenAuthMethod{
			appmodel.TokenAuthMethodClientSecretBasic,
		},
		GrantTypes:          []string{constants.GrantTypePassword, constants.GrantTypeRefreshToken},
		Scopes:              []string{"read", "write"},
		AccessTokenValidity: 1800,
	}
}

func passwordRequest() *model.TokenRequest {
	return &model.TokenRequest{
		GrantType: constants.GrantTypePassword,
		ClientID:  "app1",
		Username:  "alice",
		Password:  "Passw0rd!",
		Scope:     "read",
	}
}

func (suite *PasswordGrantTestSuite) authenticateAs(user *usermodel.User) {
	suite.userMock.AuthenticateUserFunc = func(username, password string) (
		*usermodel.User, *serviceerror.ServiceError) {
		return user, nil
	}
}

func (suite *PasswordGrantTestSuite) failAuthenticationWith(svcErr *serviceerror.ServiceError) {
	suite.userMock.AuthenticateUserFunc = func(username, password string) (
		*usermodel.User, *serviceerror.ServiceError) {
		return nil, svcErr
	}
}

func aliceUser() *usermodel.User {
	return &usermodel.User{
		UserID:      "user-123",
		Username:    "alice",
		Authorities: []string{"ROLE_USER"},
		Enabled:     true,
	}
}

func (suite *PasswordGrantTestSuite) TestValidateGrant() {
	suite.Nil(suite.handler.ValidateGrant(passwordRequest(), passwordClient()))
}

func (suite *PasswordGrantTestSuite) TestValidateGrantWrongGrantType() {
	request := passwordRequest()
	request.GrantType = constants.GrantTypeClientCredentials
	errResp := suite.handler.ValidateGrant(request, passwordClient())
	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorUnsupportedGrantType, errResp.Error)
}

func (suite *PasswordGrantTestSuite) TestValidateGrantMissingCredentials() {
	request := passwordRequest()
	request.Password = ""
	errResp := suite.handler.ValidateGrant(request, passwordClient())
	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorInvalidRequest, errResp.Error)
}

func (suite *PasswordGrantTestSuite) TestSuccessfulGrant() {
	suite.authenticateAs(aliceUser())

	var saved *model.Authorization
	suite.storeMock.SaveFunc = func(ctx context.Context, auth *model.Authorization) error {
		saved = auth
		return nil
	}

	response, errResp := suite.handler.HandleGrant(suite.ctx, passwordRequest(), passwordClient())
	suite.Require().Nil(errResp)
	suite.Equal("issued-access-token", response.AccessToken.Token)
	suite.Equal(constants.TokenTypeBearer, response.AccessToken.TokenType)
	suite.Equal(int64(1800), response.AccessToken.ExpiresIn)
	suite.Require().NotNil(response.RefreshToken)
	suite.Equal("issued-refresh-token", response.RefreshToken.Token)

	suite.Require().NotNil(saved)
	suite.Equal("alice", saved.PrincipalName)
	suite.Equal("app1", saved.ClientID)
	suite.Equal(constants.GrantTypePassword, saved.GrantType)
	suite.Equal([]string{"ROLE_USER"}, saved.Authorities)
	suite.Require().NotNil(saved.User)
	suite.Equal("user-123", saved.User.UserID)

	suite.Equal(1, suite.storeMock.SaveCalls)
	suite.Equal(1, suite.guardMock.ResetCalls)
	suite.Equal(0, suite.guardMock.RecordFailureCalls)
}

func (suite *PasswordGrantTestSuite) TestPublicClientGetsNoRefreshToken() {
	suite.authenticateAs(aliceUser())

	client := passwordClient()
	client.TokenAuthMethods = []appmodel.TokenAuthMethod{appmodel.TokenAuthMethodNone}

	response, errResp := suite.handler.HandleGrant(suite.ctx, passwordRequest(), client)
	suite.Require().Nil(errResp)
	suite.Nil(response.RefreshToken)
}

func (suite *PasswordGrantTestSuite) TestNoRefreshTokenWithoutRefreshGrant() {
	suite.authenticateAs(aliceUser())

	client := passwordClient()
	client.GrantTypes = []string{constants.GrantTypePassword}

	response, errResp := suite.handler.HandleGrant(suite.ctx, passwordRequest(), client)
	suite.Require().Nil(errResp)
	suite.Nil(response.RefreshToken)
}

func (suite *PasswordGrantTestSuite) TestLockedPairRejectedBeforeDirectoryCall() {
	suite.guardMock.CheckLockoutFunc = func(ctx context.Context, clientID, username string) (
		*lockout.Status, error) {
		return &lockout.Status{Locked: true, FailureCount: 3, RetryAfterSeconds: 540}, nil
	}

	// AuthenticateUserFunc still carries the FailNow trap: the directory
	// must not be consulted for a locked pair, even with correct credentials.
	response, errResp := suite.handler.HandleGrant(suite.ctx, passwordRequest(), passwordClient())
	suite.Nil(response)
	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorTooManyAttempts, errResp.Error)
	suite.Equal(int64(540), errResp.RetryAfterSeconds)
	suite.Equal(0, suite.storeMock.SaveCalls)
}

func (suite *PasswordGrantTestSuite) TestBadCredentialsRecordFailure() {
	suite.failAuthenticationWith(&userconstants.ErrorAuthenticationFailed)

	response, errResp := suite.handler.HandleGrant(suite.ctx, passwordRequest(), passwordClient())
	suite.Nil(response)
	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorInvalidGrant, errResp.Error)
	suite.Equal("Invalid username or password", errResp.ErrorDescription)

	suite.Equal(1, suite.guardMock.RecordFailureCalls)
	suite.Equal(0, suite.guardMock.ResetCalls)
	suite.Equal(0, suite.storeMock.SaveCalls)
}

func (suite *PasswordGrantTestSuite) TestUnknownUserIndistinguishableFromBadPassword() {
	suite.failAuthenticationWith(&userconstants.ErrorUserNotFound)

	_, errResp := suite.handler.HandleGrant(suite.ctx, passwordRequest(), passwordClient())
	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorInvalidGrant, errResp.Error)
	suite.Equal("Invalid username or password", errResp.ErrorDescription)
	suite.Equal(1, suite.guardMock.RecordFailureCalls)
}

func (suite *PasswordGrantTestSuite) TestAccountStateFailuresHaveDistinctDescriptions() {
	cases := map[string]*serviceerror.ServiceError{
		"Account disabled":    &userconstants.ErrorAccountDisabled,
		"Account locked":      &userconstants.ErrorAccountLocked,
		"Credentials expired": &userconstants.ErrorCredentialsExpired,
	}
	for description, svcErr := range cases {
		suite.SetupTest()
		suite.failAuthenticationWith(svcErr)

		_, errResp := suite.handler.HandleGrant(suite.ctx, passwordRequest(), passwordClient())
		suite.Require().NotNil(errResp)
		suite.Equal(constants.ErrorInvalidGrant, errResp.Error)
		suite.Equal(description, errResp.ErrorDescription)
		suite.Equal(1, suite.guardMock.RecordFailureCalls)
	}
}

func (suite *PasswordGrantTestSuite) TestFailureBreachingThresholdLocksOut() {
	suite.failAuthenticationWith(&userconstants.ErrorAuthenticationFailed)
	suite.guardMock.RecordFailureFunc = func(ctx context.Context, clientID, username string) (
		*lockout.Status, error) {
		return &lockout.Status{Locked: true, FailureCount: 4, RetryAfterSeconds: 600}, nil
	}

	_, errResp := suite.handler.HandleGrant(suite.ctx, passwordRequest(), passwordClient())
	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorTooManyAttempts, errResp.Error)
	suite.Equal(int64(600), errResp.RetryAfterSeconds)
}

func (suite *PasswordGrantTestSuite) TestDirectoryOutageBypassesGuard() {
	suite.failAuthenticationWith(&userconstants.ErrorInternalServerError)

	_, errResp := suite.handler.HandleGrant(suite.ctx, passwordRequest(), passwordClient())
	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorServerError, errResp.Error)
	suite.Equal(0, suite.guardMock.RecordFailureCalls)
}

func (suite *PasswordGrantTestSuite) TestGuardOutageFailsClosed() {
	suite.guardMock.CheckLockoutFunc = func(ctx context.Context, clientID, username string) (
		*lockout.Status, error) {
		return nil, errors.New("store unavailable")
	}

	response, errResp := suite.handler.HandleGrant(suite.ctx, passwordRequest(), passwordClient())
	suite.Nil(response)
	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorServerError, errResp.Error)
}

func (suite *PasswordGrantTestSuite) TestResetOutageFailsClosed() {
	suite.authenticateAs(aliceUser())
	suite.guardMock.ResetFunc = func(ctx context.Context, clientID, username string) error {
		return errors.New("store unavailable")
	}

	_, errResp := suite.handler.HandleGrant(suite.ctx, passwordRequest(), passwordClient())
	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorServerError, errResp.Error)
	suite.Equal(0, suite.storeMock.SaveCalls)
}

func (suite *PasswordGrantTestSuite) TestInvalidScopeRejected() {
	suite.authenticateAs(aliceUser())

	request := passwordRequest()
	request.Scope = "admin"
	_, errResp := suite.handler.HandleGrant(suite.ctx, request, passwordClient())
	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorInvalidScope, errResp.Error)
	suite.Equal(0, suite.storeMock.SaveCalls)
}

func (suite *PasswordGrantTestSuite) TestTokenGenerationFailureIsServerError() {
	suite.authenticateAs(aliceUser())
	suite.genMock.GenerateAccessTokenFunc = func(tokenCtx *tokengen.Context) (
		*model.AccessTokenData, error) {
		return nil, tokengen.ErrNoGenerator
	}

	_, errResp := suite.handler.HandleGrant(suite.ctx, passwordRequest(), passwordClient())
	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorServerError, errResp.Error)
}

func (suite *PasswordGrantTestSuite) TestStoreSaveFailureIsServerError() {
	suite.authenticateAs(aliceUser())
	suite.storeMock.SaveFunc = func(ctx context.Context, auth *model.Authorization) error {
		return errors.New("store unavailable")
	}

	_, errResp := suite.handler.HandleGrant(suite.ctx, passwordRequest(), passwordClient())
	suite.Require().NotNil(errResp)
	suite.Equal(constants.ErrorServerError, errResp.Error)
}
