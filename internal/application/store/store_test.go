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

import (
	"testing"

	"github.com/stretchr/testify/suite"

	appmodel "github.com/signet-id/signet/internal/application/model"
	"github.com/signet-id/signet/internal/system/config"
)

type ClientStoreTestSuite struct {
	suite.Suite
	store *ClientStore
}

func TestClientStoreSuite(t *testing.T) {
	suite.Run(t, new(ClientStoreTestSuite))
}

func (suite *ClientStoreTestSuite) SetupTest() {
	suite.store = NewClientStore([]config.OAuthClientConfig{
		{
			ClientID:            "test-client",
			HashedClientSecret:  "hashed-secret",
			TokenAuthMethods:    []string{"client_secret_basic", "client_secret_post"},
			GrantTypes:          []string{"client_credentials"},
			Scopes:              []string{"read", "write"},
			TokenFormat:         "jwt",
			AccessTokenValidity: 3600,
		},
		{
			ClientID:         "public-client",
			TokenAuthMethods: []string{"none"},
			GrantTypes:       []string{"password"},
		},
	})
}

func (suite *ClientStoreTestSuite) TestGetOAuthClient() {
	client, err := suite.store.GetOAuthClient("test-client")
	suite.Require().NoError(err)
	suite.Equal("test-client", client.ClientID)
	suite.Equal("hashed-secret", client.HashedClientSecret)
	suite.Equal(appmodel.TokenFormatJWT, client.TokenFormat)
	suite.Equal(int64(3600), client.AccessTokenValidity)
	suite.True(client.IsAllowedGrantType("client_credentials"))
	suite.False(client.IsAllowedGrantType("password"))
	suite.True(client.IsAllowedAuthMethod(appmodel.TokenAuthMethodClientSecretBasic))
	suite.False(client.IsAllowedAuthMethod(appmodel.TokenAuthMethodNone))
	suite.True(client.IsAllowedScope("read"))
	suite.False(client.IsAllowedScope("admin"))
	suite.False(client.IsPublicClient())
}

func (suite *ClientStoreTestSuite) TestGetOAuthClientDefaultsToReferenceFormat() {
	client, err := suite.store.GetOAuthClient("public-client")
	suite.Require().NoError(err)
	suite.Equal(appmodel.TokenFormatReference, client.TokenFormat)
	suite.True(client.IsPublicClient())
}

func (suite *ClientStoreTestSuite) TestGetOAuthClientNotFound() {
	client, err := suite.store.GetOAuthClient("unknown-client")
	suite.Nil(client)
	suite.ErrorIs(err, ErrClientNotFound)
}

func (suite *ClientStoreTestSuite) TestGetOAuthClientReturnsCopy() {
	client, err := suite.store.GetOAuthClient("test-client")
	suite.Require().NoError(err)

	client.ClientID = "mutated"

	again, err := suite.store.GetOAuthClient("test-client")
	suite.Require().NoError(err)
	suite.Equal("test-client", again.ClientID)
}
