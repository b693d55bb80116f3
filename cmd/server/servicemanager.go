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

package main

import (
	"context"
	"net/http"
	"time"

	appservice "github.com/signet-id/signet/internal/application/service"
	appstore "github.com/signet-id/signet/internal/application/store"
	"github.com/signet-id/signet/internal/oauth/jwt"
	authzstore "github.com/signet-id/signet/internal/oauth/oauth2/authz/store"
	"github.com/signet-id/signet/internal/oauth/oauth2/clientauth"
	"github.com/signet-id/signet/internal/oauth/oauth2/constants"
	"github.com/signet-id/signet/internal/oauth/oauth2/granthandlers"
	"github.com/signet-id/signet/internal/oauth/oauth2/introspect"
	"github.com/signet-id/signet/internal/oauth/oauth2/jwks"
	"github.com/signet-id/signet/internal/oauth/oauth2/lockout"
	"github.com/signet-id/signet/internal/oauth/oauth2/revoke"
	"github.com/signet-id/signet/internal/oauth/oauth2/token"
	"github.com/signet-id/signet/internal/oauth/oauth2/tokengen"
	"github.com/signet-id/signet/internal/system/config"
	"github.com/signet-id/signet/internal/system/database"
	"github.com/signet-id/signet/internal/system/log"
	"github.com/signet-id/signet/internal/system/redis"
	userservice "github.com/signet-id/signet/internal/user/service"
	userstore "github.com/signet-id/signet/internal/user/store"
)

// registerServices builds the service graph and registers all endpoints with
// the multiplexer. The returned closer releases the backing connections.
func registerServices(mux *http.ServeMux, signetHome string, cfg *config.Config) (func(), error) {
	logger := log.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	redisClient, err := redis.NewClient(ctx, cfg.SessionStore)
	if err != nil {
		return nil, err
	}

	dbClient, err := database.NewIdentityDBClient(cfg.Database.Identity)
	if err != nil {
		_ = redisClient.Close()
		return nil, err
	}

	jwtService, err := jwt.NewJWTService(signetHome, cfg.OAuth.JWT)
	if err != nil {
		_ = redisClient.Close()
		_ = dbClient.Close()
		return nil, err
	}

	userService := userservice.NewUserService(userstore.NewUserStore(dbClient))
	applicationService := appservice.NewApplicationService(appstore.NewClientStore(cfg.Clients))

	namespace := cfg.SessionStore.Namespace
	guard := lockout.NewFailureGuard(redisClient, namespace, cfg.OAuth.Lockout)
	authorizationStore := authzstore.NewAuthorizationStore(redisClient, namespace)

	generator := tokengen.NewTokenGenerator(cfg.OAuth.RefreshToken.ValidityPeriod,
		tokengen.NewSelfContainedTokenGenerator(jwtService, cfg.OAuth.JWT.ValidityPeriod),
		tokengen.NewReferenceTokenGenerator(cfg.OAuth.JWT.ValidityPeriod),
	)

	provider := granthandlers.NewGrantHandlerProvider()
	provider.Register(constants.GrantTypePassword,
		granthandlers.NewPasswordGrantHandler(userService, guard, generator, authorizationStore))
	provider.Register(constants.GrantTypeClientCredentials,
		granthandlers.NewClientCredentialsGrantHandler(generator, authorizationStore))
	provider.Register(constants.GrantTypeRefreshToken,
		granthandlers.NewRefreshTokenGrantHandler(generator, authorizationStore))

	// Client assertions must be addressed to this server's token endpoint.
	expectedAudience := cfg.OAuth.JWT.Issuer + constants.OAuth2TokenEndpoint
	authenticator := clientauth.NewClientAuthenticator(applicationService, expectedAudience)

	tokenHandler := token.NewTokenHandler(authenticator, provider)
	introspectionHandler := introspect.NewIntrospectionHandler(
		introspect.NewIntrospectionService(authorizationStore))
	revocationHandler := revoke.NewRevocationHandler(authorizationStore)
	jwksHandler := jwks.NewJWKSHandler(jwtService)

	mux.HandleFunc("POST "+constants.OAuth2TokenEndpoint, tokenHandler.HandleTokenRequest)
	mux.HandleFunc("POST "+constants.OAuth2IntrospectionEndpoint,
		introspectionHandler.HandleIntrospectRequest)
	mux.HandleFunc("DELETE "+constants.OAuth2RevokeEndpoint, revocationHandler.HandleRevokeRequest)
	mux.HandleFunc("GET "+constants.OAuth2JWKSEndpoint, jwksHandler.HandleJWKSRequest)
	mux.HandleFunc("GET /health/liveness", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	closer := func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("Failed to close session store client", log.Error(err))
		}
		if err := dbClient.Close(); err != nil {
			logger.Error("Failed to close identity database client", log.Error(err))
		}
	}
	return closer, nil
}
