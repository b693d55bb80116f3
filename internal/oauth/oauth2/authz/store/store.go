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

// Package store persists authorization aggregates in a TTL key-value store,
// keyed redundantly by every live sub-token value.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/signet-id/signet/internal/oauth/oauth2/model"
	"github.com/signet-id/signet/internal/system/log"
)

const loggerComponentName = "AuthorizationStore"

// DefaultStateTTL bounds the lifetime of state handle keys regardless of any
// token lifetime carried inside the aggregate.
const DefaultStateTTL = 10 * time.Minute

// lookupOrder is the kind sequence tried when no usable hint is given.
var lookupOrder = []model.TokenKind{
	model.TokenKindAccessToken,
	model.TokenKindRefreshToken,
	model.TokenKindCode,
	model.TokenKindState,
}

// AuthorizationStoreInterface defines the persistence contract for
// authorization aggregates.
type AuthorizationStoreInterface interface {
	// Save writes the aggregate under every live sub-token value it contains.
	Save(ctx context.Context, auth *model.Authorization) error
	// FindByToken retrieves the aggregate stored under the given sub-token value.
	FindByToken(ctx context.Context, kind model.TokenKind, value string) (*model.Authorization, bool, error)
	// FindByValue retrieves the aggregate for a token value of unknown kind.
	FindByValue(ctx context.Context, value string, hint model.TokenKind) (*model.Authorization, bool, error)
	// ConsumeToken atomically retrieves and deletes a single-use sub-token key.
	ConsumeToken(ctx context.Context, kind model.TokenKind, value string) (*model.Authorization, bool, error)
	// Remove deletes every key belonging to the aggregate.
	Remove(ctx context.Context, auth *model.Authorization) error
}

// keyBuilder is the single source of truth for the store key scheme.
type keyBuilder struct {
	namespace string
}

func (kb keyBuilder) key(kind model.TokenKind, value string) string {
	return fmt.Sprintf("%s:%s:%s", kb.namespace, kind, value)
}

// AuthorizationStore is the shared TTL store backed implementation of
// AuthorizationStoreInterface.
type AuthorizationStore struct {
	client goredis.UniversalClient
	keys   keyBuilder
}

// NewAuthorizationStore creates an authorization store over the given client,
// namespacing all keys with the given prefix.
func NewAuthorizationStore(client goredis.UniversalClient, namespace string) *AuthorizationStore {
	return &AuthorizationStore{
		client: client,
		keys:   keyBuilder{namespace: namespace},
	}
}

// Save writes the aggregate once per live sub-token, each key expiring with
// that sub-token's own remaining lifetime. State keys are capped at
// DefaultStateTTL. Expired sub-tokens produce no key; an aggregate whose
// sub-tokens are all expired is not persisted at all.
func (as *AuthorizationStore) Save(ctx context.Context, auth *model.Authorization) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	now := time.Now()
	refs := auth.TokenRefs(now)
	if len(refs) == 0 {
		logger.Debug("No live sub-tokens to persist", log.String("authorization_id", auth.ID))
		return nil
	}

	payload, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("failed to serialize authorization: %w", err)
	}

	pipe := as.client.TxPipeline()
	for _, ref := range refs {
		ttl := ref.ExpiresAt.Sub(now)
		if ref.Kind == model.TokenKindState && ttl > DefaultStateTTL {
			ttl = DefaultStateTTL
		}
		pipe.Set(ctx, as.keys.key(ref.Kind, ref.Value), payload, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to persist authorization: %w", err)
	}

	logger.Debug("Persisted authorization",
		log.String("authorization_id", auth.ID), log.Int("keys", len(refs)))
	return nil
}

// FindByToken retrieves the aggregate stored under the given sub-token value.
// A missing or expired key reports not found without an error.
func (as *AuthorizationStore) FindByToken(ctx context.Context, kind model.TokenKind,
	value string) (*model.Authorization, bool, error) {
	payload, err := as.client.Get(ctx, as.keys.key(kind, value)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to look up authorization: %w", err)
	}
	return as.decode(payload)
}

// FindByValue retrieves the aggregate for a token value of unknown kind. The
// hinted kind is tried first; the remaining kinds are tried in a fixed order.
func (as *AuthorizationStore) FindByValue(ctx context.Context, value string,
	hint model.TokenKind) (*model.Authorization, bool, error) {
	kinds := make([]model.TokenKind, 0, len(lookupOrder))
	if hint != "" {
		kinds = append(kinds, hint)
	}
	for _, kind := range lookupOrder {
		if kind != hint {
			kinds = append(kinds, kind)
		}
	}

	for _, kind := range kinds {
		auth, found, err := as.FindByToken(ctx, kind, value)
		if err != nil {
			return nil, false, err
		}
		if found {
			return auth, true, nil
		}
	}
	return nil, false, nil
}

// ConsumeToken atomically retrieves and deletes a single-use sub-token key.
// Under concurrent redemption of the same value exactly one caller wins.
func (as *AuthorizationStore) ConsumeToken(ctx context.Context, kind model.TokenKind,
	value string) (*model.Authorization, bool, error) {
	payload, err := as.client.GetDel(ctx, as.keys.key(kind, value)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to consume token: %w", err)
	}
	return as.decode(payload)
}

// Remove deletes every key belonging to the aggregate, including keys for
// sub-tokens that already expired. Once Remove returns without error none of
// the aggregate's token values resolve any more.
func (as *AuthorizationStore) Remove(ctx context.Context, auth *model.Authorization) error {
	keys := make([]string, 0, 4)
	for _, kind := range lookupOrder {
		if subToken := auth.SubTokenOf(kind); subToken != nil {
			keys = append(keys, as.keys.key(kind, subToken.Value))
		}
	}
	if len(keys) == 0 {
		return nil
	}

	if err := as.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to remove authorization: %w", err)
	}
	return nil
}

func (as *AuthorizationStore) decode(payload []byte) (*model.Authorization, bool, error) {
	var auth model.Authorization
	if err := json.Unmarshal(payload, &auth); err != nil {
		return nil, false, fmt.Errorf("failed to deserialize authorization: %w", err)
	}
	return &auth, true, nil
}
