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

// Package redis provides the client for the shared TTL key-value store.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/signet-id/signet/internal/system/config"
)

// Default timeouts for store operations. Every dependency call on the
// authentication path must stay bounded.
const (
	DefaultDialTimeout  = 2 * time.Second
	DefaultReadTimeout  = 2 * time.Second
	DefaultWriteTimeout = 2 * time.Second
)

// NewClient creates a client for the shared TTL store from the session store
// configuration and verifies connectivity before returning it.
func NewClient(ctx context.Context, cfg config.SessionStoreConfig) (goredis.UniversalClient, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Address,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeoutOrDefault(cfg.DialTimeoutMS, DefaultDialTimeout),
		ReadTimeout:  timeoutOrDefault(cfg.ReadTimeoutMS, DefaultReadTimeout),
		WriteTimeout: timeoutOrDefault(cfg.WriteTimeoutMS, DefaultWriteTimeout),
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to the session store: %w", err)
	}

	return client, nil
}

func timeoutOrDefault(millis int, fallback time.Duration) time.Duration {
	if millis <= 0 {
		return fallback
	}
	return time.Duration(millis) * time.Millisecond
}
