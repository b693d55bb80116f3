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

// Package config provides structures and functions for loading and managing server configurations.
package config

import (
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type     string `yaml:"type"`
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
	Options  string `yaml:"options"`
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	Identity DataSource `yaml:"identity"`
}

// SessionStoreConfig holds the connection details of the shared TTL store.
type SessionStoreConfig struct {
	Address        string `yaml:"address"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	DB             int    `yaml:"db"`
	Namespace      string `yaml:"namespace"`
	DialTimeoutMS  int    `yaml:"dial_timeout_ms"`
	ReadTimeoutMS  int    `yaml:"read_timeout_ms"`
	WriteTimeoutMS int    `yaml:"write_timeout_ms"`
}

// JWTConfig holds the JWT configuration details.
type JWTConfig struct {
	Issuer         string `yaml:"issuer"`
	ValidityPeriod int64  `yaml:"validity_period"`
	PrivateKeyFile string `yaml:"private_key_file"`
}

// RefreshTokenConfig holds the refresh token configuration details.
type RefreshTokenConfig struct {
	ValidityPeriod int64 `yaml:"validity_period"`
}

// LockoutConfig holds the login failure lockout configuration details.
type LockoutConfig struct {
	Threshold     int64 `yaml:"threshold"`
	WindowSeconds int64 `yaml:"window_seconds"`
}

// OAuthConfig holds the OAuth configuration details.
type OAuthConfig struct {
	JWT          JWTConfig          `yaml:"jwt"`
	RefreshToken RefreshTokenConfig `yaml:"refresh_token"`
	Lockout      LockoutConfig      `yaml:"lockout"`
}

// OAuthClientConfig holds the registration details of a single OAuth client.
type OAuthClientConfig struct {
	ClientID              string   `yaml:"client_id"`
	HashedClientSecret    string   `yaml:"hashed_client_secret"`
	TokenAuthMethods      []string `yaml:"token_auth_methods"`
	GrantTypes            []string `yaml:"grant_types"`
	RedirectURIs          []string `yaml:"redirect_uris"`
	Scopes                []string `yaml:"scopes"`
	TokenFormat           string   `yaml:"token_format"`
	AccessTokenValidity   int64    `yaml:"access_token_validity"`
	RefreshTokenValidity  int64    `yaml:"refresh_token_validity"`
	ReuseRefreshTokens    bool     `yaml:"reuse_refresh_tokens"`
	SigningAlgorithm      string   `yaml:"signing_algorithm"`
	AssertionPublicKeyPEM string   `yaml:"assertion_public_key"`
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server       ServerConfig        `yaml:"server"`
	Database     DatabaseConfig      `yaml:"database"`
	SessionStore SessionStoreConfig  `yaml:"session_store"`
	OAuth        OAuthConfig         `yaml:"oauth"`
	Clients      []OAuthClientConfig `yaml:"clients"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
