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

// Package jwt provides functionality for generating and verifying JWT tokens.
package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/signet-id/signet/internal/system/config"
)

const defaultTokenValidity = 3600 // default validity period of 1 hour

const ephemeralKeyBits = 2048

// JWTServiceInterface defines the interface for JWT operations.
type JWTServiceInterface interface {
	// GetPublicKey returns the RSA public key corresponding to the signing key.
	GetPublicKey() *rsa.PublicKey
	// GetKid returns the key id advertised in signed token headers.
	GetKid() string
	// GenerateJWT generates a signed JWT for the given subject and audience.
	GenerateJWT(sub, aud string, validityPeriod int64, claims map[string]interface{}) (string, int64, error)
	// VerifyJWT verifies a JWT against the service signing key and returns its claims.
	VerifyJWT(token string) (map[string]interface{}, error)
}

// JWTService implements the JWTServiceInterface for generating and verifying JWT tokens.
type JWTService struct {
	issuer     string
	privateKey *rsa.PrivateKey
	kid        string
}

// NewJWTService creates a JWT service from the given configuration. When no
// private key file is configured an ephemeral key pair is generated, which
// invalidates all self-contained tokens across restarts.
func NewJWTService(signetHome string, cfg config.JWTConfig) (*JWTService, error) {
	var privateKey *rsa.PrivateKey
	var err error

	if cfg.PrivateKeyFile != "" {
		privateKey, err = loadPrivateKey(filepath.Clean(path.Join(signetHome, cfg.PrivateKeyFile)))
	} else {
		privateKey, err = rsa.GenerateKey(rand.Reader, ephemeralKeyBits)
	}
	if err != nil {
		return nil, err
	}

	kid, err := computeKid(&privateKey.PublicKey)
	if err != nil {
		return nil, err
	}

	return &JWTService{
		issuer:     cfg.Issuer,
		privateKey: privateKey,
		kid:        kid,
	}, nil
}

// GetPublicKey returns the RSA public key corresponding to the signing key.
func (js *JWTService) GetPublicKey() *rsa.PublicKey {
	return &js.privateKey.PublicKey
}

// GetKid returns the key id advertised in signed token headers.
func (js *JWTService) GetKid() string {
	return js.kid
}

// GenerateJWT generates a signed JWT for the given subject and audience.
// It returns the compact token and the issued-at time in epoch seconds.
func (js *JWTService) GenerateJWT(sub, aud string, validityPeriod int64,
	claims map[string]interface{}) (string, int64, error) {
	if validityPeriod == 0 {
		validityPeriod = defaultTokenValidity
	}

	iat := time.Now()
	payload := gojwt.MapClaims{
		"sub": sub,
		"iss": js.issuer,
		"aud": aud,
		"exp": iat.Add(time.Duration(validityPeriod) * time.Second).Unix(),
		"iat": iat.Unix(),
		"nbf": iat.Unix(),
		"jti": uuid.NewString(),
	}
	for key, value := range claims {
		payload[key] = value
	}

	token := gojwt.NewWithClaims(gojwt.SigningMethodRS256, payload)
	token.Header["kid"] = js.kid

	signed, err := token.SignedString(js.privateKey)
	if err != nil {
		return "", 0, err
	}
	return signed, iat.Unix(), nil
}

// VerifyJWT verifies a JWT against the service signing key and returns its claims.
func (js *JWTService) VerifyJWT(token string) (map[string]interface{}, error) {
	return VerifyJWTWithKey(token, js.GetPublicKey())
}

// VerifyJWTWithKey verifies an RS256 signed JWT against the given public key
// and returns its claims. Expiry and not-before are enforced.
func VerifyJWTWithKey(token string, publicKey *rsa.PublicKey) (map[string]interface{}, error) {
	if publicKey == nil {
		return nil, errors.New("no public key available for verification")
	}

	parser := gojwt.NewParser(gojwt.WithValidMethods([]string{gojwt.SigningMethodRS256.Alg()}))
	parsed, err := parser.Parse(token, func(t *gojwt.Token) (interface{}, error) {
		return publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}

	claims, ok := parsed.Claims.(gojwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type in token")
	}
	return claims, nil
}

// DecodeJWTPayload decodes the payload of a JWT without verifying its signature.
func DecodeJWTPayload(token string) (map[string]interface{}, error) {
	claims := gojwt.MapClaims{}
	parser := gojwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token payload: %w", err)
	}
	return claims, nil
}

// ParseRSAPublicKeyFromPEM parses a PEM encoded RSA public key or certificate.
func ParseRSAPublicKeyFromPEM(pemData string) (*rsa.PublicKey, error) {
	key, err := gojwt.ParseRSAPublicKeyFromPEM([]byte(pemData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
	}
	return key, nil
}

func loadPrivateKey(keyFilePath string) (*rsa.PrivateKey, error) {
	keyData, err := os.ReadFile(keyFilePath)
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode(keyData)
	if block == nil {
		return nil, errors.New("failed to decode PEM block containing private key")
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("not an RSA private key")
		}
		return rsaKey, nil
	default:
		return nil, errors.New("unsupported private key type: " + block.Type)
	}
}

// computeKid derives a stable key id from the public key material.
func computeKid(publicKey *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(der)
	return base64.RawURLEncoding.EncodeToString(sum[:8]), nil
}
