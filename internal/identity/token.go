// Copyright 2026 The Brandgate Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package identity

import (
	"fmt"
	"time"

	"github.com/brandgate/brandgate/internal/access"
	"github.com/brandgate/brandgate/internal/account"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims embedded at issuance. The role set is a
// snapshot of the GLOBAL roles at login time only; brand grants are
// deliberately absent. Anything that depends on per-brand assignments must
// re-load the live account record and not trust this snapshot.
type Claims struct {
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
	Admin bool     `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer issues and verifies the bearer tokens used by the identity
// resolver.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	lifetime time.Duration
}

// NewTokenIssuer creates a token issuer. The secret must be non-empty.
func NewTokenIssuer(secret []byte, issuer string, lifetime time.Duration) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("token secret is required")
	}
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &TokenIssuer{secret: secret, issuer: issuer, lifetime: lifetime}, nil
}

// Issue signs a token for the account.
func (t *TokenIssuer) Issue(a *account.Account) (string, error) {
	now := time.Now()
	roles := make([]string, len(a.Roles))
	for i, r := range a.Roles {
		roles[i] = r.String()
	}

	claims := Claims{
		Name:  a.Name,
		Roles: roles,
		Admin: a.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a signed token. An invalid, expired, or
// foreign-issued token yields an error and no claims.
func (t *TokenIssuer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return t.secret, nil
		},
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}

// SnapshotRoles converts the claim role strings back to the closed Role type,
// dropping anything unparseable. Callers should prefer the live account
// record; this exists for logging and for endpoints that only need the
// login-time snapshot.
func (c *Claims) SnapshotRoles() []access.Role {
	roles := make([]access.Role, 0, len(c.Roles))
	for _, s := range c.Roles {
		if r, err := access.ParseRole(s); err == nil {
			roles = append(roles, r)
		}
	}
	return roles
}
