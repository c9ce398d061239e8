// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/collabscout/internal/config"
)

// sessionIssuer is the iss claim of every session token.
const sessionIssuer = "collabscout"

// ErrSessionDisabled is returned when no session secret is configured.
var ErrSessionDisabled = errors.New("session secret not configured")

// Claims are the session token claims. The subject carries the fid as well,
// so standard JWT tooling can read it.
type Claims struct {
	FID int64 `json:"fid"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies HS256 session tokens that identify a
// creator by fid. It is safe for concurrent use.
type SessionManager struct {
	secret  []byte
	timeout time.Duration
	now     func() time.Time
}

// NewSessionManager creates a manager from the security configuration.
//
// Returns ErrSessionDisabled when the secret is empty; callers then serve
// anonymous requests only.
//
// Example:
//
//	sessions, err := auth.NewSessionManager(&cfg.Security)
//	if errors.Is(err, auth.ErrSessionDisabled) {
//	    // explicit fid parameters only
//	}
func NewSessionManager(cfg *config.SecurityConfig) (*SessionManager, error) {
	if cfg.SessionSecret == "" {
		return nil, ErrSessionDisabled
	}
	timeout := cfg.SessionTimeout
	if timeout <= 0 {
		timeout = time.Hour
	}
	return &SessionManager{
		secret:  []byte(cfg.SessionSecret),
		timeout: timeout,
		now:     time.Now,
	}, nil
}

// IssueToken signs a session token for fid, valid for the session timeout.
func (m *SessionManager) IssueToken(fid int64) (string, error) {
	if fid <= 0 {
		return "", fmt.Errorf("invalid fid %d", fid)
	}

	now := m.now()
	claims := &Claims{
		FID: fid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   strconv.FormatInt(fid, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.timeout)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature, algorithm, issuer and time claims and
// returns the claims of a valid token.
func (m *SessionManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.FID <= 0 {
		return nil, fmt.Errorf("invalid fid claim %d", claims.FID)
	}
	return claims, nil
}
