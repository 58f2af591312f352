// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/internal/utils"
	"github.com/MKhiriev/go-life-keeper/models"
)

// authService signs and verifies HS256 tokens. All state is read-only after
// construction.
type authService struct {
	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match are rejected.
	tokenIssuer string

	tokenDuration time.Duration

	logger *logger.Logger
}

func NewAuthService(signKey, issuer string, duration time.Duration, logger *logger.Logger) AuthService {
	return &authService{
		tokenSignKey:  signKey,
		tokenIssuer:   issuer,
		tokenDuration: duration,
		logger:        logger,
	}
}

// CreateToken issues a signed JWT whose subject is userID.
func (a *authService) CreateToken(ctx context.Context, userID string) (models.Token, error) {
	if strings.TrimSpace(userID) == "" {
		return models.Token{}, ErrValidationNoUserID
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, userID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.CreateToken").Msg("error generating token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates signature, issuer and expiry. Any failure is
// normalised to [ErrTokenIsExpiredOrInvalid].
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
