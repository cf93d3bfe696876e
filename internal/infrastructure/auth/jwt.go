package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	appidentity "github.com/wims/backend/internal/application/identity"
	"github.com/wims/backend/internal/infrastructure/config"
)

// jwtClaims are the registered plus custom claims carried by a token
type jwtClaims struct {
	TenantID string `json:"tid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTIssuer issues and parses HMAC signed access tokens
type JWTIssuer struct {
	secret []byte
	issuer string
	expiry time.Duration
}

// NewJWTIssuer creates a new JWTIssuer from configuration
func NewJWTIssuer(cfg *config.JWTConfig) *JWTIssuer {
	return &JWTIssuer{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		expiry: time.Duration(cfg.ExpiryMinutes) * time.Minute,
	}
}

// Issue creates a signed token for the user
func (i *JWTIssuer) Issue(userID, tenantID uuid.UUID, username string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(i.expiry)

	claims := jwtClaims{
		TenantID: tenantID.String(),
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse validates a token and returns its claims
func (i *JWTIssuer) Parse(tokenString string) (*appidentity.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithIssuer(i.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.New("invalid token subject")
	}
	tenantID, err := uuid.Parse(claims.TenantID)
	if err != nil {
		return nil, errors.New("invalid token tenant")
	}

	return &appidentity.TokenClaims{
		UserID:   userID,
		TenantID: tenantID,
		Username: claims.Username,
		TokenID:  claims.ID,
		ExpireAt: claims.ExpiresAt.Time,
	}, nil
}

var _ appidentity.TokenIssuer = (*JWTIssuer)(nil)
