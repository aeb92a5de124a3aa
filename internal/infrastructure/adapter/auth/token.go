package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// Claims are the session claims the core consumes
type Claims struct {
	UserID uint64      `json:"user_id"`
	Role   entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// Principal returns the authenticated caller
func (c *Claims) Principal() entity.Principal {
	return entity.Principal{UserID: c.UserID, Role: c.Role}
}

// TokenService signs and verifies session tokens
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a token service for the shared secret
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &TokenService{secret: []byte(secret), issuer: issuer}, nil
}

// Mint issues a token for the principal; the session layer normally does this
func (s *TokenService) Mint(p entity.Principal, now time.Time, ttl time.Duration) (string, error) {
	if p.UserID == 0 {
		return "", errors.New("user id is required")
	}
	if !p.Role.IsValid() {
		return "", fmt.Errorf("invalid role %q", p.Role)
	}

	claims := Claims{
		UserID: p.UserID,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   entity.RelatedIDOf(p.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// Parse validates the token and returns its claims
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwtSigningMethod.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwtSigningMethod {
			return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	if claims.UserID == 0 {
		return nil, errors.New("token carries no user id")
	}
	if claims.Role == "" {
		claims.Role = entity.RoleUser
	}
	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("invalid role %q", claims.Role)
	}
	return claims, nil
}
