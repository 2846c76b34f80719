package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const TokenType = "bearer"

type TokenConfig struct {
	SecretKey string
	Issuer    string
	// RegisteredTTL applies to users with an email, GuestTTL to guests.
	RegisteredTTL time.Duration
	GuestTTL      time.Duration
}

func DefaultTokenConfig(secret string) TokenConfig {
	return TokenConfig{
		SecretKey:     secret,
		Issuer:        "todaygenda",
		RegisteredTTL: 7 * 24 * time.Hour,
		GuestTTL:      24 * time.Hour,
	}
}

// TokenManager issues and validates HS256 access tokens whose subject
// identifies a user.
type TokenManager struct {
	config TokenConfig
	now    func() time.Time
}

func NewTokenManager(config TokenConfig) *TokenManager {
	return &TokenManager{config: config, now: time.Now}
}

func (m *TokenManager) Generate(subject string, guest bool) (string, error) {
	ttl := m.config.RegisteredTTL
	if guest {
		ttl = m.config.GuestTTL
	}

	now := m.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    m.config.Issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.SecretKey))
}

// Subject validates tokenString and returns the subject it was issued for.
func (m *TokenManager) Subject(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return []byte(m.config.SecretKey), nil
		},
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
