package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	vo "stockdesk/internal/domain/user/valueobjects"
	"stockdesk/internal/shared/biztime"
)

// SessionClaims is the signed cookie payload. The session row stays authoritative;
// the token only proves the cookie was issued by this server.
type SessionClaims struct {
	SessionID string  `json:"sid"`
	UserID    uint    `json:"uid"`
	Role      vo.Role `json:"role"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    biztime.Clock
}

func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    biztime.NowUTC,
	}
}

// TTL is the lifetime given to new session tokens.
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

func (s *JWTService) Generate(sessionID string, userID uint, role vo.Role, expiresAt time.Time) (string, error) {
	now := s.now()
	claims := &SessionClaims{
		SessionID: sessionID,
		UserID:    userID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// SessionID verifies tokenString and returns the session it references.
func (s *JWTService) SessionID(tokenString string) (string, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return "", err
	}
	return claims.SessionID, nil
}
