package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// JWTManager signs and validates session tokens
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
}

var defaultManager *JWTManager

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	m := &JWTManager{Secret: []byte(secret), TTL: ttl}
	defaultManager = m
	return m
}

// DefaultJWT returns the last constructed JWTManager (used for auto-wiring routes)
func DefaultJWT() *JWTManager { return defaultManager }

// Claims binds a session token to a user id. The registered ID (jti) identifies
// the session for revocation.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Generate issues a token for userID and returns it with its claims.
func (m *JWTManager) Generate(userID string) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	if err != nil {
		return "", nil, err
	}
	return s, claims, nil
}

// Parse validates tokenStr and returns its claims.
func (m *JWTManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, err
	}
	if !tkn.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
