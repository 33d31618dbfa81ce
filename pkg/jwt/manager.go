package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTManager signs and verifies the session cookie. The cookie carries only
// the session ID; everything else (roles, backend tokens) stays server-side.
type JWTManager struct {
	secretKey string
	tokenTTL  time.Duration
}

func NewJWTManager(secretKey string, tokenTTL time.Duration) *JWTManager {
	return &JWTManager{
		secretKey: secretKey,
		tokenTTL:  tokenTTL,
	}
}

// NewSessionToken generates a signed token for the given session ID.
func (manager *JWTManager) NewSessionToken(sessionID uuid.UUID) (string, error) {
	jwtClaims := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Subject:   sessionID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(manager.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	tokenString, err := jwtClaims.SignedString([]byte(manager.secretKey))
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// VerifySessionToken verifies the token and returns the session ID if the token is valid.
func (manager *JWTManager) VerifySessionToken(tokenString string) (sessionID uuid.UUID, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(manager.secretKey), nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, jwt.ErrTokenMalformed
	}

	sessionID, err = uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, jwt.ErrTokenMalformed
	}

	return sessionID, nil
}
