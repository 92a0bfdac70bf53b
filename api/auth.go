package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const sessionTokenTtl = 12 * time.Hour

// signSessionToken mints the bearer token handed out at login. The token
// only carries the session ID; everything else about the session lives in
// the session repository.
func signSessionToken(sessionID uuid.UUID, signingSecret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sessionID": sessionID.String(),
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func parseSessionToken(tokenStr string, signingSecret string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(signingSecret), nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("failed to parse claims")
	}

	rawSessionID, ok := claims["sessionID"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("token has no session ID")
	}
	sessionID, err := uuid.Parse(rawSessionID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("token has invalid session ID: %w", err)
	}

	return sessionID, nil
}
