package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ResetPurpose tags reset tokens. Session tokens carry no purpose claim, so
// the two can never substitute for each other.
const ResetPurpose = "password-reset"

const (
	sessionTokenTTL = 7 * 24 * time.Hour
	resetTokenTTL   = 15 * time.Minute
)

type TokenPayload struct {
	UserID  string
	Email   string
	Purpose string
}

// TokenCodec issues and validates the signed bearer tokens. It is a pure
// function of the signing secret and holds no other state.
type TokenCodec struct {
	secretKey  []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
}

func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{
		secretKey:  []byte(secret),
		sessionTTL: sessionTokenTTL,
		resetTTL:   resetTokenTTL,
	}
}

func (c *TokenCodec) IssueSessionToken(userID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(c.sessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secretKey)
}

func (c *TokenCodec) IssueResetToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     userID,
		"purpose": ResetPurpose,
		"iat":     now.Unix(),
		"exp":     now.Add(c.resetTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secretKey)
}

// Validate decodes a token and reports ok=false for anything malformed,
// tampered, or expired. Callers branch on ok; validation never errors outward.
func (c *TokenCodec) Validate(tokenStr string) (TokenPayload, bool) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return c.secretKey, nil
	})
	if err != nil || !token.Valid {
		return TokenPayload{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPayload{}, false
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return TokenPayload{}, false
	}

	payload := TokenPayload{UserID: userID}
	if email, ok := claims["email"].(string); ok {
		payload.Email = email
	}
	if purpose, ok := claims["purpose"].(string); ok {
		payload.Purpose = purpose
	}
	return payload, true
}
