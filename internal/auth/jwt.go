package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ParticipantClaims identifies a registered participant. The verified flag is
// baked into the token at issue time; login refuses unverified accounts, so a
// live token always implies a verified address.
type ParticipantClaims struct {
	ParticipantID string `json:"participant_id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	TokenKind     string `json:"kind"`
	jwt.RegisteredClaims
}

// AdminClaims back an admin session token. SessionID points at the
// admin_sessions row so logout can revoke the token server-side.
type AdminClaims struct {
	SessionID   string   `json:"session_id"`
	AdminID     string   `json:"admin_id"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	TokenKind   string   `json:"kind"`
	jwt.RegisteredClaims
}

const (
	kindParticipant = "participant"
	kindAdmin       = "admin"
)

var ErrWrongTokenKind = errors.New("wrong token kind")

func NewParticipantToken(secret, issuer string, ttl time.Duration, claims ParticipantClaims) (string, error) {
	now := time.Now().UTC()
	claims.TokenKind = kindParticipant
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.ParticipantID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseParticipantToken(secret, tokenString string) (*ParticipantClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ParticipantClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*ParticipantClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.TokenKind != kindParticipant {
		return nil, ErrWrongTokenKind
	}
	return claims, nil
}

func NewAdminToken(secret, issuer string, ttl time.Duration, claims AdminClaims) (string, error) {
	now := time.Now().UTC()
	claims.TokenKind = kindAdmin
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.AdminID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseAdminToken(secret, tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.TokenKind != kindAdmin {
		return nil, ErrWrongTokenKind
	}
	return claims, nil
}
