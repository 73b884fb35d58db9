package usecase

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// HS256で署名するアクセストークン
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl}
}

func (i *JWTIssuer) Issue(userID int64, sessionID string, now time.Time) (string, time.Time, error) {
	exp := now.Add(i.ttl)

	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"jti": sessionID,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
