package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

const tokenIssuer = "imobiliaria_admin"

type Claims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// TokenIssuer signs and checks admin session tokens.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
}

func NewTokenIssuer(key string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &TokenIssuer{key: []byte(key), ttl: ttl}
}

func (ti *TokenIssuer) GenerateJWT(email string) (string, error) {
	now := time.Now()

	claims := &Claims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(ti.ttl).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.key)
}

func (ti *TokenIssuer) ValidateJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return ti.key, nil
	})

	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			if ve.Errors&jwt.ValidationErrorExpired != 0 {
				return nil, errors.New("token has expired")
			}
			if ve.Errors&jwt.ValidationErrorSignatureInvalid != 0 {
				return nil, errors.New("invalid token signature")
			}
		}
		return nil, err
	}

	if !token.Valid || claims.Issuer != tokenIssuer {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
