package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
)

// Claims are issued by the identity provider and only verified here.
type Claims struct {
	jwt.RegisteredClaims
	UserID user.ID   `json:"uid"`
	Role   user.Role `json:"role"`
}

// Parse verifies the token signature and returns its claims.
func Parse(tokenString, signingKey string) (*Claims, error) {
	claims := new(Claims)

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(signingKey), nil
		})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
