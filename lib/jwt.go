package lib

import (
	"fmt"
	"merchantdesk_server/structs"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ParseToken validates an access token issued by the external identity
// provider and returns its claims. The business_id claim partitions every
// query this service makes.
func ParseToken(tokenStr string, secret string) (*structs.AuthClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid sub claim")
	}
	sub, err := uuid.Parse(subStr)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in sub claim: %w", err)
	}

	businessStr, ok := claims["business_id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid business_id claim")
	}
	businessId, err := uuid.Parse(businessStr)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in business_id claim: %w", err)
	}

	email, _ := claims["email"].(string)

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid iat claim")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid exp claim")
	}

	var jti uuid.UUID
	if jtiStr, ok := claims["jti"].(string); ok {
		if jti, err = uuid.Parse(jtiStr); err != nil {
			return nil, fmt.Errorf("invalid UUID in jti claim: %w", err)
		}
	}

	return &structs.AuthClaims{
		Sub:        sub,
		BusinessId: businessId,
		Email:      email,
		Iat:        time.Unix(int64(iat), 0),
		Exp:        time.Unix(int64(exp), 0),
		Jti:        jti,
	}, nil
}

// ExtractClaims pulls the access token from the auth cookie or, failing that,
// a bearer Authorization header, and parses it.
func ExtractClaims(r *http.Request, secret string) (*structs.AuthClaims, error) {
	accessToken, err := GetCookieValue(AccessCookieName, r)
	if err != nil {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return nil, ErrInvalidToken
		}
		accessToken = strings.TrimPrefix(header, "Bearer ")
	}

	return ParseToken(accessToken, secret)
}
