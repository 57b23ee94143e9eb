package helper

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const jwtIssuer = "DonaTalkAPI"

var ErrTokenSubjectMissing = errors.New("token carries no user id")

// userClaimKeys lists the claim names identity tokens have used for the user id, in lookup order.
var userClaimKeys = []string{"userId", "id", "_id", "userID"}

func GenerateJWT(secret string, expHours int, userID string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"iss":    jwtIssuer,
		"iat":    jwt.NewNumericDate(time.Now()),
		"exp":    jwt.NewNumericDate(time.Now().Add(time.Duration(expHours) * time.Hour)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ParseJWT verifies an HS256 token and returns the user id it was issued for.
func ParseJWT(secret, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}

	for _, key := range userClaimKeys {
		if v, ok := claims[key].(string); ok && v != "" {
			return v, nil
		}
	}

	return "", ErrTokenSubjectMissing
}
