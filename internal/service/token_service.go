package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nordbook/eid-gateway/internal/models"
)

var _ TokenGenerator = (*TokenService)(nil)

// TokenService mints the short-lived HS256 identity token that carries the
// provider-verified identity back through the booking flow.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// GenerateIdentityToken creates a token for an identity the provider has
// verified. Callers must only pass users taken from completion data.
func (s *TokenService) GenerateIdentityToken(user models.VerifiedUser) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":         user.PersonalNumber,
		"name":        user.Name,
		"given_name":  user.GivenName,
		"family_name": user.Surname,
		"iss":         "eid-gateway",
		"exp":         now.Add(s.ttl).Unix(),
		"iat":         now.Unix(),
		"nbf":         now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign identity token: %w", err)
	}
	return tokenString, nil
}

func (s *TokenService) ValidateIdentityToken(tokenString string) (*models.VerifiedUser, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse identity token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid identity token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid identity token claims")
	}
	personalNumber, ok := claims["sub"].(string)
	if !ok || personalNumber == "" {
		return nil, fmt.Errorf("invalid identity token claims")
	}

	user := &models.VerifiedUser{PersonalNumber: personalNumber}
	if name, ok := claims["name"].(string); ok {
		user.Name = name
	}
	if given, ok := claims["given_name"].(string); ok {
		user.GivenName = given
	}
	if surname, ok := claims["family_name"].(string); ok {
		user.Surname = surname
	}
	return user, nil
}
