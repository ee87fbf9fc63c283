package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anilkoundinya7/E-Commerce/models"
)

// Identity is the authenticated caller bound to one request by the auth
// middleware. Handlers receive it explicitly instead of digging claims out
// of the raw token.
type Identity struct {
	UserID  primitive.ObjectID
	IsAdmin bool
}

// TokenService issues and verifies the HS256 JWTs used as opaque identity
// tokens by the HTTP surface.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret not configured")
	}
	return &TokenService{secret: []byte(secret), ttl: 24 * time.Hour}, nil
}

// Generate signs a token carrying the user's id and admin flag, expiring
// after 24 hours.
func (t *TokenService) Generate(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":       user.ID.Hex(),
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse verifies a token string and returns the identity it carries.
func (t *TokenService) Parse(tokenStr string) (Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return Identity{}, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, fmt.Errorf("invalid token claims")
	}

	idHex, ok := claims["id"].(string)
	if !ok {
		return Identity{}, fmt.Errorf("invalid token claims")
	}
	userID, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return Identity{}, fmt.Errorf("invalid token claims")
	}

	isAdmin, _ := claims["is_admin"].(bool)
	return Identity{UserID: userID, IsAdmin: isAdmin}, nil
}
