package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/ekta-foundation/casebook/core"
)

const contextTokenKey = "userToken"

// Claims represents the authorization claims of an educator, transmitted via a JWT.
// Tokens are issued elsewhere; the API only verifies them.
type Claims struct {
	jwt.StandardClaims
	Name  string   `json:"name,omitempty"`
	Email string   `json:"email,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

func newJWTConfig(secretKey string) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(secretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

// NewClaims returns claims for the educator identified by person, valid for ttl.
func NewClaims(person core.Person, issuer string, ttl time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    issuer,
			Subject:   person.ID,
			ExpiresAt: now.Add(ttl).Unix(),
			IssuedAt:  now.Unix(),
		},
		Name:  person.Name,
		Email: person.Email,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims, secretKey string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, bool) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, true
		}
	}
	return Claims{}, false
}

// contextPerson identifies the authenticated educator for log entries.
func contextPerson(ctx echo.Context) (core.Person, bool) {
	claims, ok := getContextClaims(ctx)
	if !ok {
		return core.Person{}, false
	}
	return core.Person{ID: claims.Subject, Name: claims.Name, Email: claims.Email}, true
}
