// utils/auth.go
package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// PrincipalID identifies the caller as issued by the identity provider.
type PrincipalID string

const principalKey = "principalId"

var ErrUnauthenticated = errors.New("unauthenticated")

// TokenVerifier checks bearer tokens minted by the external identity provider.
type TokenVerifier struct {
	secret  []byte
	options []jwt.ParserOption
}

func NewTokenVerifier(secret, issuer, audience string) *TokenVerifier {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &TokenVerifier{secret: []byte(secret), options: opts}
}

// ResolvePrincipal returns the token subject, or ErrUnauthenticated.
func (v *TokenVerifier) ResolvePrincipal(tokenString string) (PrincipalID, error) {
	if tokenString == "" {
		return "", ErrUnauthenticated
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, v.options...)
	if err != nil || !token.Valid {
		return "", ErrUnauthenticated
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || strings.TrimSpace(sub) == "" {
		return "", ErrUnauthenticated
	}
	return PrincipalID(sub), nil
}

// Auth middleware
func AuthMiddleware(v *TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := v.ResolvePrincipal(bearerToken(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{Success: false, Message: "Authentication required"})
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the principal set by AuthMiddleware.
func PrincipalFrom(c *gin.Context) (PrincipalID, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return "", false
	}
	p, ok := v.(PrincipalID)
	return p, ok && p != ""
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
