package middlewares

import (
	"crypto/rsa"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/migration-sizer/pkg/errors"
)

// UserKey is the gin context key holding the authenticated username.
const UserKey = "username"

// Claims are the token claims issued by the migration planner.
type Claims struct {
	Username string `json:"username"`
	OrgID    string `json:"org_id"`
	jwt.RegisteredClaims
}

// LoadPublicKey reads a PEM encoded RSA public key.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jwt public key: %w", err)
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse jwt public key: %w", err)
	}

	return key, nil
}

// Authenticator rejects requests without a valid RS256 bearer token.
// Requests whose path ends with one of skipSuffixes are let through.
func Authenticator(key *rsa.PublicKey, skipSuffixes ...string) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithExpirationRequired())

	return func(c *gin.Context) {
		for _, s := range skipSuffixes {
			if strings.HasSuffix(c.Request.URL.Path, s) {
				c.Next()
				return
			}
		}

		claims, err := authenticate(c.GetHeader("Authorization"), parser, key)
		if err != nil {
			zap.S().Named("auth").Debugw("request rejected", "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(UserKey, claims.Username)
		c.Next()
	}
}

func authenticate(header string, parser *jwt.Parser, key *rsa.PublicKey) (*Claims, error) {
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return nil, srvErrors.NewUnauthorizedError("missing bearer token")
	}

	claims := &Claims{}
	_, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return key, nil
	})
	if err != nil {
		return nil, srvErrors.NewUnauthorizedError(err.Error())
	}

	return claims, nil
}
