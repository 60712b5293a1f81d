package httpapi

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const roleContextKey = "role"

// Claims is the token payload expected from the identity provider.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware checks HS256 bearer tokens against a set of allowed roles.
type AuthMiddleware struct {
	secret []byte
	roles  map[string]struct{}
}

// NewAuthMiddleware returns nil when secret is empty, which disables auth.
func NewAuthMiddleware(secret string, roles []string) *AuthMiddleware {
	if secret == "" {
		return nil
	}
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}
	return &AuthMiddleware{secret: []byte(secret), roles: allowed}
}

// RequireRole aborts requests without a valid token carrying an allowed role.
func (am *AuthMiddleware) RequireRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			Unauthorized(c, "missing or invalid token")
			return
		}

		claims, err := am.parse(tokenString)
		if err != nil {
			Unauthorized(c, err.Error())
			return
		}

		if _, ok := am.roles[strings.ToLower(claims.Role)]; !ok {
			Forbidden(c, claims.Role)
			return
		}

		c.Set(roleContextKey, claims.Role)
		c.Next()
	}
}

func (am *AuthMiddleware) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return am.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

func bearerToken(header string) string {
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
