package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"board/internal/core/apperror"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// UsernameKey is the gin context key holding the authenticated username.
const UsernameKey = "username"

// JWTAuthMiddleware accepts "Authorization: Bearer <token>" signed with secret
// and stores the token subject under UsernameKey.
func JWTAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abort(c)
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims := &jwt.StandardClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			abort(c)
			return
		}

		c.Set(UsernameKey, claims.Subject)
		c.Next()
	}
}

func abort(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    apperror.KindUnauthorized,
		"message": apperror.MessageOf(apperror.New(apperror.KindUnauthorized, "")),
	})
}
