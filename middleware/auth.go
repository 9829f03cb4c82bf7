package middleware

import (
	"strings"

	"github.com/duwuzhou/article-cms/config"
	"github.com/duwuzhou/article-cms/helper"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// AuthMiddleware gates mutating routes. It accepts either the admin password
// in the X-Password header or a bearer token previously issued by the login
// endpoint.
func AuthMiddleware(h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if password := c.GetHeader("X-Password"); password != "" {
			if !config.CheckAdminPassword(password) {
				h.SendForbiddenError(c, "Invalid password", h.EmptyJsonMap())
				c.Abort()
				return
			}
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			h.SendUnauthorizedError(c, "X-Password header or bearer token required", h.EmptyJsonMap())
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			h.SendUnauthorizedError(c, "Bearer token required", h.EmptyJsonMap())
			c.Abort()
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return config.JWTSecret, nil
		})

		if err != nil {
			h.SendUnauthorizedError(c, "Invalid token: "+err.Error(), h.EmptyJsonMap())
			c.Abort()
			return
		}

		if !token.Valid {
			h.SendUnauthorizedError(c, "Token is not valid", h.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Next()
	}
}
