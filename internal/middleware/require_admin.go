package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin restreint la route au personnel : le rôle vient du token
// vérifié par AuthRequired, jamais du corps de la requête.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
			c.Abort()
			return
		}
		c.Next()
	}
}
