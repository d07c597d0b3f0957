package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CORS(allowedOrigins []string, authHeader string) gin.HandlerFunc {
	headers := []string{"Content-Type", "Accept", "Origin", "X-Request-ID", "Authorization"}
	if authHeader != "" && authHeader != "Authorization" {
		headers = append(headers, authHeader)
	}
	if len(allowedOrigins) == 0 {
		return cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:    headers,
			ExposeHeaders:   []string{"X-Request-ID"},
			MaxAge:          24 * time.Hour,
		})
	}
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     headers,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
