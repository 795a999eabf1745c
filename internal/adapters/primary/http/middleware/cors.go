package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS lets the browser front-end call the API. A "*" entry allows any
// origin; an empty list allows no cross-origin requests.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", HeaderRequestID},
		ExposeHeaders:    []string{HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	switch {
	case len(allowedOrigins) == 0:
		cfg.AllowOriginFunc = func(string) bool { return false }
	case containsWildcard(allowedOrigins):
		cfg.AllowAllOrigins = true
	default:
		cfg.AllowOrigins = allowedOrigins
	}
	return cors.New(cfg)
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
