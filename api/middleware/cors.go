package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// defaultCORSOrigins covers local development plus the deployed site.
var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"https://netwave-iq.com",
	"https://www.netwave-iq.com",
	"https://netwave.vercel.app",
}

// CORS returns middleware that applies the API's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Accept-Language", "Idempotency-Key", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
