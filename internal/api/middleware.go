// Package api implements the json-server compatible /pets REST resource.
package api

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS opens the resource to any origin, as json-server does.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
}
