package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs mounts the Swagger UI under /swagger/
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}
