// cmd/api/docs.go
// This file serves the OpenAPI description of the book endpoints.
package main

import (
	_ "embed"
	"net/http"
)

//go:embed openapi.json
var openAPIDocument []byte

// apiDocsHandler handles GET /v3/api-docs.
func (app *applicationDependencies) apiDocsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(openAPIDocument); err != nil {
		app.logError(r, err)
	}
}
