package http

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed openapi.yaml
var rawSpec []byte

var loadSpec = sync.OnceValues(func() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI spec: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}
	return doc, nil
})

// GetSpec returns the parsed, validated API description.
func GetSpec() (*openapi3.T, error) {
	return loadSpec()
}

// RawSpec returns the API description as served on /openapi.yaml.
func RawSpec() []byte {
	return rawSpec
}

// newRequestValidator checks requests that match a documented operation against the
// API description. Undocumented routes (the HTML page, /metrics) pass through untouched.
func newRequestValidator(logger *slog.Logger) (func(http.Handler) http.Handler, error) {
	doc, err := GetSpec()
	if err != nil {
		return nil, err
	}
	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build OpenAPI router: %w", err)
	}
	return requestValidator(router, logger), nil
}

func requestValidator(router routers.Router, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				logger.Warn("Request rejected by API contract", "path", r.URL.Path, "error", err)
				encodeJSON(w, logger, http.StatusBadRequest, errorResponse{Error: "invalid request: "+firstLine(err.Error())})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
