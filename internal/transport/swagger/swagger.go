package swagger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	httpSwagger "github.com/swaggo/http-swagger"
)

const DocumentPath = "/openapi.yml"

// Handler serves the Swagger UI pointed at the document served on DocumentPath.
func Handler() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL(DocumentPath),
	)
}

// Load parses and validates the OpenAPI document so a broken file fails at
// startup instead of in the browser.
func Load(ctx context.Context, path string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi document %s: %w", path, err)
	}
	return doc, nil
}

// DocumentHandler serves the file at path. The document is validated once here.
func DocumentHandler(ctx context.Context, path string) (http.Handler, error) {
	doc, err := Load(ctx, path)
	if err != nil {
		return nil, err
	}
	version := doc.Info.Version
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-API-Version", version)
		w.Header().Set("Content-Type", "application/yaml")
		http.ServeFile(w, r, path)
	}), nil
}
