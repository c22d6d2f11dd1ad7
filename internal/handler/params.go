package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// pathUUID binds the named chi path parameter as a UUID.
func pathUUID(r *http.Request, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return id, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

// queryParam binds an optional form-style query parameter into dst, which
// must be a pointer to a pointer so absence is observable.
func queryParam(r *http.Request, name string, dst any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dst); err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	return nil
}
